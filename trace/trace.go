// Package trace reads memory access traces.
//
// A trace holds one access per line:
//
//	<core> <op> <address>
//
// where op is 0/r/load for a load, 1/w/store for a store, or ld_miss/st_miss
// for a remote notification, and address is hexadecimal with an optional 0x
// prefix. Text after '#' is ignored.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/cohsim/cache"
)

// Event is one access in a trace.
type Event struct {
	Core   int
	Action cache.Action
	Addr   uint64
}

func (e Event) String() string {
	return fmt.Sprintf("core %d %s 0x%x", e.Core, e.Action, e.Addr)
}

// ParseError reports a malformed trace line.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("trace line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Reader parses events from an io.Reader.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next event, or io.EOF when the trace is exhausted.
func (r *Reader) Next() (Event, error) {
	for r.scanner.Scan() {
		r.line++

		text := r.scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}

		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		evt, err := parseFields(fields)
		if err != nil {
			return Event{}, &ParseError{Line: r.line, Text: r.scanner.Text(), Err: err}
		}

		return evt, nil
	}

	if err := r.scanner.Err(); err != nil {
		return Event{}, fmt.Errorf("failed to read trace: %w", err)
	}

	return Event{}, io.EOF
}

// ReadAll returns every remaining event.
func (r *Reader) ReadAll() ([]Event, error) {
	var events []Event

	for {
		evt, err := r.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}

		if err != nil {
			return nil, err
		}

		events = append(events, evt)
	}
}

// ReadFile parses a whole trace file.
func ReadFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer f.Close()

	return NewReader(f).ReadAll()
}

func parseFields(fields []string) (Event, error) {
	if len(fields) != 3 {
		return Event{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}

	core, err := strconv.Atoi(fields[0])
	if err != nil || core < 0 {
		return Event{}, fmt.Errorf("invalid core id %q", fields[0])
	}

	action, err := cache.ParseAction(fields[1])
	if err != nil {
		return Event{}, err
	}

	hex := strings.TrimPrefix(strings.TrimPrefix(fields[2], "0x"), "0X")

	addr, err := strconv.ParseUint(hex, 16, cache.AddressBits)
	if errors.Is(err, strconv.ErrRange) {
		return Event{}, fmt.Errorf("address %q exceeds %d bits", fields[2], cache.AddressBits)
	}
	if err != nil {
		return Event{}, fmt.Errorf("invalid address %q", fields[2])
	}

	return Event{Core: core, Action: action, Addr: addr}, nil
}
