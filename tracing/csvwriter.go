package tracing

import (
	"fmt"
	"os"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/cohsim/cache"
)

// CSVWriter buffers access records and writes them to a CSV file.
type CSVWriter struct {
	path string
	file *os.File

	records    []cache.AccessRecord
	bufferSize int
}

// NewCSVWriter creates a CSVWriter. The ".csv" suffix is appended to path.
// An empty path picks a unique name.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Path returns the file the writer writes to.
func (w *CSVWriter) Path() string {
	return w.path + ".csv"
}

// Init creates the CSV file and writes the header. It refuses to overwrite
// an existing file.
func (w *CSVWriter) Init() error {
	if w.path == "" {
		w.path = "cohsim_trace_" + xid.New().String()
	}

	filename := w.Path()
	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("file %s already exists", filename)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	w.file = file

	fmt.Fprintf(file, "Cache, Action, Addr, Set, Way, Hit, Writeback, UpgradeMiss, State\n")

	atexit.Register(func() {
		if err := w.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing trace file: %v\n", err)
		}
	})

	return nil
}

// Write buffers one record.
func (w *CSVWriter) Write(r cache.AccessRecord) {
	w.records = append(w.records, r)
	if len(w.records) >= w.bufferSize {
		if err := w.Flush(); err != nil {
			panic(err)
		}
	}
}

// Flush writes the buffered records to the file.
func (w *CSVWriter) Flush() error {
	if w.file == nil {
		return nil
	}

	for _, r := range w.records {
		_, err := fmt.Fprintf(w.file, "%s, %s, 0x%x, %d, %d, %t, %t, %t, %s\n",
			r.Cache, r.Action, r.Addr, r.Set, r.Way,
			r.Hit, r.Writeback, r.UpgradeMiss, r.State)
		if err != nil {
			return fmt.Errorf("failed to write trace file: %w", err)
		}
	}

	w.records = nil

	return nil
}

// Close flushes the buffer and closes the file.
func (w *CSVWriter) Close() error {
	if w.file == nil {
		return nil
	}

	if err := w.Flush(); err != nil {
		return err
	}

	err := w.file.Close()
	w.file = nil

	return err
}
