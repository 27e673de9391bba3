package tracing

import (
	"io"
	"log"

	"github.com/sarchlab/cohsim/cache"
)

// LogWriter prints one line per access through a log.Logger.
type LogWriter struct {
	logger *log.Logger
}

// NewLogWriter creates a LogWriter that writes to w.
func NewLogWriter(w io.Writer) *LogWriter {
	return &LogWriter{logger: log.New(w, "", 0)}
}

// Init does nothing.
func (w *LogWriter) Init() error {
	return nil
}

// Write logs the record.
func (w *LogWriter) Write(r cache.AccessRecord) {
	w.logger.Printf("%s %-7s addr=0x%08x set=%d way=%d hit=%t wb=%t upgrade=%t state=%s",
		r.Cache, r.Action, r.Addr, r.Set, r.Way,
		r.Hit, r.Writeback, r.UpgradeMiss, r.State)
}

// Flush does nothing.
func (w *LogWriter) Flush() error {
	return nil
}
