// Package tracing records per-access diagnostics from caches.
package tracing

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/cohsim/cache"
)

// Writer stores access records.
type Writer interface {
	Init() error
	Write(record cache.AccessRecord)
	Flush() error
}

// AccessTracer is a hook that forwards cache access records to a Writer.
type AccessTracer struct {
	writer Writer
}

// NewAccessTracer creates an AccessTracer.
func NewAccessTracer(w Writer) *AccessTracer {
	return &AccessTracer{writer: w}
}

// Func implements sim.Hook.
func (t *AccessTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != cache.HookPosAccess {
		return
	}

	record, ok := ctx.Item.(cache.AccessRecord)
	if !ok {
		return
	}

	t.writer.Write(record)
}
