package logger

import (
	"fmt"
	"io"
	"sync"
)

// Diagnostics routes decoder diagnostics: skips and warnings to a Logger,
// the per record debug stream verbatim to an io.Writer. A nil writer
// disables the debug stream.
type Diagnostics struct {
	log Logger
	mu  sync.Mutex
	w   io.Writer
}

// NewDiagnostics returns a diagnostics sink.
func NewDiagnostics(log Logger, debug io.Writer) *Diagnostics {
	if log == nil {
		log = Default()
	}
	return &Diagnostics{log: log.WithGroup("op2"), w: debug}
}

func (d *Diagnostics) DebugEnabled() bool {
	return d.w != nil
}

func (d *Diagnostics) WriteDiagnostic(text string) {
	if d.w == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	_, _ = fmt.Fprintln(d.w, text)
}

func (d *Diagnostics) LogInfo(text string) {
	d.log.Info(text)
}

func (d *Diagnostics) LogWarning(text string) {
	d.log.Warn(text)
}
