package op2

// EntitySink receives completed entities. It is owned by the caller.
type EntitySink interface {
	RegisterEntity(e Entity)
	IncrementRecordCount(name string, n int)
}

// Diagnostics receives the structured record log.
type Diagnostics interface {
	DebugEnabled() bool
	// WriteDiagnostic appends one line to the debug record log. It is only
	// called when DebugEnabled reports true.
	WriteDiagnostic(text string)
	LogInfo(text string)
	LogWarning(text string)
}

// NopDiagnostics discards everything.
type NopDiagnostics struct{}

func (NopDiagnostics) DebugEnabled() bool     { return false }
func (NopDiagnostics) WriteDiagnostic(string) {}
func (NopDiagnostics) LogInfo(string)         {}
func (NopDiagnostics) LogWarning(string)      {}
