package isolate

// Capabilities answers which optional interpreter extensions are active in
// the current environment. The runner consumes the answer once per Run to
// decide which extension settings to forward to the child; detecting the
// extensions is someone else's job.
//
// At most one settings group is appended per invocation: coverage takes
// precedence over step debugging.
type Capabilities interface {
	// CoverageSettings returns the settings of an active coverage-driving
	// extension, or ok=false when none is loaded.
	CoverageSettings() ([]Setting, bool)

	// DebuggerSettings returns the settings of an active step-debugging
	// extension, or ok=false when none is loaded.
	DebuggerSettings() ([]Setting, bool)
}

// NoCapabilities reports no active extensions. It is the default for
// runners built with NewRunner.
type NoCapabilities struct{}

func (NoCapabilities) CoverageSettings() ([]Setting, bool) { return nil, false }
func (NoCapabilities) DebuggerSettings() ([]Setting, bool) { return nil, false }

// StaticCapabilities answers capability queries from fixed settings lists.
// A nil list means the extension is not active.
type StaticCapabilities struct {
	Coverage []Setting
	Debugger []Setting
}

func (c StaticCapabilities) CoverageSettings() ([]Setting, bool) {
	return c.Coverage, c.Coverage != nil
}

func (c StaticCapabilities) DebuggerSettings() ([]Setting, bool) {
	return c.Debugger, c.Debugger != nil
}
