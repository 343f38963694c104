// Package isolate executes snippets of interpreter code in freshly spawned
// child interpreter processes. A Job describes one unit of work; a Runner
// turns it into a concrete command line, manages the child's standard
// streams, and returns the captured output.
//
// The package exists for callers (typically test frameworks) that must not
// run code in-process: a crash or fatal error in the code under test must
// not take down the caller, and some interpreter settings only take effect
// at process startup.
package isolate

// Setting is a single interpreter configuration flag. Settings are kept in
// a slice rather than a map because their order is significant: later flags
// may override earlier ones on the child's command line.
type Setting struct {
	Key   string
	Value string
}

// Source describes what reaches the child process: inline code piped to
// stdin, or code materialized as a file with an optional stdin payload.
// The two stdin sources are mutually exclusive by construction; there is no
// way to build a Job whose code and piped input both claim stdin.
type Source interface {
	// stdin returns the bytes piped to the child's standard input.
	stdin() string
}

// InlineCode pipes the program text directly to the child's stdin.
type InlineCode struct {
	Code string
}

func (s InlineCode) stdin() string { return s.Code }

// CodeWithInput carries program text plus a separate stdin payload. The
// runner externalizes Code to a uniquely named temporary file before
// spawning, so that Input can occupy the stdin pipe.
type CodeWithInput struct {
	Code  string
	Input string
}

func (s CodeWithInput) stdin() string { return s.Input }

// ScriptFile runs code that is already materialized at Path. Input, if any,
// is piped to the child's stdin.
type ScriptFile struct {
	Path  string
	Input string
}

func (s ScriptFile) stdin() string { return s.Input }

// Job is an immutable description of one subprocess execution request.
// Constructing a Job never fails; validation happens when it is run.
type Job struct {
	// Source is the code to execute and its stdin arrangement.
	// A nil Source behaves like InlineCode with empty code.
	Source Source

	// Settings are interpreter configuration flags, in command-line order.
	Settings []Setting

	// Env holds environment overrides merged onto the parent environment.
	// An empty map means "inherit the parent environment unchanged".
	// Values that are not plain scalars are silently dropped.
	Env map[string]any

	// Args are extra command-line arguments passed to the child program.
	Args []string

	// RedirectStderr merges the child's stderr into its stdout at the OS
	// pipe level, not after the fact.
	RedirectStderr bool
}

// HasInput reports whether the job carries a stdin payload distinct from
// its code.
func (j Job) HasInput() bool {
	switch s := j.Source.(type) {
	case CodeWithInput:
		return true
	case ScriptFile:
		return s.Input != ""
	default:
		return false
	}
}

// HasEnvironmentVariables reports whether the job overrides any
// environment variables.
func (j Job) HasEnvironmentVariables() bool {
	return len(j.Env) > 0
}

// HasArguments reports whether the job passes extra arguments to the child.
func (j Job) HasArguments() bool {
	return len(j.Args) > 0
}

// Result is the output snapshot captured after the child exits. Stderr is
// empty when the job redirected errors; those bytes land in Stdout.
type Result struct {
	Stdout string
	Stderr string
}
