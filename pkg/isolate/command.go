package isolate

import "strings"

// Flags is the interpreter's command-line vocabulary. The defaults match
// the common PHP-style CLI; interpreters with a different surface override
// individual fields. An empty flag string means "omit the flag and pass the
// bare value".
type Flags struct {
	// Setting precedes each "key=value" configuration pair.
	Setting string

	// File precedes the script path when running from a file.
	File string

	// ArgSeparator is inserted before extra arguments when no file is on
	// the command line, so the interpreter does not mistake the first
	// argument for a script path.
	ArgSeparator string

	// RunImmediately tells a debugger front-end to execute without
	// prompting.
	RunImmediately string

	// InlineMarker is the debugger front-end's placeholder for "no script
	// file follows".
	InlineMarker string

	// DebuggerFrontEnd marks the interpreter binary as a debugger
	// front-end rather than a plain CLI.
	DebuggerFrontEnd bool
}

// DefaultFlags returns the PHP-style vocabulary.
func DefaultFlags() Flags {
	return Flags{
		Setting:        "-d",
		File:           "-f",
		ArgSeparator:   "--",
		RunImmediately: "-qrr",
		InlineMarker:   "-e",
	}
}

// commandLine materializes the full child argv for a job whose source has
// already been resolved (CodeWithInput is rewritten to ScriptFile before
// this point). Token order is part of the contract: settings keep the
// job's order, capability settings come ahead of any debugger-mode flags,
// and the argument separator appears only when no file is given.
func (r *Runner) commandLine(j Job, src Source) []string {
	argv := []string{r.Interpreter}

	appendSettings := func(settings []Setting) {
		for _, s := range settings {
			if r.Flags.Setting != "" {
				argv = append(argv, r.Flags.Setting)
			}
			argv = append(argv, s.Key+"="+s.Value)
		}
	}

	appendSettings(j.Settings)

	if settings, ok := r.caps().CoverageSettings(); ok {
		appendSettings(settings)
	} else if settings, ok := r.caps().DebuggerSettings(); ok {
		appendSettings(settings)
	}

	file, fromFile := src.(ScriptFile)

	if r.Flags.DebuggerFrontEnd {
		argv = append(argv, r.Flags.RunImmediately)
		if !fromFile {
			argv = append(argv, r.Flags.InlineMarker)
		}
	}

	if fromFile {
		if r.Flags.File != "" {
			argv = append(argv, r.Flags.File)
		}
		argv = append(argv, file.Path)
	}

	if j.HasArguments() {
		if !fromFile && r.Flags.ArgSeparator != "" {
			argv = append(argv, r.Flags.ArgSeparator)
		}
		for _, arg := range j.Args {
			argv = append(argv, strings.TrimSpace(arg))
		}
	}

	return argv
}
