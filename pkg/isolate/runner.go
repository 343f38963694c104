package isolate

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// tempPattern names the runner's temporary script files so stray ones are
// recognizable in the temp directory.
const tempPattern = "isorun_*.code"

// Runner executes Jobs as child interpreter processes. The zero value is
// not usable; construct with NewRunner. A single Runner is safe for
// concurrent use: every Run owns its own child process, pipes, and (if
// created) temporary file.
type Runner struct {
	// Interpreter is the path or name of the interpreter binary.
	Interpreter string

	// Flags is the interpreter's command-line vocabulary.
	Flags Flags

	// Caps answers which optional extensions are active. Nil means none.
	Caps Capabilities

	// Environ supplies the parent environment snapshot for jobs that
	// override variables. Nil means os.Environ. It exists so the merge
	// step can be exercised without touching the ambient process
	// environment.
	Environ func() []string

	// TempDir is where externalized code files are created. Empty means
	// the platform's standard temporary directory.
	TempDir string

	// Logger, when set, receives debug records for each spawn.
	Logger *slog.Logger
}

// NewRunner returns a Runner for the given interpreter binary with the
// default flag vocabulary and no active capabilities.
func NewRunner(interpreter string) *Runner {
	return &Runner{
		Interpreter: interpreter,
		Flags:       DefaultFlags(),
	}
}

func (r *Runner) caps() Capabilities {
	if r.Caps == nil {
		return NoCapabilities{}
	}
	return r.Caps
}

func (r *Runner) environ() []string {
	if r.Environ == nil {
		return os.Environ()
	}
	return r.Environ()
}

// Run executes one job and blocks until the child has exited and both
// output streams are fully drained. The child's exit code is not
// interpreted here; callers reconstruct success or failure from the
// captured bytes. Cancelling ctx kills the child, which surfaces like any
// other runtime failure.
//
// It returns a *ProcessError when the temporary file cannot be written,
// the child cannot be spawned, or its streams cannot be drained.
func (r *Runner) Run(ctx context.Context, j Job) (Result, error) {
	src := j.Source
	if src == nil {
		src = InlineCode{}
	}

	if code, ok := src.(CodeWithInput); ok {
		path, err := r.writeTempScript(code.Code)
		if err != nil {
			return Result{}, err
		}
		defer os.Remove(path)
		src = ScriptFile{Path: path, Input: code.Input}
	}

	argv := r.commandLine(j, src)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(src.stdin())

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if j.RedirectStderr {
		// Assigning the identical writer makes os/exec share one pipe
		// between fd 1 and fd 2, merging the streams in the kernel.
		cmd.Stderr = cmd.Stdout
	} else {
		cmd.Stderr = &stderr
	}

	if j.HasEnvironmentVariables() {
		cmd.Env = MergeEnviron(r.environ(), j.Env)
	}

	if r.Logger != nil {
		r.Logger.Debug("spawning worker process", "argv", argv, "redirect_stderr", j.RedirectStderr)
	}

	if err := cmd.Start(); err != nil {
		return Result{}, processErrorf(msgSpawn, err)
	}

	// Wait drains both writers on independent goroutines before reaping
	// the child, so a full pipe on one stream cannot deadlock the other.
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, processErrorf(msgStreams, err)
		}
	}

	return Result{Stdout: stdout.String(), Stderr: stderr.String()}, nil
}

// writeTempScript persists code to a uniquely named file in the runner's
// temp directory. On any failure the file, if created, is removed before
// the error is returned.
func (r *Runner) writeTempScript(code string) (string, error) {
	dir := r.TempDir
	if dir == "" {
		dir = os.TempDir()
	}

	f, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return "", processErrorf(msgTempFile, err)
	}

	path := f.Name()
	if path == "" {
		// Invariant: a successful create always names its file.
		f.Close()
		return "", processErrorf(msgTempFile, errors.New("temporary file has no name"))
	}

	if _, err := f.WriteString(code); err != nil {
		f.Close()
		os.Remove(path)
		return "", processErrorf(msgTempFile, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", processErrorf(msgTempFile, err)
	}

	return path, nil
}
