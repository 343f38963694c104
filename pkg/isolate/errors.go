package isolate

const (
	msgTempFile = "unable to write temporary file"
	msgSpawn    = "unable to spawn worker process"
	msgStreams  = "unable to read worker process output"
)

// ProcessError reports that a worker process could not be prepared, spawned,
// or drained. Failures of the executed code itself (non-zero exit, garbage
// on stdout) are not errors at this layer; they come back as captured bytes.
type ProcessError struct {
	Msg string
	Err error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ProcessError) Unwrap() error { return e.Err }

func processErrorf(msg string, err error) *ProcessError {
	return &ProcessError{Msg: msg, Err: err}
}
