package plugin

import "errors"

// Plugin system errors.
var (
	// ErrScriptNotFound is returned when a script path does not exist.
	ErrScriptNotFound = errors.New("script not found")

	// ErrInvalidScript is returned for paths that are not Lua files.
	ErrInvalidScript = errors.New("script must be a .lua file")
)

// ScriptError records a failure in one script.
type ScriptError struct {
	Script string
	Err    error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return "script " + e.Script + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
