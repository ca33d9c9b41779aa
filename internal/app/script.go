package app

import (
	"context"

	"github.com/dshills/sideways/internal/plugin"
)

// RunScript runs a Lua script in a fresh runtime bound to the active
// engine. When input names a file, or "-" for stdin, its text is exposed
// as sideways.input. The script's string return value is the output.
func (app *Application) RunScript(ctx context.Context, script, input string) (string, bool, error) {
	var text, path string
	if input != "" {
		t, err := app.readInput(input)
		if err != nil {
			return "", false, err
		}
		text = t
		if input != "-" {
			path = input
		}
	}

	host, err := plugin.NewHost(app.Engine,
		plugin.WithHostExecutionTimeout(app.Config().PluginTimeout()),
		plugin.WithHostInput(path, text),
	)
	if err != nil {
		return "", false, NewOperationError("run script", script, err)
	}
	defer host.Close()

	out, ok, err := host.Run(ctx, script)
	if err != nil {
		return "", false, NewOperationError("run script", script, err)
	}
	return out, ok, nil
}
