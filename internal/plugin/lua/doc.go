// Package lua hosts user scripts on gopher-lua.
//
// A State opens only the base, package, string, table and math libraries.
// The Sandbox removes dofile, loadfile, load and loadstring, empties
// package.path, and limits require to the builtin libraries plus modules
// installed with RegisterModule:
//
//	state, err := lua.NewState(lua.WithExecutionTimeout(2 * time.Second))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	if err := state.RegisterModule(mod); err != nil {
//	    return err
//	}
//	if err := state.DoFile(ctx, "swap.lua"); err != nil {
//	    return err
//	}
//
// Every DoFile, DoString and Call runs under the state's execution timeout;
// exceeding it yields ErrExecutionTimeout.
//
// The Bridge converts between Go and Lua values and reads typed fields from
// tables.
package lua
