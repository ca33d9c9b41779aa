// Package plugin runs user Lua scripts against the sideways engine.
//
// A Host owns one sandboxed Lua runtime with the sideways module
// installed. Scripts listed in the config's [plugins] section are loaded
// at startup and may register profiles and swap hooks:
//
//	-- ~/.config/sideways/plugins/zig.lua
//	sideways.define{ name = "zig", base = "c", extensions = {".zig"} }
//
//	sideways.on_swap(function(ev)
//	    print(ev.path, ev.from, "->", ev.to)
//	end)
//
// The same Host runs one-off scripts for `sideways -script`. A script's
// first return value, when it is a string, becomes the command's output:
//
//	local text, cursor = sideways.swap(sideways.input, 4, "right")
//	return text
//
// Module functions are documented in package api.
package plugin
