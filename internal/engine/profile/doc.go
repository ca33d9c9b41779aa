// Package profile defines language profiles: the delimiter, quoting and
// comment rules the sibling engine needs to read one language.
//
// A Profile is an immutable value passed into every engine call. The
// built-in table covers Rust (generics, turbofish, closures, lifetimes),
// Go, C, C++, Java, JavaScript, TypeScript, Python, Ruby and Lua, with a
// permissive default for everything else.
//
// User profiles are read from TOML or YAML:
//
//	[[profiles]]
//	name = "kotlin"
//	base = "java"
//	extensions = [".kt", ".kts"]
//
// A definition only overrides the fields it sets; the rest comes from its
// base profile.
package profile
