// Package manifest loads scaffold definitions from TOML or YAML files.
//
// A manifest names a scaffold, lists the directories to create and the files
// to write. Each file carries either inline content or a source path that is
// read relative to the manifest itself:
//
//	name = "site"
//	directories = ["app", "public"]
//
//	[[files]]
//	path = "app/page.tsx"
//	source = "templates/page.tsx"
//
//	[[files]]
//	path = "public/robots.txt"
//	content = "User-agent: *\n"
//
// Paths are not trusted here. Escape checks happen in the emitter before
// anything is written.
package manifest
