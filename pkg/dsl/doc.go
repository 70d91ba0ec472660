// Package dsl loads machine definitions from YAML and compiles them
// into a state forest. Transitions reference events by name; their
// sources are resolved through a registry, so hosts (CLI, HTTP, Redis)
// can feed occurrences into a machine defined in a file.
package dsl
