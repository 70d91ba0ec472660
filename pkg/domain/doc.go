// Package domain holds the data model shared by the engine and its
// adapters: the state tree, transitions, event occurrences and the
// lifecycle hook surface.
//
// States and transitions are constructed once, wired into a tree, and
// treated as immutable after the machine that owns them is activated.
package domain
