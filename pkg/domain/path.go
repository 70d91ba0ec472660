package domain

import "strings"

// PathSeparator joins state names into canonical paths.
const PathSeparator = "/"

// PathOf returns the canonical path of s: the separator-joined chain of
// names from its top state down to s, with a leading separator. Paths
// are case-sensitive and globally unique within an activated forest.
func PathOf(s *State) string {
	if s == nil {
		return ""
	}
	var names []string
	for cur := s; cur != nil; cur = cur.Parent() {
		names = append(names, cur.Name())
	}
	var b strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteString(PathSeparator)
		b.WriteString(names[i])
	}
	return b.String()
}
