package types

import "strings"

// MatchStrategy decides how a navigation item is highlighted as active.
// Exactly one strategy is evaluated per item.
type MatchStrategy int

const (
	MatchExact MatchStrategy = iota
	MatchPrefix
)

// NavigationItem is one entry of the static navigation tree. An item is a
// leaf when Href is set and Children is empty; a parent renders a disclosure
// toggle over its children instead of linking anywhere.
type NavigationItem struct {
	Key      string
	Title    string
	Href     string
	Icon     string
	Match    MatchStrategy
	Children []NavigationItem
}

func (n NavigationItem) IsLeaf() bool {
	return len(n.Children) == 0
}

// IsActive reports whether the item should be highlighted for the current
// path: exact equality by default, prefix matching when declared.
func (n NavigationItem) IsActive(path string) bool {
	if n.Href == "" {
		return false
	}
	if n.Match == MatchPrefix {
		return strings.HasPrefix(path, n.Href)
	}
	return path == n.Href
}
