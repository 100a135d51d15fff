package viewmodels

import (
	"github.com/fieldware/sitecheck/pkg/types"
)

type NavItem struct {
	Key      string    `json:"key"`
	Title    string    `json:"title"`
	Href     string    `json:"href,omitempty"`
	Icon     string    `json:"icon,omitempty"`
	Active   bool      `json:"active"`
	Children []NavItem `json:"children,omitempty"`
}

// NavItemsToViewModels marks items active against the shell's current
// path. Parents stay inactive unless their own match strategy says
// otherwise.
func NavItemsToViewModels(items []types.NavigationItem, currentPath string) []NavItem {
	out := make([]NavItem, 0, len(items))
	for _, item := range items {
		out = append(out, NavItem{
			Key:      item.Key,
			Title:    item.Title,
			Href:     item.Href,
			Icon:     item.Icon,
			Active:   item.IsActive(currentPath),
			Children: NavItemsToViewModels(item.Children, currentPath),
		})
	}
	return out
}
