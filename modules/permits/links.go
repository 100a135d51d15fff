package permits

import (
	"github.com/fieldware/sitecheck/pkg/types"
)

var PermitsLink = types.NavigationItem{
	Key:   "permits",
	Title: "Permits To Work",
	Icon:  "file-check",
	Href:  "/permits",
	Match: types.MatchPrefix,
}

var NavItems = []types.NavigationItem{
	PermitsLink,
}
