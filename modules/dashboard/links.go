package dashboard

import (
	"github.com/fieldware/sitecheck/pkg/types"
)

var OverviewLink = types.NavigationItem{
	Key:   "overview",
	Title: "Site Overview",
	Icon:  "gauge",
	Href:  "/",
	Match: types.MatchExact,
}

var NavItems = []types.NavigationItem{
	OverviewLink,
}
