package checklists

import (
	"github.com/fieldware/sitecheck/modules/checklists/forms"
	"github.com/fieldware/sitecheck/pkg/types"
)

func checklistChildren() []types.NavigationItem {
	all := forms.All()
	children := make([]types.NavigationItem, 0, len(all))
	for _, def := range all {
		switch def.Code {
		case "worker_record", "manpower_log", "permit_to_work":
			// surfaced under their own top-level entries
			continue
		}
		children = append(children, types.NavigationItem{
			Key:   def.Code,
			Title: def.Title,
			Href:  "/checklists/" + def.Code,
		})
	}
	return children
}

var ChecklistsLink = types.NavigationItem{
	Key:      "checklists",
	Title:    "Checklists",
	Icon:     "clipboard",
	Children: checklistChildren(),
}

var WorkerLink = types.NavigationItem{
	Key:   "worker",
	Title: "Workers",
	Icon:  "users",
	Href:  "/workers",
	Match: types.MatchPrefix,
}

var ManpowerLink = types.NavigationItem{
	Key:   "manpower",
	Title: "Manpower",
	Icon:  "chart-bar",
	Href:  "/manpower",
}

var NavItems = []types.NavigationItem{
	ChecklistsLink,
	WorkerLink,
	ManpowerLink,
}
