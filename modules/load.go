package modules

import (
	"github.com/fieldware/sitecheck/modules/checklists"
	"github.com/fieldware/sitecheck/modules/dashboard"
	"github.com/fieldware/sitecheck/modules/permits"
	"github.com/fieldware/sitecheck/pkg/application"
	"github.com/fieldware/sitecheck/pkg/siteapi"
	"github.com/fieldware/sitecheck/pkg/types"
)

// BuiltInModules wires every functional area against the shared backend
// client. Order matters only for navigation registration.
func BuiltInModules(client *siteapi.Client) []application.Module {
	return []application.Module{
		dashboard.NewModule(),
		checklists.NewModule(client),
		permits.NewModule(client),
	}
}

var NavLinks = append(append(append([]types.NavigationItem{},
	dashboard.NavItems...),
	checklists.NavItems...),
	permits.NavItems...)

func Load(app application.Application, mods ...application.Module) error {
	for _, module := range mods {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
