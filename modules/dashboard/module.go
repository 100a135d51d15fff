package dashboard

import (
	"github.com/fieldware/sitecheck/modules/dashboard/presentation/controllers"
	"github.com/fieldware/sitecheck/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterControllers(
		controllers.NewNavigationController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "dashboard"
}
