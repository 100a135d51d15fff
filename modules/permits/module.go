package permits

import (
	"github.com/fieldware/sitecheck/modules/permits/presentation/controllers"
	"github.com/fieldware/sitecheck/modules/permits/services"
	"github.com/fieldware/sitecheck/pkg/application"
	"github.com/fieldware/sitecheck/pkg/siteapi"
)

func NewModule(client *siteapi.Client) application.Module {
	return &Module{client: client}
}

type Module struct {
	client *siteapi.Client
}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewPermitService(m.client, app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewPermitController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "permits"
}
