package main

import (
	"log"
	"os"
	"runtime/debug"

	"github.com/fieldware/sitecheck/internal/server"
	"github.com/fieldware/sitecheck/modules"
	"github.com/fieldware/sitecheck/pkg/application"
	"github.com/fieldware/sitecheck/pkg/configuration"
	"github.com/fieldware/sitecheck/pkg/eventbus"
	"github.com/fieldware/sitecheck/pkg/metrics"
	"github.com/fieldware/sitecheck/pkg/siteapi"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	client, err := siteapi.FromConfiguration(conf)
	if err != nil {
		log.Fatalf("failed to create backend client: %v", err)
	}
	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app, modules.BuiltInModules(client)...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}
	app.RegisterNavItems(modules.NavLinks...)
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	log.Printf("Listening on: http://%s\n", conf.SocketAddress)
	if err := serverInstance.Start(conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
