package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/fieldware/sitecheck/pkg/application"
	"github.com/fieldware/sitecheck/pkg/configuration"
	"github.com/fieldware/sitecheck/pkg/constants"
	"github.com/fieldware/sitecheck/pkg/httpapi"
	"github.com/fieldware/sitecheck/pkg/middleware"
	"github.com/fieldware/sitecheck/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   options.Configuration.Origins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type", options.Configuration.RequestIDHeader},
		AllowCredentials: true,
	})

	app.RegisterMiddleware(
		middleware.WithLogger(options.Logger),
		middleware.Provide(constants.AppKey, app),
		mux.MiddlewareFunc(corsHandler.Handler),
		middleware.RequestParams(),
		middleware.WithSession(),
		middleware.NavItems(),
	)

	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "no such route", nil)
	})
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})

	return server.NewHTTPServer(app, notFound, methodNotAllowed), nil
}
