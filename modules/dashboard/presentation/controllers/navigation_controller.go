package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fieldware/sitecheck/modules/dashboard/presentation/viewmodels"
	"github.com/fieldware/sitecheck/pkg/application"
	"github.com/fieldware/sitecheck/pkg/composables"
	"github.com/fieldware/sitecheck/pkg/httpapi"
	"github.com/fieldware/sitecheck/pkg/middleware"
)

// NavigationController serves the role-filtered sidebar tree. The shell
// passes its current path so active states are computed server-side.
type NavigationController struct {
	app      application.Application
	basePath string
}

func NewNavigationController(app application.Application) application.Controller {
	return &NavigationController{
		app:      app,
		basePath: "/navigation",
	}
}

func (c *NavigationController) Key() string {
	return c.basePath
}

func (c *NavigationController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireSession())
	router.HandleFunc("", c.Get).Methods(http.MethodGet)
}

func (c *NavigationController) Get(w http.ResponseWriter, r *http.Request) {
	items := composables.UseNavItems(r.Context())
	currentPath := r.URL.Query().Get("path")
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"items": viewmodels.NavItemsToViewModels(items, currentPath),
	})
}
