package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fieldware/sitecheck/pkg/application"
	"github.com/fieldware/sitecheck/pkg/composables"
	"github.com/fieldware/sitecheck/pkg/navigation"
)

// NavItems filters the registered navigation tree by the session role once
// per request and stores the result in the context. Role changes require a
// new request; nothing here is reactive.
func NavItems() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				app, err := application.UseApp(r.Context())
				if err != nil {
					panic(err.Error())
				}
				sess, err := composables.UseSession(r.Context())
				if err != nil {
					next.ServeHTTP(w, r)
					return
				}

				filtered := navigation.Filter(app.NavItems(), sess.Role)
				next.ServeHTTP(w, r.WithContext(composables.WithNavItems(r.Context(), filtered)))
			},
		)
	}
}
