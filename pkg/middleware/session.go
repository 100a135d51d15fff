package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fieldware/sitecheck/pkg/composables"
	"github.com/fieldware/sitecheck/pkg/configuration"
	"github.com/fieldware/sitecheck/pkg/httpapi"
	"github.com/fieldware/sitecheck/pkg/session"
)

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// WithSession assembles the dashboard session from the cookies the shell
// persists at login/site selection. An unparseable role leaves Role empty;
// downstream role checks then deny by default.
func WithSession() mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				sess := session.Session{
					Token:      cookieValue(r, conf.TokenCookieKey),
					WorkSiteID: cookieValue(r, conf.WorkSiteCookieKey),
				}
				if role, err := session.ParseRole(cookieValue(r, conf.RoleCookieKey)); err == nil {
					sess.Role = role
				}
				ctx := composables.WithSession(r.Context(), sess)
				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}

// RequireSession rejects requests without a usable token/work-site pair.
func RequireSession() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				sess, err := composables.UseSession(r.Context())
				if err != nil || !sess.Authenticated() {
					_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing access token or work site", nil)
					return
				}
				next.ServeHTTP(w, r)
			},
		)
	}
}
