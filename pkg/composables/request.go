package composables

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/fieldware/sitecheck/pkg/constants"
	"github.com/fieldware/sitecheck/pkg/session"
	"github.com/fieldware/sitecheck/pkg/types"
)

var (
	ErrNoLogger  = errors.New("logger not found")
	ErrNoSession = errors.New("session not found")
)

type Params struct {
	IP        string
	UserAgent string
	Request   *http.Request
	Writer    http.ResponseWriter
}

// UseParams returns the request parameters from the context.
// If the parameters are not found, the second return value will be false.
func UseParams(ctx context.Context) (*Params, bool) {
	params, ok := ctx.Value(constants.ParamsKey).(*Params)
	return params, ok
}

// WithParams returns a new context with the request parameters.
func WithParams(ctx context.Context, params *Params) context.Context {
	return context.WithValue(ctx, constants.ParamsKey, params)
}

// UseLogger returns the logger from the context.
// If the logger is not found, the function will panic.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		panic(ErrNoLogger)
	}
	return logger.(*logrus.Entry)
}

// WithLogger returns a new context with the per-request logger entry.
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// UseSession returns the dashboard session from the context.
func UseSession(ctx context.Context) (session.Session, error) {
	sess, ok := ctx.Value(constants.SessionKey).(session.Session)
	if !ok {
		return session.Session{}, ErrNoSession
	}
	return sess, nil
}

// WithSession returns a new context carrying the dashboard session.
func WithSession(ctx context.Context, sess session.Session) context.Context {
	return context.WithValue(ctx, constants.SessionKey, sess)
}

// UseNavItems returns the role-filtered navigation tree computed for this
// request. Missing value means the nav middleware did not run; callers get
// an empty tree rather than a panic.
func UseNavItems(ctx context.Context) []types.NavigationItem {
	items, ok := ctx.Value(constants.NavItemsKey).([]types.NavigationItem)
	if !ok {
		return []types.NavigationItem{}
	}
	return items
}

// WithNavItems returns a new context with the filtered navigation tree.
func WithNavItems(ctx context.Context, items []types.NavigationItem) context.Context {
	return context.WithValue(ctx, constants.NavItemsKey, items)
}
