package constants

type ContextKey string

const (
	AppKey      ContextKey = "app"
	LoggerKey   ContextKey = "logger"
	ParamsKey   ContextKey = "params"
	SessionKey  ContextKey = "session"
	NavItemsKey ContextKey = "navItems"
)
