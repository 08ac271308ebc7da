package router

// Config holds router settings loaded from the environment with core/config.
//
//	var cfg router.Config
//	config.MustLoad(&cfg)
//	r := router.New(router.WithConfig(cfg))
type Config struct {
	AppScheme        string `env:"LINKROUTER_APP_SCHEME"`
	Wildcard         string `env:"LINKROUTER_WILDCARD" envDefault:"*"`
	DefaultTaskMode  string `env:"LINKROUTER_DEFAULT_TASK_MODE" envDefault:"top"`
	MetricsNamespace string `env:"LINKROUTER_METRICS_NAMESPACE" envDefault:"linkrouter"`
}
