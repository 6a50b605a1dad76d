package http_server

type Config struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port" validate:"required,min=1,max=65535"`
	// MetricsAuthToken enables /metrics when set.
	MetricsAuthToken string `yaml:"metrics_auth_token"`
}
