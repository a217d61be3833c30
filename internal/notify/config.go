package notify

import "time"

// Config is the push delivery configuration read from the environment.
type Config struct {
	URL           string        `env:"PUSH_URL" envDefault:"https://api.parse.com/1/push"`
	ApplicationID string        `env:"PARSE_APPLICATION_ID"`
	RESTAPIKey    string        `env:"PARSE_REST_API_KEY"`
	Action        string        `env:"PUSH_ACTION" envDefault:"com.empsoft.opine.GENERAL"`
	Workers       int           `env:"PUSH_WORKERS" envDefault:"4"`
	QueueSize     int           `env:"PUSH_QUEUE_SIZE" envDefault:"256"`
	Timeout       time.Duration `env:"PUSH_TIMEOUT" envDefault:"10s"`

	// Consecutive failures before deliveries are short-circuited, and how
	// long to wait before probing again.
	BreakerFailures int           `env:"PUSH_BREAKER_FAILURES" envDefault:"5"`
	BreakerRecovery time.Duration `env:"PUSH_BREAKER_RECOVERY" envDefault:"30s"`
}
