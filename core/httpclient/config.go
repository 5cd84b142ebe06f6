package httpclient

// Config holds configuration for outbound HTTP requests to the catalog site.
type Config struct {
	// TimeoutSeconds bounds a whole request, including reading the body.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// InsecureSkipVerify disables TLS certificate verification.
	// The official site has served an incomplete chain in the past.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" default:"false"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"cover-sync/1.0"`
	// Retries is the number of extra attempts for network errors and 5xx responses.
	Retries int `mapstructure:"retries" default:"2"`
}
