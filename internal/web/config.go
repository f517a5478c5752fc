package web

// Config represents the read API server configuration.
type Config struct {
	Host string
	Port int

	// Info is reported by the root endpoint.
	Info ServiceInfo

	// CacheLimit caps raw-cache rows returned by the full dump.
	CacheLimit int
}

// ServiceInfo describes the upstream source this instance tracks.
type ServiceInfo struct {
	TargetState string `json:"target_state"`
	FinYear     string `json:"financial_year"`
	DataSource  string `json:"data_source"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Host:       "0.0.0.0",
		Port:       8000,
		CacheLimit: 100,
	}
}
