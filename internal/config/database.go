package config

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver       string
	URL          string
	MaxOpenConns int
}

// GetConnectionString returns the driver-specific connection string
func (c *DatabaseConfig) GetConnectionString() string {
	return c.URL
}
