package config

import "time"

const (
	DefaultPort            = 8080
	DefaultEnv             = "development"
	DefaultUpstreamURL     = "http://localhost:5000"
	DefaultNotifyTTL       = 4 * time.Second
	DefaultPruneInterval   = time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = DefaultPort
	cfg.Server.Env = DefaultEnv
	cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	cfg.Upstream.URL = DefaultUpstreamURL
	cfg.Upstream.LoadOnStart = true
	cfg.Notify.TTL = DefaultNotifyTTL
	cfg.Notify.PruneInterval = DefaultPruneInterval
	return cfg
}

// fillDefaults restores zero values a file may have set to nothing.
func (c *Config) fillDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Env == "" {
		c.Server.Env = DefaultEnv
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Notify.TTL <= 0 {
		c.Notify.TTL = DefaultNotifyTTL
	}
	if c.Notify.PruneInterval <= 0 {
		c.Notify.PruneInterval = DefaultPruneInterval
	}
}
