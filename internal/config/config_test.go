package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, DriverPostgres, cfg.Database.Driver)
	require.Equal(t, "1.00", cfg.Bidding.MinIncrement.StringFixed(2))
	require.Equal(t, 2*time.Second, cfg.Bidding.LockTimeout)
	require.Len(t, cfg.Bidding.Durations, 5)
	require.Equal(t, 24*time.Hour, cfg.Bidding.Durations[0])
	require.Equal(t, time.Second, cfg.Scheduler.Interval)
	require.Equal(t, ExpiryIndexRedis, cfg.Scheduler.ExpiryIndex)
	require.Equal(t, 30*time.Second, cfg.Scheduler.SweepInterval)
	require.Equal(t, 10, cfg.Redis.PoolSize)
	require.Equal(t, 3*time.Second, cfg.Redis.Timeout)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv(BidMinIncrement, "50")
	t.Setenv(AuctionDurations, "1h, 2h")
	t.Setenv(DBDriver, DriverSQLite)
	t.Setenv(DBURL, "file:auctions.db")
	t.Setenv(SchedulerInterval, "250ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "50.00", cfg.Bidding.MinIncrement.StringFixed(2))
	require.Equal(t, []time.Duration{time.Hour, 2 * time.Hour}, cfg.Bidding.Durations)
	require.Equal(t, DriverSQLite, cfg.Database.Driver)
	require.Equal(t, 250*time.Millisecond, cfg.Scheduler.Interval)
}

func TestLoadConfig_InvalidIncrement(t *testing.T) {
	t.Setenv(BidMinIncrement, "ten")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestParseDurations(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		expected  []time.Duration
		expectErr bool
	}{
		{name: "single", raw: "24h", expected: []time.Duration{24 * time.Hour}},
		{name: "list_with_spaces", raw: "24h, 72h ,", expected: []time.Duration{24 * time.Hour, 72 * time.Hour}},
		{name: "empty", raw: "", expectErr: true},
		{name: "garbage", raw: "3 days", expectErr: true},
		{name: "negative", raw: "-1h", expectErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			durations, err := ParseDurations(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, durations)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadConfig()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "missing_port", mutate: func(c *Config) { c.Server.Port = "" }},
		{name: "unknown_driver", mutate: func(c *Config) { c.Database.Driver = "oracle" }},
		{name: "missing_db_url", mutate: func(c *Config) { c.Database.URL = "" }},
		{name: "missing_redis", mutate: func(c *Config) { c.Redis.Addr = "" }},
		{name: "zero_increment", mutate: func(c *Config) { c.Bidding.MinIncrement = c.Bidding.MinIncrement.Sub(c.Bidding.MinIncrement) }},
		{name: "sub_cent_increment", mutate: func(c *Config) { c.Bidding.MinIncrement = decimal.RequireFromString("0.005") }},
		{name: "zero_redis_pool", mutate: func(c *Config) { c.Redis.PoolSize = 0 }},
		{name: "zero_redis_timeout", mutate: func(c *Config) { c.Redis.Timeout = 0 }},
		{name: "zero_sweep_interval", mutate: func(c *Config) { c.Scheduler.SweepInterval = 0 }},
		{name: "zero_lock_timeout", mutate: func(c *Config) { c.Bidding.LockTimeout = 0 }},
		{name: "zero_interval", mutate: func(c *Config) { c.Scheduler.Interval = 0 }},
		{name: "unknown_index", mutate: func(c *Config) { c.Scheduler.ExpiryIndex = "cron" }},
		{name: "zero_notify_workers", mutate: func(c *Config) { c.Notify.Workers = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}

	t.Run("store_index_needs_no_sweep", func(t *testing.T) {
		cfg := valid()
		cfg.Scheduler.ExpiryIndex = ExpiryIndexStore
		cfg.Scheduler.SweepInterval = 0
		require.NoError(t, cfg.Validate())
	})

	t.Run("cent_increment", func(t *testing.T) {
		cfg := valid()
		cfg.Bidding.MinIncrement = decimal.RequireFromString("0.05")
		require.NoError(t, cfg.Validate())
	})

	t.Run("memory_driver_needs_no_url", func(t *testing.T) {
		cfg := valid()
		cfg.Database.Driver = DriverMemory
		cfg.Database.URL = ""
		require.NoError(t, cfg.Validate())
	})
}
