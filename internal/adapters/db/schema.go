package db

import "troffee-auction-engine/internal/config"

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		seller_id UUID NOT NULL,
		category_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'available',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS auctions (
		id UUID PRIMARY KEY,
		product_id UUID NOT NULL,
		seller_id UUID NOT NULL,
		category_id TEXT NOT NULL DEFAULT '',
		starting_price NUMERIC(18,2) NOT NULL,
		reserve_price NUMERIC(18,2),
		buy_now_price NUMERIC(18,2),
		current_bid NUMERIC(18,2),
		highest_bidder_id UUID,
		bid_count INTEGER NOT NULL DEFAULT 0,
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL,
		integrity_hold BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS auctions_one_active_per_product ON auctions (product_id) WHERE status = 'active'`,
	`CREATE INDEX IF NOT EXISTS auctions_active_end_time ON auctions (end_time) WHERE status = 'active'`,
	`CREATE TABLE IF NOT EXISTS bids (
		id UUID PRIMARY KEY,
		auction_id UUID NOT NULL REFERENCES auctions (id),
		bidder_id UUID NOT NULL,
		amount NUMERIC(18,2) NOT NULL,
		sequence INTEGER NOT NULL,
		placed_at TIMESTAMPTZ NOT NULL,
		UNIQUE (auction_id, sequence)
	)`,
}

// SQLite keeps money as TEXT so amounts round-trip exactly and stores
// timestamps as UTC text, which sorts chronologically.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		seller_id TEXT NOT NULL,
		category_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'available',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS auctions (
		id TEXT PRIMARY KEY,
		product_id TEXT NOT NULL,
		seller_id TEXT NOT NULL,
		category_id TEXT NOT NULL DEFAULT '',
		starting_price TEXT NOT NULL,
		reserve_price TEXT,
		buy_now_price TEXT,
		current_bid TEXT,
		highest_bidder_id TEXT,
		bid_count INTEGER NOT NULL DEFAULT 0,
		start_time DATETIME NOT NULL,
		end_time DATETIME NOT NULL,
		status TEXT NOT NULL,
		integrity_hold BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS auctions_one_active_per_product ON auctions (product_id) WHERE status = 'active'`,
	`CREATE INDEX IF NOT EXISTS auctions_active_end_time ON auctions (end_time) WHERE status = 'active'`,
	`CREATE TABLE IF NOT EXISTS bids (
		id TEXT PRIMARY KEY,
		auction_id TEXT NOT NULL REFERENCES auctions (id),
		bidder_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		sequence INTEGER NOT NULL,
		placed_at DATETIME NOT NULL,
		UNIQUE (auction_id, sequence)
	)`,
}

func schemaFor(driver string) []string {
	if driver == config.DriverSQLite {
		return sqliteSchema
	}
	return postgresSchema
}
