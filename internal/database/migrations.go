package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		phone VARCHAR(50),
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'CUSTOMER',
		status VARCHAR(20) NOT NULL DEFAULT 'ACTIVE',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	// Counter checks back up the row-locked allocation paths; they should
	// never fire unless a mutation bypasses the services.
	`CREATE TABLE IF NOT EXISTS vaults (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		location VARCHAR(255) NOT NULL,
		total_lockers INTEGER NOT NULL DEFAULT 0 CHECK (total_lockers >= 0),
		available_lockers INTEGER NOT NULL DEFAULT 0
			CHECK (available_lockers >= 0 AND available_lockers <= total_lockers),
		status VARCHAR(20) NOT NULL DEFAULT 'OPERATIONAL',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS lockers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		vault_id UUID NOT NULL REFERENCES vaults(id) ON DELETE CASCADE,
		locker_number VARCHAR(50) NOT NULL,
		size VARCHAR(20) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'AVAILABLE',
		monthly_rent DOUBLE PRECISION NOT NULL CHECK (monthly_rent > 0),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(vault_id, locker_number)
	)`,

	`CREATE TABLE IF NOT EXISTS locker_allocations (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		locker_id UUID NOT NULL REFERENCES lockers(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		allocated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		expiry_date TIMESTAMP WITH TIME ZONE NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'ACTIVE'
	)`,

	`CREATE TABLE IF NOT EXISTS assets (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		allocation_id UUID NOT NULL REFERENCES locker_allocations(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		estimated_value DOUBLE PRECISION NOT NULL CHECK (estimated_value >= 0),
		type VARCHAR(20) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS vault_transactions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		allocation_id UUID NOT NULL REFERENCES locker_allocations(id) ON DELETE CASCADE,
		type VARCHAR(20) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		allocation_id UUID NOT NULL REFERENCES locker_allocations(id) ON DELETE CASCADE,
		amount DOUBLE PRECISION NOT NULL CHECK (amount > 0),
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_lockers_vault_id ON lockers(vault_id)`,
	`CREATE INDEX IF NOT EXISTS idx_lockers_status ON lockers(status)`,
	`CREATE INDEX IF NOT EXISTS idx_allocations_locker_id ON locker_allocations(locker_id)`,
	`CREATE INDEX IF NOT EXISTS idx_allocations_user_id ON locker_allocations(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assets_allocation_id ON assets(allocation_id)`,
	`CREATE INDEX IF NOT EXISTS idx_vault_transactions_allocation_id ON vault_transactions(allocation_id)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_allocation_id ON payments(allocation_id)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
