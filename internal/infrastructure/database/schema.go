package database

import (
	"context"
	"database/sql"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS files (
    id TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    storage_path TEXT NOT NULL,
    size_bytes BIGINT NOT NULL,
    mime_type TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('in_process', 'done', 'failed')),
    bbox_x DOUBLE PRECISION,
    bbox_y DOUBLE PRECISION,
    bbox_z DOUBLE PRECISION,
    volume DOUBLE PRECISION,
    volume_cm3 DOUBLE PRECISION,
    surface_area DOUBLE PRECISION,
    uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    processed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS materials (
    code TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    price NUMERIC(10,4) NOT NULL,
    lead_time_days INTEGER NOT NULL,
    properties TEXT[] NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS quotes (
    id TEXT PRIMARY KEY,
    file_id TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('draft', 'ready', 'ordered', 'expired')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    expires_at TIMESTAMPTZ NOT NULL,
    material_id TEXT,
    material_name TEXT,
    material_price_factor NUMERIC(10,4),
    quantity INTEGER CHECK (quantity >= 1),
    volume_cm3 NUMERIC(14,3),
    unit_price NUMERIC(12,2),
    quantity_discount NUMERIC(12,2),
    total_price NUMERIC(12,2)
);

CREATE TABLE IF NOT EXISTS orders (
    id TEXT PRIMARY KEY,
    quote_id TEXT NOT NULL REFERENCES quotes(id),
    customer_name TEXT NOT NULL,
    customer_email TEXT NOT NULL,
    customer_company TEXT,
    payment_method TEXT NOT NULL CHECK (payment_method IN ('card', 'purchase_order')),
    payment_status TEXT NOT NULL DEFAULT 'pending' CHECK (payment_status IN ('pending', 'paid', 'failed')),
    total_amount NUMERIC(12,2) NOT NULL,
    currency TEXT NOT NULL DEFAULT 'EUR',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    expected_delivery_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quotes_file_id ON quotes(file_id);
CREATE INDEX IF NOT EXISTS idx_orders_quote_id ON orders(quote_id);
`

func InitSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaSQL)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}
