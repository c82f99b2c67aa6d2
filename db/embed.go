// Package db provides embedded database schema and catalog seed data.
package db

import _ "embed"

// Schema contains the DDL statements for the promo code table.
//
//go:embed migrations/001_schema.sql
var Schema string

// ProductSeed contains the static product catalog served by the store.
//
//go:embed seed/products.json
var ProductSeed []byte
