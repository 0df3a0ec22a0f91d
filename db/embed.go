// Package db provides embedded database schema files, one per service.
package db

import _ "embed"

// ProductSchema contains the DDL statements for the product service tables.
//
//go:embed migrations/product_schema.sql
var ProductSchema string

// OrderSchema contains the DDL statements for the order service tables.
//
//go:embed migrations/order_schema.sql
var OrderSchema string
