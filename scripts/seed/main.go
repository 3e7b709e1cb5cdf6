// Package main implements a standalone seed script that creates the
// product catalog table and fills it with sample bag products so the
// storefront service has something to filter and compare against.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	category    TEXT NOT NULL,
	material    TEXT NOT NULL,
	price       NUMERIC(10,2) NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);
`

type seedProduct struct {
	id          string
	category    string
	material    string
	price       float64
	title       string
	description string
}

var products = []seedProduct{
	{"tote-canvas-city", "tote", "canvas", 49.99, "City Tote", "A roomy everyday canvas tote with an inner zip pocket."},
	{"tote-leather-weekend", "tote", "leather", 129.50, "Weekend Tote", "Structured full-grain leather carryall for short trips."},
	{"tote-canvas-market", "tote", "canvas", 34.00, "Market Tote", "Lightweight canvas tote that folds flat when empty."},
	{"backpack-leather-commuter", "backpack", "leather", 189.00, "Commuter Backpack", "Leather backpack with a padded 15-inch laptop sleeve."},
	{"backpack-canvas-daypack", "backpack", "canvas", 79.00, "Canvas Daypack", "Water-resistant waxed canvas daypack with side bottle pockets."},
	{"duffel-canvas-gym", "duffel", "canvas", 89.00, "Gym Duffel", "Ventilated duffel with a separate shoe compartment."},
	{"duffel-leather-weekender", "duffel", "leather", 249.00, "Leather Weekender", "Cabin-sized leather duffel with brass hardware."},
	{"crossbody-leather-slim", "crossbody", "leather", 99.00, "Slim Crossbody", "Compact leather crossbody that fits a phone and wallet."},
	{"crossbody-canvas-field", "crossbody", "canvas", 54.00, "Field Bag", "Canvas field bag with an adjustable webbing strap."},
}

func main() {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("POSTGRES_USER", "storefront"),
		getEnv("POSTGRES_PASSWORD", "storefront_secret"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_DB", "storefront"),
		getEnv("POSTGRES_SSLMODE", "disable"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatalf("create products table: %v", err)
	}

	const upsert = `
		INSERT INTO products (id, category, material, price, title, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			category = EXCLUDED.category,
			material = EXCLUDED.material,
			price = EXCLUDED.price,
			title = EXCLUDED.title,
			description = EXCLUDED.description`

	for _, p := range products {
		if _, err := pool.Exec(ctx, upsert,
			p.id, p.category, p.material, p.price, p.title, p.description,
		); err != nil {
			log.Fatalf("seed product %s: %v", p.id, err)
		}
	}

	log.Printf("seeded %d products", len(products))
}
