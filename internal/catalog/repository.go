package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nashville-eats/internal/common/logger"
	"nashville-eats/internal/models"

	"github.com/lib/pq"
)

var ErrEmptyCatalog = errors.New("CATALOG_EMPTY")

const selectActiveQuery = `SELECT id, name, cuisine, neighborhood, price_range, description, address,
	latitude, longitude, features, website, instagram_link, resy_link, opentable_link,
	phone, image_url, logo_url
FROM fallback_restaurants
WHERE active = true
ORDER BY sort_order, id`

const upsertQuery = `INSERT INTO fallback_restaurants (
	id, name, cuisine, neighborhood, price_range, description, address,
	latitude, longitude, features, website, instagram_link, resy_link, opentable_link,
	phone, image_url, logo_url, sort_order, active
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, true)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	cuisine = EXCLUDED.cuisine,
	neighborhood = EXCLUDED.neighborhood,
	price_range = EXCLUDED.price_range,
	description = EXCLUDED.description,
	address = EXCLUDED.address,
	latitude = EXCLUDED.latitude,
	longitude = EXCLUDED.longitude,
	features = EXCLUDED.features,
	website = EXCLUDED.website,
	instagram_link = EXCLUDED.instagram_link,
	resy_link = EXCLUDED.resy_link,
	opentable_link = EXCLUDED.opentable_link,
	phone = EXCLUDED.phone,
	image_url = EXCLUDED.image_url,
	logo_url = EXCLUDED.logo_url,
	sort_order = EXCLUDED.sort_order,
	active = true`

// Repository reads and writes the curated catalog in PostgreSQL.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns every active catalog entry in curated order.
func (r *Repository) ListActive(ctx context.Context) ([]models.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, selectActiveQuery)
	if err != nil {
		return nil, fmt.Errorf("query fallback_restaurants: %w", err)
	}
	defer rows.Close()

	var out []models.Restaurant
	for rows.Next() {
		var (
			rec       models.Restaurant
			price     string
			lat, lng  sql.NullFloat64
			features  []string
			address   sql.NullString
			website   sql.NullString
			instagram sql.NullString
			resy      sql.NullString
			openTable sql.NullString
			phone     sql.NullString
			imageURL  sql.NullString
			logoURL   sql.NullString
		)

		if err := rows.Scan(
			&rec.ID, &rec.Name, &rec.Cuisine, &rec.Neighborhood, &price, &rec.Description, &address,
			&lat, &lng, pq.Array(&features), &website, &instagram, &resy, &openTable,
			&phone, &imageURL, &logoURL,
		); err != nil {
			return nil, fmt.Errorf("scan fallback_restaurants: %w", err)
		}

		rec.PriceRange = models.PriceTier(price)
		rec.Address = address.String
		rec.Website = website.String
		rec.InstagramLink = instagram.String
		rec.ResyLink = resy.String
		rec.OpenTableLink = openTable.String
		rec.Phone = phone.String
		rec.ImageURL = imageURL.String
		rec.LogoURL = logoURL.String
		rec.Features = features
		if lat.Valid && lng.Valid {
			rec.Coordinates = &models.Coordinates{Latitude: lat.Float64, Longitude: lng.Float64}
		}

		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fallback_restaurants: %w", err)
	}

	return out, nil
}

// Upsert writes entries in a single transaction, keeping their order.
func (r *Repository) Upsert(ctx context.Context, entries []models.Restaurant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	for i, e := range entries {
		var lat, lng sql.NullFloat64
		if e.Coordinates != nil {
			lat = sql.NullFloat64{Float64: e.Coordinates.Latitude, Valid: true}
			lng = sql.NullFloat64{Float64: e.Coordinates.Longitude, Valid: true}
		}

		if _, err := tx.ExecContext(ctx, upsertQuery,
			e.ID, e.Name, e.Cuisine, e.Neighborhood, string(e.PriceRange), e.Description, nullString(e.Address),
			lat, lng, pq.Array(e.Features), nullString(e.Website), nullString(e.InstagramLink),
			nullString(e.ResyLink), nullString(e.OpenTableLink), nullString(e.Phone),
			nullString(e.ImageURL), nullString(e.LogoURL), i,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Lister is satisfied by Repository.
type Lister interface {
	ListActive(ctx context.Context) ([]models.Restaurant, error)
}

// Load returns the stored catalog, or the built-in seed when the store is
// nil, unreachable or empty. The second return value names the source.
func Load(ctx context.Context, store Lister, log logger.Logger) ([]models.Restaurant, string) {
	if store == nil {
		return Seed(), "builtin"
	}

	entries, err := store.ListActive(ctx)
	if err == nil && len(entries) == 0 {
		err = ErrEmptyCatalog
	}
	if err != nil {
		log.Warn("catalog store unavailable, using built-in catalog", map[string]interface{}{
			"error": err.Error(),
		})
		return Seed(), "builtin"
	}

	valid := make([]models.Restaurant, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" || e.Name == "" {
			continue
		}
		if !e.PriceRange.Valid() {
			log.Warn("skipping catalog entry with unknown price tier", map[string]interface{}{
				"id":         e.ID,
				"priceRange": string(e.PriceRange),
			})
			continue
		}
		valid = append(valid, e)
	}
	if len(valid) == 0 {
		log.Warn("catalog store has no usable entries, using built-in catalog", nil)
		return Seed(), "builtin"
	}

	log.Info("catalog loaded", map[string]interface{}{
		"entries": len(valid),
		"source":  "postgres",
	})
	return valid, "postgres"
}
