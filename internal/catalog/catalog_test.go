package catalog

import (
	"context"
	"errors"
	"testing"

	"nashville-eats/internal/common/logger"
	"nashville-eats/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Seed
// ==========================

func TestSeed_ReturnsIndependentCopies(t *testing.T) {
	a := Seed()
	b := Seed()
	require.NotEmpty(t, a)

	a[0].Name = "changed"
	a[0].Features[0] = "changed"
	if a[0].Coordinates != nil {
		a[0].Coordinates.Latitude = 0
	}

	assert.NotEqual(t, "changed", b[0].Name)
	assert.NotEqual(t, "changed", b[0].Features[0])
	assert.NotEqual(t, 0.0, b[0].Coordinates.Latitude)
}

func TestSeed_Integrity(t *testing.T) {
	entries := Seed()
	assert.GreaterOrEqual(t, len(entries), 20)

	ids := map[string]bool{}
	withoutCoords := 0
	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
		assert.NotEmpty(t, e.Name)
		assert.True(t, e.PriceRange.Valid(), "entry %s has invalid price %q", e.ID, e.PriceRange)
		assert.False(t, ids[e.ID], "duplicate id %s", e.ID)
		ids[e.ID] = true

		if e.Coordinates == nil {
			withoutCoords++
			continue
		}
		assert.True(t, e.Coordinates.Valid())
		assert.Nil(t, e.DistanceFromUser)
	}
	assert.GreaterOrEqual(t, withoutCoords, 1, "catalog should carry multi-location chains without coordinates")
}

// ==========================
// Neighborhood matching
// ==========================

func TestMatchesNeighborhood(t *testing.T) {
	tests := []struct {
		label     string
		requested string
		want      bool
	}{
		{"Belle Meade", "belle-meade", true},
		{"East Nashville", "east", true},
		{"East Nashville", "EAST-NASHVILLE", true},
		{"The Gulch", "the-gulch", true},
		{"North Gulch", "the-gulch", true},
		{"12 South", "12south", true},
		{"SoBro / Downtown", "sobro", true},
		{"Rutledge Hill / Downtown", "downtown", true},
		{"Germantown", "east-nashville", false},
		{"Midtown", "belle-meade", false},
		{"", "downtown", false},
		{"Downtown", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.label+"/"+tt.requested, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesNeighborhood(tt.label, tt.requested))
		})
	}
}

func TestMatchesAnyNeighborhood(t *testing.T) {
	assert.True(t, MatchesAnyNeighborhood("Germantown", []string{"east", "germantown"}))
	assert.False(t, MatchesAnyNeighborhood("Germantown", nil))
}

func TestNormalizeNeighborhood(t *testing.T) {
	assert.Equal(t, "belle meade", NormalizeNeighborhood("  Belle-Meade "))
	assert.Equal(t, "sobro downtown", NormalizeNeighborhood("SoBro / Downtown"))
}

// ==========================
// Repository
// ==========================

var catalogColumns = []string{
	"id", "name", "cuisine", "neighborhood", "price_range", "description", "address",
	"latitude", "longitude", "features", "website", "instagram_link", "resy_link", "opentable_link",
	"phone", "image_url", "logo_url",
}

func TestRepository_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(catalogColumns).
		AddRow("martins", "Martin's Bar-B-Que Joint", "BBQ", "Belle Meade", "$$", "Whole hog", nil,
			36.1131, -86.8467, "{\"Family friendly\",Patio}", "https://martinsbbqjoint.com", nil, nil, nil,
			nil, nil, nil).
		AddRow("jenis", "Jeni's", "Dessert", "Multiple locations", "$", "Ice cream", nil,
			nil, nil, "{}", nil, nil, nil, nil, "615-555-0100", nil, nil)

	mock.ExpectQuery("SELECT id, name, cuisine, neighborhood").WillReturnRows(rows)

	repo := NewRepository(db)
	entries, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, models.PriceModerate, entries[0].PriceRange)
	require.NotNil(t, entries[0].Coordinates)
	assert.Equal(t, 36.1131, entries[0].Coordinates.Latitude)
	assert.Equal(t, []string{"Family friendly", "Patio"}, entries[0].Features)
	assert.Equal(t, "https://martinsbbqjoint.com", entries[0].Website)

	assert.Nil(t, entries[1].Coordinates)
	assert.Equal(t, "615-555-0100", entries[1].Phone)
	assert.Empty(t, entries[1].Website)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListActive_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name").WillReturnError(errors.New("connection refused"))

	_, err = NewRepository(db).ListActive(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	entries := Seed()[:2]

	mock.ExpectBegin()
	for range entries {
		mock.ExpectExec("INSERT INTO fallback_restaurants").WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, NewRepository(db).Upsert(context.Background(), entries))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Upsert_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO fallback_restaurants").WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err = NewRepository(db).Upsert(context.Background(), Seed()[:1])
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Load
// ==========================

type stubLister struct {
	entries []models.Restaurant
	err     error
}

func (s stubLister) ListActive(context.Context) ([]models.Restaurant, error) {
	return s.entries, s.err
}

func TestLoad(t *testing.T) {
	log := logger.NewTestLogger(t)
	stored := []models.Restaurant{
		{ID: "a", Name: "A", PriceRange: models.PriceBudget},
		{ID: "", Name: "no id"},
		{ID: "b", Name: "B", PriceRange: models.PriceTier("moderate")},
	}

	tests := []struct {
		name       string
		store      Lister
		wantSource string
		wantLen    int
	}{
		{"nil store", nil, "builtin", len(Seed())},
		{"store error", stubLister{err: errors.New("down")}, "builtin", len(Seed())},
		{"empty store", stubLister{}, "builtin", len(Seed())},
		{"invalid rows only", stubLister{entries: []models.Restaurant{{Name: "no id"}}}, "builtin", len(Seed())},
		{"stored entries", stubLister{entries: stored}, "postgres", 1},
		{"unknown price tiers only", stubLister{entries: []models.Restaurant{{ID: "c", Name: "C", PriceRange: "cheap"}}}, "builtin", len(Seed())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, source := Load(context.Background(), tt.store, log)
			assert.Equal(t, tt.wantSource, source)
			assert.Len(t, entries, tt.wantLen)
			for _, e := range entries {
				assert.True(t, e.PriceRange.Valid(), e.ID)
			}
		})
	}
}
