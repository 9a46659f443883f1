package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Resolve(t *testing.T) {
	reg := Default()

	tests := []struct {
		name    string
		version string
		key     string
		want    FieldKind
		found   bool
	}{
		{"classic question id", VersionClassic, "neighborhood", FieldNeighborhoods, true},
		{"flow question id", VersionFlow, "areas", FieldNeighborhoods, true},
		{"flow id without version", "", "foodTypes", FieldCuisines, true},
		{"alias on classic", VersionClassic, "priceRange", FieldPrice, true},
		{"alias case insensitive", VersionFlow, "DietaryPreferences", FieldDietary, true},
		{"radius alias", VersionClassic, "radius", FieldDistance, true},
		{"unknown key", VersionClassic, "favoriteColor", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := reg.Resolve(tt.version, tt.key)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSchema_Classic(t *testing.T) {
	data := []byte(`{
		"version": "classic-v2",
		"questions": [
			{"id": "neighborhood", "question": "Where?", "type": "single",
			 "options": [{"value": "germantown", "label": "Germantown", "icon": "beer"}]},
			{"id": "spice", "question": "Spice?", "type": "slider", "field": "cuisines"}
		]
	}`)

	schema, err := ParseSchema(data)
	require.NoError(t, err)

	assert.Equal(t, "classic-v2", schema.Version)
	require.Len(t, schema.Questions, 2)
	assert.Equal(t, FieldNeighborhoods, schema.Questions[0].Field)
	assert.Equal(t, SelectSingle, schema.Questions[0].Mode)
	assert.Equal(t, "beer", schema.Questions[0].Options[0].Icon)
	assert.Equal(t, FieldCuisines, schema.Questions[1].Field)
	assert.Equal(t, SelectNumeric, schema.Questions[1].Mode)
}

func TestParseSchema_Flow(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"key": "areas", "title": "Areas", "multiSelect": true, "mapsTo": "neighborhoods",
			 "choices": [{"id": "east-nashville", "text": "East Nashville", "iconComponent": "UtensilsCrossed"}]},
			{"key": "radius", "title": "Distance", "numeric": true}
		]
	}`)

	schema, err := ParseSchema(data)
	require.NoError(t, err)

	assert.Equal(t, VersionFlow, schema.Version)
	require.Len(t, schema.Questions, 2)
	assert.Equal(t, SelectMultiple, schema.Questions[0].Mode)
	assert.Equal(t, QuizOption{Value: "east-nashville", Label: "East Nashville", Icon: "utensils-crossed"}, schema.Questions[0].Options[0])
	assert.Equal(t, FieldDistance, schema.Questions[1].Field)
	assert.Equal(t, SelectNumeric, schema.Questions[1].Mode)
}

func TestParseSchema_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{`},
		{"no questions", `{"version": "x"}`},
		{"unknown mapping", `{"steps": [{"key": "q1", "mapsTo": "shoeSize"}]}`},
		{"uninferable id", `{"questions": [{"id": "q1"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchema([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadSchema_RegistersFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": "pilot", "questions": [{"id": "vibe", "type": "multiple"}]}`), 0o600))

	schema, err := LoadSchema(path)
	require.NoError(t, err)

	reg := Default()
	reg.Register(schema)

	f, ok := reg.Resolve("pilot", "vibe")
	assert.True(t, ok)
	assert.Equal(t, FieldAtmosphere, f)
	assert.ElementsMatch(t, []string{VersionClassic, VersionFlow, "pilot"}, reg.Versions())

	_, err = LoadSchema(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestIconKey(t *testing.T) {
	assert.Equal(t, "utensils-crossed", iconKey("UtensilsCrossed"))
	assert.Equal(t, "map", iconKey("Map"))
	assert.Equal(t, "", iconKey(""))
}
