// internal/pipeline/aggregate-results/handler_test.go
package aggregateresults

import (
	"context"
	"testing"

	"nashville-eats/internal/common/logger"
	"nashville-eats/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func list(ids ...string) []models.Restaurant {
	out := make([]models.Restaurant, len(ids))
	for i, id := range ids {
		out[i] = models.Restaurant{ID: id, Name: "name-" + id}
	}
	return out
}

func idsOf(list []models.Restaurant) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.ID
	}
	return out
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name          string
		lists         [][]models.Restaurant
		maxResults    int
		expectedIDs   []string
		expectedDupes int
	}{
		{
			name:          "first occurrence wins in query order",
			lists:         [][]models.Restaurant{list("a", "b"), list("b", "c")},
			expectedIDs:   []string{"a", "b", "c"},
			expectedDupes: 1,
		},
		{
			name:          "duplicates within one list",
			lists:         [][]models.Restaurant{list("a", "a", "b")},
			expectedIDs:   []string{"a", "b"},
			expectedDupes: 1,
		},
		{
			name:          "order is not re-sorted",
			lists:         [][]models.Restaurant{list("z", "m"), list("a", "z")},
			expectedIDs:   []string{"z", "m", "a"},
			expectedDupes: 1,
		},
		{
			name:        "empty lists",
			lists:       [][]models.Restaurant{nil, {}},
			expectedIDs: []string{},
		},
		{
			name:          "cap applies after dedup",
			lists:         [][]models.Restaurant{list("a", "b"), list("b", "c", "d")},
			maxResults:    3,
			expectedIDs:   []string{"a", "b", "c"},
			expectedDupes: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(&Config{MaxResults: tt.maxResults}, logger.NewTestLogger(t))

			output, err := handler.Execute(context.Background(), &Input{Lists: tt.lists})

			require.NoError(t, err)
			assert.Equal(t, tt.expectedIDs, idsOf(output.Restaurants))
			assert.Equal(t, tt.expectedDupes, output.DuplicatesRemoved)
		})
	}
}

func TestHandler_Execute_KeepsFirstRecordFields(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	first := models.Restaurant{ID: "b", Name: "From east", Neighborhood: "East Nashville"}
	second := models.Restaurant{ID: "b", Name: "From gulch", Neighborhood: "The Gulch"}

	output, err := handler.Execute(context.Background(), &Input{
		Lists: [][]models.Restaurant{{first}, {second}},
	})

	require.NoError(t, err)
	require.Len(t, output.Restaurants, 1)
	assert.Equal(t, "From east", output.Restaurants[0].Name)
}

func TestHandler_Execute_NilInput(t *testing.T) {
	handler := NewHandler(LoadConfig(), logger.NewNoOpLogger())

	output, err := handler.Execute(context.Background(), nil)

	assert.ErrorIs(t, err, ErrNilInput)
	assert.Nil(t, output)
}
