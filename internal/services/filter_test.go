package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tattoospace/station-booking-backend/internal/models"
)

func testSpaces() []models.Space {
	return []models.Space{
		{
			ID:           "1",
			Title:        "Private Station in SoHo Studio",
			Description:  "Fully equipped private station",
			Price:        75,
			PriceUnit:    models.PriceUnitHour,
			City:         "New York",
			Neighborhood: "SoHo",
			Amenities:    models.StringArray{"wifi", "sterilizer", "armrest"},
			Categories:   models.StringArray{"private-room"},
		},
		{
			ID:           "2",
			Title:        "Shared Bench Downtown",
			Description:  "Walk-in friendly shared floor",
			Price:        40,
			PriceUnit:    models.PriceUnitHour,
			City:         "New York",
			Neighborhood: "Financial District",
			Amenities:    models.StringArray{"wifi"},
			Categories:   models.StringArray{"shared-floor"},
		},
		{
			ID:           "3",
			Title:        "Sunset Loft Station",
			Description:  "Bright loft with dedicated sterilization room",
			Price:        120,
			PriceUnit:    models.PriceUnitDay,
			City:         "Los Angeles",
			Neighborhood: "Echo Park",
			Amenities:    models.StringArray{"wifi", "sterilizer", "parking"},
			Categories:   models.StringArray{"private-room", "loft"},
			AvailableDates: models.DateRanges{
				{
					Start: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
					End:   time.Date(2026, 4, 15, 18, 0, 0, 0, time.UTC),
				},
			},
		},
	}
}

func floatPtr(f float64) *float64 { return &f }

func TestApplyFilterEmptyIsIdentity(t *testing.T) {
	spaces := testSpaces()

	result := ApplyFilter(spaces, models.SpaceFilter{})

	require.Len(t, result, len(spaces))
	for i := range spaces {
		assert.Equal(t, spaces[i].ID, result[i].ID)
	}
}

func TestApplyFilterPriceRange(t *testing.T) {
	spaces := testSpaces()

	t.Run("Min price", func(t *testing.T) {
		result := ApplyFilter(spaces, models.SpaceFilter{MinPrice: floatPtr(60)})
		require.Len(t, result, 2)
		assert.Equal(t, "1", result[0].ID)
		assert.Equal(t, "3", result[1].ID)
	})

	t.Run("Max price", func(t *testing.T) {
		result := ApplyFilter(spaces, models.SpaceFilter{MaxPrice: floatPtr(75)})
		require.Len(t, result, 2)
		assert.Equal(t, "1", result[0].ID)
		assert.Equal(t, "2", result[1].ID)
	})

	t.Run("Boundary is inclusive", func(t *testing.T) {
		result := ApplyFilter(spaces, models.SpaceFilter{
			MinPrice: floatPtr(75),
			MaxPrice: floatPtr(75),
		})
		require.Len(t, result, 1)
		assert.Equal(t, "1", result[0].ID)
	})
}

func TestApplyFilterLocation(t *testing.T) {
	spaces := testSpaces()

	t.Run("Case-insensitive neighborhood match", func(t *testing.T) {
		result := ApplyFilter(spaces, models.SpaceFilter{Location: "soho"})
		require.Len(t, result, 1)
		assert.Equal(t, "1", result[0].ID)
	})

	t.Run("Substring of city", func(t *testing.T) {
		result := ApplyFilter(spaces, models.SpaceFilter{Location: "new yo"})
		assert.Len(t, result, 2)
	})

	t.Run("No match", func(t *testing.T) {
		result := ApplyFilter(spaces, models.SpaceFilter{Location: "Berlin"})
		assert.Empty(t, result)
	})
}

func TestApplyFilterSearch(t *testing.T) {
	spaces := testSpaces()

	t.Run("Matches title", func(t *testing.T) {
		result := ApplyFilter(spaces, models.SpaceFilter{Search: "LOFT"})
		require.Len(t, result, 1)
		assert.Equal(t, "3", result[0].ID)
	})

	t.Run("Matches description", func(t *testing.T) {
		result := ApplyFilter(spaces, models.SpaceFilter{Search: "walk-in"})
		require.Len(t, result, 1)
		assert.Equal(t, "2", result[0].ID)
	})
}

func TestApplyFilterCategory(t *testing.T) {
	spaces := testSpaces()

	result := ApplyFilter(spaces, models.SpaceFilter{Category: "private-room"})
	require.Len(t, result, 2)
	assert.Equal(t, "1", result[0].ID)
	assert.Equal(t, "3", result[1].ID)
}

func TestApplyFilterAmenities(t *testing.T) {
	spaces := testSpaces()

	t.Run("All requested amenities required", func(t *testing.T) {
		result := ApplyFilter(spaces, models.SpaceFilter{Amenities: []string{"wifi", "sterilizer"}})
		require.Len(t, result, 2)
		assert.Equal(t, "1", result[0].ID)
		assert.Equal(t, "3", result[1].ID)
	})

	t.Run("Missing one amenity excludes", func(t *testing.T) {
		result := ApplyFilter(spaces, models.SpaceFilter{Amenities: []string{"wifi", "parking"}})
		require.Len(t, result, 1)
		assert.Equal(t, "3", result[0].ID)
	})
}

func TestApplyFilterDate(t *testing.T) {
	spaces := testSpaces()

	t.Run("Date inside a window", func(t *testing.T) {
		date := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
		result := ApplyFilter(spaces, models.SpaceFilter{Date: &date})
		// Spaces without windows are always available
		assert.Len(t, result, 3)
	})

	t.Run("Date outside every window", func(t *testing.T) {
		date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		result := ApplyFilter(spaces, models.SpaceFilter{Date: &date})
		require.Len(t, result, 2)
		assert.Equal(t, "1", result[0].ID)
		assert.Equal(t, "2", result[1].ID)
	})

	t.Run("Window boundary days count", func(t *testing.T) {
		date := time.Date(2026, 4, 15, 23, 0, 0, 0, time.UTC)
		result := ApplyFilter(spaces, models.SpaceFilter{Date: &date})
		assert.Len(t, result, 3)
	})
}

func TestApplyFilterCombined(t *testing.T) {
	spaces := testSpaces()

	filter := models.SpaceFilter{
		MinPrice:  floatPtr(50),
		MaxPrice:  floatPtr(100),
		Location:  "SoHo",
		Amenities: []string{"sterilizer"},
	}

	result := ApplyFilter(spaces, filter)
	require.Len(t, result, 1)
	assert.Equal(t, "1", result[0].ID)
	assert.Equal(t, 75.0, result[0].Price)
}

func TestApplyFilterResultIsSubset(t *testing.T) {
	spaces := testSpaces()
	filter := models.SpaceFilter{MinPrice: floatPtr(50)}

	result := ApplyFilter(spaces, filter)

	ids := map[string]bool{}
	for _, s := range spaces {
		ids[s.ID] = true
	}
	for _, s := range result {
		assert.True(t, ids[s.ID], "result contains space not in input")
		assert.True(t, MatchesFilter(&s, filter))
	}
}

func TestApplyFilterDoesNotMutateInput(t *testing.T) {
	spaces := testSpaces()

	ApplyFilter(spaces, models.SpaceFilter{Location: "SoHo"})

	assert.Equal(t, testSpaces(), spaces)
}

func TestMatchesFilterTighteningShrinks(t *testing.T) {
	spaces := testSpaces()

	loose := models.SpaceFilter{MinPrice: floatPtr(30)}
	tight := models.SpaceFilter{MinPrice: floatPtr(30), Category: "loft"}

	looseResult := ApplyFilter(spaces, loose)
	tightResult := ApplyFilter(spaces, tight)

	assert.LessOrEqual(t, len(tightResult), len(looseResult))
	for _, s := range tightResult {
		assert.True(t, MatchesFilter(&s, loose))
	}
}
