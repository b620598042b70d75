package services

import (
	"strings"
	"time"

	"github.com/tattoospace/station-booking-backend/internal/models"
)

// ApplyFilter returns the subsequence of spaces satisfying every
// predicate present on the filter. Absent fields are no-ops; present
// fields are ANDed. The function is pure: it never mutates its inputs
// and the result preserves the input order.
func ApplyFilter(spaces []models.Space, filter models.SpaceFilter) []models.Space {
	result := []models.Space{}
	for _, space := range spaces {
		if MatchesFilter(&space, filter) {
			result = append(result, space)
		}
	}
	return result
}

// MatchesFilter reports whether a single space satisfies the filter
func MatchesFilter(space *models.Space, filter models.SpaceFilter) bool {
	if filter.MinPrice != nil && space.Price < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && space.Price > *filter.MaxPrice {
		return false
	}

	// Location matches city or neighborhood, case-insensitive
	if filter.Location != "" {
		location := strings.ToLower(filter.Location)
		if !strings.Contains(strings.ToLower(space.City), location) &&
			!strings.Contains(strings.ToLower(space.Neighborhood), location) {
			return false
		}
	}

	// Search matches title, description, city or neighborhood
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(space.Title), search) &&
			!strings.Contains(strings.ToLower(space.Description), search) &&
			!strings.Contains(strings.ToLower(space.City), search) &&
			!strings.Contains(strings.ToLower(space.Neighborhood), search) {
			return false
		}
	}

	if filter.Category != "" && !containsString(space.Categories, filter.Category) {
		return false
	}

	// Every requested amenity must be present
	for _, amenity := range filter.Amenities {
		if !containsString(space.Amenities, amenity) {
			return false
		}
	}

	// A space with no availability windows is treated as always
	// available
	if filter.Date != nil && len(space.AvailableDates) > 0 {
		if !availableOn(space.AvailableDates, *filter.Date) {
			return false
		}
	}

	return true
}

// availableOn reports whether any availability window's calendar-date
// interval contains the given date
func availableOn(ranges []models.DateRange, date time.Time) bool {
	day := toCalendarDate(date)
	for _, dr := range ranges {
		start := toCalendarDate(dr.Start)
		end := toCalendarDate(dr.End)
		if !day.Before(start) && !day.After(end) {
			return true
		}
	}
	return false
}

// toCalendarDate truncates a timestamp to its UTC calendar date
func toCalendarDate(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
