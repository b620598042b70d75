package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpaceFilterIsEmpty(t *testing.T) {
	price := 50.0
	date := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filter   SpaceFilter
		expected bool
	}{
		{"Zero value", SpaceFilter{}, true},
		{"Min price set", SpaceFilter{MinPrice: &price}, false},
		{"Max price set", SpaceFilter{MaxPrice: &price}, false},
		{"Location set", SpaceFilter{Location: "soho"}, false},
		{"Search set", SpaceFilter{Search: "private"}, false},
		{"Category set", SpaceFilter{Category: "private-room"}, false},
		{"Amenities set", SpaceFilter{Amenities: []string{"wifi"}}, false},
		{"Date set", SpaceFilter{Date: &date}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.IsEmpty())
		})
	}
}
