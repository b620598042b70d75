package models

import (
	"fmt"
	"time"
)

// PriceUnit represents the unit a space is priced in
type PriceUnit string

const (
	PriceUnitHour PriceUnit = "hour"
	PriceUnitDay  PriceUnit = "day"
)

// HostSummary is the denormalized host info attached to a space
type HostSummary struct {
	ID     string  `db:"host_id" json:"id"`
	Name   string  `db:"host_name" json:"name"`
	Avatar string  `db:"host_avatar" json:"avatar"`
	Rating float64 `db:"host_rating" json:"rating"`
}

// DateRange represents an availability window for a space
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Space represents a rentable tattoo station
type Space struct {
	ID           string      `db:"id" json:"id"`
	Title        string      `db:"title" json:"title"`
	Description  string      `db:"description" json:"description"`
	Price        float64     `db:"price" json:"price"`
	PriceUnit    PriceUnit   `db:"price_unit" json:"price_unit"`
	City         string      `db:"city" json:"city"`
	Neighborhood string      `db:"neighborhood" json:"neighborhood"`
	Address      *string     `db:"address" json:"address,omitempty"`
	Latitude     *float64    `db:"latitude" json:"latitude,omitempty"`
	Longitude    *float64    `db:"longitude" json:"longitude,omitempty"`
	Images       StringArray `db:"images" json:"images"`
	Capacity     int         `db:"capacity" json:"capacity"`
	Amenities    StringArray `db:"amenities" json:"amenities"`
	Categories   StringArray `db:"categories" json:"categories"`
	Host         HostSummary `json:"host"`
	Rating       float64     `db:"rating" json:"rating"`
	ReviewCount  int         `db:"review_count" json:"review_count"`
	Featured     bool        `db:"featured" json:"featured"`

	// Availability windows. Empty means always available.
	AvailableDates DateRanges `db:"available_dates" json:"available_dates,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SpaceFilter holds the optional predicates applied when listing spaces.
// Absent fields are no-ops; present fields are ANDed together.
type SpaceFilter struct {
	MinPrice  *float64   `json:"min_price,omitempty" form:"min_price"`
	MaxPrice  *float64   `json:"max_price,omitempty" form:"max_price"`
	Location  string     `json:"location,omitempty" form:"location"`
	Search    string     `json:"search,omitempty" form:"search"`
	Category  string     `json:"category,omitempty" form:"category"`
	Amenities []string   `json:"amenities,omitempty" form:"amenities"`
	Date      *time.Time `json:"date,omitempty" form:"date" time_format:"2006-01-02"`
}

// IsEmpty reports whether no predicate is set
func (f SpaceFilter) IsEmpty() bool {
	return f.MinPrice == nil && f.MaxPrice == nil && f.Location == "" &&
		f.Search == "" && f.Category == "" && len(f.Amenities) == 0 && f.Date == nil
}

// CreateSpaceRequest represents a host's request to list a new space
type CreateSpaceRequest struct {
	Title          string      `json:"title" binding:"required"`
	Description    string      `json:"description" binding:"required"`
	Price          float64     `json:"price" binding:"required"`
	PriceUnit      PriceUnit   `json:"price_unit" binding:"required"`
	City           string      `json:"city" binding:"required"`
	Neighborhood   string      `json:"neighborhood" binding:"required"`
	Address        *string     `json:"address"`
	Latitude       *float64    `json:"latitude"`
	Longitude      *float64    `json:"longitude"`
	Images         []string    `json:"images"`
	Capacity       int         `json:"capacity"`
	Amenities      []string    `json:"amenities"`
	Categories     []string    `json:"categories"`
	AvailableDates []DateRange `json:"available_dates"`
}

// Validate validates the create space request
func (r *CreateSpaceRequest) Validate() error {
	if r.Price <= 0 {
		return fmt.Errorf("price must be greater than zero")
	}
	if r.PriceUnit != PriceUnitHour && r.PriceUnit != PriceUnitDay {
		return fmt.Errorf("price_unit must be 'hour' or 'day'")
	}
	if r.Capacity < 0 {
		return fmt.Errorf("capacity cannot be negative")
	}
	for _, dr := range r.AvailableDates {
		if !dr.End.After(dr.Start) {
			return fmt.Errorf("available date range end must be after start")
		}
	}
	return nil
}

// UpdateSpaceRequest represents a host's request to edit a space.
// Nil fields are left unchanged.
type UpdateSpaceRequest struct {
	Title          *string     `json:"title"`
	Description    *string     `json:"description"`
	Price          *float64    `json:"price"`
	PriceUnit      *PriceUnit  `json:"price_unit"`
	City           *string     `json:"city"`
	Neighborhood   *string     `json:"neighborhood"`
	Address        *string     `json:"address"`
	Images         []string    `json:"images"`
	Capacity       *int        `json:"capacity"`
	Amenities      []string    `json:"amenities"`
	Categories     []string    `json:"categories"`
	AvailableDates []DateRange `json:"available_dates"`
}

// Validate validates the update space request
func (r *UpdateSpaceRequest) Validate() error {
	if r.Price != nil && *r.Price <= 0 {
		return fmt.Errorf("price must be greater than zero")
	}
	if r.PriceUnit != nil && *r.PriceUnit != PriceUnitHour && *r.PriceUnit != PriceUnitDay {
		return fmt.Errorf("price_unit must be 'hour' or 'day'")
	}
	for _, dr := range r.AvailableDates {
		if !dr.End.After(dr.Start) {
			return fmt.Errorf("available date range end must be after start")
		}
	}
	return nil
}
