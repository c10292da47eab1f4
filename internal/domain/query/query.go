// Package query defines the validated nearby-products query.
package query

import (
	"fmt"

	"github.com/artloci/nearby/internal/domain"
	"github.com/artloci/nearby/internal/domain/geo"
)

// Built-in query parameter limits, used when the operator configures nothing.
const (
	DefaultRadiusMeters = 25_000.0
	MaxRadiusMeters     = 100_000.0
	DefaultTargetCount  = 24
	MaxTargetCount      = 100
	DefaultMaxPerGroup  = 2
	MaxMaxPerGroup      = 10
)

// Limits carries the operator-configured defaults and caps that query
// normalization falls back to. Zero fields use the built-in constants.
type Limits struct {
	DefaultRadiusM  float64
	MaxRadiusM      float64
	DefaultCount    int
	MaxCount        int
	DefaultPerGroup int
	MaxPerGroup     int
}

// DefaultLimits returns the built-in limits.
func DefaultLimits() Limits {
	return Limits{
		DefaultRadiusM:  DefaultRadiusMeters,
		MaxRadiusM:      MaxRadiusMeters,
		DefaultCount:    DefaultTargetCount,
		MaxCount:        MaxTargetCount,
		DefaultPerGroup: DefaultMaxPerGroup,
		MaxPerGroup:     MaxMaxPerGroup,
	}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.DefaultRadiusM <= 0 {
		l.DefaultRadiusM = d.DefaultRadiusM
	}
	if l.MaxRadiusM <= 0 {
		l.MaxRadiusM = d.MaxRadiusM
	}
	if l.DefaultCount <= 0 {
		l.DefaultCount = d.DefaultCount
	}
	if l.MaxCount <= 0 {
		l.MaxCount = d.MaxCount
	}
	if l.DefaultPerGroup <= 0 {
		l.DefaultPerGroup = d.DefaultPerGroup
	}
	if l.MaxPerGroup <= 0 {
		l.MaxPerGroup = d.MaxPerGroup
	}
	return l
}

// Query is a validated nearby-products query.
type Query struct {
	lat         float64
	lng         float64
	radiusM     float64
	targetCount int
	maxPerGroup int
}

// New validates and normalizes query parameters against the built-in
// limits. Invalid coordinates are an error; out-of-range sizes are clamped
// rather than rejected.
func New(lat, lng, radiusM float64, targetCount, maxPerGroup int) (Query, error) {
	return NewWithLimits(lat, lng, radiusM, targetCount, maxPerGroup, DefaultLimits())
}

// NewWithLimits is New with operator-configured defaults and caps.
func NewWithLimits(lat, lng, radiusM float64, targetCount, maxPerGroup int, lim Limits) (Query, error) {
	if !geo.ValidateCoordinates(lat, lng) {
		return Query{}, fmt.Errorf("%w: coordinates out of range (%v, %v)",
			domain.ErrInvalidQuery, lat, lng)
	}

	lim = lim.withDefaults()
	if radiusM <= 0 {
		radiusM = lim.DefaultRadiusM
	}
	if radiusM > lim.MaxRadiusM {
		radiusM = lim.MaxRadiusM
	}
	if targetCount <= 0 {
		targetCount = lim.DefaultCount
	}
	if targetCount > lim.MaxCount {
		targetCount = lim.MaxCount
	}
	if maxPerGroup <= 0 {
		maxPerGroup = lim.DefaultPerGroup
	}
	if maxPerGroup > lim.MaxPerGroup {
		maxPerGroup = lim.MaxPerGroup
	}

	return Query{
		lat:         lat,
		lng:         lng,
		radiusM:     radiusM,
		targetCount: targetCount,
		maxPerGroup: maxPerGroup,
	}, nil
}

// Lat returns the query latitude in degrees.
func (q *Query) Lat() float64 { return q.lat }

// Lng returns the query longitude in degrees.
func (q *Query) Lng() float64 { return q.lng }

// RadiusM returns the search radius in meters.
func (q *Query) RadiusM() float64 { return q.radiusM }

// TargetCount returns the maximum number of items to return.
func (q *Query) TargetCount() int { return q.targetCount }

// MaxPerGroup returns the per-location-group retention cap.
func (q *Query) MaxPerGroup() int { return q.maxPerGroup }
