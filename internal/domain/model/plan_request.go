package model

import (
	"strings"
	"time"

	"travel-planner/internal/domain"
)

type TripType string

const (
	TripRound  TripType = "round_trip"
	TripOneWay TripType = "one_way"
)

type TravelClass string

const (
	ClassEconomy  TravelClass = "economy"
	ClassBusiness TravelClass = "business"
	ClassFirst    TravelClass = "first"
)

// PlanRequest describes one itinerary-generation request. It is built once
// from user input and never mutated after submission.
type PlanRequest struct {
	TripType      TripType
	FromCity      string
	ToCity        string
	DepartureDate time.Time
	ReturnDate    *time.Time
	Adults        int
	TravelClass   TravelClass
	Interests     string
	PriceRange    string
}

// Validate checks the request before any network call is made.
// A round trip must carry a return date strictly after departure.
func (r *PlanRequest) Validate() error {
	if strings.TrimSpace(r.FromCity) == "" || strings.TrimSpace(r.ToCity) == "" {
		return domain.ErrValidationFailed
	}
	if r.DepartureDate.IsZero() {
		return domain.ErrValidationFailed
	}
	switch r.TripType {
	case TripRound:
		if r.ReturnDate == nil {
			return domain.ErrValidationFailed
		}
	case TripOneWay:
	default:
		return domain.ErrValidationFailed
	}
	if r.ReturnDate != nil && !r.ReturnDate.After(r.DepartureDate) {
		return domain.ErrValidationFailed
	}
	if r.Adults <= 0 {
		return domain.ErrValidationFailed
	}
	return nil
}
