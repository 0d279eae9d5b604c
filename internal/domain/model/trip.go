package model

import (
	"strings"
	"time"

	"travel-planner/internal/domain"

	"github.com/google/uuid"
)

type TripStatus string

const (
	TripDraft   TripStatus = "draft"
	TripPlanned TripStatus = "planned"
	TripActive  TripStatus = "active"
	TripDone    TripStatus = "done"
)

// Trip is a user-owned travel record. ItineraryUUID links it to the
// generated itinerary when the trip came out of a plan job; manually
// created trips leave it empty.
type Trip struct {
	ID            string
	UserID        string
	Title         string
	Destination   string
	StartDate     time.Time
	EndDate       time.Time
	Status        TripStatus
	ItineraryUUID string
	Notes         string
	Deleted       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewTrip(userID, title, destination string, start, end time.Time) (*Trip, error) {
	if userID == "" || strings.TrimSpace(title) == "" || strings.TrimSpace(destination) == "" {
		return nil, domain.ErrInvalidArgument
	}
	if !end.IsZero() && end.Before(start) {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Trip{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Destination: destination,
		StartDate:   start,
		EndDate:     end,
		Status:      TripDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (t *Trip) OwnedBy(userID string) bool { return t.UserID == userID }
