package model

import "time"

// Activity is one scheduled item within a day plan.
type Activity struct {
	Time        string
	Name        string
	Description string
	Category    string
	Location    string
	Price       string
}

// DayPlan holds the ordered activities for one calendar day.
type DayPlan struct {
	Date       string
	Year       int
	Activities []Activity
}

// Itinerary is the final artifact of a completed plan job. Once fetched it
// is treated as immutable; user edits happen on the Trip, never here.
type Itinerary struct {
	UUID            string
	Title           string
	Personalization string
	TotalDays       int
	Days            []DayPlan
	FetchedAt       time.Time
}
