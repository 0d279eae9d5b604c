package model

import (
	"time"

	"travel-planner/internal/domain"

	"github.com/google/uuid"
)

// Achievement codes unlocked by user actions. Unlocking is idempotent per
// (user, code); a second unlock is a no-op at the repository level.
const (
	AchFirstTrip    = "first_trip"
	AchGlobeTrotter = "globe_trotter"
	AchMoodStreak   = "mood_streak"
	AchScrapbooker  = "scrapbooker"
)

// Badges is the catalog of unlockable achievements.
var Badges = map[string]Badge{
	AchFirstTrip:    {Title: "First Trip", Points: 10},
	AchGlobeTrotter: {Title: "Globe Trotter", Points: 50},
	AchMoodStreak:   {Title: "Mood Streak", Points: 20},
	AchScrapbooker:  {Title: "Scrapbooker", Points: 30},
}

type Badge struct {
	Title  string
	Points int
}

type Achievement struct {
	ID         string
	UserID     string
	Code       string
	Title      string
	Points     int
	UnlockedAt time.Time
}

func NewAchievement(userID, code, title string, points int) (*Achievement, error) {
	if userID == "" || code == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Achievement{
		ID:         uuid.NewString(),
		UserID:     userID,
		Code:       code,
		Title:      title,
		Points:     points,
		UnlockedAt: time.Now(),
	}, nil
}

// NewBadgeUnlock builds an achievement from the catalog. Unknown codes are
// rejected so clients cannot mint arbitrary badges.
func NewBadgeUnlock(userID, code string) (*Achievement, error) {
	badge, ok := Badges[code]
	if !ok {
		return nil, domain.ErrInvalidArgument
	}
	return NewAchievement(userID, code, badge.Title, badge.Points)
}
