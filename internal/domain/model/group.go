package model

import (
	"strings"
	"time"

	"travel-planner/internal/domain"

	"github.com/google/uuid"
)

type GroupRole string

const (
	RoleOwner  GroupRole = "owner"
	RoleMember GroupRole = "member"
)

type GroupMember struct {
	GroupID  string
	UserID   string
	Role     GroupRole
	JoinedAt time.Time
}

// TravelGroup is a set of users planning together. The owner is always a
// member; removing the owner is rejected at the use-case level.
type TravelGroup struct {
	ID        string
	Name      string
	OwnerID   string
	Members   []GroupMember
	CreatedAt time.Time
}

func NewTravelGroup(name, ownerID string) (*TravelGroup, error) {
	if strings.TrimSpace(name) == "" || ownerID == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	g := &TravelGroup{
		ID:        uuid.NewString(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: now,
	}
	g.Members = []GroupMember{{GroupID: g.ID, UserID: ownerID, Role: RoleOwner, JoinedAt: now}}
	return g, nil
}

func (g *TravelGroup) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
