package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"travel-planner/internal/domain/model"
)

// Achievements

type achievementResponse struct {
	Code       string    `json:"code"`
	Title      string    `json:"title"`
	Points     int       `json:"points"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

func (s *Server) handleAchievementList(w http.ResponseWriter, r *http.Request) {
	list, err := s.achievementUC.List(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	out := make([]achievementResponse, 0, len(list))
	for _, a := range list {
		out = append(out, achievementResponse{Code: a.Code, Title: a.Title, Points: a.Points, UnlockedAt: a.UnlockedAt})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": out})
}

type achievementUnlockRequest struct {
	Code string `json:"code"`
}

func (s *Server) handleAchievementUnlock(w http.ResponseWriter, r *http.Request) {
	var req achievementUnlockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	a, err := s.achievementUC.Unlock(r.Context(), userIDFrom(r.Context()), req.Code)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, achievementResponse{Code: a.Code, Title: a.Title, Points: a.Points, UnlockedAt: a.UnlockedAt})
}

// Moods

type moodLogRequest struct {
	Mood int    `json:"mood"`
	Note string `json:"note,omitempty"`
}

type moodResponse struct {
	ID       string    `json:"id"`
	Mood     int       `json:"mood"`
	Note     string    `json:"note,omitempty"`
	LoggedAt time.Time `json:"logged_at"`
}

func (s *Server) handleMoodLog(w http.ResponseWriter, r *http.Request) {
	var req moodLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	entry, err := s.moodUC.Log(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "tripID"), req.Mood, req.Note)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, moodResponse{ID: entry.ID, Mood: entry.Mood, Note: entry.Note, LoggedAt: entry.LoggedAt})
}

func (s *Server) handleMoodList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.moodUC.ListByTrip(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	out := make([]moodResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, moodResponse{ID: e.ID, Mood: e.Mood, Note: e.Note, LoggedAt: e.LoggedAt})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": out})
}

// Scrapbook

type scrapbookAddRequest struct {
	Caption  string     `json:"caption,omitempty"`
	MediaURL string     `json:"media_url"`
	TakenAt  *time.Time `json:"taken_at,omitempty"`
}

type scrapbookResponse struct {
	ID       string    `json:"id"`
	Caption  string    `json:"caption,omitempty"`
	MediaURL string    `json:"media_url"`
	TakenAt  time.Time `json:"taken_at"`
}

func (s *Server) handleScrapbookAdd(w http.ResponseWriter, r *http.Request) {
	var req scrapbookAddRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	var takenAt time.Time
	if req.TakenAt != nil {
		takenAt = *req.TakenAt
	}
	entry, err := s.scrapbookUC.Add(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "tripID"),
		req.Caption, req.MediaURL, takenAt)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, scrapbookResponse{ID: entry.ID, Caption: entry.Caption, MediaURL: entry.MediaURL, TakenAt: entry.TakenAt})
}

func (s *Server) handleScrapbookList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.scrapbookUC.ListByTrip(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	out := make([]scrapbookResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, scrapbookResponse{ID: e.ID, Caption: e.Caption, MediaURL: e.MediaURL, TakenAt: e.TakenAt})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": out})
}

func (s *Server) handleScrapbookDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.scrapbookUC.Delete(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "entryID")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Groups

type groupCreateRequest struct {
	Name string `json:"name"`
}

type groupMemberRequest struct {
	UserID string `json:"user_id"`
}

type groupResponse struct {
	ID      string                `json:"id"`
	Name    string                `json:"name"`
	OwnerID string                `json:"owner_id"`
	Members []groupMemberResponse `json:"members"`
}

type groupMemberResponse struct {
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

func toGroupResponse(g *model.TravelGroup) groupResponse {
	resp := groupResponse{ID: g.ID, Name: g.Name, OwnerID: g.OwnerID}
	for _, m := range g.Members {
		resp.Members = append(resp.Members, groupMemberResponse{UserID: m.UserID, Role: string(m.Role), JoinedAt: m.JoinedAt})
	}
	return resp
}

func (s *Server) handleGroupCreate(w http.ResponseWriter, r *http.Request) {
	var req groupCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	g, err := s.groupUC.Create(r.Context(), userIDFrom(r.Context()), req.Name)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(g))
}

func (s *Server) handleGroupGet(w http.ResponseWriter, r *http.Request) {
	g, err := s.groupUC.Get(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(g))
}

func (s *Server) handleGroupAddMember(w http.ResponseWriter, r *http.Request) {
	var req groupMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	err := s.groupUC.AddMember(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "groupID"), req.UserID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGroupRemoveMember(w http.ResponseWriter, r *http.Request) {
	err := s.groupUC.RemoveMember(r.Context(), userIDFrom(r.Context()),
		chi.URLParam(r, "groupID"), chi.URLParam(r, "userID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
