package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime/types"

	"travel-planner/internal/domain/model"
	"travel-planner/internal/usecase"
)

type tripCreateRequest struct {
	Title       string     `json:"title"`
	Destination string     `json:"destination"`
	StartDate   types.Date `json:"start_date"`
	EndDate     types.Date `json:"end_date"`
}

type tripUpdateRequest struct {
	Title  *string `json:"title,omitempty"`
	Notes  *string `json:"notes,omitempty"`
	Status *string `json:"status,omitempty"`
}

type tripResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Destination   string `json:"destination"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Status        string `json:"status"`
	ItineraryUUID string `json:"itinerary_uuid,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

func toTripResponse(t *model.Trip) tripResponse {
	return tripResponse{
		ID:            t.ID,
		Title:         t.Title,
		Destination:   t.Destination,
		StartDate:     t.StartDate.Format("2006-01-02"),
		EndDate:       t.EndDate.Format("2006-01-02"),
		Status:        string(t.Status),
		ItineraryUUID: t.ItineraryUUID,
		Notes:         t.Notes,
	}
}

func (s *Server) handleTripCreate(w http.ResponseWriter, r *http.Request) {
	var req tripCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	trip, err := s.tripUC.Create(r.Context(), userIDFrom(r.Context()),
		req.Title, req.Destination, req.StartDate.Time, req.EndDate.Time)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTripResponse(trip))
}

func (s *Server) handleTripGet(w http.ResponseWriter, r *http.Request) {
	trip, err := s.tripUC.Get(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTripResponse(trip))
}

func (s *Server) handleTripList(w http.ResponseWriter, r *http.Request) {
	trips, err := s.tripUC.List(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	out := make([]tripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, toTripResponse(t))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": out})
}

func (s *Server) handleTripUpdate(w http.ResponseWriter, r *http.Request) {
	var req tripUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	upd := usecase.TripUpdate{Title: req.Title, Notes: req.Notes}
	if req.Status != nil {
		st := model.TripStatus(*req.Status)
		upd.Status = &st
	}
	trip, err := s.tripUC.Update(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "tripID"), upd)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTripResponse(trip))
}

func (s *Server) handleTripDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.tripUC.Delete(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "tripID")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
