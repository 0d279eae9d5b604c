package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime/types"

	"travel-planner/internal/domain"
	"travel-planner/internal/domain/model"
)

type planSubmitRequest struct {
	TripType      string      `json:"trip_type"`
	FromCity      string      `json:"from_city"`
	ToCity        string      `json:"to_city"`
	DepartureDate types.Date  `json:"departure_date"`
	ReturnDate    *types.Date `json:"return_date,omitempty"`
	Adults        int         `json:"adults"`
	TravelClass   string      `json:"travel_class"`
	Interests     string      `json:"interests,omitempty"`
	PriceRange    string      `json:"price_range,omitempty"`
}

type planProgressResponse struct {
	Message          string            `json:"message,omitempty"`
	Step             string            `json:"step,omitempty"`
	FlightsFound     int               `json:"flights_found"`
	HotelsFound      int               `json:"hotels_found"`
	RestaurantsFound int               `json:"restaurants_found"`
	ActivitiesFound  int               `json:"activities_found"`
	PriceRanges      map[string]string `json:"price_ranges,omitempty"`
}

type planJobResponse struct {
	PlanID        string                `json:"plan_id"`
	State         string                `json:"state"`
	ItineraryUUID string                `json:"itinerary_uuid,omitempty"`
	Progress      *planProgressResponse `json:"progress,omitempty"`
	FailureReason string                `json:"failure_reason,omitempty"`
	SubmittedAt   *time.Time            `json:"submitted_at,omitempty"`
	FinishedAt    *time.Time            `json:"finished_at,omitempty"`
}

func toPlanJobResponse(job *model.PlanJob) planJobResponse {
	resp := planJobResponse{
		PlanID:        job.ID,
		State:         string(job.State),
		FailureReason: job.FailureReason,
	}
	if job.Handle != nil {
		resp.ItineraryUUID = job.Handle.ItineraryUUID
	}
	if job.LastStatus != nil && job.LastStatus.Progress != nil {
		p := job.LastStatus.Progress
		resp.Progress = &planProgressResponse{
			Message:          p.Message,
			Step:             string(p.Step),
			FlightsFound:     p.FlightsFound,
			HotelsFound:      p.HotelsFound,
			RestaurantsFound: p.RestaurantsFound,
			ActivitiesFound:  p.ActivitiesFound,
			PriceRanges:      p.PriceRanges,
		}
	}
	if !job.SubmittedAt.IsZero() {
		t := job.SubmittedAt
		resp.SubmittedAt = &t
	}
	resp.FinishedAt = job.FinishedAt
	return resp
}

func (s *Server) handlePlanSubmit(w http.ResponseWriter, r *http.Request) {
	var req planSubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	planReq := model.PlanRequest{
		TripType:      model.TripType(req.TripType),
		FromCity:      req.FromCity,
		ToCity:        req.ToCity,
		DepartureDate: req.DepartureDate.Time,
		Adults:        req.Adults,
		TravelClass:   model.TravelClass(req.TravelClass),
		Interests:     req.Interests,
		PriceRange:    req.PriceRange,
	}
	if req.ReturnDate != nil {
		t := req.ReturnDate.Time
		planReq.ReturnDate = &t
	}

	job, err := s.planningUC.Submit(r.Context(), userIDFrom(r.Context()), planReq)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, toPlanJobResponse(job))
}

func (s *Server) handlePlanStatus(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")
	job, err := s.planningUC.Status(r.Context(), userIDFrom(r.Context()), planID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlanJobResponse(job))
}

func (s *Server) handlePlanList(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.planningUC.ListJobs(r.Context(), userIDFrom(r.Context()), 0)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	out := make([]planJobResponse, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, toPlanJobResponse(job))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": out})
}

type itineraryResponse struct {
	UUID            string          `json:"uuid"`
	Title           string          `json:"title"`
	Personalization string          `json:"personalization,omitempty"`
	TotalDays       int             `json:"total_days"`
	Days            []model.DayPlan `json:"days"`
}

func (s *Server) handleItineraryGet(w http.ResponseWriter, r *http.Request) {
	uuid := chi.URLParam(r, "uuid")
	if uuid == "" {
		s.writeDomainError(w, domain.ErrInvalidArgument)
		return
	}
	it, err := s.planningUC.Result(r.Context(), uuid)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryResponse{
		UUID:            it.UUID,
		Title:           it.Title,
		Personalization: it.Personalization,
		TotalDays:       it.TotalDays,
		Days:            it.Days,
	})
}
