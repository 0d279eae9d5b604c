package web

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"travel-planner/internal/domain/ports/adapter"
	"travel-planner/internal/usecase"
)

type Server struct {
	planningUC    usecase.PlanningUseCase
	tripUC        usecase.TripUseCase
	achievementUC usecase.AchievementUseCase
	moodUC        usecase.MoodUseCase
	scrapbookUC   usecase.ScrapbookUseCase
	groupUC       usecase.GroupUseCase
	planner       adapter.PlannerServiceAdapter
	jwtSecret     []byte
	log           *zerolog.Logger
}

func NewServer(
	planningUC usecase.PlanningUseCase,
	tripUC usecase.TripUseCase,
	achievementUC usecase.AchievementUseCase,
	moodUC usecase.MoodUseCase,
	scrapbookUC usecase.ScrapbookUseCase,
	groupUC usecase.GroupUseCase,
	planner adapter.PlannerServiceAdapter,
	jwtSecret string,
	logger *zerolog.Logger,
) *Server {
	srvLog := logger.With().Str("component", "web").Logger()
	return &Server{
		planningUC:    planningUC,
		tripUC:        tripUC,
		achievementUC: achievementUC,
		moodUC:        moodUC,
		scrapbookUC:   scrapbookUC,
		groupUC:       groupUC,
		planner:       planner,
		jwtSecret:     []byte(jwtSecret),
		log:           &srvLog,
	}
}

// Router builds the chi mux. Everything under /api/v1 requires a valid
// bearer token; health and metrics stay open.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Route("/plans", func(r chi.Router) {
			r.Post("/", s.handlePlanSubmit)
			r.Get("/", s.handlePlanList)
			r.Get("/{planID}", s.handlePlanStatus)
		})
		r.Get("/itineraries/{uuid}", s.handleItineraryGet)

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.handleTripCreate)
			r.Get("/", s.handleTripList)
			r.Get("/{tripID}", s.handleTripGet)
			r.Patch("/{tripID}", s.handleTripUpdate)
			r.Delete("/{tripID}", s.handleTripDelete)

			r.Post("/{tripID}/moods", s.handleMoodLog)
			r.Get("/{tripID}/moods", s.handleMoodList)
			r.Post("/{tripID}/scrapbook", s.handleScrapbookAdd)
			r.Get("/{tripID}/scrapbook", s.handleScrapbookList)
		})
		r.Delete("/scrapbook/{entryID}", s.handleScrapbookDelete)

		r.Get("/achievements", s.handleAchievementList)
		r.Post("/achievements", s.handleAchievementUnlock)

		r.Route("/groups", func(r chi.Router) {
			r.Post("/", s.handleGroupCreate)
			r.Get("/{groupID}", s.handleGroupGet)
			r.Post("/{groupID}/members", s.handleGroupAddMember)
			r.Delete("/{groupID}/members/{userID}", s.handleGroupRemoveMember)
		})
	})

	return r
}

// handleHealth reports this service and the downstream planner. A planner
// outage degrades the response but keeps the process "up".
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	plannerStatus := "ok"
	if s.planner != nil {
		if err := s.planner.Health(r.Context()); err != nil {
			plannerStatus = "unreachable"
			status = "degraded"
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  status,
		"planner": plannerStatus,
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyUserID).(string)
	return id
}
