// File: cmd/plannersim/main.go
//
// plannersim is a stand-in for the itinerary generation service, for local
// development and end to end tests. It speaks the same JSON protocol the
// real service does: submit returns a job handle, status walks through the
// generation steps on a timer, and the itinerary endpoint serves a small
// canned plan once the job completes.
//
// Append ?fail=1 to the submit call to get a job that ends in failure.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type simJob struct {
	ID            string
	ItineraryUUID string
	CreatedAt     time.Time
	Fail          bool
	ToCity        string
}

type simulator struct {
	mu       sync.Mutex
	jobs     map[string]*simJob
	itins    map[string]*simJob
	stepTime time.Duration
	log      *zerolog.Logger
}

func main() {
	port := flag.Int("port", 9090, "listen port")
	stepTime := flag.Duration("step", 3*time.Second, "time spent per generation step")
	flag.Parse()

	out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(out).With().Timestamp().Str("component", "plannersim").Logger()

	sim := &simulator{
		jobs:     map[string]*simJob{},
		itins:    map[string]*simJob{},
		stepTime: *stepTime,
		log:      &logger,
	}

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Post("/itinerary", sim.handleSubmit)
	r.Get("/itinerary/status/{jobID}", sim.handleStatus)
	r.Get("/itinerary/{uuid}", sim.handleItinerary)

	logger.Info().Int("port", *port).Dur("step", *stepTime).Msg("planner simulator listening")
	if err := http.ListenAndServe(fmt.Sprintf(":%d", *port), r); err != nil {
		logger.Fatal().Err(err).Msg("listen")
	}
}

func (s *simulator) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ToCity string `json:"to_city"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ToCity == "" {
		http.Error(w, `{"error":"invalid request"}`, http.StatusBadRequest)
		return
	}

	job := &simJob{
		ID:            uuid.NewString(),
		ItineraryUUID: uuid.NewString(),
		CreatedAt:     time.Now(),
		Fail:          r.URL.Query().Get("fail") != "",
		ToCity:        req.ToCity,
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.itins[job.ItineraryUUID] = job
	s.mu.Unlock()

	s.log.Info().Str("job_id", job.ID).Str("to_city", job.ToCity).Bool("fail", job.Fail).Msg("job accepted")
	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"status":                   "accepted",
		"job_id":                   job.ID,
		"itinerary_uuid":           job.ItineraryUUID,
		"message":                  "itinerary generation queued",
		"polling_interval_seconds": 2,
	})
}

// The generation pipeline is simulated by elapsed time: one step per
// stepTime, in the order the real service reports them.
var steps = []struct {
	name    string
	message string
}{
	{"initializing", "warming up planners"},
	{"flights", "searching flights"},
	{"hotels", "shortlisting hotels"},
	{"restaurants", "picking restaurants"},
	{"activities", "planning activities"},
	{"completing", "assembling itinerary"},
}

func (s *simulator) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	job, ok := s.jobs[chi.URLParam(r, "jobID")]
	s.mu.Unlock()
	if !ok {
		http.Error(w, `{"error":"job not found"}`, http.StatusNotFound)
		return
	}

	elapsed := time.Since(job.CreatedAt)
	step := int(elapsed / s.stepTime)

	resp := map[string]interface{}{
		"job_id":     job.ID,
		"created_at": job.CreatedAt,
	}

	switch {
	case step >= len(steps) && job.Fail:
		resp["status"] = "failed"
		resp["error"] = "no flights available for the requested dates"
	case step >= len(steps):
		done := job.CreatedAt.Add(time.Duration(len(steps)) * s.stepTime)
		resp["status"] = "completed"
		resp["completed_at"] = done
		resp["result"] = map[string]interface{}{
			"itinerary_id":   job.ID,
			"itinerary_uuid": job.ItineraryUUID,
			"activity_count": 6,
			"flight_count":   2,
			"hotel_count":    1,
		}
	case step == 0:
		resp["status"] = "pending"
	default:
		resp["status"] = "processing"
		resp["started_at"] = job.CreatedAt
		resp["progress"] = map[string]interface{}{
			"message": steps[step].message,
			"step":    steps[step].name,
			"details": map[string]interface{}{
				"flights_found":      boolToCount(step > 1, 2),
				"hotels_found":       boolToCount(step > 2, 4),
				"restaurants_found":  boolToCount(step > 3, 6),
				"activities_planned": boolToCount(step > 4, 6),
				"price_ranges":       map[string]string{"hotels": "$120-$300"},
			},
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *simulator) handleItinerary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	job, ok := s.itins[chi.URLParam(r, "uuid")]
	s.mu.Unlock()
	if !ok {
		http.Error(w, `{"error":"itinerary not found"}`, http.StatusNotFound)
		return
	}
	if job.Fail || time.Since(job.CreatedAt) < time.Duration(len(steps))*s.stepTime {
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "not_ready"})
		return
	}

	day := func(date string, name string) map[string]interface{} {
		return map[string]interface{}{
			"date": date,
			"year": time.Now().Year(),
			"activities": []map[string]interface{}{
				{
					"time":        "09:00",
					"name":        name,
					"description": "simulator generated stop",
					"category":    "sightseeing",
					"location":    job.ToCity,
					"price":       "$20",
				},
			},
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"itinerary": map[string]interface{}{
			"data": map[string]interface{}{
				"title":           fmt.Sprintf("%s Highlights", job.ToCity),
				"personalization": "generated by plannersim",
				"total_days":      2,
				"days": []interface{}{
					day("Day 1", "Old town walk"),
					day("Day 2", "Museum morning"),
				},
			},
		},
	})
}

func boolToCount(done bool, n int) int {
	if done {
		return n
	}
	return 0
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
