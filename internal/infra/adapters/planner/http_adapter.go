package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"travel-planner/internal/domain"
	"travel-planner/internal/domain/model"
	"travel-planner/internal/domain/ports/adapter"

	"github.com/oapi-codegen/runtime/types"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.PlannerServiceAdapter = (*HTTPAdapter)(nil)

// HTTPAdapter talks to the itinerary generation service over its JSON
// protocol. Every response body is validated against the documented shape
// before it is handed to the domain; anything off-shape becomes
// ErrMalformedResponse instead of a panic on a missing field.
type HTTPAdapter struct {
	base   string
	apiKey string
	client *http.Client
}

func NewHTTPAdapter(baseURL, apiKey string, timeout time.Duration) (*HTTPAdapter, error) {
	if baseURL == "" {
		return nil, domain.ErrInvalidArgument
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPAdapter{
		base:   strings.TrimRight(baseURL, "/"),
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// --- wire shapes ---

type submitRequest struct {
	TripType      string      `json:"trip_type"`
	FromCity      string      `json:"from_city"`
	ToCity        string      `json:"to_city"`
	DepartureDate types.Date  `json:"departure_date"`
	ReturnDate    *types.Date `json:"return_date,omitempty"`
	Adults        int         `json:"adults"`
	TravelClass   string      `json:"travel_class"`
	Interests     string      `json:"interests"`
	PriceRange    string      `json:"price_range,omitempty"`
}

type submitResponse struct {
	Status          string `json:"status"`
	JobID           string `json:"job_id"`
	ItineraryUUID   string `json:"itinerary_uuid"`
	Message         string `json:"message"`
	PollingInterval int    `json:"polling_interval_seconds"`
}

type progressDetails struct {
	FlightsFound     int               `json:"flights_found"`
	HotelsFound      int               `json:"hotels_found"`
	RestaurantsFound int               `json:"restaurants_found"`
	ActivitiesFound  int               `json:"activities_planned"`
	PriceRanges      map[string]string `json:"price_ranges"`
}

type progressBody struct {
	Message string          `json:"message"`
	Step    string          `json:"step"`
	Details progressDetails `json:"details"`
}

type resultBody struct {
	ItineraryID   string `json:"itinerary_id"`
	ItineraryUUID string `json:"itinerary_uuid"`
	ActivityCount int    `json:"activity_count"`
	FlightCount   int    `json:"flight_count"`
	HotelCount    int    `json:"hotel_count"`
}

type statusResponse struct {
	JobID       string        `json:"job_id"`
	Status      string        `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	Error       string        `json:"error,omitempty"`
	Progress    *progressBody `json:"progress,omitempty"`
	Result      *resultBody   `json:"result,omitempty"`
	NextStep    string        `json:"next_step,omitempty"`
}

type activityBody struct {
	Time        string `json:"time"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Price       string `json:"price"`
}

type dayBody struct {
	Date       string         `json:"date"`
	Year       int            `json:"year"`
	Activities []activityBody `json:"activities"`
}

type itineraryData struct {
	Title           string          `json:"title"`
	Personalization string          `json:"personalization"`
	TotalDays       int             `json:"total_days"`
	Days            []dayBody       `json:"days"`
	TripDetails     json.RawMessage `json:"trip_details"`
}

type itineraryEnvelope struct {
	Status    string `json:"status"`
	Itinerary *struct {
		Data *itineraryData `json:"data"`
	} `json:"itinerary"`
}

// --- operations ---

func (a *HTTPAdapter) Submit(ctx context.Context, req model.PlanRequest) (model.JobHandle, error) {
	body := submitRequest{
		TripType:      string(req.TripType),
		FromCity:      req.FromCity,
		ToCity:        req.ToCity,
		DepartureDate: types.Date{Time: req.DepartureDate},
		Adults:        req.Adults,
		TravelClass:   string(req.TravelClass),
		Interests:     req.Interests,
		PriceRange:    req.PriceRange,
	}
	if req.ReturnDate != nil {
		body.ReturnDate = &types.Date{Time: *req.ReturnDate}
	}

	var resp submitResponse
	if err := a.doJSON(ctx, http.MethodPost, a.base+"/itinerary", body, &resp); err != nil {
		return model.JobHandle{}, fmt.Errorf("%w: %v", domain.ErrSubmissionFailed, err)
	}
	if resp.JobID == "" || resp.ItineraryUUID == "" {
		return model.JobHandle{}, fmt.Errorf("%w: submit response missing job_id or itinerary_uuid", domain.ErrMalformedResponse)
	}
	interval := time.Duration(resp.PollingInterval) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return model.JobHandle{
		JobID:         resp.JobID,
		ItineraryUUID: resp.ItineraryUUID,
		PollInterval:  interval,
	}, nil
}

func (a *HTTPAdapter) Status(ctx context.Context, jobID string) (model.JobStatus, error) {
	var resp statusResponse
	if err := a.doJSON(ctx, http.MethodGet, a.base+"/itinerary/status/"+jobID, nil, &resp); err != nil {
		if errors.Is(err, domain.ErrMalformedResponse) {
			return model.JobStatus{}, err
		}
		return model.JobStatus{}, fmt.Errorf("%w: %v", domain.ErrPollFailed, err)
	}
	state := model.ServerJobState(resp.Status)
	switch state {
	case model.ServerJobPending, model.ServerJobProcessing, model.ServerJobCompleted, model.ServerJobFailed:
	default:
		return model.JobStatus{}, fmt.Errorf("%w: unknown job status %q", domain.ErrMalformedResponse, resp.Status)
	}

	st := model.JobStatus{
		JobID:       resp.JobID,
		State:       state,
		CreatedAt:   resp.CreatedAt,
		StartedAt:   resp.StartedAt,
		CompletedAt: resp.CompletedAt,
		Error:       resp.Error,
		NextStep:    resp.NextStep,
	}
	// progress is optional: absence means "no update available", not an error.
	if p := resp.Progress; p != nil {
		st.Progress = &model.ProgressSnapshot{
			Message:          p.Message,
			Step:             model.ProgressStep(p.Step),
			FlightsFound:     p.Details.FlightsFound,
			HotelsFound:      p.Details.HotelsFound,
			RestaurantsFound: p.Details.RestaurantsFound,
			ActivitiesFound:  p.Details.ActivitiesFound,
			PriceRanges:      p.Details.PriceRanges,
		}
	}
	if r := resp.Result; r != nil {
		st.Result = &model.ResultSummary{
			ItineraryID:   r.ItineraryID,
			ItineraryUUID: r.ItineraryUUID,
			ActivityCount: r.ActivityCount,
			FlightCount:   r.FlightCount,
			HotelCount:    r.HotelCount,
		}
	}
	return st, nil
}

func (a *HTTPAdapter) Result(ctx context.Context, itineraryUUID string) (model.Itinerary, error) {
	var env itineraryEnvelope
	if err := a.doJSON(ctx, http.MethodGet, a.base+"/itinerary/"+itineraryUUID, nil, &env); err != nil {
		if errors.Is(err, domain.ErrMalformedResponse) {
			return model.Itinerary{}, err
		}
		return model.Itinerary{}, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	if env.Status != "success" {
		return model.Itinerary{}, fmt.Errorf("%w: expected status \"success\", got %q", domain.ErrMalformedResponse, env.Status)
	}
	if env.Itinerary == nil || env.Itinerary.Data == nil {
		return model.Itinerary{}, fmt.Errorf("%w: itinerary payload absent", domain.ErrMalformedResponse)
	}

	data := env.Itinerary.Data
	it := model.Itinerary{
		UUID:            itineraryUUID,
		Title:           data.Title,
		Personalization: data.Personalization,
		TotalDays:       data.TotalDays,
		Days:            make([]model.DayPlan, 0, len(data.Days)),
		FetchedAt:       time.Now(),
	}
	for _, d := range data.Days {
		day := model.DayPlan{Date: d.Date, Year: d.Year, Activities: make([]model.Activity, 0, len(d.Activities))}
		for _, act := range d.Activities {
			day.Activities = append(day.Activities, model.Activity{
				Time:        act.Time,
				Name:        act.Name,
				Description: act.Description,
				Category:    act.Category,
				Location:    act.Location,
				Price:       act.Price,
			})
		}
		it.Days = append(it.Days, day)
	}
	return it, nil
}

func (a *HTTPAdapter) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.base+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("planner http %d", resp.StatusCode)
	}
	return nil
}

// doJSON issues one request and decodes the response body into out.
func (a *HTTPAdapter) doJSON(ctx context.Context, method, url string, in, out interface{}) error {
	var body *bytes.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("planner http %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return nil
}
