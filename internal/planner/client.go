package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/voyplan/go-tripui/internal/models"
	"github.com/voyplan/go-tripui/internal/observability/metrics"
)

// APIError is a backend-reported failure. The body is surfaced verbatim; this
// layer never interprets backend error payloads.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
}

// Client is the typed HTTP client for the planner backend. It performs single
// best-effort requests: no retries, no backoff. The bearer credential is
// injected via WithToken rather than read from ambient storage, so a fake
// session in tests is just a string.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	logger     *zap.Logger
}

// New creates a client for the given backend base URL.
func New(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// WithToken derives a client that attaches the given bearer token to every
// request. The token is never validated locally; an expired or bogus token
// simply yields the backend's rejection as an *APIError.
func (c *Client) WithToken(token string) *Client {
	derived := *c
	derived.token = token
	return &derived
}

// PlanTrip submits a planning request and returns the resulting itinerary.
func (c *Client) PlanTrip(ctx context.Context, req models.PlanRequest) (*models.Itinerary, error) {
	if req.City == "" {
		return nil, errors.New("plan request: city is required")
	}
	if req.Days < 1 {
		return nil, errors.New("plan request: days must be at least 1")
	}
	if req.Budget < 0 {
		return nil, errors.New("plan request: budget must not be negative")
	}

	var it models.Itinerary
	if err := c.do(ctx, "plan", http.MethodPost, "/api/agent/plan", req, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// Register creates an account and returns the issued access token.
func (c *Client) Register(ctx context.Context, email, password string) (string, error) {
	return c.authenticate(ctx, "register", "/auth/register", email, password)
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.authenticate(ctx, "login", "/auth/login", email, password)
}

func (c *Client) authenticate(ctx context.Context, op, path, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", errors.New(op + ": email and password are required")
	}

	var out models.TokenResponse
	err := c.do(ctx, op, http.MethodPost, path, models.Credentials{Email: email, Password: password}, &out)
	if err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// AddKnowledgeDoc submits a local knowledge document to the RAG index.
// The backend rejects the call when no valid token is attached.
func (c *Client) AddKnowledgeDoc(ctx context.Context, doc models.KnowledgeDoc) error {
	if doc.Title == "" || doc.City == "" || doc.Content == "" {
		return errors.New("knowledge doc: title, city and content are required")
	}
	return c.do(ctx, "rag_add_doc", http.MethodPost, "/rag/docs", doc, nil)
}

// SaveTrip persists the itinerary under a title for the authenticated user.
func (c *Client) SaveTrip(ctx context.Context, title string, it *models.Itinerary) error {
	if title == "" {
		return errors.New("save trip: title is required")
	}
	if it == nil {
		return errors.New("save trip: itinerary is required")
	}
	body := struct {
		Title     string            `json:"title"`
		Itinerary *models.Itinerary `json:"itinerary"`
	}{Title: title, Itinerary: it}
	return c.do(ctx, "save_trip", http.MethodPost, "/api/trips", body, nil)
}

// ListTrips returns the authenticated user's saved trips. Itinerary bodies
// come over the wire but only the {id, title} summaries are exposed.
func (c *Client) ListTrips(ctx context.Context) ([]models.TripSummary, error) {
	var trips []models.SavedTrip
	if err := c.do(ctx, "list_trips", http.MethodGet, "/api/trips", nil, &trips); err != nil {
		return nil, err
	}

	summaries := make([]models.TripSummary, 0, len(trips))
	for _, t := range trips {
		summaries = append(summaries, models.TripSummary{ID: t.ID, Title: t.Title})
	}
	return summaries, nil
}

// HotelIntent asks the backend for a hotel booking link.
func (c *Client) HotelIntent(ctx context.Context, city, checkin string, nights int) (*models.BookingIntent, error) {
	if city == "" {
		return nil, errors.New("hotel intent: city is required")
	}
	if nights < 1 {
		return nil, errors.New("hotel intent: nights must be at least 1")
	}

	q := url.Values{}
	q.Set("city", city)
	q.Set("checkin", checkin)
	q.Set("nights", strconv.Itoa(nights))

	var out models.BookingIntent
	if err := c.do(ctx, "hotel_intent", http.MethodGet, "/api/booking/hotel-intent?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one backend request. Non-2xx responses become an *APIError
// carrying the raw body; transport failures are wrapped with context.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	start := time.Now()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "%s: encode request", op)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrapf(err, "%s: build request", op)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record(ctx, op, 0, start)
		return errors.Wrapf(err, "%s: backend unreachable", op)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.record(ctx, op, resp.StatusCode, start)
		return errors.Wrapf(err, "%s: read response", op)
	}

	c.record(ctx, op, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if c.logger != nil {
			c.logger.Warn("Backend call failed",
				zap.String("operation", op),
				zap.Int("status", resp.StatusCode))
		}
		return &APIError{Status: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "%s: decode response", op)
	}
	return nil
}

func (c *Client) record(ctx context.Context, op string, status int, start time.Time) {
	m := metrics.Get()
	attrs := metric.WithAttributes(
		attribute.String("operation", op),
		attribute.Int("status", status),
	)
	m.BackendRequestsTotal.Add(ctx, 1, attrs)
	m.BackendRequestDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("operation", op)))
}
