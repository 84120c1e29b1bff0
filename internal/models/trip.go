package models

// Wire contract shared with the planner backend. Field names mirror the
// backend's JSON exactly; optional fields are pointers with omitempty so that
// absence survives a round trip instead of turning into zeroes.

// SourceType tags where a fact came from.
type SourceType string

const (
	SourceMaps     SourceType = "maps"
	SourceRAG      SourceType = "rag"
	SourceUser     SourceType = "user"
	SourceProvider SourceType = "provider"
)

// TransportMode is one of the fixed transit modes the backend emits.
type TransportMode string

const (
	ModeWalk   TransportMode = "walk"
	ModeMetro  TransportMode = "metro"
	ModeBus    TransportMode = "bus"
	ModeCar    TransportMode = "car"
	ModeTrain  TransportMode = "train"
	ModeFlight TransportMode = "flight"
)

// PlanRequest is the single planning request sent to the backend.
type PlanRequest struct {
	City        string   `json:"city"`
	Country     string   `json:"country,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	Days        int      `json:"days"`
	Budget      float64  `json:"budget"`
	Travelers   int      `json:"travelers,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	Preferences []string `json:"preferences,omitempty"`
}

// Source records provenance for a planned item. PlaceID only carries meaning
// for SourceMaps; other combinations are tolerated and simply render without
// a map link.
type Source struct {
	Type    SourceType `json:"type"`
	URL     string     `json:"url,omitempty"`
	PlaceID string     `json:"place_id,omitempty"`
}

// MapURL returns a Google Maps place link for maps-sourced facts, or "" when
// the source cannot be linked.
func (s *Source) MapURL() string {
	if s == nil || s.Type != SourceMaps || s.PlaceID == "" {
		return ""
	}
	return "https://www.google.com/maps/place/?q=place_id:" + s.PlaceID
}

// Cost is an amount in a single currency.
type Cost struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Transport describes how to reach an item from the previous one.
type Transport struct {
	Mode        TransportMode `json:"mode"`
	DurationMin int           `json:"duration_min"`
	DistanceKm  *float64      `json:"distance_km,omitempty"`
}

// POI is a place suggested within a day plan.
type POI struct {
	Name    string   `json:"name"`
	Address string   `json:"address,omitempty"`
	PlaceID string   `json:"place_id,omitempty"`
	Rating  *float64 `json:"rating,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// HasCoords reports whether the POI can be placed on a map.
func (p *POI) HasCoords() bool {
	return p != nil && p.Lat != nil && p.Lng != nil
}

// DayItem is one scheduled stop. Order within a day is meaningful and must
// be preserved by every consumer.
type DayItem struct {
	Time      string     `json:"time"`
	POI       POI        `json:"poi"`
	Transport *Transport `json:"transport,omitempty"`
	Cost      *Cost      `json:"cost,omitempty"`
	Source    *Source    `json:"source,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

// DayPlan is a calendar date with its ordered items.
type DayPlan struct {
	Date  string    `json:"date"`
	Items []DayItem `json:"items"`
}

// Totals holds the five budget buckets. The grand total is never stored;
// callers recompute it through GrandTotal so the figure cannot drift.
type Totals struct {
	Lodging   float64 `json:"lodging"`
	Food      float64 `json:"food"`
	Transport float64 `json:"transport"`
	Tickets   float64 `json:"tickets"`
	Misc      float64 `json:"misc"`
	Currency  string  `json:"currency"`
}

// GrandTotal is the sum of the five buckets.
func (t Totals) GrandTotal() float64 {
	return t.Lodging + t.Food + t.Transport + t.Tickets + t.Misc
}

// TripInfo summarizes the planned trip.
type TripInfo struct {
	City     string  `json:"city"`
	Days     int     `json:"days"`
	Currency string  `json:"currency"`
	Budget   float64 `json:"budget"`
}

// LodgingExplain justifies the lodging bucket (nightly rate times nights).
type LodgingExplain struct {
	Source   string  `json:"source"`
	Nightly  float64 `json:"nightly"`
	Nights   int     `json:"nights"`
	Rooms    int     `json:"rooms"`
	Currency string  `json:"currency"`
}

// DailyCostsExplain justifies the per-day heuristic buckets.
type DailyCostsExplain struct {
	FoodPerDay      float64 `json:"food_per_day"`
	TransportPerDay float64 `json:"transport_per_day"`
	TicketsPerDay   float64 `json:"tickets_per_day"`
	MiscPerDay      float64 `json:"misc_per_day"`
	Currency        string  `json:"currency"`
}

// BudgetExplain carries optional per-category justifications. A missing
// category means "no explanation available", not zero.
type BudgetExplain struct {
	Lodging    *LodgingExplain    `json:"lodging,omitempty"`
	DailyCosts *DailyCostsExplain `json:"daily_costs,omitempty"`
}

// Itinerary is the full planning result for one request. The UI treats it as
// an immutable snapshot: a new plan request replaces the whole object.
type Itinerary struct {
	Trip          TripInfo       `json:"trip"`
	Days          []DayPlan      `json:"days"`
	Totals        Totals         `json:"totals"`
	Notes         []string       `json:"notes"`
	Uncertainties []string       `json:"uncertainties"`
	BudgetExplain *BudgetExplain `json:"budget_explain,omitempty"`
}

// Credentials is the register/login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is what the auth endpoints return.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}

// KnowledgeDoc is a local knowledge document for the RAG index.
type KnowledgeDoc struct {
	Title   string `json:"title"`
	City    string `json:"city"`
	Content string `json:"content"`
}

// SavedTrip is the persisted itinerary shape returned by the trips endpoints.
type SavedTrip struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Itinerary *Itinerary `json:"itinerary"`
}

// TripSummary is the slice of SavedTrip the UI actually shows.
type TripSummary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// BookingIntent is a hotel booking link plus its provenance label.
type BookingIntent struct {
	URL    string `json:"url"`
	Source string `json:"source"`
}
