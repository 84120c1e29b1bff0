package views

import (
	"embed"
	"html/template"
	"strconv"

	"github.com/voyplan/go-tripui/internal/maps"
	"github.com/voyplan/go-tripui/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// CityOption is one fixed destination choice.
type CityOption struct {
	Label   string
	City    string
	Country string
}

// FormState carries the planner form's current selection plus its inline
// error. Failures stay local to the form; sibling panels never see them.
type FormState struct {
	City        string
	Country     string
	Days        int
	Budget      int
	Preferences []string
	Error       string
}

// HasPref reports set membership for the preference toggles.
func (f FormState) HasPref(p string) bool {
	for _, have := range f.Preferences {
		if have == p {
			return true
		}
	}
	return false
}

// HomeData is everything the page renders. Each panel reads its own slice of
// it and tolerates absent fields.
type HomeData struct {
	Cities      []CityOption
	Durations   []int
	Budgets     []int
	Preferences []string

	Form      FormState
	Itinerary *models.Itinerary
	Map       *maps.Embed

	SignedInAs string
	AuthMsg    string
	RagMsg     string
	TripsMsg   string
	Trips      []models.TripSummary

	Booking    *models.BookingIntent
	BookingMsg string
}

// Checkin suggests a booking check-in date: the itinerary's first day when
// one exists.
func (d HomeData) Checkin() string {
	if d.Itinerary != nil && len(d.Itinerary.Days) > 0 {
		return d.Itinerary.Days[0].Date
	}
	return ""
}

// Nights suggests a booking night count (days minus one, at least one).
func (d HomeData) Nights() int {
	if d.Itinerary == nil || d.Itinerary.Trip.Days < 2 {
		return 1
	}
	return d.Itinerary.Trip.Days - 1
}

var funcs = template.FuncMap{
	// fmtAmount renders money the way the backend sent it: no grouping, no
	// trailing zeros, so 1150.0 stays "1150".
	"fmtAmount": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	},
	"fmtRating": func(v *float64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', 1, 64)
	},
	"inc": func(i int) int { return i + 1 },
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
