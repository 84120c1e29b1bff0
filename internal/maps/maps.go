package maps

import (
	"encoding/json"

	"github.com/voyplan/go-tripui/internal/models"
)

// Default map center when the itinerary has no located POI (Tokyo).
const (
	fallbackLat = 35.6762
	fallbackLng = 139.6503
)

// Marker is one map pin.
type Marker struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Embed is everything a page needs to draw the itinerary map: the SDK script
// to load, a center and the pins. It is provider-shaped data, not live SDK
// handles, so views stay testable.
type Embed struct {
	ScriptURL string
	Center    Marker
	Markers   []Marker
}

// MarkersJSON serializes the pins for the client-side initializer.
func (e *Embed) MarkersJSON() string {
	b, err := json.Marshal(e.Markers)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// CenterJSON serializes the center point.
func (e *Embed) CenterJSON() string {
	b, err := json.Marshal(e.Center)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Provider turns an itinerary into a map embed. A nil result means "no map":
// either no provider is configured or there is nothing to show yet.
type Provider interface {
	Embed(it *models.Itinerary) *Embed
}

// Google renders through the Google Maps JS SDK.
type Google struct {
	apiKey string
}

// NewGoogle builds a Google provider. An empty API key yields a provider that
// never produces an embed, which the views render as a placeholder.
func NewGoogle(apiKey string) *Google {
	return &Google{apiKey: apiKey}
}

func (g *Google) Embed(it *models.Itinerary) *Embed {
	if g.apiKey == "" || it == nil {
		return nil
	}

	// The callback keeps initialization out of inline script, which the CSP
	// would block. initTripMap is defined by assets/js/map.js.
	e := &Embed{
		ScriptURL: "https://maps.googleapis.com/maps/api/js?key=" + g.apiKey + "&callback=initTripMap",
		Center:    Marker{Lat: fallbackLat, Lng: fallbackLng},
	}

	// One pin per locatable POI, itinerary order preserved.
	for _, day := range it.Days {
		for i := range day.Items {
			poi := &day.Items[i].POI
			if !poi.HasCoords() {
				continue
			}
			e.Markers = append(e.Markers, Marker{Name: poi.Name, Lat: *poi.Lat, Lng: *poi.Lng})
		}
	}

	if len(e.Markers) > 0 {
		e.Center = Marker{Lat: e.Markers[0].Lat, Lng: e.Markers[0].Lng}
	}
	return e
}
