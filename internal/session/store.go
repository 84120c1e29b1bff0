package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/voyplan/go-tripui/internal/models"
)

// CookieName is the browser cookie carrying the session id.
const CookieName = "tripui_session"

// State is everything remembered for one browser session: the bearer token
// obtained from login/register, the current itinerary snapshot and the last
// booking intent. Writes replace fields wholesale; last write wins.
type State struct {
	Token     string
	Email     string
	Itinerary *models.Itinerary
	Booking   *models.BookingIntent
}

// Store keeps per-session state in a TTL cache. Expired sessions simply
// vanish; the user logs in again.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewStore creates a session store whose entries live for ttl after the last
// write.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// NewID returns a fresh session id.
func (s *Store) NewID() string {
	return uuid.NewString()
}

// Get returns a copy of the session state, or an empty state when the
// session is unknown or expired.
func (s *Store) Get(id string) State {
	if v, ok := s.cache.Get(id); ok {
		if st, ok := v.(State); ok {
			return st
		}
	}
	return State{}
}

// Put overwrites the whole session state and refreshes its TTL.
func (s *Store) Put(id string, st State) {
	s.cache.Set(id, st, s.ttl)
}

// SetToken stores a new credential, replacing any previous one.
func (s *Store) SetToken(id, token, email string) {
	st := s.Get(id)
	st.Token = token
	st.Email = email
	s.Put(id, st)
}

// SetItinerary replaces the session's itinerary snapshot as a unit. The UI
// never patches an itinerary field by field.
func (s *Store) SetItinerary(id string, it *models.Itinerary) {
	st := s.Get(id)
	st.Itinerary = it
	s.Put(id, st)
}

// SetBooking remembers the last booking intent for display.
func (s *Store) SetBooking(id string, b *models.BookingIntent) {
	st := s.Get(id)
	st.Booking = b
	s.Put(id, st)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
