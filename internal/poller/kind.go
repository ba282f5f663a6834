package poller

import (
	"errors"
	"fmt"
	"time"

	"trippilot/skyview/internal/models/entities"
)

// Kind names one independently polled collection.
type Kind string

const (
	KindAirports Kind = "airports"
	KindFlights  Kind = "flights"
)

const (
	DefaultAirportInterval = 5 * time.Minute
	DefaultFlightInterval  = 15 * time.Second
	DefaultFetchTimeout    = 10 * time.Second
)

var (
	ErrUnknownKind = errors.New("unknown poll kind")
	ErrClosed      = errors.New("poller closed")
)

// Kinds lists every kind in a fixed order.
var Kinds = []Kind{KindAirports, KindFlights}

// ParseKind validates s.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindAirports, KindFlights:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Snapshot is one published collection. Exactly one of Airports and
// Flights is meaningful, according to Kind.
type Snapshot struct {
	Kind      Kind
	Seq       uint64
	Airports  []entities.Airport
	Flights   []entities.Flight
	FetchedAt time.Time
}

// Len returns the number of records in the snapshot.
func (s Snapshot) Len() int {
	if s.Kind == KindAirports {
		return len(s.Airports)
	}
	return len(s.Flights)
}
