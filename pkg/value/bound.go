package value

import (
	"fmt"
	"time"
)

// BoundKind distinguishes the three shapes a temporal Bound may take.
type BoundKind int

const (
	// BoundNone is the unbounded limit, spelled `..` in text encoding.
	BoundNone BoundKind = iota
	// BoundDate is a 1-day-granularity instant.
	BoundDate
	// BoundTimestamp is a second-or-finer-granularity instant, always UTC.
	BoundTimestamp
)

// Bound is one limit of an Interval, or the value of an Instant: either
// unbounded, or a Date/Timestamp normalized to UTC.
type Bound struct {
	Kind BoundKind
	When time.Time // zero value when Kind == BoundNone
}

// UnboundedBound is the shared unbounded Bound value.
var UnboundedBound = Bound{Kind: BoundNone}

// NewDateBound parses an RFC 3339 full-date string into a Date bound.
func NewDateBound(s string) (Bound, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Bound{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Bound{Kind: BoundDate, When: t.UTC()}, nil
}

// NewTimestampBound parses an RFC 3339 timestamp string into a Timestamp
// bound, normalized to UTC.
func NewTimestampBound(s string) (Bound, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Bound{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return Bound{Kind: BoundTimestamp, When: t.UTC()}, nil
}

// IsUnbounded reports whether b is the `..` sentinel.
func (b Bound) IsUnbounded() bool { return b.Kind == BoundNone }

// String renders b the way the text encoding would: `..`, or the instant
// suffixed with its granularity marker.
func (b Bound) String() string {
	switch b.Kind {
	case BoundNone:
		return ".."
	case BoundDate:
		return b.When.Format("2006-01-02") + "/d"
	default:
		return b.When.Format(time.RFC3339) + "/t"
	}
}

// Compare orders Bounds per the CQL2 lattice: None sorts below every bounded
// value and equals itself; two bounded values compare by underlying instant
// regardless of whether one is a Date and the other a Timestamp.
func (b Bound) Compare(other Bound) int {
	if b.Kind == BoundNone && other.Kind == BoundNone {
		return 0
	}
	if b.Kind == BoundNone {
		return -1
	}
	if other.Kind == BoundNone {
		return 1
	}
	switch {
	case b.When.Before(other.When):
		return -1
	case b.When.After(other.When):
		return 1
	default:
		return 0
	}
}

// Equal reports whether two Bounds denote the same instant (or are both
// unbounded).
func (b Bound) Equal(other Bound) bool { return b.Compare(other) == 0 }
