package timeline

import (
	"github.com/google/uuid"
)

// Registry keeps a timeline's intervals sorted by (start, end). Intervals
// with equal keys stay in insertion order.
type Registry struct {
	id        uuid.UUID
	intervals []*Interval
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{id: uuid.New()}
}

// ID identifies the registry.
func (r *Registry) ID() uuid.UUID {
	return r.id
}

// Len is the number of registered intervals.
func (r *Registry) Len() int {
	return len(r.intervals)
}

// At returns the interval at position i in sorted order.
func (r *Registry) At(i int) *Interval {
	return r.intervals[i]
}

func (r *Registry) indexOf(iv *Interval) int {
	for i, other := range r.intervals {
		if other == iv {
			return i
		}
	}
	return -1
}

// Insert adds iv after every interval that sorts at or before it.
// Intervals already registered here or elsewhere are ignored.
func (r *Registry) Insert(iv *Interval) {
	if iv == nil || iv.registry != nil || iv.torndown {
		return
	}

	i := len(r.intervals) - 1
	for ; i >= 0; i-- {
		other := r.intervals[i]
		if other.start < iv.start || (other.start == iv.start && other.end <= iv.end) {
			break
		}
	}

	r.intervals = append(r.intervals, nil)
	copy(r.intervals[i+2:], r.intervals[i+1:])
	r.intervals[i+1] = iv
	iv.registry = r
}

// Remove drops iv from the registry. Unknown intervals are ignored.
func (r *Registry) Remove(iv *Interval) {
	i := r.indexOf(iv)
	if i < 0 {
		return
	}

	copy(r.intervals[i:], r.intervals[i+1:])
	r.intervals[len(r.intervals)-1] = nil
	r.intervals = r.intervals[:len(r.intervals)-1]
	iv.registry = nil
}

// NextSibling returns the first interval after iv whose container is
// attached, or nil.
func (r *Registry) NextSibling(iv *Interval) *Interval {
	i := r.indexOf(iv)
	if i < 0 {
		return nil
	}
	for _, next := range r.intervals[i+1:] {
		if c := next.container; c != nil && c.Attached() {
			return next
		}
	}
	return nil
}

// Each calls fn for every interval in order. It walks a snapshot, so fn
// may add or tear down intervals; intervals removed during the walk are
// skipped and intervals added during it are not visited.
func (r *Registry) Each(fn func(iv *Interval)) {
	snapshot := make([]*Interval, len(r.intervals))
	copy(snapshot, r.intervals)
	for _, iv := range snapshot {
		if iv.registry != r {
			continue
		}
		fn(iv)
	}
}
