package routegraph

import (
	"math"
)

// NodeResolver assigns node identities to segment endpoint coordinates during
// graph construction. The resolver owns the coordinate-to-id mapping; ids are
// dense and assigned in first-sighting order.
//
// Endpoint merging is a policy decision: whether two nearly identical
// coordinates are the same physical intersection depends on the dataset, so
// the strategy is pluggable and the edge logic of the builder never changes.
type NodeResolver interface {
	// Resolve returns the node id for (lat, lon), assigning a fresh id on
	// first sighting. created reports whether the id is new.
	Resolve(lat, lon float64) (NodeID, bool)
	// Lookup returns the id previously assigned to (lat, lon), if any.
	Lookup(lat, lon float64) (NodeID, bool)
	// Len is the number of distinct nodes assigned so far.
	Len() int
}

type coordKey struct {
	lat, lon float64
}

// ExactResolver merges endpoints only on bit-identical coordinates. This
// mirrors the upstream dataset convention: float jitter in the source data
// produces distinct nodes rather than being snapped together.
type ExactResolver struct {
	ids map[coordKey]NodeID
}

func NewExactResolver() *ExactResolver {
	return &ExactResolver{ids: make(map[coordKey]NodeID)}
}

func (r *ExactResolver) Resolve(lat, lon float64) (NodeID, bool) {
	key := coordKey{lat: lat, lon: lon}
	if id, ok := r.ids[key]; ok {
		return id, false
	}
	id := NodeID(len(r.ids))
	r.ids[key] = id
	return id, true
}

func (r *ExactResolver) Lookup(lat, lon float64) (NodeID, bool) {
	id, ok := r.ids[coordKey{lat: lat, lon: lon}]
	return id, ok
}

func (r *ExactResolver) Len() int {
	return len(r.ids)
}

// GridResolver quantizes coordinates to a fixed decimal grid before matching,
// so endpoints within half a grid cell collapse into one node. Not the
// default: see ExactResolver.
type GridResolver struct {
	scale float64
	ids   map[coordKey]NodeID
}

// NewGridResolver builds a resolver snapping to 10^-digits degrees.
func NewGridResolver(digits int) *GridResolver {
	return &GridResolver{
		scale: math.Pow(10, float64(digits)),
		ids:   make(map[coordKey]NodeID),
	}
}

func (r *GridResolver) quantize(lat, lon float64) coordKey {
	return coordKey{
		lat: math.Round(lat*r.scale) / r.scale,
		lon: math.Round(lon*r.scale) / r.scale,
	}
}

func (r *GridResolver) Resolve(lat, lon float64) (NodeID, bool) {
	key := r.quantize(lat, lon)
	if id, ok := r.ids[key]; ok {
		return id, false
	}
	id := NodeID(len(r.ids))
	r.ids[key] = id
	return id, true
}

func (r *GridResolver) Lookup(lat, lon float64) (NodeID, bool) {
	id, ok := r.ids[r.quantize(lat, lon)]
	return id, ok
}

func (r *GridResolver) Len() int {
	return len(r.ids)
}
