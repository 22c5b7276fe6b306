package spatial

// DefaultHalfExtent is the half side of the avatar's square footprint.
const DefaultHalfExtent = 0.25

// Resolver answers whether the avatar may stand at a ground position.
type Resolver struct {
	layout     *Layout
	halfExtent float64
}

func NewResolver(layout *Layout, halfExtent float64) *Resolver {
	if layout == nil {
		layout = &Layout{}
	}
	return &Resolver{layout: layout, halfExtent: halfExtent}
}

// HalfExtent is the half side of the footprint, so clients can predict
// collisions the same way.
func (r *Resolver) HalfExtent() float64 { return r.halfExtent }

// IsBlocked reports whether the avatar footprint centred at (x, z) strictly
// overlaps any obstacle. Touching edges do not count as overlap.
func (r *Resolver) IsBlocked(x, z float64) bool {
	h := r.halfExtent
	for _, o := range r.layout.obstacles {
		if x+h > o.XMin && x-h < o.XMax && z+h > o.ZMin && z-h < o.ZMax {
			return true
		}
	}
	return false
}
