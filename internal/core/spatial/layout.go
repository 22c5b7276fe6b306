// Package spatial holds the static obstacle layout of the interior and the
// collision test that keeps the avatar out of it.
package spatial

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Obstacle is an axis-aligned rectangle on the ground plane.
type Obstacle struct {
	Name string  `json:"name,omitempty" yaml:"name,omitempty"`
	XMin float64 `json:"x_min" yaml:"x_min"`
	XMax float64 `json:"x_max" yaml:"x_max"`
	ZMin float64 `json:"z_min" yaml:"z_min"`
	ZMax float64 `json:"z_max" yaml:"z_max"`
}

// Valid reports whether the rectangle has positive extent on both axes.
func (o Obstacle) Valid() bool {
	return o.XMin < o.XMax && o.ZMin < o.ZMax
}

// Layout is the immutable obstacle set. The zero value has no obstacles.
type Layout struct {
	obstacles []Obstacle
	digest    uint64
}

// NewLayout copies obstacles into a new layout. Degenerate rectangles are
// rejected because they can never block and usually indicate swapped bounds.
func NewLayout(obstacles []Obstacle) (*Layout, error) {
	owned := make([]Obstacle, len(obstacles))
	for i, o := range obstacles {
		if !o.Valid() {
			return nil, &InvalidObstacleError{Index: i, Obstacle: o}
		}
		owned[i] = o
	}
	return &Layout{obstacles: owned, digest: digest(owned)}, nil
}

// Obstacles returns a copy of the obstacle set.
func (l *Layout) Obstacles() []Obstacle {
	out := make([]Obstacle, len(l.obstacles))
	copy(out, l.obstacles)
	return out
}

func (l *Layout) Len() int { return len(l.obstacles) }

// Bounds returns the union rectangle of all obstacles. ok is false for an
// empty layout.
func (l *Layout) Bounds() (Obstacle, bool) {
	if len(l.obstacles) == 0 {
		return Obstacle{}, false
	}
	b := l.obstacles[0]
	for _, o := range l.obstacles[1:] {
		b.XMin = math.Min(b.XMin, o.XMin)
		b.XMax = math.Max(b.XMax, o.XMax)
		b.ZMin = math.Min(b.ZMin, o.ZMin)
		b.ZMax = math.Max(b.ZMax, o.ZMax)
	}
	b.Name = ""
	return b, true
}

// Digest is a fingerprint of the obstacle geometry. Names do not contribute.
func (l *Layout) Digest() uint64 { return l.digest }

// DigestString renders Digest as fixed-width hex.
func (l *Layout) DigestString() string {
	s := strconv.FormatUint(l.digest, 16)
	for len(s) < 16 {
		s = "0" + s
	}
	return s
}

func digest(obstacles []Obstacle) uint64 {
	h := xxhash.New()
	var buf [8]byte
	for _, o := range obstacles {
		for _, v := range [4]float64{o.XMin, o.XMax, o.ZMin, o.ZMax} {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = h.Write(buf[:])
		}
	}
	return h.Sum64()
}
