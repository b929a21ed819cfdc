// Package puzzle picks the reward images shown on full-Bible completion.
package puzzle

import (
	"fmt"
	"math/rand/v2"
)

// DefaultPoolSize is the number of puzzle images available.
const DefaultPoolSize = 100

// CacheName is the fetch cache that holds puzzle images.
const CacheName = "puzzles"

// Warmer loads an asset into the fetch cache in the background.
type Warmer interface {
	Prefetch(cacheName, path string)
}

// Picker chooses puzzle ids uniformly from a fixed pool.
type Picker struct {
	size   int
	warmer Warmer
	intn   func(n int) int
}

// Option configures a Picker.
type Option func(*Picker)

// WithRand overrides the random source. intn must return a value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(p *Picker) { p.intn = intn }
}

// NewPicker creates a Picker over size ids. A nil warmer skips cache warming.
func NewPicker(size int, warmer Warmer, opts ...Option) *Picker {
	if size <= 0 {
		size = DefaultPoolSize
	}
	p := &Picker{size: size, warmer: warmer, intn: rand.IntN}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Size returns the pool size.
func (p *Picker) Size() int {
	return p.size
}

// ID formats pool index n as a puzzle id.
func ID(n int) string {
	return fmt.Sprintf("%03d", n)
}

// AssetPath returns the image path of a puzzle.
func AssetPath(id string) string {
	return fmt.Sprintf("/_assets/optional/puzzles/%s.jpg", id)
}

// Random returns a random puzzle id and warms its image.
func (p *Picker) Random() string {
	id := ID(p.intn(p.size))
	if p.warmer != nil {
		p.warmer.Prefetch(CacheName, AssetPath(id))
	}
	return id
}

// Next returns a random puzzle id different from current. With a pool of
// one the only id is returned.
func (p *Picker) Next(current string) string {
	if p.size == 1 {
		return p.Random()
	}
	for {
		if id := p.Random(); id != current {
			return id
		}
	}
}
