// Package celebrate triggers the effect shown when a book is completed.
package celebrate

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/abhisek/bibletrack/internal/ui/theme"
)

// Celebrator runs a fire-and-forget effect sized by intensity.
type Celebrator interface {
	Celebrate(intensity int)
}

// Nop ignores every celebration.
type Nop struct{}

func (Nop) Celebrate(int) {}

// Log reports celebrations to a logger.
type Log struct {
	Logger hclog.Logger
}

func (l Log) Celebrate(intensity int) {
	l.Logger.Info("celebration", "intensity", intensity)
}

// MaxSparks caps the width of a terminal burst.
const MaxSparks = 60

// Terminal prints a colored burst to a writer. Intensity sets the number of
// sparks, capped at MaxSparks.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTerminal creates a Terminal writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Celebrate(intensity int) {
	if intensity <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, Burst(intensity))
}

// Burst renders intensity sparks, capped at MaxSparks.
func Burst(intensity int) string {
	n := min(intensity, MaxSparks)
	var b strings.Builder
	for i := range n {
		style := lipgloss.NewStyle().Foreground(theme.Sparks[i%len(theme.Sparks)]).Bold(true)
		b.WriteString(style.Render("*"))
	}
	return b.String()
}
