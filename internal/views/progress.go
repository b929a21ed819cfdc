// Package views derives read-only values from the state for display. Every
// function is pure.
package views

import (
	"fmt"
	"slices"

	"github.com/abhisek/bibletrack/internal/bible"
	"github.com/abhisek/bibletrack/internal/state"
)

// Fraction is a count of chapters read out of a total.
type Fraction struct {
	Read  int `json:"read"`
	Total int `json:"total"`
}

// Progress counts the chapters of p read in the current run, skipping the
// excluded books. A chapter counts as read when its own flag is set or its
// book is done.
func Progress(p *state.Profile, exclude ...string) Fraction {
	var f Fraction
	for book, chapters := range p.DoneChapters {
		if slices.Contains(exclude, book) {
			continue
		}
		bookDone := p.DoneBooks[book]
		for _, done := range chapters {
			f.Total++
			if bookDone || done {
				f.Read++
			}
		}
	}
	return f
}

// BookProgress counts the chapters of book read in the current read-through,
// ignoring whether the book is done.
func BookProgress(p *state.Profile, book string) Fraction {
	var f Fraction
	for _, done := range p.DoneChapters[book] {
		f.Total++
		if done {
			f.Read++
		}
	}
	return f
}

// ProgressString formats f as a floored percentage when the percentages
// preference is on, otherwise as read/total.
func ProgressString(st *state.State, f Fraction) string {
	if !st.Percentages {
		return fmt.Sprintf("%d/%d", f.Read, f.Total)
	}
	if f.Total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", f.Read*100/f.Total)
}

// Testaments holds progress strings for each testament.
type Testaments struct {
	Old string
	New string
}

// TestamentProgress formats the progress of p in each testament.
func TestamentProgress(st *state.State, canon *bible.Canon, p *state.Profile) Testaments {
	return Testaments{
		Old: ProgressString(st, Progress(p, canon.NewTestament()...)),
		New: ProgressString(st, Progress(p, canon.OldTestament()...)),
	}
}

// BookBadge is the short progress label shown next to a book: its current
// progress once a chapter is read, then its completion count.
func BookBadge(st *state.State, p *state.Profile, book string) string {
	var badge string
	if f := BookProgress(p, book); f.Read > 0 {
		badge = ProgressString(st, f)
	}
	if n := p.CompletionsBooks[book]; n > 0 {
		if badge != "" {
			badge += " "
		}
		badge += fmt.Sprintf("×%d", n)
	}
	return badge
}

// IsProfileComplete reports whether every book of p is done.
func IsProfileComplete(p *state.Profile) bool {
	for _, done := range p.DoneBooks {
		if !done {
			return false
		}
	}
	return true
}

// ChaptersDoneFlat lists the read flag of every chapter in canon order.
func ChaptersDoneFlat(canon *bible.Canon, p *state.Profile) []bool {
	done := make([]bool, 0, canon.TotalChapters())
	for _, b := range canon.Books() {
		bookDone := p.DoneBooks[b.ID]
		for ch := 1; ch <= b.Chapters; ch++ {
			done = append(done, bookDone || p.DoneChapters[b.ID][ch])
		}
	}
	return done
}
