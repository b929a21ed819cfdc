package views

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/abhisek/bibletrack/internal/bible"
	"github.com/abhisek/bibletrack/internal/state"
)

// ShareSummary is the data a shareable progress image is generated from.
type ShareSummary struct {
	PuzzleID     string  `json:"puzzle_id"`
	Chapters     []bool  `json:"chapters"`
	RecentBook   *string `json:"recent_book"`
	CurrentBook  *string `json:"current_book"`
	BibleVersion string  `json:"bible_version"`
	Locale       string  `json:"locale"`
}

// Share builds the summary of p. The last completed and currently read books
// are only included when the share_last_read preference is on, and the
// current book is left out once the whole Bible is complete.
func Share(st *state.State, canon *bible.Canon, p *state.Profile) ShareSummary {
	s := ShareSummary{
		PuzzleID:     p.Puzzle,
		Chapters:     ChaptersDoneFlat(canon, p),
		BibleVersion: st.BibleVersion,
		Locale:       st.Locale,
	}
	if st.ShareLastRead && p.LastCompleted != "" {
		recent := p.LastCompleted
		s.RecentBook = &recent
	}
	if st.ShareLastRead && !IsProfileComplete(p) && len(p.LastProgressed) > 0 {
		current := p.LastProgressed[0]
		s.CurrentBook = &current
	}
	return s
}

// JSON encodes the summary with sorted keys and no HTML escaping, the form
// the share endpoint hashes.
func (s ShareSummary) JSON() ([]byte, error) {
	fields := map[string]any{
		"puzzle_id":     s.PuzzleID,
		"chapters":      s.Chapters,
		"recent_book":   s.RecentBook,
		"current_book":  s.CurrentBook,
		"bible_version": s.BibleVersion,
		"locale":        s.Locale,
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(fields); err != nil {
		return nil, fmt.Errorf("encode share summary: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Key returns the URL-safe base64 SHA-256 of the summary JSON, which
// addresses the generated image.
func (s ShareSummary) Key() (string, error) {
	body, err := s.JSON()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(body)
	return base64.URLEncoding.EncodeToString(sum[:]), nil
}
