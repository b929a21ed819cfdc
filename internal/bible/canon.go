// Package bible holds the canonical book list the tracker counts progress
// against.
package bible

import "fmt"

// Book is one book of the canon.
type Book struct {
	ID       string
	Name     string
	Chapters int
}

// Canon is an ordered list of books split into two testaments.
type Canon struct {
	books   []Book
	index   map[string]int
	otCount int
}

// NewCanon builds a canon from books in display order. The first otCount
// books form the Old Testament.
func NewCanon(books []Book, otCount int) (*Canon, error) {
	if len(books) == 0 {
		return nil, fmt.Errorf("canon has no books")
	}
	if otCount < 0 || otCount > len(books) {
		return nil, fmt.Errorf("old testament count %d out of range", otCount)
	}
	c := &Canon{
		books:   make([]Book, len(books)),
		index:   make(map[string]int, len(books)),
		otCount: otCount,
	}
	for i, b := range books {
		if b.ID == "" {
			return nil, fmt.Errorf("book %d has no id", i)
		}
		if b.Chapters < 1 {
			return nil, fmt.Errorf("book %q has no chapters", b.ID)
		}
		if _, dup := c.index[b.ID]; dup {
			return nil, fmt.Errorf("duplicate book %q", b.ID)
		}
		c.books[i] = b
		c.index[b.ID] = i
	}
	return c, nil
}

// MustCanon is NewCanon that panics on error. Intended for fixed tables.
func MustCanon(books []Book, otCount int) *Canon {
	c, err := NewCanon(books, otCount)
	if err != nil {
		panic(err)
	}
	return c
}

// Books returns all books in canonical order.
func (c *Canon) Books() []Book {
	out := make([]Book, len(c.books))
	copy(out, c.books)
	return out
}

// IDs returns all book ids in canonical order.
func (c *Canon) IDs() []string {
	ids := make([]string, len(c.books))
	for i, b := range c.books {
		ids[i] = b.ID
	}
	return ids
}

// Book looks up a book by id.
func (c *Canon) Book(id string) (Book, bool) {
	i, ok := c.index[id]
	if !ok {
		return Book{}, false
	}
	return c.books[i], true
}

// Has reports whether id is a book of the canon.
func (c *Canon) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Chapters returns the chapter count of a book, or 0 if unknown.
func (c *Canon) Chapters(id string) int {
	b, _ := c.Book(id)
	return b.Chapters
}

// TotalChapters returns the number of chapters across the whole canon.
func (c *Canon) TotalChapters() int {
	n := 0
	for _, b := range c.books {
		n += b.Chapters
	}
	return n
}

// OldTestament returns the ids of the Old Testament books.
func (c *Canon) OldTestament() []string {
	return c.IDs()[:c.otCount]
}

// NewTestament returns the ids of the New Testament books.
func (c *Canon) NewTestament() []string {
	return c.IDs()[c.otCount:]
}

// Resolve accepts either a current book id or a legacy one and returns the
// current id.
func (c *Canon) Resolve(id string) (string, bool) {
	if c.Has(id) {
		return id, true
	}
	if mapped, ok := legacyIDs[id]; ok && c.Has(mapped) {
		return mapped, true
	}
	return "", false
}
