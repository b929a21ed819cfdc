package state

import (
	"encoding/json"
	"strings"

	"github.com/abhisek/bibletrack/internal/nested"
)

// KeySeparator joins path segments into durable store keys. It never occurs
// in book ids, field names, or generated profile ids.
const KeySeparator = "$"

// Path addresses one value in the state tree.
type Path []string

// Key returns the durable store key for p.
func (p Path) Key() string {
	return strings.Join(p, KeySeparator)
}

// ParseKey splits a durable store key back into a path.
func ParseKey(key string) Path {
	return strings.Split(key, KeySeparator)
}

// ProfilePath returns the path of keys within profile id.
func ProfilePath(id string, keys ...string) Path {
	return append(Path{"profiles", id}, keys...)
}

// ProfileKeyPrefix returns the key prefix shared by every value stored for
// profile id.
func ProfileKeyPrefix(id string) string {
	return "profiles" + KeySeparator + id + KeySeparator
}

// Apply writes raw into st at path. It is the only way values enter the
// state tree, whether replayed from storage or set live.
func Apply(st *State, path Path, raw json.RawMessage) error {
	return nested.Set(st, path, raw)
}
