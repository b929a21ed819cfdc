// Package nested writes values inside nested Go values addressed by
// an ordered key path.
//
// Structs are addressed by their json field names, maps by their keys
// (string or integer), and pointers and interfaces are followed
// transparently. Writes never create keys: the final key must already exist
// in its container, so a path that does not describe a known field fails
// instead of silently growing the tree.
package nested

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ErrEmptyPath is returned when Set is called without any keys.
var ErrEmptyPath = errors.New("nested: empty path")

// ErrNullValue is wrapped in a ValueError when a write would store null or
// leave a nil container behind.
var ErrNullValue = errors.New("null value")

// KeyMissingError reports a path segment that does not exist in its container.
type KeyMissingError struct {
	Key string
}

func (e *KeyMissingError) Error() string {
	return fmt.Sprintf("nested: key missing: %q", e.Key)
}

// ValueError reports a value that could not be decoded into the type of the
// field it addresses.
type ValueError struct {
	Key string
	Err error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("nested: bad value for %q: %v", e.Key, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// IsKeyMissing reports whether err (or anything it wraps) is a KeyMissingError.
func IsKeyMissing(err error) bool {
	var km *KeyMissingError
	return errors.As(err, &km)
}

// Set decodes raw into the location addressed by path within root, which must
// be a non-nil pointer. Every intermediate key and the final key must already
// exist.
func Set(root any, path []string, raw json.RawMessage) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}
	v := reflect.ValueOf(root)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("nested: root must be a non-nil pointer, got %T", root)
	}

	for _, key := range path[:len(path)-1] {
		next, ok := child(v, key)
		if !ok {
			return &KeyMissingError{Key: key}
		}
		v = next
	}

	last := path[len(path)-1]
	v, ok := indirect(v)
	if !ok {
		return &KeyMissingError{Key: last}
	}

	switch v.Kind() {
	case reflect.Struct:
		f, ok := field(v, last)
		if !ok {
			return &KeyMissingError{Key: last}
		}
		if !f.CanSet() {
			return fmt.Errorf("nested: %q is not settable", last)
		}
		nv, err := decode(f.Type(), raw)
		if err != nil {
			return &ValueError{Key: last, Err: err}
		}
		f.Set(nv)
		return nil

	case reflect.Map:
		if v.IsNil() {
			return &KeyMissingError{Key: last}
		}
		mk, ok := mapKey(v.Type().Key(), last)
		if !ok || !v.MapIndex(mk).IsValid() {
			return &KeyMissingError{Key: last}
		}
		nv, err := decode(v.Type().Elem(), raw)
		if err != nil {
			return &ValueError{Key: last, Err: err}
		}
		v.SetMapIndex(mk, nv)
		return nil
	}

	return &KeyMissingError{Key: last}
}

// child returns the value stored under key in the container v.
func child(v reflect.Value, key string) (reflect.Value, bool) {
	v, ok := indirect(v)
	if !ok {
		return reflect.Value{}, false
	}
	switch v.Kind() {
	case reflect.Struct:
		return field(v, key)
	case reflect.Map:
		mk, ok := mapKey(v.Type().Key(), key)
		if !ok {
			return reflect.Value{}, false
		}
		mv := v.MapIndex(mk)
		if !mv.IsValid() {
			return reflect.Value{}, false
		}
		return mv, true
	}
	return reflect.Value{}, false
}

// indirect follows pointers and interfaces. It fails on nil.
func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

// field finds the exported struct field whose json name is key.
func field(v reflect.Value, key string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		if name == key {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// mapKey converts a path segment to a value of the map's key type.
func mapKey(t reflect.Type, key string) (reflect.Value, bool) {
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(key).Convert(t), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(key, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(n).Convert(t), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(key, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(n).Convert(t), true
	}
	return reflect.Value{}, false
}

// decode unmarshals raw into a new value of type t. Null is refused, as is
// any value that would leave a nil map or pointer inside the tree.
func decode(t reflect.Type, raw json.RawMessage) (reflect.Value, error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return reflect.Value{}, ErrNullValue
	}
	nv := reflect.New(t)
	if err := json.Unmarshal(raw, nv.Interface()); err != nil {
		return reflect.Value{}, err
	}
	if hasNil(nv.Elem()) {
		return reflect.Value{}, ErrNullValue
	}
	return nv.Elem(), nil
}

// hasNil reports whether v holds a nil map or pointer at any depth.
// Nil slices are empty lists and allowed.
func hasNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Map:
		if v.IsNil() {
			return true
		}
		iter := v.MapRange()
		for iter.Next() {
			if hasNil(iter.Value()) {
				return true
			}
		}
	case reflect.Pointer:
		return v.IsNil() || hasNil(v.Elem())
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if hasNil(v.Index(i)) {
				return true
			}
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).IsExported() && hasNil(v.Field(i)) {
				return true
			}
		}
	}
	return false
}
