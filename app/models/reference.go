package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Identifiable is implemented by the values a Reference can expand to.
type Identifiable interface {
	RefID() string
}

// Reference points at another entity by id. When Expanded is set the
// reference also carries the entity's display fields and is encoded as an
// object; otherwise it is encoded as the bare id string.
type Reference[T Identifiable] struct {
	ID       string
	Expanded *T
}

// RefTo returns a collapsed reference.
func RefTo[T Identifiable](id string) Reference[T] {
	return Reference[T]{ID: id}
}

// Expand returns a reference carrying v. The id is taken from v.
func Expand[T Identifiable](v T) Reference[T] {
	return Reference[T]{ID: v.RefID(), Expanded: &v}
}

// IsZero reports whether the reference points at nothing.
func (r Reference[T]) IsZero() bool {
	return r.ID == "" && r.Expanded == nil
}

// IsExpanded reports whether the display fields are present.
func (r Reference[T]) IsExpanded() bool {
	return r.Expanded != nil
}

// Collapse drops the display fields and keeps the id.
func (r Reference[T]) Collapse() Reference[T] {
	return Reference[T]{ID: r.ID}
}

// MarshalJSON encodes the reference as an id string or an object.
func (r Reference[T]) MarshalJSON() ([]byte, error) {
	if r.Expanded != nil {
		return json.Marshal(r.Expanded)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// UnmarshalJSON accepts either an id string or an expanded object.
func (r *Reference[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*r = Reference[T]{}
		return nil
	case data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Reference[T]{ID: id}
		return nil
	case data[0] == '{':
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*r = Expand(v)
		return nil
	default:
		return fmt.Errorf("reference must be a string or an object, got %s", data)
	}
}
