package contentsync

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// ChildID identifies a child entity in a submitted document. It is either
// Identified (a row id the store assigned) or Pending (a key the editor UI
// made up for an entity that was never saved). The zero value is neither.
type ChildID struct {
	persisted uint
	token     string
}

func Identified(id uint) ChildID {
	return ChildID{persisted: id}
}

func Pending(token string) ChildID {
	return ChildID{token: token}
}

// Persisted returns the store id when the entity has one.
func (c ChildID) Persisted() (uint, bool) {
	return c.persisted, c.persisted != 0
}

// Token returns the client-side key of a pending entity.
func (c ChildID) Token() string { return c.token }

func (c ChildID) IsZero() bool { return c.persisted == 0 && c.token == "" }

func (c ChildID) MarshalJSON() ([]byte, error) {
	switch {
	case c.persisted != 0:
		return []byte(strconv.FormatUint(uint64(c.persisted), 10)), nil
	case c.token != "":
		return json.Marshal(c.token)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, a positive integer, or a string. Strings that
// hold a positive integer are read as persisted ids.
func (c *ChildID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*c = ChildID{}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if n, err := strconv.ParseUint(s, 10, 64); err == nil && n > 0 {
			c.persisted = uint(n)
			return nil
		}
		c.token = s
		return nil
	}

	n, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil || n == 0 {
		return &json.UnmarshalTypeError{
			Value: "number " + string(data),
			Type:  reflect.TypeOf(ChildID{}),
		}
	}
	c.persisted = uint(n)
	return nil
}
