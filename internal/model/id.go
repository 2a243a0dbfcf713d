package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ID identifies a toy. json-server 0.x sends numbers, 1.x sends strings;
// both decode here. Numeric ids encode back as JSON numbers.
type ID string

var errNullID = errors.New("toy id: null")

func (id ID) String() string { return string(id) }

// Numeric reports whether id is the canonical decimal form of a
// non-negative integer. "0123" is not.
func (id ID) Numeric() bool {
	n, err := strconv.ParseUint(string(id), 10, 64)
	return err == nil && strconv.FormatUint(n, 10) == string(id)
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.Numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return errNullID
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("toy id: %w", err)
	}
	*id = ID(n.String())
	return nil
}
