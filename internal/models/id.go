package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
)

// ID is an opaque identifier assigned by the booking API. The API emits both numeric and string
// identifiers depending on the resource, so both decode into the same type.
type ID string

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes identifiers that are JSON number literals back as numbers, exactly as they were
// decoded (7, 7.0, 1e3, integers past int64), so PUT bodies keep the shape the API sent.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

// IsZero reports whether no identifier is set (the "null" selection of a dialog).
func (id ID) IsZero() bool { return id == "" }

// jsonNumber is the JSON number grammar (RFC 8259 section 6).
var jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

func (id ID) numeric() bool {
	return jsonNumber.MatchString(string(id))
}
