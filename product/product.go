package product

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is the opaque identifier of a product.
//
// The API sends it either as a JSON number or a JSON string. Both are
// accepted and kept in their textual form; ID is only used as a render key.
type ID string

// UnmarshalJSON implements json.Unmarshaler for ID.
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

// String returns the textual form of the identifier.
func (id ID) String() string {
	return string(id)
}

// Product is a single catalog record.
//
// Products are read-only values; the remote API is the source of truth and
// the whole list is replaced on every successful fetch.
type Product struct {
	ID       ID      `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}
