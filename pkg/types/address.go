package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Address is the shipping destination captured at checkout. Stored as a JSON
// column so the same model works on Postgres (jsonb) and SQLite (text).
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

func (a Address) Value() (driver.Value, error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("address: marshal: %w", err)
	}
	return string(raw), nil
}

func (a *Address) Scan(src any) error {
	if src == nil {
		*a = Address{}
		return nil
	}
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), a)
	case []byte:
		return json.Unmarshal(v, a)
	default:
		return fmt.Errorf("address: unsupported Scan type %T", src)
	}
}
