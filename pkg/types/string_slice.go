package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice is an ordered list of strings persisted as a JSON column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		s = StringSlice{}
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("string slice: marshal: %w", err)
	}
	return string(raw), nil
}

func (s *StringSlice) Scan(src any) error {
	if src == nil {
		*s = StringSlice{}
		return nil
	}
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), s)
	case []byte:
		return json.Unmarshal(v, s)
	default:
		return fmt.Errorf("string slice: unsupported Scan type %T", src)
	}
}
