package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"slices"
	"strings"
)

var ErrStringSetScan = errors.New("a string set can only be scanned from a JSON array")

// StringSet is a set of strings, stored as a sorted JSON array.
type StringSet []string

// NewStringSet returns a sorted, de-duplicated set of the non-empty trimmed values.
func NewStringSet(values ...string) StringSet {
	set := make(StringSet, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		set = append(set, v)
	}

	slices.Sort(set)
	return slices.Compact(set)
}

// Has reports if the set contains v.
func (s StringSet) Has(v string) bool {
	_, found := slices.BinarySearch(s, v)
	return found
}

// MarshalJSON implements the json.Marshaler interface.
// A nil set is encoded as an empty array.
func (s StringSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}

	*s = NewStringSet(values...)
	return nil
}

// Scan writes the value from the database.
func (s *StringSet) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*s = StringSet{}
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return ErrStringSetScan
	}

	return s.UnmarshalJSON(data)
}

// Value returns the value for the SQL driver to write to the database.
func (s StringSet) Value() (driver.Value, error) {
	b, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// GormDataType defines the data type used by gorm for the type.
func (StringSet) GormDataType() string {
	return "text"
}
