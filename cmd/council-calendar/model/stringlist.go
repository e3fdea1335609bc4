package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// StringList stores a list of tags in a single text column as a
// comma-separated value. Tags themselves never contain commas.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "", nil
	}
	return strings.Join(l, ","), nil
}

func (l *StringList) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	if raw == "" {
		*l = nil
		return nil
	}
	*l = strings.Split(raw, ",")
	return nil
}
