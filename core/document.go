package core

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// Document is an explicitly-opaque JSON object: it is stored and returned
// as-is without server-side interpretation (eg. payment metadata).
type Document map[string]interface{}

var (
	_ driver.Valuer = (Document)(nil)
	_ json.Marshaler = (Document)(nil)
)

func (d Document) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(map[string]interface{}(d))
}

func (d *Document) Scan(src interface{}) error {
	if src == nil {
		*d = nil
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return errors.Errorf("core.Document: cannot scan %T", src)
	}
	return json.Unmarshal(data, (*map[string]interface{})(d))
}

func (d Document) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]interface{}(d))
}
