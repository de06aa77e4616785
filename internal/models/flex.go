package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexFloat decodes from a JSON number, a numeric string, or null. Anything
// unparseable coerces to 0 so a malformed row never poisons an aggregate.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat(coerceFloat(data))
	return nil
}

// FlexInt decodes under the same coercion rules as FlexFloat, truncating
// fractional values.
type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	*i = FlexInt(coerceFloat(data))
	return nil
}

func coerceFloat(data []byte) float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0
	}
	s := string(data)
	if strings.HasPrefix(s, `"`) {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return 0
		}
		s = strings.TrimSpace(unquoted)
		if s == "" {
			return 0
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// rowEnvelope accepts either a bare JSON array or a {"rows": [...]} wrapper,
// which is how the snapshot exporter has emitted collections across seasons.
func unmarshalRows(data []byte, dest interface{}) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '[' {
		return json.Unmarshal(data, dest)
	}
	var envelope struct {
		Rows json.RawMessage `json:"rows"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	if len(envelope.Rows) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Rows, dest)
}
