package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"produce-backend/internal/timeutil"

	"github.com/shopspring/decimal"
)

// Numeric is a lenient JSON number. The upstream API sends amounts as
// numbers, quoted strings, empty strings or null depending on the endpoint;
// none of those shapes fail decoding. Valid is false when the value could not
// be read, Present is false when the key was absent.
type Numeric struct {
	Value   decimal.Decimal
	Valid   bool
	Present bool
	Raw     string
}

func NewNumeric(d decimal.Decimal) Numeric {
	return Numeric{Value: d, Valid: true, Present: true, Raw: d.String()}
}

func (n *Numeric) UnmarshalJSON(b []byte) error {
	n.Present = true
	n.Valid = false
	n.Value = decimal.Zero

	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		n.Raw = raw
		return nil
	}
	s := strings.TrimSpace(strings.Trim(raw, `"`))
	s = strings.ReplaceAll(s, ",", "")
	n.Raw = s
	if s == "" {
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	n.Value = d
	n.Valid = true
	return nil
}

func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Text is a lenient JSON string: numbers are accepted and kept as their literal.
// Codes such as customer_code are numeric on some endpoints.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(strings.TrimSpace(s))
		return nil
	}
	*t = Text(string(b))
	return nil
}

func (t Text) String() string { return string(t) }

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000000Z",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// Timestamp accepts the date shapes the upstream API emits. Values without a
// zone are business-local. Unparseable or empty values leave it zero.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	t.Time = time.Time{}
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, timeutil.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}
