package dto

import (
	"fmt"
	"strconv"
	"time"
)

type CountResponse struct {
	Count int64 `json:"count"`
}

// dateTimeLayouts are tried in order. The zone-less form is read as UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// DateTime accepts RFC 3339 timestamps as well as local date-times such as
// "2025-12-15T20:00:00".
type DateTime struct {
	time.Time
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("parsing time %s: json: cannot unmarshal non-string into DateTime", b)
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("parsing time %q: expected format 2006-01-02T15:04:05", s)
}
