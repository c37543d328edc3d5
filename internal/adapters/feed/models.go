package feed

import (
	"encoding/json"
	"strconv"
	"strings"
)

type Response struct {
	Rank       []Entry `json:"rank"`
	LastUpdate string  `json:"last_update"`
}

type Entry struct {
	Name   string        `json:"name"`
	Points float64       `json:"points"`
	Kills  float64       `json:"kills"`
	Deaths float64       `json:"deaths"`
	KDR    OptionalFloat `json:"kdr"`
}

// OptionalFloat accepts a JSON number, a numeric string or null. Strings
// that are not numbers decode as absent rather than failing the payload.
type OptionalFloat struct {
	Value float64
	Valid bool
}

func (f *OptionalFloat) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" || raw == "" {
		*f = OptionalFloat{}
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*f = OptionalFloat{}
			return nil
		}
		*f = OptionalFloat{Value: v, Valid: true}
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = OptionalFloat{Value: v, Valid: true}
	return nil
}
