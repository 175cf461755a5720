package analytics

import (
	"bytes"
	"encoding/json"
	"math"
)

// Price is a leniently decoded price. Anything that is not a JSON
// number (strings, null, objects) decodes to "no price" instead of
// failing the whole payload.
type Price struct {
	Value float64
	Valid bool
}

func (p *Price) UnmarshalJSON(data []byte) error {
	*p = Price{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == 'n' {
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	p.Value, p.Valid = v, true
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid || math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(p.Value)
}

// RecordEvent is the part of an event the analytics care about.
type RecordEvent struct {
	Price Price `json:"price"`
}

// Record is a booking as posted by a client: { "event": { "price": 120 } }.
// Other fields are ignored.
type Record struct {
	Event *RecordEvent `json:"event"`
}

func (r Record) EventPrice() (float64, bool) {
	if r.Event == nil || !r.Event.Price.Valid {
		return 0, false
	}
	return r.Event.Price.Value, true
}
