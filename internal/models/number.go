package models

import (
	"bytes"
	"fmt"
	"math"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// maxExactNumber bounds accepted values to integers a float64 holds exactly.
const maxExactNumber = 1 << 53

// Number is an optional numeric payload field. Form inputs arrive either as
// JSON numbers or as numeric strings; an empty string or null is absent.
type Number struct {
	value float64
	set   bool
}

func NewNumber(v float64) Number {
	return Number{value: v, set: true}
}

func (n Number) Present() bool {
	return n.set
}

func (n Number) Float() float64 {
	return n.value
}

func (n Number) Int() int64 {
	return int64(math.Round(n.value))
}

// Value returns the number as an int64 when it has no fractional part.
func (n Number) Value() any {
	if n.value == math.Trunc(n.value) && math.Abs(n.value) <= maxExactNumber {
		return n.Int()
	}
	return n.value
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if s, ok := raw.(string); ok && s == "" {
		*n = Number{}
		return nil
	}

	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return fmt.Errorf("invalid number %s", data)
	}
	if math.IsNaN(v) || math.Abs(v) > maxExactNumber {
		return fmt.Errorf("invalid number %s", data)
	}
	*n = Number{value: v, set: true}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value())
}
