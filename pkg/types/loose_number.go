package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// LooseNumber accepts a JSON number or a numeric string. Anything else
// (null, non-numeric text, booleans, objects) decodes to an invalid value
// instead of failing the whole body, mirroring how form widgets submit
// numbers.
type LooseNumber struct {
	Value float64
	Valid bool
}

// NewLooseNumber returns a valid LooseNumber holding v.
func NewLooseNumber(v float64) LooseNumber {
	return LooseNumber{Value: v, Valid: true}
}

func (n *LooseNumber) UnmarshalJSON(data []byte) error {
	*n = LooseNumber{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var raw any
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		n.set(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			// An empty string is a zero, not a missing value.
			n.set(0)
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			n.set(f)
		}
	}
	return nil
}

func (n LooseNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Positive returns the value when it is valid and strictly positive.
func (n LooseNumber) Positive() (float64, bool) {
	if !n.Valid || n.Value <= 0 {
		return 0, false
	}
	return n.Value, true
}

func (n *LooseNumber) set(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	n.Value = v
	n.Valid = true
}
