package contact

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Input is a create or update request after transport decoding.
type Input struct {
	Name       string `validate:"required"`
	Email      string `validate:"required"`
	Phone      *string
	SalaryBase *float64
}

func (in Input) normalized() Input {
	out := Input{
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		SalaryBase: in.SalaryBase,
	}
	if in.Phone != nil {
		if p := strings.TrimSpace(*in.Phone); p != "" {
			out.Phone = &p
		}
	}
	return out
}

// ParseSalary accepts a JSON number or a numeric string. Anything else,
// including null or a missing value, yields nil.
func ParseSalary(raw json.RawMessage) *float64 {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var num float64
	if err := json.Unmarshal(trimmed, &num); err == nil {
		return &num
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}
