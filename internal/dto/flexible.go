package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexibleFloat accepts a JSON number, a numeric string or null.
type FlexibleFloat float64

func (f *FlexibleFloat) UnmarshalJSON(data []byte) error {
	raw, err := unquoteNumber(data)
	if err != nil || raw == "" {
		*f = 0
		return err
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", data, err)
	}

	*f = FlexibleFloat(v)
	return nil
}

// FlexibleInt accepts a JSON integer, a numeric string or null. Fractions are truncated.
type FlexibleInt int64

func (i *FlexibleInt) UnmarshalJSON(data []byte) error {
	raw, err := unquoteNumber(data)
	if err != nil || raw == "" {
		*i = 0
		return err
	}

	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*i = FlexibleInt(v)
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s: %w", data, err)
	}

	*i = FlexibleInt(int64(v))
	return nil
}

// FlexibleBool accepts true/false, 0/1 and their string forms.
type FlexibleBool bool

func (b *FlexibleBool) UnmarshalJSON(data []byte) error {
	raw, err := unquoteNumber(data)
	if err != nil {
		return err
	}

	switch strings.ToLower(raw) {
	case "", "0", "false":
		*b = false
	case "1", "true":
		*b = true
	default:
		return fmt.Errorf("invalid boolean %s", data)
	}

	return nil
}

func unquoteNumber(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}

	return string(data), nil
}
