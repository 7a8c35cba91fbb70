package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexBool accepts JSON booleans as well as the strings forms clients send
// from form controls ("yes", "no", "true", "1", ...). null and "" decode to false.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch t := v.(type) {
	case bool:
		*b = FlexBool(t)
		return nil
	case float64:
		*b = t != 0
		return nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "yes", "y", "true", "1", "on":
			*b = true
			return nil
		case "no", "n", "false", "0", "off", "":
			*b = false
			return nil
		}
		return fmt.Errorf("invalid boolean %q", t)
	}
	return fmt.Errorf("invalid boolean %s", string(data))
}

// FlexInt accepts a JSON number or a numeric string. Blank values decode to nil.
// Values must fit in a 32-bit column.
type FlexInt struct {
	Value *int
}

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch t := v.(type) {
	case float64:
		if t < math.MinInt32 || t > math.MaxInt32 || t != math.Trunc(t) {
			return fmt.Errorf("invalid integer %s", string(data))
		}
		i := int(t)
		n.Value = &i
		return nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			n.Value = nil
			return nil
		}
		i64, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid integer %q", t)
		}
		i := int(i64)
		n.Value = &i
		return nil
	}
	return fmt.Errorf("invalid integer %s", string(data))
}

func (n FlexInt) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(*n.Value)), nil
}

// FlexString accepts strings and numbers, which clients use interchangeably
// for phone numbers, national ids and salaries.
type FlexString struct {
	Value *string
}

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		s.Value = nil
		return nil
	}

	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch t := v.(type) {
	case string:
		s.Value = &t
		return nil
	case json.Number:
		str := t.String()
		s.Value = &str
		return nil
	}
	return fmt.Errorf("invalid string %s", string(data))
}

func (s FlexString) MarshalJSON() ([]byte, error) {
	if s.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*s.Value)
}

// ValidationValue is the form that gets stored: trimmed, with blank and
// missing both reported as "".
func (s FlexString) ValidationValue() interface{} {
	if p := s.Ptr(); p != nil {
		return *p
	}
	return ""
}

// Ptr returns the value with surrounding space removed, or nil when blank.
func (s FlexString) Ptr() *string {
	if s.Value == nil {
		return nil
	}
	v := strings.TrimSpace(*s.Value)
	if v == "" {
		return nil
	}
	return &v
}
