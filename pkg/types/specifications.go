package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// SpecKind identifies which variant a SpecValue carries.
type SpecKind uint8

const (
	SpecInvalid SpecKind = iota
	SpecString
	SpecNumber
	SpecBool
)

// SpecValue is a buyer-chosen option value: a string, a number or a boolean.
type SpecValue struct {
	kind SpecKind
	str  string
	num  float64
	b    bool
}

func StringSpec(v string) SpecValue  { return SpecValue{kind: SpecString, str: v} }
func NumberSpec(v float64) SpecValue { return SpecValue{kind: SpecNumber, num: v} }
func BoolSpec(v bool) SpecValue      { return SpecValue{kind: SpecBool, b: v} }

func (v SpecValue) Kind() SpecKind { return v.kind }

// Str returns the string variant and whether v holds one.
func (v SpecValue) Str() (string, bool) { return v.str, v.kind == SpecString }

// Num returns the numeric variant and whether v holds one.
func (v SpecValue) Num() (float64, bool) { return v.num, v.kind == SpecNumber }

// Bool returns the boolean variant and whether v holds one.
func (v SpecValue) Bool() (bool, bool) { return v.b, v.kind == SpecBool }

// Equal compares kind and payload. A number never equals a string spelling of
// it. NaN equals NaN so such lines still merge.
func (v SpecValue) Equal(other SpecValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case SpecString:
		return v.str == other.str
	case SpecNumber:
		return v.num == other.num || (math.IsNaN(v.num) && math.IsNaN(other.num))
	case SpecBool:
		return v.b == other.b
	default:
		return true
	}
}

func (v SpecValue) String() string {
	switch v.kind {
	case SpecString:
		return v.str
	case SpecNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case SpecBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

func (v SpecValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case SpecString:
		return json.Marshal(v.str)
	case SpecNumber:
		return json.Marshal(v.num)
	case SpecBool:
		return json.Marshal(v.b)
	default:
		return nil, fmt.Errorf("specification value has no variant")
	}
}

func (v *SpecValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("specification value is empty")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringSpec(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolSpec(b)
	case 'n', '[', '{':
		return fmt.Errorf("specification values must be string, number or boolean")
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = NumberSpec(n)
	}
	return nil
}

// Specifications maps option names (size, color, custom text) to their values.
// They are part of a cart line's identity.
type Specifications map[string]SpecValue

// Equal reports structural equality. Nil and empty are equal.
func (s Specifications) Equal(other Specifications) bool {
	if len(s) != len(other) {
		return false
	}
	for key, value := range s {
		candidate, ok := other[key]
		if !ok || !value.Equal(candidate) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy; nil stays nil.
func (s Specifications) Clone() Specifications {
	if s == nil {
		return nil
	}
	out := make(Specifications, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Canonical renders a stable key=value form with sorted keys, used in logs and ids.
func (s Specifications) Canonical() string {
	if len(s) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var buf bytes.Buffer
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(';')
		}
		buf.WriteString(strconv.Quote(k))
		buf.WriteByte('=')
		value := s[k]
		switch value.kind {
		case SpecString:
			buf.WriteString(strconv.Quote(value.str))
		default:
			buf.WriteString(value.String())
		}
	}
	return buf.String()
}
