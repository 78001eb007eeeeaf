package aptitude

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is an answer value: either a string (choice questions) or a number
// (scale questions). It encodes as a bare JSON string or number.
type Value struct {
	str   string
	num   float64
	isNum bool
}

// StringValue returns a string answer value.
func StringValue(s string) Value {
	return Value{str: s}
}

// NumberValue returns a numeric answer value.
func NumberValue(n float64) Value {
	return Value{num: n, isNum: true}
}

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool {
	return v.isNum
}

// Str returns the string form of a string value, or "" for numbers.
func (v Value) Str() string {
	if v.isNum {
		return ""
	}
	return v.str
}

// Float coerces v to a finite number. Strings are parsed after trimming
// whitespace. ok is false for empty or non-numeric strings, NaN, and
// infinities.
func (v Value) Float() (f float64, ok bool) {
	if v.isNum {
		f = v.num
	} else {
		s := strings.TrimSpace(v.str)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Equal reports whether v and o hold the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.isNum != o.isNum {
		return false
	}
	if v.isNum {
		return v.num == o.num
	}
	return v.str == o.str
}

func (v Value) String() string {
	if v.isNum {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.isNum {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.str)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("answer value must be a string or number: %s", data)
	}
	*v = NumberValue(n)
	return nil
}
