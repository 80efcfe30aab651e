package jsonval

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// Kind identifies which JSON variant a Value holds.
type Kind int

// The six JSON kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an arbitrary JSON value. The zero Value is JSON null.
type Value struct {
	kind    Kind
	boolVal bool
	numVal  json.Number
	strVal  string
	arrVal  []Value
	objVal  map[string]Value
}

// Null returns the JSON null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a JSON boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolVal: b}
}

// Int returns a JSON number value holding the given integer.
func Int(n int64) Value {
	return Value{kind: KindNumber, numVal: json.Number(strconv.FormatInt(n, 10))}
}

// Number returns a JSON number value from its textual form.
func Number(n json.Number) Value {
	return Value{kind: KindNumber, numVal: n}
}

// String returns a JSON string value.
func String(s string) Value {
	return Value{kind: KindString, strVal: s}
}

// Array returns a JSON array value.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arrVal: items}
}

// Object returns a JSON object value.
func Object(fields map[string]Value) Value {
	return Value{kind: KindObject, objVal: fields}
}

// Parse decodes a single JSON value from data.
// Trailing non-whitespace after the value is an error.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, err
	}
	if dec.More() {
		return Value{}, errors.New("jsonval: trailing data after JSON value")
	}

	return fromAny(raw), nil
}

// Kind returns the JSON kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsInt returns the value as an int64 if it is a number with an exact
// integer representation. Floats such as 2.5 or 2.0 do not qualify.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	n, err := strconv.ParseInt(v.numVal.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Equal reports deep equality of two values. Numbers compare by their
// textual form, so 1 and 1.0 are not equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolVal == o.boolVal
	case KindNumber:
		return v.numVal == o.numVal
	case KindString:
		return v.strVal == o.strVal
	case KindArray:
		if len(v.arrVal) != len(o.arrVal) {
			return false
		}
		for i := range v.arrVal {
			if !v.arrVal[i].Equal(o.arrVal[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.objVal) != len(o.objVal) {
			return false
		}
		for k, val := range v.objVal {
			other, ok := o.objVal[k]
			if !ok || !val.Equal(other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String returns the compact JSON encoding of the value.
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "null"
	}
	return string(b)
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.boolVal)
	case KindNumber:
		if v.numVal == "" {
			return []byte("0"), nil
		}
		return []byte(v.numVal), nil
	case KindString:
		return json.Marshal(v.strVal)
	case KindArray:
		if v.arrVal == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.arrVal)
	case KindObject:
		if v.objVal == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.objVal)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	*v = fromAny(raw)
	return nil
}

// fromAny converts the output of encoding/json (with UseNumber) to a Value.
func fromAny(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(x)
	case json.Number:
		return Number(x)
	case string:
		return String(x)
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = fromAny(item)
		}
		return Value{kind: KindArray, arrVal: items}
	case map[string]any:
		fields := make(map[string]Value, len(x))
		for k, item := range x {
			fields[k] = fromAny(item)
		}
		return Value{kind: KindObject, objVal: fields}
	default:
		return Null()
	}
}
