package jsonval

import (
	"encoding/json"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
		out   string
	}{
		{"null", `null`, KindNull, `null`},
		{"bool", `true`, KindBool, `true`},
		{"integer", `42`, KindNumber, `42`},
		{"big integer", `9007199254740993`, KindNumber, `9007199254740993`},
		{"float", `2.5`, KindNumber, `2.5`},
		{"string", `"hello"`, KindString, `"hello"`},
		{"array", `[1,"two",null]`, KindArray, `[1,"two",null]`},
		{"object", `{"a":1}`, KindObject, `{"a":1}`},
		{"nested", `{"a":[{"b":false}]}`, KindObject, `{"a":[{"b":false}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if v.Kind() != tt.kind {
				t.Fatalf("Kind = %v, want %v", v.Kind(), tt.kind)
			}
			if got := v.String(); got != tt.out {
				t.Fatalf("String = %s, want %s", got, tt.out)
			}
		})
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ``},
		{"garbage", `{"a":`},
		{"trailing value", `1 2`},
		{"trailing text", `{} nonsense`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.input)); err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}
		})
	}
}

func TestAsInt(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		n    int64
		ok   bool
	}{
		{"integer", Int(7), 7, true},
		{"negative", Int(-3), -3, true},
		{"zero", Int(0), 0, true},
		{"float literal", Number(json.Number("2.5")), 0, false},
		{"whole float", Number(json.Number("2.0")), 0, false},
		{"string", String("12"), 0, false},
		{"null", Null(), 0, false},
		{"bool", Bool(true), 0, false},
		{"object", Object(map[string]Value{"a": Int(1)}), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := tt.v.AsInt()
			if n != tt.n || ok != tt.ok {
				t.Fatalf("AsInt = (%d, %v), want (%d, %v)", n, ok, tt.n, tt.ok)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	a, err := Parse([]byte(`{"x":[1,2,{"y":"z"}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := Parse([]byte(`{"x":[1,2,{"y":"z"}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if !a.Equal(b) {
		t.Fatalf("identical documents compare unequal")
	}
	if a.Equal(String("other")) {
		t.Fatalf("object equals string")
	}
	if Int(1).Equal(Number(json.Number("1.0"))) {
		t.Fatalf("1 should not equal 1.0 (textual number compare)")
	}
}

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	if !v.IsNull() {
		t.Fatalf("zero Value is not null")
	}
	if got := v.String(); got != "null" {
		t.Fatalf("String = %s, want null", got)
	}
}

func TestUnmarshalIntoStruct(t *testing.T) {
	var payload struct {
		Value Value `json:"value"`
	}
	if err := json.Unmarshal([]byte(`{"value":{"count":3}}`), &payload); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if payload.Value.Kind() != KindObject {
		t.Fatalf("Kind = %v, want object", payload.Value.Kind())
	}

	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"value":{"count":3}}` {
		t.Fatalf("Marshal = %s", out)
	}
}
