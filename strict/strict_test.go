package strict_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/mumingpo/primate"
	"github.com/mumingpo/primate/strict"
)

func TestString(t *testing.T) {
	if v, err := strict.String().Deserialize("x"); err != nil || v != "x" {
		t.Fatalf("unexpected: v=%q err=%v", v, err)
	}
	_, err := strict.String().Deserialize(1.0)
	if err == nil {
		t.Fatalf("numbers are not strings")
	}
	if err.Error() != `stringCodec(strict) can only deserialize objects of type "string", not number.` {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if strict.String().Name() != "stringCodec(strict)" {
		t.Fatalf("unexpected name %q", strict.String().Name())
	}
}

func TestBool(t *testing.T) {
	if v, err := strict.Bool().Deserialize(true); err != nil || !v {
		t.Fatalf("unexpected: v=%v err=%v", v, err)
	}
	for _, raw := range []any{"true", 1.0, nil} {
		if _, err := strict.Bool().Deserialize(raw); !errors.Is(err, &primate.Error{Code: primate.CodeInvalidType}) {
			t.Fatalf("expected invalid_type for %#v, got %v", raw, err)
		}
	}
}

func TestNumber(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{1.5, 1.5},
		{3, 3},
		{int64(-4), -4},
		{uint8(7), 7},
		{float32(0.5), 0.5},
		{json.Number("2.25"), 2.25},
	}
	for _, tc := range cases {
		got, err := strict.Number().Deserialize(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("Deserialize(%#v)=%v,%v want %v", tc.in, got, err, tc.want)
		}
	}
	for _, raw := range []any{"1", true, nil, json.Number("x")} {
		if _, err := strict.Number().Deserialize(raw); err == nil {
			t.Fatalf("expected failure for %#v", raw)
		}
	}
}

func TestInt(t *testing.T) {
	if v, err := strict.Int().Deserialize(42.0); err != nil || v != 42 {
		t.Fatalf("unexpected: v=%v err=%v", v, err)
	}
	for _, raw := range []any{42.5, "42", 1e19} {
		if _, err := strict.Int().Deserialize(raw); err == nil {
			t.Fatalf("expected failure for %#v", raw)
		}
	}
}

func TestSerializeIsIdentity(t *testing.T) {
	if v, _ := strict.Number().Serialize(2); v != 2 {
		t.Fatalf("unexpected %v", v)
	}
	if v, _ := strict.Bool().Serialize(false); v {
		t.Fatalf("unexpected %v", v)
	}
	if v, _ := strict.Int().Serialize(-1); v != -1 {
		t.Fatalf("unexpected %v", v)
	}
}

func TestAsFloat(t *testing.T) {
	if _, ok := strict.AsFloat("1"); ok {
		t.Fatalf("strings are not numbers")
	}
	if f, ok := strict.AsFloat(uint64(9)); !ok || f != 9 {
		t.Fatalf("unexpected %v %v", f, ok)
	}
}

func TestInt_Boundaries(t *testing.T) {
	for _, n := range []int64{math.MaxInt64, math.MinInt64, 1<<53 + 1, -(1<<53 + 1), 0} {
		p, err := strict.Int().Serialize(n)
		if err != nil {
			t.Fatalf("serialize %d: %v", n, err)
		}
		got, err := strict.Int().Deserialize(p)
		if err != nil || got != n {
			t.Fatalf("round trip %d: got %d err=%v", n, got, err)
		}
	}
	accept := []struct {
		in   any
		want int64
	}{
		{json.Number("9223372036854775807"), math.MaxInt64},
		{json.Number("9007199254740993"), 1<<53 + 1},
		{json.Number("1e3"), 1000},
		{uint64(math.MaxInt64), math.MaxInt64},
		{int8(-3), -3},
		{float32(16), 16},
	}
	for _, tc := range accept {
		got, err := strict.Int().Deserialize(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("Deserialize(%#v)=%d,%v want %d", tc.in, got, err, tc.want)
		}
	}
	for _, raw := range []any{
		uint64(math.MaxUint64), json.Number("9223372036854775808"), json.Number("1.5"),
		9.3e18, math.NaN(), math.Inf(1),
	} {
		if _, err := strict.Int().Deserialize(raw); err == nil {
			t.Fatalf("expected failure for %#v", raw)
		}
	}
}
