package jtree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSealed(t *testing.T) {
	// Compile-time check via assignment: all node types implement Value.
	var _ Value = Null{}
	var _ Value = Bool(true)
	var _ Value = Int(42)
	var _ Value = Float(3.14)
	var _ Value = String("test")
	var _ Value = Array{Int(1)}
	var _ Value = NewObject()
}

func TestObjectInsertionOrder(t *testing.T) {
	obj := NewObject().
		Set("zebra", String("z")).
		Set("apple", String("a")).
		Set("mango", String("m"))

	assert.Equal(t, []string{"zebra", "apple", "mango"}, obj.Keys())

	// Overwriting keeps the original position.
	obj.Set("apple", String("A"))
	assert.Equal(t, []string{"zebra", "apple", "mango"}, obj.Keys())

	v, ok := obj.Get("apple")
	require.True(t, ok)
	assert.Equal(t, String("A"), v)
}

func TestObjectPresenceVsNull(t *testing.T) {
	obj := NewObject().Set("present", Null{})

	v, ok := obj.Get("present")
	assert.True(t, ok)
	assert.Equal(t, Null{}, v)

	_, ok = obj.Get("absent")
	assert.False(t, ok)
	assert.False(t, obj.Has("absent"))
}

func TestSortedKeysUTF16Order(t *testing.T) {
	// U+E000 (BMP private use) sorts after U+10000 (surrogate pair starting
	// 0xD800) under UTF-16 code-unit order; UTF-8 byte order says otherwise.
	obj := NewObject().
		Set("", Int(1)).
		Set("𐀀", Int(2))

	assert.Equal(t, []string{"𐀀", ""}, obj.SortedKeys())
}

func TestMarshalCompact(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"null", Null{}, `null`},
		{"true", Bool(true), `true`},
		{"false", Bool(false), `false`},
		{"int", Int(-42), `-42`},
		{"float", Float(3.14), `3.14`},
		{"integral float keeps fraction", Float(5), `5.0`},
		{"string", String("hello"), `"hello"`},
		{"empty string", String(""), `""`},
		{"empty array", Array{}, `[]`},
		{"empty object", NewObject(), `{}`},
		{
			"insertion order",
			NewObject().Set("b", Int(1)).Set("a", Int(2)),
			`{"b":1,"a":2}`,
		},
		{
			"nested",
			NewObject().Set("values", Array{String("x"), NewObject().Set("k", Null{})}),
			`{"values":["x",{"k":null}]}`,
		},
		{"no html escaping", String("<a & b>"), `"<a & b>"`},
		{"control escape", String("a\tb\nc"), `"a\tb\nc"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Marshal(Float(f))
		require.Error(t, err)
	}
}

func TestMarshalCanonicalSortsKeys(t *testing.T) {
	obj := NewObject().
		Set("zebra", String("z")).
		Set("apple", String("a")).
		Set("mango", String("m"))

	got, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"apple":"a","mango":"m","zebra":"z"}`, string(got))

	// Compact marshal keeps insertion order for the same tree.
	got, err = Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":"z","apple":"a","mango":"m"}`, string(got))
}

func TestMarshalCanonicalNormalizesNFC(t *testing.T) {
	// "e" + combining acute (NFD) normalizes to the precomposed "é" (NFC).
	decomposed := String("é")
	got, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	assert.Equal(t, "\"é\"", string(got))

	// Compact marshal leaves the input bytes alone.
	got, err = Marshal(decomposed)
	require.NoError(t, err)
	assert.Equal(t, "\"é\"", string(got))
}

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Value
	}{
		{"null", `null`, Null{}},
		{"bool", `true`, Bool(true)},
		{"int", `42`, Int(42)},
		{"negative int", `-7`, Int(-7)},
		{"float", `3.5`, Float(3.5)},
		{"integral-with-fraction is float", `5.0`, Float(5)},
		{"exponent is float", `1e3`, Float(1000)},
		{"string", `"hi"`, String("hi")},
		{"array", `[1,"a",null]`, Array{Int(1), String("a"), Null{}}},
		{"empty array", `[]`, Array{}},
		{
			"object keeps order",
			`{"b":1,"a":2}`,
			NewObject().Set("b", Int(1)).Set("a", Int(2)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unmarshal([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty input", ``},
		{"trailing data", `{} []`},
		{"duplicate key", `{"a":1,"a":2}`},
		{"bare word", `nope`},
		{"unterminated", `{"a":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.in))
			require.Error(t, err)
		})
	}
}

func TestUnmarshalBigIntegerDegradesToFloat(t *testing.T) {
	// One past max int64: integral literal, but out of range.
	got, err := Unmarshal([]byte(`9223372036854775808`))
	require.NoError(t, err)
	_, isFloat := got.(Float)
	assert.True(t, isFloat, "expected Float, got %T", got)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Value
	}{
		{"scalars", Array{Null{}, Bool(false), Int(12), Float(0.5), String("s")}},
		{
			"nested object",
			NewObject().Set("outer", NewObject().Set("inner", Array{Int(1), Int(2)})),
		},
		{"integral float", Float(10)},
		{"unicode", String("äöü 𐀀 <>&")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Marshal(tt.v)
			require.NoError(t, err)

			back, err := Unmarshal(data)
			require.NoError(t, err)
			assert.Equal(t, tt.v, back)
		})
	}
}
