package jtree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Unmarshal parses JSON into a Value tree.
//
// Object key order is preserved as encountered, numbers without a fraction or
// exponent become Int (falling back to Float when they overflow int64), and
// a duplicate object key is an error rather than a silent overwrite.
func Unmarshal(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	// Reject trailing content after the top-level value.
	if _, err := dec.Token(); err == nil {
		return nil, fmt.Errorf("jtree: trailing data after top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("jtree: %w", err)
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("jtree: unexpected delimiter %q", t.String())
		}
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return decodeNumber(t)
	case nil:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("jtree: unexpected token %v (%T)", tok, tok)
	}
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("jtree: object key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("jtree: object key is %T, want string", keyTok)
		}
		if obj.Has(key) {
			return nil, fmt.Errorf("jtree: duplicate object key %q", key)
		}

		val, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("jtree: object[%q]: %w", key, err)
		}
		obj.Set(key, val)
	}
	// Consume closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("jtree: object close: %w", err)
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (Array, error) {
	arr := Array{}
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("jtree: array[%d]: %w", len(arr), err)
		}
		arr = append(arr, val)
	}
	// Consume closing ']'.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("jtree: array close: %w", err)
	}
	return arr, nil
}

// decodeNumber maps an integral literal to Int and anything with a fraction
// or exponent to Float. Integral literals outside int64 range degrade to
// Float rather than failing, matching what a double-based consumer would see.
func decodeNumber(n json.Number) (Value, error) {
	s := string(n)
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return Int(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("jtree: invalid number %q: %w", s, err)
	}
	return Float(f), nil
}
