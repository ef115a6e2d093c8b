package jtree

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Marshal serializes v to compact JSON with object keys in insertion order.
// No HTML escaping is applied: <, >, and & pass through verbatim so encoded
// header labels and free text survive a byte-for-byte round trip.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := write(&buf, v, false); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalCanonical serializes v to a deterministic canonical form:
// object keys sorted by UTF-16 code units, strings NFC-normalized, no HTML
// escaping, no insignificant whitespace. Two structurally equal trees always
// produce identical bytes, which is what golden snapshots and stored cell
// payloads compare against.
func MarshalCanonical(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := write(&buf, v, true); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func write(buf *bytes.Buffer, v Value, canonical bool) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("jtree: cannot marshal untyped nil; use Null{}")
	case Null:
		buf.WriteString("null")
	case Bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case Float:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("jtree: %v is not representable in JSON", f)
		}
		buf.WriteString(formatFloat(f))
	case String:
		writeString(buf, string(val), canonical)
	case Array:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := write(buf, elem, canonical); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case *Object:
		buf.WriteByte('{')
		keys := val.keys
		if canonical {
			keys = val.SortedKeys()
		}
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, k, canonical)
			buf.WriteByte(':')
			if err := write(buf, val.fields[k], canonical); err != nil {
				return fmt.Errorf("object[%q]: %w", k, err)
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("jtree: unknown Value type: %T", v)
	}
	return nil
}

// formatFloat renders a float as a JSON number. An integral float keeps a
// trailing ".0" so re-parsing yields Float again, not Int.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// writeString emits a JSON string escaping only what the grammar requires:
// quote, backslash, and control characters below U+0020. Nothing else is
// escaped - in particular no U+2028/U+2029 and no HTML characters - which is
// the behavior canonical JSON specifies and what keeps output stable across
// encoder implementations.
func writeString(buf *bytes.Buffer, s string, canonical bool) {
	if canonical {
		s = norm.NFC.String(s)
	}
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}
