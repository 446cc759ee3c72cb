package models

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

var errUnexpectedToken = errors.New("unexpected JSON token")

// orderedObject keeps object keys in the order JavaScript enumerates them.
// A repeated key keeps its first position and takes the last value.
type orderedObject struct {
	keys   []string
	values map[string]any
}

func (o *orderedObject) set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// enumerationOrder puts array index keys first in ascending numeric order,
// followed by the remaining keys in insertion order.
func (o *orderedObject) enumerationOrder() []string {
	indexes := make([]string, 0)
	names := make([]string, 0, len(o.keys))
	for _, k := range o.keys {
		if isArrayIndex(k) {
			indexes = append(indexes, k)
		} else {
			names = append(names, k)
		}
	}
	if len(indexes) == 0 {
		return names
	}
	sort.Slice(indexes, func(i, j int) bool {
		a, _ := strconv.ParseUint(indexes[i], 10, 32)
		b, _ := strconv.ParseUint(indexes[j], 10, 32)
		return a < b
	})
	return append(indexes, names...)
}

func isArrayIndex(k string) bool {
	if k == "" || (len(k) > 1 && k[0] == '0') {
		return false
	}
	n, err := strconv.ParseUint(k, 10, 32)
	return err == nil && n < math.MaxUint32
}

func decodeOrdered(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return decodeValue(dec)
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := &orderedObject{values: make(map[string]any)}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("%w: object key %v", errUnexpectedToken, keyTok)
			}
			value, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.set(key, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := make([]any, 0)
		for dec.More() {
			value, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, value)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("%w: %v", errUnexpectedToken, delim)
}

// Stringify re-encodes the record the way JSON.stringify(value, null, indent)
// does: key order kept, numbers in shortest form, no HTML escaping.
// An empty indent gives the compact form.
func (r Record) Stringify(indent string) ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	v, err := decodeOrdered(r)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeValue(&buf, v, indent, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StringifyArray encodes records as one JSON array, see Record.Stringify.
func StringifyArray(records []Record, indent string) ([]byte, error) {
	values := make([]any, 0, len(records))
	for _, r := range records {
		if len(r) == 0 {
			values = append(values, nil)
			continue
		}
		v, err := decodeOrdered(r)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	var buf bytes.Buffer
	if err := writeValue(&buf, values, indent, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newline(buf *bytes.Buffer, indent string, depth int) {
	if indent == "" {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(indent, depth))
}

func writeValue(buf *bytes.Buffer, v any, indent string, depth int) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	case string:
		writeString(buf, val)
	case json.Number:
		f, err := strconv.ParseFloat(string(val), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return err
		}
		writeNumber(buf, f)
	case float64:
		writeNumber(buf, val)
	case []any:
		if len(val) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			if err := writeValue(buf, item, indent, depth+1); err != nil {
				return err
			}
		}
		newline(buf, indent, depth)
		buf.WriteByte(']')
	case *orderedObject:
		if len(val.keys) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, key := range val.enumerationOrder() {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			writeString(buf, key)
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			if err := writeValue(buf, val.values[key], indent, depth+1); err != nil {
				return err
			}
		}
		newline(buf, indent, depth)
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: %T", errUnexpectedToken, v)
	}
	return nil
}

// writeNumber formats f like Number.prototype.toString. Values outside the
// float64 range are written as null, as JSON.stringify does for Infinity.
func writeNumber(buf *bytes.Buffer, f float64) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		buf.WriteString("null")
		return
	}
	if f == 0 {
		buf.WriteByte('0')
		return
	}
	format := byte('f')
	if abs := math.Abs(f); abs < 1e-6 || abs >= 1e21 {
		format = 'e'
	}
	b := strconv.AppendFloat(nil, f, format, -1, 64)
	if format == 'e' {
		// 1e-07 -> 1e-7
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	buf.Write(b)
}

const hexDigits = "0123456789abcdef"

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			buf.WriteRune(r)
			i += size
			continue
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if c < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(hexDigits[c>>4])
				buf.WriteByte(hexDigits[c&0xf])
			} else {
				buf.WriteByte(c)
			}
		}
		i++
	}
	buf.WriteByte('"')
}
