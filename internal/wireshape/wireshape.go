// Package wireshape is a small struct-tag-driven binary codec, in the
// spirit of gospel's data.Marshal/Unmarshal but trimmed to the one shape
// the envelope codecs need: a flat struct of fixed-size byte arrays and
// fixed-width unsigned integers, with at most one trailing greedy
// (variable-length) byte slice.
//
// Supported tags:
//
//	`size:"N"`  -- []byte field of exactly N bytes
//	`size:"*"`  -- []byte field consuming all remaining input (decode only;
//	              on encode it is written verbatim). Must be the last field.
//	`order:"big"` -- serialize a uint32 field big-endian (the default for
//	              all integer fields here; the tag exists for symmetry
//	              with the teacher's marshal package and to make the
//	              on-wire endianness explicit at the call site).
package wireshape

import (
	"encoding/binary"
	"fmt"
	"reflect"
)

// Marshal serializes obj (a pointer to a flat struct of []byte and uint32
// fields) into wire bytes, field order matching struct declaration order.
func Marshal(obj any) ([]byte, error) {
	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("wireshape: Marshal requires a struct, got %s", v.Kind())
	}
	buf := make([]byte, 0, 256)
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		tag := t.Field(i).Tag
		switch f.Kind() {
		case reflect.Slice:
			if f.Type().Elem().Kind() != reflect.Uint8 {
				return nil, fmt.Errorf("wireshape: unsupported slice field %s", t.Field(i).Name)
			}
			b := f.Bytes()
			if sz := tag.Get("size"); sz != "" && sz != "*" {
				n, err := parseSize(sz)
				if err != nil {
					return nil, err
				}
				if len(b) != n {
					return nil, fmt.Errorf("wireshape: field %s has %d bytes, want %d", t.Field(i).Name, len(b), n)
				}
			}
			buf = append(buf, b...)
		case reflect.Uint32:
			var tmp [4]byte
			binary.BigEndian.PutUint32(tmp[:], uint32(f.Uint()))
			buf = append(buf, tmp[:]...)
		case reflect.Uint8:
			buf = append(buf, byte(f.Uint()))
		default:
			return nil, fmt.Errorf("wireshape: unsupported field kind %s on %s", f.Kind(), t.Field(i).Name)
		}
	}
	return buf, nil
}

// Unmarshal populates obj (a pointer to a flat struct) from wire bytes.
// The last field may be tagged `size:"*"` to consume all remaining bytes;
// every other field must be a fixed size per its tag or integer width.
func Unmarshal(obj any, data []byte) error {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("wireshape: Unmarshal requires a struct pointer")
	}
	v = v.Elem()
	t := v.Type()
	off := 0
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		tag := t.Field(i).Tag
		switch f.Kind() {
		case reflect.Slice:
			if f.Type().Elem().Kind() != reflect.Uint8 {
				return fmt.Errorf("wireshape: unsupported slice field %s", t.Field(i).Name)
			}
			sz := tag.Get("size")
			var n int
			if sz == "*" {
				n = len(data) - off
				if n < 0 {
					return fmt.Errorf("wireshape: field %s: not enough data", t.Field(i).Name)
				}
			} else {
				var err error
				n, err = parseSize(sz)
				if err != nil {
					return err
				}
				if off+n > len(data) {
					return fmt.Errorf("wireshape: field %s: not enough data (need %d, have %d)", t.Field(i).Name, n, len(data)-off)
				}
			}
			b := make([]byte, n)
			copy(b, data[off:off+n])
			f.SetBytes(b)
			off += n
		case reflect.Uint32:
			if off+4 > len(data) {
				return fmt.Errorf("wireshape: field %s: not enough data", t.Field(i).Name)
			}
			f.SetUint(uint64(binary.BigEndian.Uint32(data[off : off+4])))
			off += 4
		case reflect.Uint8:
			if off+1 > len(data) {
				return fmt.Errorf("wireshape: field %s: not enough data", t.Field(i).Name)
			}
			f.SetUint(uint64(data[off]))
			off++
		default:
			return fmt.Errorf("wireshape: unsupported field kind %s on %s", f.Kind(), t.Field(i).Name)
		}
	}
	return nil
}

func parseSize(tag string) (int, error) {
	if tag == "" {
		return 0, fmt.Errorf("wireshape: missing size tag")
	}
	var n int
	if _, err := fmt.Sscanf(tag, "%d", &n); err != nil {
		return 0, fmt.Errorf("wireshape: invalid size tag %q: %w", tag, err)
	}
	return n, nil
}
