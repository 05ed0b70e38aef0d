// file: internals/helpers/datatable/value.go
package datatable

import (
	"cmp"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// DateLayout dipakai saat time.Time di-stringify untuk pencarian.
const DateLayout = "2006-01-02"

// deref melepas pointer / interface sampai nilai konkret. nil -> (nil, false).
func deref(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}

// Stringify converts an accessed value to the string used for searching.
// nil, nil pointers and unknown values never panic; they become "".
func Stringify(v any) string {
	val, ok := deref(v)
	if !ok {
		return ""
	}
	switch t := val.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(DateLayout)
	case fmt.Stringer:
		return t.String()
	case error:
		return t.Error()
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.String:
		return rv.String()
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts = append(parts, Stringify(rv.Index(i).Interface()))
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(val)
}

// Contains: substring case-insensitive. Term kosong selalu match.
func Contains(haystack, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(term))
}

type valueKind int

const (
	kindNil valueKind = iota
	kindBool
	kindNumber
	kindTime
	kindString
)

func classify(v any) (valueKind, any) {
	val, ok := deref(v)
	if !ok {
		return kindNil, nil
	}
	switch t := val.(type) {
	case bool:
		return kindBool, t
	case time.Time:
		return kindTime, t
	case string:
		return kindString, t
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return kindNumber, float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return kindNumber, float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return kindNumber, rv.Float()
	case reflect.String:
		return kindString, rv.String()
	}
	return kindString, Stringify(val)
}

// Compare orders two raw field values with their native ordering:
// numbers numerically, strings lexicographically, times chronologically,
// false before true. nil sorts before everything. Values of different kinds
// are ordered by kind so the result stays a total order.
func Compare(a, b any) int {
	ka, va := classify(a)
	kb, vb := classify(b)
	if ka != kb {
		return cmp.Compare(ka, kb)
	}
	switch ka {
	case kindNil:
		return 0
	case kindBool:
		x, y := va.(bool), vb.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case kindNumber:
		return cmp.Compare(va.(float64), vb.(float64))
	case kindTime:
		return va.(time.Time).Compare(vb.(time.Time))
	default:
		return strings.Compare(va.(string), vb.(string))
	}
}
