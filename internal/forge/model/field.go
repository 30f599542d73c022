// Package model is the boundary to the generation backend. It defines
// the collaborator interface, the typed prediction shapes, and the
// tolerant extraction of fields from raw prediction payloads.
package model

import (
	"fmt"
	"reflect"
	"strings"
)

// Field returns the named field from a candidate that may be a map with
// string keys or a struct (value or pointer). Missing fields and
// unsupported shapes yield nil. This is the single place tolerating
// loosely shaped model output; everything downstream works on fixed
// record types.
func Field(candidate any, name string) any {
	if candidate == nil {
		return nil
	}

	if m, ok := candidate.(map[string]any); ok {
		return m[name]
	}

	v := reflect.ValueOf(candidate)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil
		}
		value := v.MapIndex(reflect.ValueOf(name))
		if !value.IsValid() {
			return nil
		}
		return value.Interface()
	case reflect.Struct:
		field := v.FieldByNameFunc(func(candidate string) bool {
			return strings.EqualFold(candidate, strings.ReplaceAll(name, "_", ""))
		})
		if !field.IsValid() || !field.CanInterface() {
			return nil
		}
		return field.Interface()
	default:
		return nil
	}
}

// StringField extracts the named field as a trimmed string. Non-string
// scalars are formatted; missing fields yield "".
func StringField(candidate any, name string) string {
	value := Field(candidate, name)
	if value == nil {
		return ""
	}
	switch s := value.(type) {
	case string:
		return strings.TrimSpace(s)
	case *string:
		if s == nil {
			return ""
		}
		return strings.TrimSpace(*s)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", s))
	}
}
