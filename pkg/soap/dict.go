// Package soap implements the dict-shaped wire format used by the
// Zimbra SOAP API and its XML (de)serialization.
//
// A request or response element is represented as a Params map where
// scalar values are XML attributes, the "_content" key is the element
// text and nested maps or slices are child elements. Repeated children
// with the same tag decode to a slice; a single occurrence decodes to a
// bare map. AsList normalizes that ambiguity at call sites expecting a
// list.
package soap

import (
	"fmt"
	"strconv"
)

// Params is the generic element shape exchanged with the server.
type Params = map[string]interface{}

// AutoType converts a wire string to a Go base type: "TRUE"/"FALSE" to
// bool, numeric strings to int or float64, anything else is returned
// untouched. A nil value becomes the empty string.
func AutoType(v interface{}) interface{} {
	if v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return v
	}
	switch s {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// AutoUntype is the opposite of AutoType: bools become the "TRUE" and
// "FALSE" wire literals, everything else is left as-is.
func AutoUntype(v interface{}) interface{} {
	switch b := v.(type) {
	case bool:
		if b {
			return "TRUE"
		}
		return "FALSE"
	}
	return v
}

// AsList normalizes the single-vs-list wire quirk: the server collapses
// a one-element list into a bare object, so callers expecting a list go
// through here.
func AsList(v interface{}) []interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case []interface{}:
		return t
	case []Params:
		out := make([]interface{}, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out
	default:
		return []interface{}{v}
	}
}

// Content extracts the text of an element: the "_content" entry for a
// map, the value itself for a bare scalar.
func Content(v interface{}) string {
	if m, ok := v.(Params); ok {
		v = m["_content"]
	}
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
