package soap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// EncodeElement writes one element and its subtree. Scalar map values
// become attributes, "_content" becomes the element text, nested maps
// and slices become child elements. Keys are emitted in sorted order so
// the output is stable.
func EncodeElement(buf *bytes.Buffer, tag string, value interface{}) error {
	switch v := value.(type) {
	case Params:
		return encodeMapElement(buf, tag, v)
	case nil:
		return encodeMapElement(buf, tag, nil)
	default:
		// a bare scalar is shorthand for {"_content": scalar}
		return encodeMapElement(buf, tag, Params{"_content": v})
	}
}

func encodeMapElement(buf *bytes.Buffer, tag string, elem Params) error {
	var attrs, children []string
	content := ""
	hasContent := false

	for k, v := range elem {
		switch v.(type) {
		case Params, []interface{}, []Params:
			children = append(children, k)
		default:
			if k == "_content" {
				content = scalarString(v)
				hasContent = true
			} else {
				attrs = append(attrs, k)
			}
		}
	}
	sort.Strings(attrs)
	sort.Strings(children)

	buf.WriteByte('<')
	buf.WriteString(tag)
	for _, k := range attrs {
		buf.WriteByte(' ')
		buf.WriteString(k)
		buf.WriteString(`="`)
		if err := escape(buf, scalarString(elem[k])); err != nil {
			return err
		}
		buf.WriteByte('"')
	}

	if !hasContent && len(children) == 0 {
		buf.WriteString("/>")
		return nil
	}
	buf.WriteByte('>')

	if hasContent {
		if err := escape(buf, content); err != nil {
			return err
		}
	}
	for _, k := range children {
		for _, child := range AsList(elem[k]) {
			if err := EncodeElement(buf, k, child); err != nil {
				return err
			}
		}
	}

	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteByte('>')
	return nil
}

func scalarString(v interface{}) string {
	v = AutoUntype(v)
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func escape(buf *bytes.Buffer, s string) error {
	return xml.EscapeText(buf, []byte(s))
}

// DecodeElement reads the subtree opened by start into a Params map:
// attributes become string entries, text becomes "_content", child
// elements recurse, and repeated tags coalesce into a slice.
func DecodeElement(d *xml.Decoder, start xml.StartElement) (Params, error) {
	elem := Params{}
	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		elem[a.Name.Local] = a.Value
	}

	var text strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			if err == io.EOF {
				return nil, errors.Errorf("unterminated element <%s>", start.Name.Local)
			}
			return nil, errors.Wrap(err, "malformed XML")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := DecodeElement(d, t)
			if err != nil {
				return nil, err
			}
			appendChild(elem, t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if s := strings.TrimSpace(text.String()); s != "" {
				elem["_content"] = s
			}
			return elem, nil
		}
	}
}

// DecodeString parses a standalone XML document to {tag: element}.
func DecodeString(s string) (Params, error) {
	d := xml.NewDecoder(strings.NewReader(s))
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, errors.Wrap(err, "malformed XML")
		}
		if start, ok := tok.(xml.StartElement); ok {
			elem, err := DecodeElement(d, start)
			if err != nil {
				return nil, err
			}
			return Params{start.Name.Local: elem}, nil
		}
	}
}

func appendChild(elem Params, key string, child Params) {
	prev, ok := elem[key]
	if !ok {
		elem[key] = child
		return
	}
	if list, ok := prev.([]interface{}); ok {
		elem[key] = append(list, child)
		return
	}
	elem[key] = []interface{}{prev, child}
}
