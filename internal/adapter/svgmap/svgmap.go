// Package svgmap reads parcel shapes out of the map SVG and rewrites their
// fills. Parcels are <path> elements carrying a data-place attribute with
// the raw parcel number as drawn on the plan.
package svgmap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const placeAttr = "data-place"

// Places returns the raw data-place values of every parcel path in
// document order. Duplicates are kept.
func Places(src []byte) ([]string, error) {
	var places []string
	err := walk(src, func(el xml.StartElement, _ []byte) {
		if place, ok := placeOf(el); ok {
			places = append(places, place)
		}
	}, nil)
	if err != nil {
		return nil, err
	}
	return places, nil
}

// Colorize returns a copy of src in which every parcel path for which fill
// reports ok has its fill set to the returned color. The fill is written to
// the style attribute so it overrides both the presentation attribute and
// any earlier fill declaration. Everything else is copied byte for byte.
func Colorize(src []byte, fill func(place string) (string, bool)) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(len(src) + len(src)/8)

	err := walk(src, func(el xml.StartElement, raw []byte) {
		if place, ok := placeOf(el); ok {
			if color, ok := fill(place); ok {
				writeStartTag(&out, el.Name, withFill(el.Attr, color), isSelfClosing(raw))
				return
			}
		}
		out.Write(raw)
	}, func(raw []byte) {
		out.Write(raw)
	})
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// walk tokenizes src and hands every start element to onStart together with
// the exact source bytes of the tag. The source bytes of every other token
// go to onOther when it is set.
func walk(src []byte, onStart func(el xml.StartElement, raw []byte), onOther func(raw []byte)) error {
	d := xml.NewDecoder(bytes.NewReader(src))
	d.Strict = false
	// Offsets must stay in source bytes, so declared encodings are not decoded.
	d.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	sawRoot := false
	for {
		start := d.InputOffset()
		tok, err := d.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("parse map svg: %w", err)
		}
		raw := src[start:d.InputOffset()]

		el, ok := tok.(xml.StartElement)
		if !ok {
			if onOther != nil {
				onOther(raw)
			}
			continue
		}
		if !sawRoot {
			if el.Name.Local != "svg" {
				return fmt.Errorf("parse map svg: root element is <%s>, want <svg>", el.Name.Local)
			}
			sawRoot = true
		}
		onStart(el, raw)
	}

	if !sawRoot {
		return errors.New("parse map svg: no <svg> element")
	}
	return nil
}

func placeOf(el xml.StartElement) (string, bool) {
	if el.Name.Local != "path" {
		return "", false
	}
	for _, a := range el.Attr {
		if a.Name.Space == "" && a.Name.Local == placeAttr {
			return a.Value, true
		}
	}
	return "", false
}

// withFill returns attrs with the fill merged into the style attribute,
// appending a style attribute when there is none.
func withFill(attrs []xml.Attr, color string) []xml.Attr {
	out := make([]xml.Attr, 0, len(attrs)+1)
	found := false
	for _, a := range attrs {
		if a.Name.Space == "" && a.Name.Local == "style" {
			a.Value = mergeFill(a.Value, color)
			found = true
		}
		out = append(out, a)
	}
	if !found {
		out = append(out, xml.Attr{Name: xml.Name{Local: "style"}, Value: "fill:" + color})
	}
	return out
}

// mergeFill drops any fill declaration from an inline style and appends the
// new one.
func mergeFill(style, color string) string {
	decls := strings.Split(style, ";")
	kept := make([]string, 0, len(decls)+1)
	for _, decl := range decls {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		prop, _, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(prop), "fill") {
			continue
		}
		kept = append(kept, decl)
	}
	kept = append(kept, "fill:"+color)
	return strings.Join(kept, ";")
}

func writeStartTag(dst *bytes.Buffer, name xml.Name, attrs []xml.Attr, selfClosing bool) {
	dst.WriteByte('<')
	dst.WriteString(qualifiedName(name))
	for _, a := range attrs {
		dst.WriteByte(' ')
		dst.WriteString(qualifiedName(a.Name))
		dst.WriteString(`="`)
		_ = xml.EscapeText(dst, []byte(a.Value))
		dst.WriteByte('"')
	}
	if selfClosing {
		dst.WriteString("/>")
		return
	}
	dst.WriteByte('>')
}

// qualifiedName rebuilds prefix:local. RawToken leaves the prefix in Space.
func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func isSelfClosing(raw []byte) bool {
	return bytes.HasSuffix(bytes.TrimRight(raw, " \t\r\n"), []byte("/>"))
}
