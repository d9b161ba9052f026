package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"unicode"

	"golang.org/x/net/html/charset"
)

// Parse reads a whole document and returns its root element. Documents that
// declare a non UTF-8 encoding (ISO-8859-1 and windows-1252 are common in
// meet exports) are transcoded on the fly.
func Parse(r io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var stack []*Element
	var root *Element
	rootClosed := false

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, fmt.Errorf("%w: element %s", ErrTrailingData, t.Name.Local)
			}
			el := &Element{
				Name:  t.Name.Local,
				Attrs: convertAttrs(t.Attr),
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			} else {
				root = el
			}
			stack = append(stack, el)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					rootClosed = true
				}
			}

		case xml.CharData:
			if len(stack) == 0 && !isIgnorable(string(t)) {
				return nil, fmt.Errorf("%w: character data outside root", ErrTrailingData)
			}
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}
	if !rootClosed {
		return nil, fmt.Errorf("decode xml: %w", io.ErrUnexpectedEOF)
	}
	return root, nil
}

func isIgnorable(data string) bool {
	for _, r := range data {
		if r == '\uFEFF' {
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// convertAttrs keeps the last value of a repeated attribute name; namespace
// declarations are dropped.
func convertAttrs(xmlAttrs []xml.Attr) map[string]string {
	attrs := make(map[string]string, len(xmlAttrs))
	for _, a := range xmlAttrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		attrs[a.Name.Local] = a.Value
	}
	return attrs
}
