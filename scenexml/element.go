package scenexml

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var errNoRootElement = errors.New("document has no root element")

// element is a node of the document tree.
// Attribute queries follow the usual XML DOM conventions:
// an absent or unparsable attribute yields the provided default.
type element struct {
	name     string
	attrs    []xml.Attr
	parent   *element
	children []*element
	pos      int // index in parent.children
}

// parseDocument builds the element tree of the XML document.
// The returned node is the document itself, whose
// children are the top-level elements.
func parseDocument(r io.Reader) (*element, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	doc := &element{}
	current := doc
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		// comments, directives (DOCTYPE) and char data are ignored
		switch se := t.(type) {
		case xml.StartElement:
			el := &element{name: se.Name.Local, attrs: se.Attr, parent: current, pos: len(current.children)}
			current.children = append(current.children, el)
			current = el
		case xml.EndElement:
			current = current.parent
		}
	}
	if doc.root() == nil {
		return nil, errNoRootElement
	}
	return doc, nil
}

// root returns the first top-level element, or nil.
func (e *element) root() *element {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[0]
}

// firstChild returns the first child element named tag, or nil.
func (e *element) firstChild(tag string) *element {
	for _, child := range e.children {
		if child.name == tag {
			return child
		}
	}
	return nil
}

// nextSibling returns the next sibling element named tag, or nil.
func (e *element) nextSibling(tag string) *element {
	if e.parent == nil {
		return nil
	}
	for _, sibling := range e.parent.children[e.pos+1:] {
		if sibling.name == tag {
			return sibling
		}
	}
	return nil
}

func (e *element) attr(name string) (string, bool) {
	for _, attr := range e.attrs {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// intAttr reads the leading integer of the attribute, so that
// "12px" gives 12 and "1.0" gives 1. A "0x" prefix denotes hexadecimal.
func (e *element) intAttr(name string, def int) int {
	v, ok := e.attr(name)
	if !ok {
		return def
	}
	if i, ok := parseIntPrefix(v); ok {
		return i
	}
	return def
}

// floatAttr reads the leading decimal number of the attribute.
func (e *element) floatAttr(name string, def float64) float64 {
	v, ok := e.attr(name)
	if !ok {
		return def
	}
	if f, ok := parseFloatPrefix(v); ok {
		return f
	}
	return def
}

// boolAttr accepts integers (non zero is true) and
// true/false in any case.
func (e *element) boolAttr(name string, def bool) bool {
	v, ok := e.attr(name)
	if !ok {
		return def
	}
	if i, ok := parseIntPrefix(v); ok {
		return i != 0
	}
	v = strings.TrimSpace(v)
	switch {
	case strings.EqualFold(v, "true"):
		return true
	case strings.EqualFold(v, "false"):
		return false
	}
	return def
}

const spaces = " \t\n\r\f\v"

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// scanDigits returns the index of the first byte of s[i:] which is not a digit.
func scanDigits(s string, i int, digit func(byte) bool) int {
	for i < len(s) && digit(s[i]) {
		i++
	}
	return i
}

// parseIntPrefix parses the longest integer starting s, after spaces.
// Out of range values are clamped.
func parseIntPrefix(s string) (int, bool) {
	s = strings.TrimLeft(s, spaces)
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') && isHexDigit(s[2]) {
		end := scanDigits(s, 2, isHexDigit)
		u, err := strconv.ParseUint(s[2:end], 16, 0)
		if err != nil || u > math.MaxInt {
			return math.MaxInt, true
		}
		return int(u), true
	}
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	end := scanDigits(s, i, isDigit)
	if end == i {
		return 0, false
	}
	v, err := strconv.ParseInt(s[:end], 10, 0)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return int(v), true
}

// parseFloatPrefix parses the longest decimal number starting s, after spaces:
// an optional sign, digits with an optional fraction, and an optional exponent.
func parseFloatPrefix(s string) (float64, bool) {
	s = strings.TrimLeft(s, spaces)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	mantissa := i
	i = scanDigits(s, i, isDigit)
	digits := i - mantissa
	if i < len(s) && s[i] == '.' {
		end := scanDigits(s, i+1, isDigit)
		digits += end - i - 1
		i = end
	}
	if digits == 0 {
		return 0, false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if end := scanDigits(s, j, isDigit); end > j {
			i = end
		}
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// stripBOM removes a leading byte order mark, decoding UTF-16 content to UTF-8.
func stripBOM(data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	return out, err
}

// firstLine returns the first line of the document, without
// its line terminator.
func firstLine(data []byte) string {
	line, _ := bufio.NewReader(bytes.NewReader(data)).ReadString('\n')
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
}
