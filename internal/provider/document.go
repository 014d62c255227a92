package provider

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const currencyCodeTag = "currency_code"

// MatchPolicy selects which entry wins when a document lists the same code more than once.
type MatchPolicy int

const (
	// MatchLast keeps scanning and returns the last matching entry in document order.
	MatchLast MatchPolicy = iota
	// MatchFirst stops at the first matching entry.
	MatchFirst
)

func (p MatchPolicy) String() string {
	switch p {
	case MatchFirst:
		return "first"
	case MatchLast:
		return "last"
	default:
		return "unknown"
	}
}

// ParseMatchPolicy maps "first" or "last" to a MatchPolicy.
func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch strings.ToLower(s) {
	case "", "last":
		return MatchLast, nil
	case "first":
		return MatchFirst, nil
	default:
		return MatchLast, fmt.Errorf("unknown match policy %q", s)
	}
}

type element struct {
	name     string
	parent   *element
	index    int
	children []*element

	// content holds character data and child elements in document order.
	content []node
}

// node is either a run of character data or a child element.
type node struct {
	text string
	elem *element
}

// text returns the concatenated character data of e and its descendants.
func (e *element) text() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *element) writeText(b *strings.Builder) {
	for _, n := range e.content {
		if n.elem != nil {
			n.elem.writeText(b)
			continue
		}
		b.WriteString(n.text)
	}
}

// nextElement returns the following sibling element, skipping text and comments.
func (e *element) nextElement() *element {
	if e.parent == nil || e.index+1 >= len(e.parent.children) {
		return nil
	}
	return e.parent.children[e.index+1]
}

// rateDocument is the element tree of one daily document. It lives for a single call.
type rateDocument struct {
	root *element
}

func parseDocument(r io.Reader) (*rateDocument, error) {
	// A leading byte-order mark is dropped; UTF-16 input is converted to UTF-8.
	// Without one the bytes pass through untouched for the declared charset.
	bom := unicode.BOMOverride(encoding.Nop.NewDecoder())
	dec := xml.NewDecoder(transform.NewReader(r, bom))
	dec.CharsetReader = charsetReader

	var root *element
	var stack []*element
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			e := &element{name: t.Name.Local}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: multiple document elements", ErrParse)
				}
				root = e
			} else {
				parent := stack[len(stack)-1]
				e.parent = parent
				e.index = len(parent.children)
				parent.children = append(parent.children, e)
				parent.content = append(parent.content, node{elem: e})
			}
			stack = append(stack, e)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if len(strings.TrimSpace(string(t))) > 0 {
					return nil, fmt.Errorf("%w: text outside document element", ErrParse)
				}
				continue
			}
			open := stack[len(stack)-1]
			open.content = append(open.content, node{text: string(t)})
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no document element", ErrParse)
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("%w: unclosed element <%s>", ErrParse, stack[len(stack)-1].name)
	}
	return &rateDocument{root: root}, nil
}

// charsetReader decodes declared non-UTF-8 charsets. UTF-16 documents
// carry a byte-order mark and have already been converted to UTF-8.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	if strings.HasPrefix(strings.ToLower(label), "utf-16") {
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}

// lookup walks the descendants of the document element in document order
// for currency_code elements whose text equals code exactly and reads the
// rate from the next sibling element.
func (d *rateDocument) lookup(code string, policy MatchPolicy) (float64, error) {
	var (
		rate    float64
		found   bool
		walkErr error
	)

	var visit func(e *element) bool
	visit = func(e *element) bool {
		for _, child := range e.children {
			if child.name == currencyCodeTag && child.text() == code {
				v, err := readRate(child)
				if err != nil {
					walkErr = err
					return false
				}
				rate, found = v, true
				if policy == MatchFirst {
					return false
				}
			}
			if !visit(child) {
				return false
			}
		}
		return true
	}
	visit(d.root)

	if walkErr != nil {
		return 0, walkErr
	}
	if !found {
		return 0, fmt.Errorf("%w: %s", ErrCurrencyNotFound, code)
	}
	return rate, nil
}

func readRate(codeElem *element) (float64, error) {
	rateElem := codeElem.nextElement()
	if rateElem == nil {
		return 0, fmt.Errorf("%w: no rate element after %s %q", ErrParse, currencyCodeTag, codeElem.text())
	}
	raw := strings.TrimSpace(rateElem.text())
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: rate %q for %q is not a number", ErrParse, raw, codeElem.text())
	}
	return v, nil
}
