// Package xmltree parses XML documents into a navigable node/attribute tree.
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Faultbox/daeloader/pkg/encoding"
)

// ErrEmptyDocument is returned when the input holds no root element.
var ErrEmptyDocument = errors.New("xml document has no root element")

// Attr is a single element attribute. Namespace prefixes are dropped.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of the tree.
type Node struct {
	Name     string
	Attrs    []Attr
	Text     string // own character data; runs split by comments or children are space-joined
	Children []*Node
}

// Parse reads an XML document and returns its root element.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(encoding.NewReader(r))
	dec.CharsetReader = encoding.CharsetReader

	var (
		root  *Node
		stack []*Node
		text  []*strings.Builder
		split bool // a non-text token interrupted the current character data
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decoding xml: %w", err)
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			node := &Node{
				Name:  tok.Name.Local,
				Attrs: make([]Attr, 0, len(tok.Attr)),
			}
			for _, a := range tok.Attr {
				node.Attrs = append(node.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("decoding xml: multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
			text = append(text, &strings.Builder{})
			split = true
		case xml.CharData:
			if len(stack) > 0 {
				b := text[len(text)-1]
				// Keep "1 2<!-- c -->3" as three tokens.
				if split && b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.Write(tok)
			}
			split = false
		case xml.EndElement:
			node := stack[len(stack)-1]
			node.Text = text[len(text)-1].String()
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
			split = true
		case xml.Comment, xml.ProcInst, xml.Directive:
			split = true
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// First returns the first child element with the given name, or nil.
// It is safe to call on a nil node, so lookups can be chained.
func (n *Node) First(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FirstElement returns the first child element regardless of name, or nil.
func (n *Node) FirstElement() *Node {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// ChildrenNamed returns all child elements with the given name, in document order.
func (n *Node) ChildrenNamed(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits n and its descendants in pre-order.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// TrimmedText returns the node text without surrounding whitespace.
func (n *Node) TrimmedText() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Text)
}
