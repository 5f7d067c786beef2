package mdexpand

import (
	"strings"

	"github.com/kr/pretty"
)

// NodeKind tags the variant of a Node.
type NodeKind int

const (
	KindIdentifier NodeKind = iota
	KindNumber
	KindString
	KindList
	KindVector
	KindBad
)

// Node is a tagged value produced by the parser and rewritten by the
// elaborator. Node is immutable after construction: substitution always
// builds a fresh copy rather than mutating in place.
type Node struct {
	Kind NodeKind

	// Text holds the payload for Identifier, Number, and String nodes.
	Text string

	// Raw marks a String node that came from a "{…}" brace block rather
	// than a double-quoted literal: Text is the verbatim block including
	// its braces, and String() must render it unquoted to round-trip.
	Raw bool

	// Children holds the ordered members of List and Vector nodes.
	Children []Node

	// Bad sentinel fields, populated only when Kind == KindBad.
	BadMessage   string
	BadOffending *Node
}

// Identifier builds an Identifier node.
func Identifier(text string) Node { return Node{Kind: KindIdentifier, Text: text} }

// Number builds a Number node.
func Number(text string) Node { return Node{Kind: KindNumber, Text: text} }

// String builds a String node from a decoded quoted-string payload.
func String(text string) Node { return Node{Kind: KindString, Text: text} }

// RawString builds a String node from a verbatim "{…}" brace-block
// payload, so String() can render it back unquoted instead of colliding
// with the quoted-string case.
func RawString(text string) Node { return Node{Kind: KindString, Text: text, Raw: true} }

// List builds a List node from its children.
func List(children ...Node) Node { return Node{Kind: KindList, Children: children} }

// Vector builds a Vector node from its children.
func Vector(children ...Node) Node { return Node{Kind: KindVector, Children: children} }

// Bad builds an elaboration-error sentinel node that wraps the offending
// node without aborting the rest of the elaboration run.
func Bad(message string, offending Node) Node {
	return Node{Kind: KindBad, BadMessage: message, BadOffending: &offending}
}

// Head returns the leading identifier's text when n is a non-empty List
// whose first child is an Identifier, e.g. "define_mode_iterator" for
// (define_mode_iterator M [SI DI]). Used to dispatch top-level forms.
func (n Node) Head() (string, bool) {
	if n.Kind != KindList || len(n.Children) == 0 {
		return "", false
	}
	first := n.Children[0]
	if first.Kind != KindIdentifier {
		return "", false
	}
	return first.Text, true
}

// String renders n back into MD source syntax. It is not guaranteed to
// byte-for-byte match the original input (whitespace and comments are not
// preserved), but is structurally faithful.
func (n Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n Node) write(b *strings.Builder) {
	switch n.Kind {
	case KindIdentifier, KindNumber:
		b.WriteString(n.Text)
	case KindString:
		if n.Raw {
			b.WriteString(n.Text)
		} else {
			b.WriteByte('"')
			b.WriteString(n.Text)
			b.WriteByte('"')
		}
	case KindList:
		b.WriteByte('(')
		writeChildren(b, n.Children)
		b.WriteByte(')')
	case KindVector:
		b.WriteByte('[')
		writeChildren(b, n.Children)
		b.WriteByte(']')
	case KindBad:
		b.WriteString("bad: ")
		b.WriteString(quote(n.BadMessage))
		if n.BadOffending != nil {
			b.WriteByte('\n')
			b.WriteString(pretty.Sprint(*n.BadOffending))
		}
	}
}

func writeChildren(b *strings.Builder, children []Node) {
	for i, c := range children {
		if i > 0 {
			b.WriteByte(' ')
		}
		c.write(b)
	}
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(s)
	b.WriteByte('"')
	return b.String()
}

// Equal reports whether n and other are structurally identical. Used by
// tests instead of reflect.DeepEqual so that the BadOffending pointer
// indirection doesn't defeat comparison.
func (n Node) Equal(other Node) bool {
	if n.Kind != other.Kind {
		return false
	}
	switch n.Kind {
	case KindIdentifier, KindNumber:
		return n.Text == other.Text
	case KindString:
		return n.Text == other.Text && n.Raw == other.Raw
	case KindList, KindVector:
		if len(n.Children) != len(other.Children) {
			return false
		}
		for i := range n.Children {
			if !n.Children[i].Equal(other.Children[i]) {
				return false
			}
		}
		return true
	case KindBad:
		if n.BadMessage != other.BadMessage {
			return false
		}
		if (n.BadOffending == nil) != (other.BadOffending == nil) {
			return false
		}
		if n.BadOffending == nil {
			return true
		}
		return n.BadOffending.Equal(*other.BadOffending)
	}
	return false
}
