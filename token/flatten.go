package token

import (
	imap "github.com/meszmate/imapline"
	"github.com/meszmate/imapline/syntax"
)

// Flatten performs the post-order walk of spec.md §4.2.2, turning a
// closed Parse tree into the public attribute list. command is the
// same (possibly two-word-coalesced) command name passed to Parse; it
// decides whether a LITERAL's payload is returned as raw bytes
// (APPEND) or decoded as 8-bit text.
func Flatten(root *Node, command string) ([]imap.Attribute, error) {
	isAppend := imap.IsAppendCommand(command)
	return flattenChildren(root.Children, isAppend)
}

func flattenChildren(nodes []*Node, isAppend bool) ([]imap.Attribute, error) {
	out := make([]imap.Attribute, 0, len(nodes))
	for _, n := range nodes {
		attr, err := flattenNode(n, isAppend)
		if err != nil {
			return nil, err
		}
		out = append(out, attr)
	}
	return out, nil
}

func flattenNode(n *Node, isAppend bool) (imap.Attribute, error) {
	switch n.Kind {
	case KindAtom:
		return flattenAtom(n, isAppend)
	case KindString:
		return imap.Attribute{Kind: imap.KindString, Value: decode8(n.Value)}, nil
	case KindLiteral:
		return flattenLiteral(n, isAppend), nil
	case KindSequence:
		return imap.Attribute{Kind: imap.KindSequence, Value: decode8(n.Value)}, nil
	case KindList:
		items, err := flattenChildren(n.Children, isAppend)
		if err != nil {
			return imap.Attribute{}, err
		}
		return imap.Attribute{Kind: imap.KindList, Items: items}, nil
	default:
		return imap.Attribute{}, imap.NewParseError(imap.ErrUnexpectedChar, n.StartPos, nil)
	}
}

// flattenAtom applies the one demotion the walk performs: a
// case-folded "NIL" atom becomes the null value. Any attached section
// and partial are flattened onto the resulting attribute.
func flattenAtom(n *Node, isAppend bool) (imap.Attribute, error) {
	if syntax.EqualFold(string(n.Value), "NIL") {
		return imap.Attribute{Kind: imap.KindNil}, nil
	}
	attr := imap.Attribute{Kind: imap.KindAtom, Value: decode8(n.Value)}
	if n.Section != nil {
		items, err := flattenChildren(n.Section.Children, isAppend)
		if err != nil {
			return imap.Attribute{}, err
		}
		attr.Section = items
		if attr.Section == nil {
			attr.Section = []imap.Attribute{}
		}
	}
	if n.Partial != nil {
		attr.Partial = &imap.Partial{Start: n.Partial.PartialStart, Length: n.Partial.PartialLength}
	}
	return attr, nil
}

func flattenLiteral(n *Node, isAppend bool) imap.Attribute {
	if isAppend {
		return imap.Attribute{Kind: imap.KindLiteral, Bytes: n.Value, IsBytes: true}
	}
	return imap.Attribute{Kind: imap.KindLiteral, Value: decode8(n.Value)}
}

// decode8 reinterprets raw bytes as 8-bit text: each byte becomes the
// codepoint U+0000..U+00FF, per spec.md §6's literal decoding rule,
// applied uniformly to every byte-carrying node so atoms and strings
// containing bytes >= 0x80 (spec.md §9 note 3) round-trip as valid
// UTF-8 instead of raw non-UTF-8 bytes in a Go string.
func decode8(b []byte) string {
	rs := make([]rune, len(b))
	for i, c := range b {
		rs[i] = rune(c)
	}
	return string(rs)
}
