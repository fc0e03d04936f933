package imap

// Kind identifies the variant held by an Attribute.
type Kind int

const (
	// KindNil is the demoted value of a case-folded "NIL" atom.
	KindNil Kind = iota
	// KindAtom is a bare identifier token.
	KindAtom
	// KindString is a quoted-string value.
	KindString
	// KindLiteral is a {n}/{n+} literal value.
	KindLiteral
	// KindSequence is a sequence-set token, e.g. "1:4,7,*".
	KindSequence
	// KindList is a parenthesised group.
	KindList
	// KindText is the synthesized human-readable tail of a status
	// response, always the last attribute when present.
	KindText
)

// String returns a stable name for the attribute kind.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "NIL"
	case KindAtom:
		return "ATOM"
	case KindString:
		return "STRING"
	case KindLiteral:
		return "LITERAL"
	case KindSequence:
		return "SEQUENCE"
	case KindList:
		return "LIST"
	case KindText:
		return "TEXT"
	default:
		return "UNKNOWN"
	}
}

// Attribute is the tagged sum type produced by the token parser's
// flattening walk. Only the fields relevant to Kind are meaningful:
//
//   - KindNil:      no other field set.
//   - KindAtom:     Value; optionally Section and Partial when the atom
//     carried a bracketed section specification (e.g. BODY[...]<0.10>).
//   - KindString:   Value.
//   - KindLiteral:  Value (8-bit decoded text) or Bytes+IsBytes (raw,
//     when the enclosing command is APPEND).
//   - KindSequence: Value, the verified sequence-set text.
//   - KindList:     Items, in source order.
//   - KindText:     Value, the human-readable tail of a status response.
type Attribute struct {
	Kind    Kind
	Value   string
	Bytes   []byte
	IsBytes bool
	Items   []Attribute
	Section []Attribute
	Partial *Partial
}

// Atom constructs a bare-atom attribute.
func Atom(value string) Attribute {
	return Attribute{Kind: KindAtom, Value: value}
}

// Text constructs a human-readable text attribute.
func Text(value string) Attribute {
	return Attribute{Kind: KindText, Value: value}
}

// ParsedResponse is the output of the line parser: a single decoded
// IMAP response or command line.
type ParsedResponse struct {
	Tag              string
	Command          string
	Attributes       []Attribute
	HumanReadable    string
	HasHumanReadable bool
	NullBytesRemoved int
}
