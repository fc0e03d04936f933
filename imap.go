// Package imap parses a single line of the IMAP4rev1 protocol, as
// extended by well-known response-code conventions, into a structured
// ParsedResponse: a tag, a command name, and a tree of attributes
// (atoms, strings, literals, sequence sets, lists, and section
// specifications).
//
// The package does not dial a connection, authenticate, select a
// mailbox, or dispatch a command; it consumes a line of bytes and an
// ordered list of pre-captured literal payloads, and returns a parsed
// record. Reconstructing the input losslessly, normalizing case, and
// interpreting the semantics of atoms are all out of scope.
package imap

// Nil is the shared representation of a case-folded "NIL" atom.
var Nil = Attribute{Kind: KindNil}

// Partial is the angle-bracketed <offset.length> modifier that
// attaches to the ATOM carrying a section specification, e.g. the
// <0.2048> in BODY[HEADER.FIELDS (FROM TO)]<0.2048>.
type Partial struct {
	Start  int
	Length int
}
