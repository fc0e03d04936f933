package wire

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	imap "github.com/meszmate/imapline"
	"github.com/meszmate/imapline/syntax"
)

// Render is a pretty-printer for a parsed ParsedResponse/Attribute
// tree, adapted from the teacher's wire-building Encoder (fluent
// *bufio.Writer, one method per production). The direction is
// reversed: the teacher's Encoder builds wire-format IMAP to send;
// Render walks the *output* of this repository's core and renders it
// back as IMAP-like text for the debug CLI (cmd/imapline) and for test
// failure messages. It never promises a lossless round-trip — that is
// an explicit Non-goal (spec.md §1) — only a readable rendering.
type Render struct {
	w *bufio.Writer
}

// NewRender wraps w in a Render.
func NewRender(w io.Writer) *Render {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriterSize(w, 4096)
	}
	return &Render{w: bw}
}

// Flush flushes buffered output to the underlying writer.
func (r *Render) Flush() error {
	return r.w.Flush()
}

// Response renders a whole ParsedResponse as "tag SP command
// attributes...".
func (r *Render) Response(resp imap.ParsedResponse) *Render {
	r.raw(resp.Tag)
	if resp.Command != "" {
		r.sp().raw(resp.Command)
	}
	for _, a := range resp.Attributes {
		r.sp().Attribute(a)
	}
	return r
}

// Attribute renders a single attribute and its children, recursively.
func (r *Render) Attribute(a imap.Attribute) *Render {
	switch a.Kind {
	case imap.KindNil:
		return r.raw("NIL")
	case imap.KindAtom:
		r.raw(a.Value)
		if a.Section != nil {
			r.section(a.Section)
		}
		if a.Partial != nil {
			r.partial(*a.Partial)
		}
		return r
	case imap.KindString:
		return r.quoted(a.Value)
	case imap.KindLiteral:
		if a.IsBytes {
			return r.literal(len(a.Bytes))
		}
		return r.literal(len(a.Value))
	case imap.KindSequence:
		return r.raw(a.Value)
	case imap.KindText:
		return r.raw(a.Value)
	case imap.KindList:
		r.raw("(")
		for i, item := range a.Items {
			if i > 0 {
				r.sp()
			}
			r.Attribute(item)
		}
		return r.raw(")")
	default:
		return r
	}
}

func (r *Render) section(items []imap.Attribute) *Render {
	r.raw("[")
	for i, item := range items {
		if i > 0 {
			r.sp()
		}
		r.Attribute(item)
	}
	return r.raw("]")
}

func (r *Render) partial(p imap.Partial) *Render {
	r.raw("<")
	r.raw(strconv.Itoa(p.Start))
	r.raw(".")
	r.raw(strconv.Itoa(p.Length))
	return r.raw(">")
}

func (r *Render) literal(n int) *Render {
	r.raw("{")
	r.raw(strconv.Itoa(n))
	return r.raw("}")
}

func (r *Render) quoted(s string) *Render {
	_ = r.w.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if syntax.IsQuotedSpecial(s[i]) {
			_ = r.w.WriteByte('\\')
		}
		_ = r.w.WriteByte(s[i])
	}
	_ = r.w.WriteByte('"')
	return r
}

func (r *Render) sp() *Render {
	_ = r.w.WriteByte(' ')
	return r
}

func (r *Render) raw(s string) *Render {
	_, _ = r.w.WriteString(s)
	return r
}

// ResponseString renders resp to a string in one call.
func ResponseString(resp imap.ParsedResponse) string {
	var buf bytes.Buffer
	r := NewRender(&buf)
	r.Response(resp)
	_ = r.Flush()
	return buf.String()
}

// AttributeString renders a single attribute to a string in one call.
func AttributeString(a imap.Attribute) string {
	var buf bytes.Buffer
	r := NewRender(&buf)
	r.Attribute(a)
	_ = r.Flush()
	return buf.String()
}
