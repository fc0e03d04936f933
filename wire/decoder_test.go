package wire

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	imap "github.com/meszmate/imapline"
)

func mustParse(t *testing.T, line string, opts Options) imap.ParsedResponse {
	t.Helper()
	resp, err := Parse([]byte(line), opts)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", line, err)
	}
	return resp
}

// TestParse_EndToEnd exercises the literal scenarios of spec.md §8.
func TestParse_EndToEnd(t *testing.T) {
	t.Run("tagged OK with human-readable text", func(t *testing.T) {
		got := mustParse(t, "A1 OK LOGIN completed", Options{})
		want := imap.ParsedResponse{
			Tag:              "A1",
			Command:          "OK",
			Attributes:       []imap.Attribute{imap.Text("LOGIN completed")},
			HumanReadable:    "LOGIN completed",
			HasHumanReadable: true,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("untagged capability list", func(t *testing.T) {
		got := mustParse(t, "* CAPABILITY IMAP4rev1 IDLE XLIST", Options{})
		want := imap.ParsedResponse{
			Tag:     "*",
			Command: "CAPABILITY",
			Attributes: []imap.Attribute{
				imap.Atom("IMAP4rev1"),
				imap.Atom("IDLE"),
				imap.Atom("XLIST"),
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("response code then human-readable text", func(t *testing.T) {
		got := mustParse(t, "A2 OK [READ-WRITE] SELECT completed", Options{})
		want := imap.ParsedResponse{
			Tag:     "A2",
			Command: "OK",
			Attributes: []imap.Attribute{
				{Kind: imap.KindAtom, Value: "READ-WRITE", Section: []imap.Attribute{}},
				imap.Text("SELECT completed"),
			},
			HumanReadable:    "SELECT completed",
			HasHumanReadable: true,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("UID FETCH with sequence set and body section partial", func(t *testing.T) {
		got := mustParse(t, "A3 UID FETCH 1:4,7,* (FLAGS BODY[HEADER.FIELDS (FROM TO)]<0.2048>)", Options{})
		want := imap.ParsedResponse{
			Tag:     "A3",
			Command: "UID FETCH",
			Attributes: []imap.Attribute{
				{Kind: imap.KindSequence, Value: "1:4,7,*"},
				{Kind: imap.KindList, Items: []imap.Attribute{
					imap.Atom("FLAGS"),
					{
						Kind:  imap.KindAtom,
						Value: "BODY",
						Section: []imap.Attribute{
							imap.Atom("HEADER.FIELDS"),
							{Kind: imap.KindList, Items: []imap.Attribute{imap.Atom("FROM"), imap.Atom("TO")}},
						},
						Partial: &imap.Partial{Start: 0, Length: 2048},
					},
				}},
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("APPEND literal stays raw bytes", func(t *testing.T) {
		got := mustParse(t, "A4 APPEND inbox {11}\r\nhello world", Options{})
		if got.Command != "APPEND" {
			t.Fatalf("command = %q", got.Command)
		}
		lit := got.Attributes[len(got.Attributes)-1]
		if lit.Kind != imap.KindLiteral || !lit.IsBytes || string(lit.Bytes) != "hello world" {
			t.Fatalf("literal = %+v", lit)
		}
	})

	t.Run("non-APPEND literal decodes to text", func(t *testing.T) {
		got := mustParse(t, "A4 NOOP inbox {11}\r\nhello world", Options{})
		lit := got.Attributes[len(got.Attributes)-1]
		if lit.Kind != imap.KindLiteral || lit.IsBytes || lit.Value != "hello world" {
			t.Fatalf("literal = %+v", lit)
		}
	})

	t.Run("continuation request", func(t *testing.T) {
		got := mustParse(t, "+ Ready for literal data", Options{})
		want := imap.ParsedResponse{
			Tag:              "+",
			Command:          "",
			Attributes:       []imap.Attribute{imap.Text("Ready for literal data")},
			HumanReadable:    "Ready for literal data",
			HasHumanReadable: true,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("leading NUL bytes stripped and counted", func(t *testing.T) {
		got := mustParse(t, "\x00\x00* OK hi", Options{})
		if got.NullBytesRemoved != 2 {
			t.Fatalf("NullBytesRemoved = %d, want 2", got.NullBytesRemoved)
		}
		if got.Tag != "*" || got.Command != "OK" {
			t.Fatalf("tag/command = %q/%q", got.Tag, got.Command)
		}
	})
}

func TestParse_ServerUnavailable(t *testing.T) {
	got := mustParse(t, "Server Unavailable.", Options{})
	want := imap.ParsedResponse{
		Tag:        "*",
		Command:    "BAD",
		Attributes: []imap.Attribute{imap.Text("Server Unavailable.")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Literals_PreCaptured(t *testing.T) {
	got := mustParse(t, "A5 NOOP {5}", Options{Literals: [][]byte{[]byte("abcde")}})
	lit := got.Attributes[0]
	if lit.Value != "abcde" {
		t.Fatalf("literal value = %q, want %q", lit.Value, "abcde")
	}
}

func TestParse_LiteralPlus(t *testing.T) {
	_, err := Parse([]byte("A6 NOOP {3+}\r\nabc"), Options{})
	if err == nil {
		t.Fatal("expected error without LiteralPlus enabled")
	}
	got, err := Parse([]byte("A6 NOOP {3+}\r\nabc"), Options{LiteralPlus: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Attributes[0].Value != "abc" {
		t.Fatalf("literal value = %q", got.Attributes[0].Value)
	}
}

func TestParse_NilAtom(t *testing.T) {
	got := mustParse(t, "A7 NOOP NIL", Options{})
	if got.Attributes[0].Kind != imap.KindNil {
		t.Fatalf("attribute kind = %v, want KindNil", got.Attributes[0].Kind)
	}
}

func TestParse_BareStarSequenceIsAtom(t *testing.T) {
	got := mustParse(t, "A8 FETCH *", Options{})
	if got.Attributes[0].Kind != imap.KindAtom || got.Attributes[0].Value != "*" {
		t.Fatalf("attribute = %+v, want ATOM *", got.Attributes[0])
	}
}

func TestParse_EmptyLiteral(t *testing.T) {
	got := mustParse(t, "A9 NOOP {0}\r\n", Options{})
	if got.Attributes[0].Value != "" {
		t.Fatalf("literal value = %q, want empty", got.Attributes[0].Value)
	}
}

func TestParse_LeadingZeroLiteralLengthRejected(t *testing.T) {
	_, err := Parse([]byte("A10 NOOP {010}\r\n0123456789"), Options{})
	if err == nil {
		t.Fatal("expected error for leading-zero literal length")
	}
	var perr *imap.ParseError
	if !errorsAs(err, &perr) {
		t.Fatalf("error is not a *imap.ParseError: %v", err)
	}
	if perr.Kind != imap.ErrInvalidLiteral {
		t.Fatalf("error kind = %v, want ErrInvalidLiteral", perr.Kind)
	}
}

func TestParse_UnterminatedQuotedString(t *testing.T) {
	_, err := Parse([]byte(`A11 NOOP "unterminated`), Options{})
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestParse_MismatchedListTerminator(t *testing.T) {
	_, err := Parse([]byte("A12 NOOP (FOO]"), Options{})
	if err == nil {
		t.Fatal("expected error for ']' closing a LIST")
	}
}

func TestParse_MaxNesting(t *testing.T) {
	open := ""
	for i := 0; i < 25; i++ {
		open += "("
	}
	close := ""
	for i := 0; i < 25; i++ {
		close += ")"
	}
	if _, err := Parse([]byte("A13 NOOP "+open+"FOO"+close), Options{}); err != nil {
		t.Fatalf("depth 25 should be accepted, got: %v", err)
	}

	open26 := open + "("
	close26 := ")" + close
	_, err := Parse([]byte("A14 NOOP "+open26+"FOO"+close26), Options{})
	if err == nil {
		t.Fatal("expected MaxNestingReached at depth 26")
	}
	var perr *imap.ParseError
	if !errorsAs(err, &perr) {
		t.Fatalf("error is not a *imap.ParseError: %v", err)
	}
	if perr.Kind != imap.ErrMaxNestingReached {
		t.Fatalf("error kind = %v, want ErrMaxNestingReached", perr.Kind)
	}
}

func errorsAs(err error, target **imap.ParseError) bool {
	if pe, ok := err.(*imap.ParseError); ok {
		*target = pe
		return true
	}
	return false
}
