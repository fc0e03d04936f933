// Package wire implements the line parser: the driver that strips the
// Exchange NUL-byte quirk, extracts tag and command, separates a
// status response's bracketed response code from its human-readable
// text, and hands the residual argument region to the token package's
// tree builder (spec.md §4.3).
package wire

import (
	"strings"

	imap "github.com/meszmate/imapline"
	"github.com/meszmate/imapline/syntax"
	"github.com/meszmate/imapline/token"
)

// Options configures a single Parse call (spec.md §6).
type Options struct {
	// Literals is the ordered queue of pre-captured literal payloads,
	// forwarded to the token parser unchanged.
	Literals [][]byte
	// LiteralPlus enables acceptance of the {n+} literal prefix.
	LiteralPlus bool
	// AllowUntagged is accepted for interface fidelity with spec.md §6;
	// the line parser always allows an untagged ("*") response, so this
	// flag has no effect.
	AllowUntagged bool
}

const serverUnavailable = "Server Unavailable."

// Parse decodes a single IMAP line (without its trailing CRLF) into a
// ParsedResponse, per the extraction pipeline of spec.md §4.3.
func Parse(line []byte, opts Options) (imap.ParsedResponse, error) {
	nulls := 0
	for nulls < len(line) && line[nulls] == 0x00 {
		nulls++
	}
	body := line[nulls:]

	if string(body) == serverUnavailable {
		return imap.ParsedResponse{
			Tag:        "*",
			Command:    "BAD",
			Attributes: []imap.Attribute{imap.Text(serverUnavailable)},
		}, nil
	}

	d := &decoder{line: line, pos: nulls, opts: opts}
	resp, err := d.parse()
	if err != nil {
		return imap.ParsedResponse{}, err
	}
	resp.NullBytesRemoved = nulls
	return resp, nil
}

type decoder struct {
	line []byte
	pos  int
	opts Options
}

func (d *decoder) errAt(kind imap.ErrorKind) error {
	return imap.NewParseError(kind, d.pos, d.line)
}

func (d *decoder) errChar(kind imap.ErrorKind, b byte) error {
	return imap.NewParseErrorChar(kind, d.pos, b, d.line)
}

// readElement reads bytes from d.pos up to (not including) the next
// space or end of line, advancing d.pos past it but not past any
// trailing space.
func (d *decoder) readElement() []byte {
	start := d.pos
	for d.pos < len(d.line) && d.line[d.pos] != ' ' {
		d.pos++
	}
	return d.line[start:d.pos]
}

func (d *decoder) parse() (imap.ParsedResponse, error) {
	// 1. Tag.
	tagStart := d.pos
	tag := d.readElement()
	if len(tag) == 0 {
		return imap.ParsedResponse{}, d.errChar(imap.ErrUnexpectedWhitespace, ' ')
	}
	tagStr := string(tag)
	if tagStr != "*" && tagStr != "+" {
		if off := syntax.VerifyElement(tag, syntax.IsTagChar); off != syntax.Verify {
			return imap.ParsedResponse{}, imap.NewParseErrorChar(imap.ErrUnexpectedChar, tagStart+off, tag[off], d.line)
		}
	}

	// 2. Space.
	if d.pos >= len(d.line) || d.line[d.pos] != ' ' {
		return imap.ParsedResponse{}, d.errAt(imap.ErrUnexpectedEndOfInput)
	}
	d.pos++

	// 3. Command, or the continuation-request short circuit.
	if tagStr == "+" {
		text := strings.TrimSpace(string(d.line[d.pos:]))
		resp := imap.ParsedResponse{Tag: tagStr, Command: ""}
		if text != "" {
			resp.HumanReadable = text
			resp.HasHumanReadable = true
			resp.Attributes = append(resp.Attributes, imap.Text(text))
		}
		return resp, nil
	}

	cmdStart := d.pos
	cmd := d.readElement()
	if len(cmd) == 0 {
		return imap.ParsedResponse{}, d.errAt(imap.ErrUnexpectedWhitespace)
	}
	if off := syntax.VerifyElement(cmd, syntax.IsCommandChar); off != syntax.Verify {
		return imap.ParsedResponse{}, imap.NewParseErrorChar(imap.ErrUnexpectedChar, cmdStart+off, cmd[off], d.line)
	}
	command := string(cmd)

	// 4. Two-word command coalescing.
	if imap.IsTwoWordCommand(command) {
		if d.pos < len(d.line) && d.line[d.pos] == ' ' {
			d.pos++
			secondStart := d.pos
			second := d.readElement()
			if len(second) > 0 && syntax.VerifyElement(second, syntax.IsCommandChar) == syntax.Verify {
				command = command + " " + string(second)
			} else if len(second) > 0 {
				return imap.ParsedResponse{}, imap.NewParseErrorChar(imap.ErrUnexpectedChar, secondStart, second[0], d.line)
			} else {
				d.pos = secondStart // not a second word after all; rewind the space
				d.pos--
			}
		}
	}

	resp := imap.ParsedResponse{Tag: tagStr, Command: command}

	// 5. Response-code separation (status responses only) / argument
	// region for every other command.
	var argStart, argEnd int
	haveArg := false

	if imap.IsStatusCommand(command) {
		scan := d.pos
		for scan < len(d.line) && d.line[scan] == ' ' {
			scan++
		}
		if scan < len(d.line) && d.line[scan] == '[' {
			depth := 1
			i := scan + 1
			for i < len(d.line) && depth > 0 {
				switch d.line[i] {
				case '[':
					depth++
				case ']':
					depth--
				}
				i++
			}
			if depth != 0 {
				return imap.ParsedResponse{}, imap.NewParseError(imap.ErrUnexpectedEndOfInput, len(d.line), d.line)
			}
			argStart, argEnd = scan, i
			haveArg = true
			rest := strings.TrimSpace(string(d.line[i:]))
			if rest != "" {
				resp.HumanReadable = rest
				resp.HasHumanReadable = true
			}
		} else {
			rest := strings.TrimSpace(string(d.line[d.pos:]))
			if rest != "" {
				resp.HumanReadable = rest
				resp.HasHumanReadable = true
			}
		}
	} else if d.pos < len(d.line) {
		if d.line[d.pos] != ' ' {
			return imap.ParsedResponse{}, d.errChar(imap.ErrUnexpectedChar, d.line[d.pos])
		}
		d.pos++
		argStart, argEnd = d.pos, len(d.line)
		haveArg = argStart < argEnd
	}

	// 6. Attributes.
	if haveArg {
		tree, err := token.Parse(d.line[argStart:argEnd], argStart, token.Options{
			Literals:    d.opts.Literals,
			LiteralPlus: d.opts.LiteralPlus,
			Command:     command,
		})
		if err != nil {
			return imap.ParsedResponse{}, err
		}
		attrs, err := token.Flatten(tree, command)
		if err != nil {
			return imap.ParsedResponse{}, err
		}
		resp.Attributes = append(resp.Attributes, attrs...)
	}

	// 7. Human-readable appendage.
	if resp.HasHumanReadable {
		resp.Attributes = append(resp.Attributes, imap.Text(resp.HumanReadable))
	}

	return resp, nil
}
