// Package seqset is a supplementary companion to the core line parser:
// it takes the opaque, already-verified text of a Sequence attribute
// and turns it into a usable set of numeric ranges. Interpreting
// sequence-set numbers against mailbox state stays out of scope (that
// is still a caller's job); this package only does the one thing the
// core deliberately leaves undone — splitting "1:4,7,*" into ranges a
// caller can iterate or test membership against.
package seqset

import (
	"fmt"
	"strconv"
	"strings"

	imap "github.com/meszmate/imapline"
)

// Range is a single sequence-set range. Stop == 0 means the dynamic
// upper bound "*"; Start == Stop represents a single number.
type Range struct {
	Start uint32
	Stop  uint32
}

// Contains reports whether num falls within r.
func (r Range) Contains(num uint32) bool {
	if r.Stop == 0 {
		return num >= r.Start
	}
	start, stop := r.Start, r.Stop
	if start > stop {
		start, stop = stop, start
	}
	return num >= start && num <= stop
}

// String returns the IMAP text form of r, writing 0 as "*" in either
// position.
func (r Range) String() string {
	num := func(n uint32) string {
		if n == 0 {
			return "*"
		}
		return strconv.FormatUint(uint64(n), 10)
	}
	if r.Start == r.Stop {
		return num(r.Start)
	}
	return num(r.Start) + ":" + num(r.Stop)
}

// Set is a parsed sequence set: an ordered list of Ranges, in the
// order they appeared on the wire.
type Set struct {
	Ranges []Range
}

// Dynamic reports whether the set contains "*", in either the start or
// the stop position of any range.
func (s Set) Dynamic() bool {
	for _, r := range s.Ranges {
		if r.Start == 0 || r.Stop == 0 {
			return true
		}
	}
	return false
}

// Contains reports whether num falls within any range of the set.
func (s Set) Contains(num uint32) bool {
	for _, r := range s.Ranges {
		if r.Contains(num) {
			return true
		}
	}
	return false
}

// String returns the IMAP text form of the set, comma-joined.
func (s Set) String() string {
	parts := make([]string, len(s.Ranges))
	for i, r := range s.Ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

// Parse expands a parsed Sequence attribute into a Set. attr must have
// Kind == imap.KindSequence; anything else is a programmer error, not
// a malformed-input condition, since the core only ever produces
// well-formed sequence text (digits, ',', ':', and '*' only after ','
// or ':') by the time an Attribute reaches this package.
func Parse(attr imap.Attribute) (Set, error) {
	if attr.Kind != imap.KindSequence {
		return Set{}, fmt.Errorf("imap/seqset: attribute kind %s is not a sequence", attr.Kind)
	}
	return ParseText(attr.Value)
}

// ParseText expands the raw text of a sequence set (e.g. "1:4,7,*")
// into a Set. It is exported separately from Parse for callers that
// already have the bare text (a CLI flag, a saved search) and no
// Attribute to wrap it in.
func ParseText(s string) (Set, error) {
	if s == "" {
		return Set{}, fmt.Errorf("imap/seqset: empty sequence set")
	}
	parts := strings.Split(s, ",")
	ranges := make([]Range, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return Set{}, fmt.Errorf("imap/seqset: empty range in sequence set %q", s)
		}
		colon := strings.IndexByte(part, ':')
		if colon < 0 {
			num, err := parseSeqNum(part)
			if err != nil {
				return Set{}, err
			}
			ranges = append(ranges, Range{Start: num, Stop: num})
			continue
		}
		start, err := parseSeqNum(part[:colon])
		if err != nil {
			return Set{}, err
		}
		stop, err := parseSeqNum(part[colon+1:])
		if err != nil {
			return Set{}, err
		}
		ranges = append(ranges, Range{Start: start, Stop: stop})
	}
	return Set{Ranges: ranges}, nil
}

func parseSeqNum(s string) (uint32, error) {
	if s == "*" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("imap/seqset: invalid number %q: %w", s, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("imap/seqset: sequence number must be non-zero")
	}
	return uint32(n), nil
}
