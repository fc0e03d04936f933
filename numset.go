package imap

import "strconv"

// NumRange represents a range of numbers (sequence number or UID).
// If Start == Stop, it represents a single number. If Stop is 0, it
// represents "Start:*" — the dynamic upper bound the source marks with
// the literal '*' byte.
type NumRange struct {
	Start uint32
	Stop  uint32 // 0 means "*"
}

// Contains reports whether num falls within this range.
func (r NumRange) Contains(num uint32) bool {
	if r.Stop == 0 {
		return num >= r.Start
	}
	start, stop := r.Start, r.Stop
	if start > stop {
		start, stop = stop, start
	}
	return num >= start && num <= stop
}

// String returns the IMAP string representation of the range.
func (r NumRange) String() string {
	if r.Start == r.Stop {
		return strconv.FormatUint(uint64(r.Start), 10)
	}
	start := strconv.FormatUint(uint64(r.Start), 10)
	var stop string
	if r.Stop == 0 {
		stop = "*"
	} else {
		stop = strconv.FormatUint(uint64(r.Stop), 10)
	}
	return start + ":" + stop
}
