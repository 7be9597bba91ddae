package varlzw

import (
	"bufio"
	"fmt"
	"io"

	"github.com/seiflotfy/varlzw/bitio"
	"github.com/seiflotfy/varlzw/tracker"
)

// decoder reconstructs the byte stream by replaying the encoder's codebook
// discipline against the code stream. Inserts, width growth, resets and
// evictions all happen at the same logical step as on the encoding side;
// that replay is the only thing keeping both codebooks equal, so the order
// of operations in run mirrors the encoder exactly.
type decoder struct {
	br      *bitio.Reader
	trace   func(format string, args ...any)
	table   *codeTable
	victims tracker.Tracker[int] // nil unless the stream policy is lru/lfu

	minWidth  int
	maxWidth  int
	width     int
	threshold int
	maxCode   int
	nextCode  int

	alphabetSize int
	initialNext  int
	eofCode      int
	resetCode    int
	resetPolicy  bool
}

func newDecoder(src io.Reader, trace func(format string, args ...any)) (*decoder, error) {
	br := bitio.NewReader(src)
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	d := &decoder{
		br:           br,
		trace:        trace,
		minWidth:     h.minWidth,
		maxWidth:     h.maxWidth,
		maxCode:      1 << h.maxWidth,
		alphabetSize: h.alphabet.Size(),
	}
	d.eofCode = d.alphabetSize
	if h.policy == PolicyReset {
		d.resetPolicy = true
		d.resetCode = d.alphabetSize + 1
		d.initialNext = d.alphabetSize + 2
	} else {
		d.initialNext = d.alphabetSize + 1
	}
	d.nextCode = d.initialNext
	d.width = d.minWidth
	d.threshold = 1 << d.width

	d.table = newCodeTable(d.maxCode, h.alphabet)
	switch h.policy {
	case PolicyLRU:
		d.victims = tracker.NewLRU[int](d.maxCode)
	case PolicyLFU:
		d.victims = tracker.NewLFU[int](d.maxCode)
	}
	return d, nil
}

func (d *decoder) run(dst io.Writer) error {
	out := bufio.NewWriter(dst)
	err := d.decode(out)
	// Whatever was decoded before a stream error stays emitted.
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	return err
}

func (d *decoder) decode(out *bufio.Writer) error {
	first, err := d.br.ReadBits(uint(d.width))
	if err == io.EOF {
		// Header-only stream: the encoder saw empty input.
		return nil
	}
	if err != nil {
		return readErr(err)
	}
	if int(first) == d.eofCode {
		return nil
	}
	if int(first) >= d.alphabetSize {
		return fmt.Errorf("%w: first code %d is not an alphabet code", ErrBadCode, first)
	}
	prev, _ := d.table.lookup(int(first))
	if _, err := out.Write(prev); err != nil {
		return err
	}

	for {
		// Width check before reading; pairs with the encoder raising
		// the width at the start of its growth step, before inserting at
		// nextCode. This side's inserts trail the encoder's by one code,
		// so both test the same nextCode.
		if d.nextCode >= d.threshold && d.width < d.maxWidth {
			d.width++
			d.threshold = 1 << d.width
			d.tracef("width -> %d", d.width)
		}

		code, err := d.br.ReadBits(uint(d.width))
		if err == io.EOF {
			// Clean end without an EOF code: a frozen stream that
			// stopped at the byte boundary.
			break
		}
		if err != nil {
			return readErr(err)
		}
		x := int(code)
		d.tracef("read code=%d width=%d", x, d.width)

		if x == d.eofCode {
			break
		}

		if d.resetPolicy && x == d.resetCode {
			s, done, err := d.handleReset(out)
			if err != nil {
				return err
			}
			if done {
				break
			}
			prev = s
			continue
		}

		var s []byte
		switch {
		case x < d.nextCode:
			entry, ok := d.table.lookup(x)
			if !ok {
				return fmt.Errorf("%w: %d", ErrBadCode, x)
			}
			s = entry
		case x == d.nextCode:
			// The classical edge case: the encoder used the entry
			// it created one step ago, before this side could see
			// it. It can only be prev extended by its own first
			// byte.
			grown := make([]byte, 0, len(prev)+1)
			grown = append(grown, prev...)
			s = append(grown, prev[0])
		default:
			return fmt.Errorf("%w: %d", ErrBadCode, x)
		}

		if _, err := out.Write(s); err != nil {
			return err
		}

		if d.nextCode < d.maxCode {
			if d.victims != nil && d.nextCode == d.maxCode-1 {
				if victim, ok := d.victims.Victim(); ok {
					d.tracef("evict code=%d", victim)
					d.table.clear(victim)
					d.victims.Remove(victim)
				}
			}
			entry := make([]byte, 0, len(prev)+1)
			entry = append(entry, prev...)
			entry = append(entry, s[0])
			d.table.set(d.nextCode, entry)
			if d.victims != nil {
				d.victims.Use(d.nextCode)
			}
			d.tracef("insert code=%d entry=%q", d.nextCode, entry)
			d.nextCode++
		}

		// Use-update after the insert, encoder-style; alphabet and
		// reserved codes are never tracked.
		if d.victims != nil && x > d.eofCode {
			d.victims.Use(x)
		}

		prev = s
	}

	return nil
}

// handleReset rebuilds the table and consumes the code following the reset,
// which restarts the stream the way the first code did. done reports that
// the stream ended right after the reset.
func (d *decoder) handleReset(out *bufio.Writer) ([]byte, bool, error) {
	d.tracef("reset")
	d.table.resetToAlphabet()
	d.nextCode = d.initialNext
	d.width = d.minWidth
	d.threshold = 1 << d.width

	code, err := d.br.ReadBits(uint(d.width))
	if err != nil {
		return nil, false, readErr(err)
	}
	x := int(code)
	if x == d.eofCode {
		return nil, true, nil
	}
	if x >= d.alphabetSize {
		return nil, false, fmt.Errorf("%w: code %d directly after reset", ErrBadCode, x)
	}
	s, _ := d.table.lookup(x)
	if _, err := out.Write(s); err != nil {
		return nil, false, err
	}
	return s, false, nil
}

func (d *decoder) tracef(format string, args ...any) {
	if d.trace != nil {
		d.trace(format, args...)
	}
}

func readErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: stream ended before EOF code", ErrTruncated)
	}
	return err
}
