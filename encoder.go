package varlzw

import (
	"bufio"
	"fmt"
	"io"

	"github.com/seiflotfy/varlzw/bitio"
	"github.com/seiflotfy/varlzw/tracker"
)

// encoder drives one compression run. The codebook maps prefixes to codes;
// current is the mutable prefix buffer extended byte by byte, copied when a
// new entry is committed to the codebook and, under lru/lfu, when an emitted
// prefix is converted to a tracker key.
type encoder struct {
	cfg      Config
	alphabet *Alphabet
	bw       *bitio.Writer
	dict     *prefixTable
	victims  tracker.Tracker[string] // nil unless policy is lru/lfu

	width     int
	threshold int // 1 << width, cached
	maxCode   int
	nextCode  int

	initialNext int
	eofCode     int
	resetCode   int
}

func newEncoder(dst io.Writer, alphabet *Alphabet, cfg Config) (*encoder, error) {
	if alphabet == nil || alphabet.Size() == 0 {
		return nil, ErrEmptyAlphabet
	}
	if cfg.MinWidth < 1 {
		return nil, fmt.Errorf("%w: minW=%d, must be at least 1", ErrWidthRange, cfg.MinWidth)
	}
	if cfg.MaxWidth < cfg.MinWidth {
		return nil, fmt.Errorf("%w: maxW=%d, must be >= minW=%d", ErrWidthRange, cfg.MaxWidth, cfg.MinWidth)
	}
	if cfg.MaxWidth > bitio.MaxWidth {
		return nil, fmt.Errorf("%w: maxW=%d, limit is %d", ErrWidthRange, cfg.MaxWidth, bitio.MaxWidth)
	}

	e := &encoder{
		cfg:      cfg,
		alphabet: alphabet,
		bw:       bitio.NewWriter(dst),
		maxCode:  1 << cfg.MaxWidth,
	}

	// Codes 0..|A|-1 are the alphabet, then the reserved codes.
	e.eofCode = alphabet.Size()
	e.nextCode = e.eofCode + 1
	if cfg.Policy == PolicyReset {
		e.resetCode = e.nextCode
		e.nextCode++
	}
	e.initialNext = e.nextCode

	e.width = cfg.MinWidth
	e.threshold = 1 << e.width
	if e.threshold < e.initialNext {
		return nil, fmt.Errorf("%w: minW=%d cannot represent the %d initial codes",
			ErrWidthRange, cfg.MinWidth, e.initialNext)
	}

	e.dict = newPrefixTable(alphabet, e.maxCode)
	switch cfg.Policy {
	case PolicyLRU:
		e.victims = tracker.NewLRU[string](e.maxCode)
	case PolicyLFU:
		e.victims = tracker.NewLFU[string](e.maxCode)
	}
	return e, nil
}

func (e *encoder) run(src io.Reader) error {
	if err := writeHeader(e.bw, header{
		minWidth: e.cfg.MinWidth,
		maxWidth: e.cfg.MaxWidth,
		policy:   e.cfg.Policy,
		alphabet: e.alphabet,
	}); err != nil {
		return err
	}

	in := bufio.NewReader(src)

	first, err := in.ReadByte()
	if err == io.EOF {
		// Header only; not even an EOF code.
		return e.bw.Close()
	}
	if err != nil {
		return err
	}
	if !e.alphabet.Contains(first) {
		return fmt.Errorf("%w: byte 0x%02x at offset 0", ErrByteNotInAlphabet, first)
	}

	current := make([]byte, 1, 64)
	current[0] = first

	for offset := 1; ; offset++ {
		c, err := in.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if !e.alphabet.Contains(c) {
			return fmt.Errorf("%w: byte 0x%02x at offset %d", ErrByteNotInAlphabet, c, offset)
		}

		current = append(current, c)
		if e.dict.contains(current) {
			continue
		}

		if err := e.emitPrefix(current[:len(current)-1]); err != nil {
			return err
		}

		if e.nextCode < e.maxCode {
			e.grow(current)
		} else if e.cfg.Policy == PolicyReset {
			if err := e.reset(); err != nil {
				return err
			}
		}
		// Freeze: nothing further. lru/lfu never reach a full table
		// without having evicted on the filling insert.

		current = current[:1]
		current[0] = c
	}

	if len(current) > 0 {
		if err := e.emitPrefix(current); err != nil {
			return err
		}
	}

	e.growWidth()
	e.tracef("emit EOF code=%d width=%d", e.eofCode, e.width)
	if err := e.bw.WriteBits(uint32(e.eofCode), uint(e.width)); err != nil {
		return err
	}
	return e.bw.Close()
}

// emitPrefix writes the code for prefix at the current width and records the
// use on the tracker when the prefix is an evictable entry.
func (e *encoder) emitPrefix(prefix []byte) error {
	code, ok := e.dict.code(prefix)
	if !ok {
		// The loop only emits prefixes it found in the codebook.
		return fmt.Errorf("%w: prefix vanished from codebook", ErrBadCode)
	}
	e.tracef("emit code=%d width=%d prefix=%q", code, e.width, prefix)
	if err := e.bw.WriteBits(uint32(code), uint(e.width)); err != nil {
		return err
	}
	if e.victims != nil {
		key := string(prefix)
		if e.victims.Contains(key) {
			e.victims.Use(key)
		}
	}
	return nil
}

// grow inserts next as a fresh codebook entry, raising the code width and
// evicting a policy victim first when required.
func (e *encoder) grow(next []byte) {
	e.growWidth()

	if e.victims != nil && e.nextCode == e.maxCode-1 {
		// This insert fills the table; the victim goes now, at the
		// same logical step the decoder will pick its own.
		if victim, ok := e.victims.Victim(); ok {
			e.tracef("evict %q", victim)
			e.dict.remove(victim)
			e.victims.Remove(victim)
		}
	}

	key := string(next)
	e.dict.insert(key, e.nextCode)
	if e.victims != nil {
		e.victims.Use(key)
	}
	e.tracef("insert code=%d entry=%q", e.nextCode, key)
	e.nextCode++
}

// reset emits the reset code and rebuilds the codebook to its initial state.
func (e *encoder) reset() error {
	e.growWidth()
	e.tracef("emit RESET code=%d width=%d", e.resetCode, e.width)
	if err := e.bw.WriteBits(uint32(e.resetCode), uint(e.width)); err != nil {
		return err
	}
	e.dict.reset(e.alphabet)
	e.nextCode = e.initialNext
	e.width = e.cfg.MinWidth
	e.threshold = 1 << e.width
	e.tracef("reset complete nextCode=%d width=%d", e.nextCode, e.width)
	return nil
}

// growWidth raises the code width one step when nextCode has crossed the
// current threshold, so the next emission stays legible.
func (e *encoder) growWidth() {
	if e.nextCode >= e.threshold && e.width < e.cfg.MaxWidth {
		e.width++
		e.threshold = 1 << e.width
		e.tracef("width -> %d", e.width)
	}
}

func (e *encoder) tracef(format string, args ...any) {
	if e.cfg.Trace != nil {
		e.cfg.Trace(format, args...)
	}
}
