package varlzw

import (
	"fmt"
	"io"

	"github.com/seiflotfy/varlzw/bitio"
)

// Wire format:
//
//	minW         8 bits
//	maxW         8 bits
//	policy       8 bits (0=freeze, 1=reset, 2=lru, 3=lfu; unknown reads as freeze)
//	alphabetSize 16 bits
//	alphabet     8 bits per symbol, in code order
//	codewords    minW..maxW bits each, MSB first, ending with EOF_CODE
//
// Fields are bit-packed with no alignment; the header happens to span whole
// bytes, the code stream does not.

type header struct {
	minWidth int
	maxWidth int
	policy   Policy
	alphabet *Alphabet
}

func writeHeader(bw *bitio.Writer, h header) error {
	if err := bw.WriteBits(uint32(h.minWidth), 8); err != nil {
		return err
	}
	if err := bw.WriteBits(uint32(h.maxWidth), 8); err != nil {
		return err
	}
	if err := bw.WriteBits(uint32(h.policy), 8); err != nil {
		return err
	}
	if err := bw.WriteBits(uint32(h.alphabet.Size()), 16); err != nil {
		return err
	}
	for _, sym := range h.alphabet.symbols {
		if err := bw.WriteBits(uint32(sym), 8); err != nil {
			return err
		}
	}
	return nil
}

func readHeader(br *bitio.Reader) (header, error) {
	var h header

	minW, err := br.ReadBits(8)
	if err != nil {
		return h, headerErr(err)
	}
	h.minWidth = int(minW)

	maxW, err := br.ReadBits(8)
	if err != nil {
		return h, headerErr(err)
	}
	h.maxWidth = int(maxW)

	rawPolicy, err := br.ReadBits(8)
	if err != nil {
		return h, headerErr(err)
	}
	switch Policy(rawPolicy) {
	case PolicyFreeze, PolicyReset, PolicyLRU, PolicyLFU:
		h.policy = Policy(rawPolicy)
	default:
		// Unknown policies compress as freeze, so they expand as it too.
		h.policy = PolicyFreeze
	}

	size, err := br.ReadBits(16)
	if err != nil {
		return h, headerErr(err)
	}
	symbols := make([]byte, size)
	for i := range symbols {
		v, err := br.ReadBits(8)
		if err != nil {
			return h, headerErr(err)
		}
		symbols[i] = byte(v)
	}
	h.alphabet = newAlphabetRaw(symbols)

	if err := h.validate(); err != nil {
		return h, err
	}
	return h, nil
}

func (h header) validate() error {
	if h.minWidth < 1 || h.maxWidth < h.minWidth || h.maxWidth > bitio.MaxWidth {
		return fmt.Errorf("%w: minW=%d maxW=%d", ErrWidthRange, h.minWidth, h.maxWidth)
	}
	if h.alphabet.Size() == 0 {
		return ErrEmptyAlphabet
	}
	reserved := 1
	if h.policy == PolicyReset {
		reserved = 2
	}
	// The encoder refuses widths that cannot hold the initial codes, so a
	// header violating this never came from it.
	if h.alphabet.Size()+reserved > 1<<h.minWidth {
		return fmt.Errorf("%w: %d alphabet symbols do not fit minW=%d",
			ErrWidthRange, h.alphabet.Size(), h.minWidth)
	}
	return nil
}

func headerErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: header", ErrTruncated)
	}
	return err
}
