package varlzw

import "errors"

var (
	// ErrWidthRange indicates a codeword width configuration the codec
	// cannot honor.
	ErrWidthRange = errors.New("codeword width out of range")
	// ErrEmptyAlphabet indicates an alphabet with no symbols.
	ErrEmptyAlphabet = errors.New("alphabet contains no symbols")
	// ErrByteNotInAlphabet indicates an input byte outside the alphabet.
	ErrByteNotInAlphabet = errors.New("input byte not in alphabet")
	// ErrBadCode indicates a codeword that is neither in the codebook nor
	// the next code to be allocated.
	ErrBadCode = errors.New("bad compressed code")
	// ErrTruncated indicates a compressed stream that ended mid-codeword
	// or mid-header.
	ErrTruncated = errors.New("truncated compressed stream")
)
