// Package varlzw implements an LZW codec with variable-width codewords and
// selectable full-dictionary policies. The codebook starts from a caller
// supplied alphabet and grows to at most 2^maxW codes. The configured policy
// decides what happens at that bound: freeze stops growth, reset flushes the
// codebook, and LRU/LFU evict one entry, chosen by recency or frequency, on
// the insert that fills the table, after which the codebook no longer grows.
// Encoder and decoder run the same policy state machine
// step for step, which is what keeps the two codebooks identical without any
// side channel in the stream.
package varlzw

import (
	"io"
)

// Policy selects the full-codebook behavior. The zero value is PolicyFreeze.
type Policy uint8

const (
	// PolicyFreeze stops codebook growth once it is full.
	PolicyFreeze Policy = iota
	// PolicyReset flushes the codebook back to its initial state once full,
	// signaled in-stream with a reserved reset code.
	PolicyReset
	// PolicyLRU evicts the least recently used non-alphabet entry.
	PolicyLRU
	// PolicyLFU evicts the least frequently used non-alphabet entry.
	PolicyLFU
)

// ParsePolicy maps a policy name to its Policy value. Unknown names map to
// PolicyFreeze, mirroring the decoder's handling of unknown policy bytes.
func ParsePolicy(name string) Policy {
	switch name {
	case "reset":
		return PolicyReset
	case "lru":
		return PolicyLRU
	case "lfu":
		return PolicyLFU
	default:
		return PolicyFreeze
	}
}

func (p Policy) String() string {
	switch p {
	case PolicyReset:
		return "reset"
	case PolicyLRU:
		return "lru"
	case PolicyLFU:
		return "lfu"
	default:
		return "freeze"
	}
}

const (
	// DefaultMinWidth is the starting codeword width in bits.
	DefaultMinWidth = 9
	// DefaultMaxWidth caps the codeword width, bounding the codebook at
	// 2^DefaultMaxWidth entries.
	DefaultMaxWidth = 16
)

// Config holds the codec parameters.
type Config struct {
	MinWidth int    // Starting codeword width in bits (>= 1)
	MaxWidth int    // Maximum codeword width in bits (>= MinWidth)
	Policy   Policy // Full-codebook policy

	// Trace receives step-by-step codec events when non-nil. Diagnostic
	// only; the hook must not fail.
	Trace func(format string, args ...any)
}

// Option is a functional option for configuring the codec.
type Option func(*Config)

// WithMinWidth sets the starting codeword width.
func WithMinWidth(w int) Option {
	return func(c *Config) {
		c.MinWidth = w
	}
}

// WithMaxWidth sets the maximum codeword width.
func WithMaxWidth(w int) Option {
	return func(c *Config) {
		c.MaxWidth = w
	}
}

// WithPolicy sets the full-codebook policy.
func WithPolicy(p Policy) Option {
	return func(c *Config) {
		c.Policy = p
	}
}

// WithTrace installs a diagnostic trace hook.
func WithTrace(trace func(format string, args ...any)) Option {
	return func(c *Config) {
		c.Trace = trace
	}
}

func newConfig(opts []Option) Config {
	cfg := Config{
		MinWidth: DefaultMinWidth,
		MaxWidth: DefaultMaxWidth,
		Policy:   PolicyFreeze,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Compress reads a byte stream from src and writes the compressed stream
// (header followed by codewords) to dst. Every byte of src must be a member
// of alphabet.
func Compress(dst io.Writer, src io.Reader, alphabet *Alphabet, opts ...Option) error {
	cfg := newConfig(opts)
	enc, err := newEncoder(dst, alphabet, cfg)
	if err != nil {
		return err
	}
	return enc.run(src)
}

// Expand reads a compressed stream from src and writes the reconstructed
// byte stream to dst. All parameters are taken from the stream header; of
// the options only WithTrace has any effect.
func Expand(dst io.Writer, src io.Reader, opts ...Option) error {
	cfg := newConfig(opts)
	dec, err := newDecoder(src, cfg.Trace)
	if err != nil {
		return err
	}
	return dec.run(dst)
}
