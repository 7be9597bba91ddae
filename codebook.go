package varlzw

// prefixTable is the encoder-side codebook: byte-string prefixes mapped to
// integer codes. The hot lookup path takes the candidate prefix as a byte
// slice; the string(next) conversion inside a map index compiles to a
// zero-allocation lookup, so extending the current prefix and probing costs
// no copies. Insert takes the key as a string, which the caller converts
// for real, giving the table its own copy of the key, detached from the
// caller's mutable prefix buffer.
type prefixTable struct {
	codes map[string]int
}

func newPrefixTable(a *Alphabet, capacity int) *prefixTable {
	// Size hint only; very wide configurations grow on demand.
	t := &prefixTable{codes: make(map[string]int, min(capacity, 1<<16))}
	t.seed(a)
	return t
}

// seed maps each alphabet symbol to its index.
func (t *prefixTable) seed(a *Alphabet) {
	for i, sym := range a.symbols {
		t.codes[string([]byte{sym})] = i
	}
}

func (t *prefixTable) contains(s []byte) bool {
	_, ok := t.codes[string(s)]
	return ok
}

func (t *prefixTable) code(s []byte) (int, bool) {
	c, ok := t.codes[string(s)]
	return c, ok
}

func (t *prefixTable) insert(key string, code int) {
	t.codes[key] = code
}

func (t *prefixTable) remove(key string) {
	delete(t.codes, key)
}

// reset drops everything and reseeds the alphabet entries.
func (t *prefixTable) reset(a *Alphabet) {
	clear(t.codes)
	t.seed(a)
}

// codeTable is the decoder-side codebook: a dense table from integer code to
// the byte string it denotes. Slots are nil when absent (reserved codes,
// evicted entries, not-yet-allocated codes).
type codeTable struct {
	entries      [][]byte
	alphabetSize int
}

func newCodeTable(maxCode int, a *Alphabet) *codeTable {
	// Wide configurations start small and grow as codes are allocated,
	// instead of committing 2^maxW slots up front.
	t := &codeTable{
		entries:      make([][]byte, min(maxCode, 1<<16)),
		alphabetSize: a.Size(),
	}
	for i, sym := range a.symbols {
		t.entries[i] = []byte{sym}
	}
	return t
}

func (t *codeTable) lookup(code int) ([]byte, bool) {
	if code < 0 || code >= len(t.entries) || t.entries[code] == nil {
		return nil, false
	}
	return t.entries[code], true
}

func (t *codeTable) set(code int, s []byte) {
	for code >= len(t.entries) {
		t.entries = append(t.entries, make([][]byte, len(t.entries))...)
	}
	t.entries[code] = s
}

func (t *codeTable) clear(code int) {
	t.entries[code] = nil
}

// resetToAlphabet clears every non-alphabet slot.
func (t *codeTable) resetToAlphabet() {
	for i := t.alphabetSize; i < len(t.entries); i++ {
		t.entries[i] = nil
	}
}
