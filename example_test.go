package varlzw_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/seiflotfy/varlzw"
)

// ExampleCompress demonstrates a full compress/expand round trip with an
// explicit alphabet and an eviction policy.
func ExampleCompress() {
	alphabet, err := varlzw.ParseAlphabet(strings.NewReader("a\nb\nc\n"))
	if err != nil {
		panic(err)
	}

	var packed bytes.Buffer
	err = varlzw.Compress(&packed, strings.NewReader("abcabcabcabc"), alphabet,
		varlzw.WithMinWidth(3),
		varlzw.WithMaxWidth(12),
		varlzw.WithPolicy(varlzw.PolicyLRU),
	)
	if err != nil {
		panic(err)
	}

	var out bytes.Buffer
	if err := varlzw.Expand(&out, &packed); err != nil {
		panic(err)
	}
	fmt.Println(out.String())

	// Output:
	// abcabcabcabc
}

// ExampleParsePolicy shows the freeze fallback for unknown policy names.
func ExampleParsePolicy() {
	fmt.Println(varlzw.ParsePolicy("lfu"))
	fmt.Println(varlzw.ParsePolicy("no-such-policy"))

	// Output:
	// lfu
	// freeze
}
