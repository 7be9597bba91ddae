// Command varlzw compresses standard input to standard output (or the
// inverse) using LZW with variable-width codewords and a selectable
// full-codebook policy.
//
// Usage:
//
//	varlzw --mode compress --alphabet <file> [--minW <n>] [--maxW <n>] [--policy <name>]
//	varlzw --mode expand
//
// Exit status is 0 on success, 1 on any user-visible error and 2 for an
// unrecognized option token.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/seiflotfy/varlzw"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "No arguments provided. Usage:")
		fmt.Fprintln(os.Stderr, "  Compress: varlzw --mode compress --alphabet <file> [--minW <n>] [--maxW <n>] [--policy <name>]")
		fmt.Fprintln(os.Stderr, "  Expand:   varlzw --mode expand")
		return 1
	}

	var (
		mode         string
		policyName   = "freeze"
		alphabetPath string
		minW         = varlzw.DefaultMinWidth
		maxW         = varlzw.DefaultMaxWidth
	)

	// The flag package would exit 2 for a missing value as well as for an
	// unknown option; the two cases carry different exit codes here, so
	// the tokens are walked by hand.
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--mode":
			value, ok := next(args, &i, "--mode requires a value (compress or expand)")
			if !ok {
				return 1
			}
			mode = value
		case "--minW":
			value, ok := nextInt(args, &i, "--minW")
			if !ok {
				return 1
			}
			minW = value
		case "--maxW":
			value, ok := nextInt(args, &i, "--maxW")
			if !ok {
				return 1
			}
			maxW = value
		case "--policy":
			value, ok := next(args, &i, "--policy requires a value (freeze, reset, lru, or lfu)")
			if !ok {
				return 1
			}
			policyName = value
		case "--alphabet":
			value, ok := next(args, &i, "--alphabet requires a file path")
			if !ok {
				return 1
			}
			alphabetPath = value
		default:
			fmt.Fprintf(os.Stderr, "Unknown argument: '%s' is not a recognized option\n", args[i])
			return 2
		}
	}

	switch mode {
	case "compress":
		return compress(alphabetPath, minW, maxW, policyName)
	case "expand":
		return expand()
	case "":
		fmt.Fprintln(os.Stderr, "Missing required argument: --mode must be specified (compress or expand)")
		return 1
	default:
		fmt.Fprintf(os.Stderr, "Invalid value for --mode: '%s' is not valid (must be 'compress' or 'expand')\n", mode)
		return 1
	}
}

func compress(alphabetPath string, minW, maxW int, policyName string) int {
	if alphabetPath == "" {
		fmt.Fprintln(os.Stderr, "Missing required argument: --alphabet is required for compression mode")
		return 1
	}
	if minW < 1 {
		fmt.Fprintln(os.Stderr, "Invalid argument: --minW must be at least 1 (cannot write 0-bit codewords)")
		return 1
	}
	if maxW < minW {
		fmt.Fprintf(os.Stderr, "Invalid argument: --maxW (%d) must be >= --minW (%d)\n", maxW, minW)
		return 1
	}
	if maxW > 32 {
		fmt.Fprintf(os.Stderr, "Warning: --maxW (%d) is very large, may cause issues\n", maxW)
	}

	alphabet, err := varlzw.LoadAlphabet(alphabetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load alphabet: %v\n", err)
		return 1
	}

	err = varlzw.Compress(os.Stdout, os.Stdin, alphabet,
		varlzw.WithMinWidth(minW),
		varlzw.WithMaxWidth(maxW),
		varlzw.WithPolicy(varlzw.ParsePolicy(policyName)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compression failed: %v\n", err)
		return 1
	}
	return 0
}

func expand() int {
	if err := varlzw.Expand(os.Stdout, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Expansion failed: %v\n", err)
		return 1
	}
	return 0
}

func next(args []string, i *int, missing string) (string, bool) {
	if *i+1 >= len(args) {
		fmt.Fprintf(os.Stderr, "Missing value for argument: %s\n", missing)
		return "", false
	}
	*i++
	return args[*i], true
}

func nextInt(args []string, i *int, name string) (int, bool) {
	if *i+1 >= len(args) {
		fmt.Fprintf(os.Stderr, "Missing value for argument: %s requires a numeric value\n", name)
		return 0, false
	}
	*i++
	value, err := strconv.Atoi(args[*i])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid value for %s: '%s' is not a valid integer\n", name, args[*i])
		return 0, false
	}
	return value, true
}
