// Command policychart compresses one input file under every full-codebook
// policy across a range of maximum code widths and renders the resulting
// compression ratios as an SVG line chart, one series per policy. A plain
// text table goes to standard output for quick comparison runs.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/seiflotfy/varlzw"
)

func main() {
	var (
		inPath    = flag.String("in", "", "file to compress")
		alphaPath = flag.String("alphabet", "", "alphabet file")
		minW      = flag.Int("minW", varlzw.DefaultMinWidth, "minimum code width")
		fromW     = flag.Int("from", varlzw.DefaultMinWidth, "first maximum code width to try")
		toW       = flag.Int("to", varlzw.DefaultMaxWidth, "last maximum code width to try")
		outPath   = flag.String("out", "ratios.svg", "output SVG path")
	)
	flag.Parse()

	if *inPath == "" || *alphaPath == "" {
		fmt.Fprintln(os.Stderr, "policychart: -in and -alphabet are required")
		os.Exit(1)
	}

	data, err := os.ReadFile(*inPath)
	check(err)
	alphabet, err := varlzw.LoadAlphabet(*alphaPath)
	check(err)

	policies := []varlzw.Policy{
		varlzw.PolicyFreeze,
		varlzw.PolicyReset,
		varlzw.PolicyLRU,
		varlzw.PolicyLFU,
	}

	series := make([]chart.Series, 0, len(policies))
	fmt.Printf("%-8s %6s %12s %8s\n", "policy", "maxW", "packed", "ratio")
	for _, policy := range policies {
		xvals := make([]float64, 0, *toW-*fromW+1)
		yvals := make([]float64, 0, *toW-*fromW+1)
		for maxW := *fromW; maxW <= *toW; maxW++ {
			if maxW < *minW {
				continue
			}
			var packed bytes.Buffer
			err := varlzw.Compress(&packed, bytes.NewReader(data), alphabet,
				varlzw.WithMinWidth(*minW),
				varlzw.WithMaxWidth(maxW),
				varlzw.WithPolicy(policy),
			)
			check(err)

			ratio := percent(packed.Len(), len(data))
			fmt.Printf("%-8s %6d %12d %7.2f%%\n", policy, maxW, packed.Len(), ratio)
			xvals = append(xvals, float64(maxW))
			yvals = append(yvals, ratio)
		}
		series = append(series, chart.ContinuousSeries{
			Name: policy.String(),
			Style: chart.Style{
				DotWidth: 3,
			},
			XValues: xvals,
			YValues: yvals,
		})
	}

	graph := chart.Chart{
		XAxis: chart.XAxis{
			Name: "maxW (bits)",
		},
		YAxis: chart.YAxis{
			Name: "packed size (% of original)",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	fh, err := os.Create(*outPath)
	check(err)
	check(graph.Render(chart.SVG, fh))
	check(fh.Close())
}

func percent(packed, original int) float64 {
	if original == 0 {
		return 0
	}
	return float64(packed) * 100.0 / float64(original)
}

func check(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "policychart:", err)
		os.Exit(1)
	}
}
