package json5_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/json5"
)

// benchInput generates a strict-JSON document, so that the same bytes can
// be fed to the standard library decoder for comparison.
func benchInput(records int) []byte {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < records; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"id": %d, "name": "record %d ★", "size": %g, "tags": ["a", "b"], "ok": %v}`,
			i, i, float64(i)/3, i%2 == 0)
	}
	sb.WriteString("]")
	return []byte(sb.String())
}

func BenchmarkScanner(b *testing.B) {
	input := benchInput(2000)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Scanner", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			sc := json5.NewScanner(bytes.NewReader(input))
			for {
				err := sc.Next()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})
}

func BenchmarkParser(b *testing.B) {
	input := benchInput(2000)

	b.Run("Discard", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			p := json5.NewParser(bytes.NewReader(input))
			if err := p.ParseDocument(json5.Discard); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}
