package analyzer

import (
	"bytes"
	"hash/fnv"
	"math/bits"
	"strings"

	"golang.org/x/net/html"
)

// SimilarityThreshold is the maximum Hamming distance at which two page
// fingerprints still count as "the same content".
const SimilarityThreshold = 10

// Fingerprint computes a 64-bit SimHash of the given text: FNV-64a over
// word-level tokens with bit-vector accumulation. Empty text yields 0.
func Fingerprint(text string) uint64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	var vector [64]int

	for _, word := range words {
		h := fnv.New64a()
		h.Write([]byte(word))
		hash := h.Sum64()

		for i := 0; i < 64; i++ {
			if hash&(1<<uint(i)) != 0 {
				vector[i]++
			} else {
				vector[i]--
			}
		}
	}

	var fingerprint uint64
	for i := 0; i < 64; i++ {
		if vector[i] > 0 {
			fingerprint |= 1 << uint(i)
		}
	}

	return fingerprint
}

// Distance returns the Hamming distance between two fingerprints.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Similar reports whether two fingerprints are within the given Hamming
// distance of each other.
func Similar(a, b uint64, threshold int) bool {
	return Distance(a, b) <= threshold
}

// visibleText walks the HTML with the tokenizer and collects the text a
// reader would see, skipping script and style bodies. This is the input to
// the per-scan content fingerprint.
func visibleText(body []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))
	var b strings.Builder
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			if skipTag(string(tn)) {
				skipDepth++
			}
		case html.EndTagToken:
			tn, _ := tokenizer.TagName()
			if skipTag(string(tn)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := strings.TrimSpace(string(tokenizer.Text()))
			if text != "" {
				b.WriteString(text)
				b.WriteByte(' ')
			}
		}
	}
}

func skipTag(name string) bool {
	switch name {
	case "script", "style", "noscript":
		return true
	}
	return false
}
