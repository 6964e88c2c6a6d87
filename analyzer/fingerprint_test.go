package analyzer

import (
	"strings"
	"testing"
)

func TestFingerprint_Deterministic(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	if Fingerprint(text) != Fingerprint(text) {
		t.Error("identical texts produced different fingerprints")
	}
}

func TestFingerprint_SimilarTextsAreClose(t *testing.T) {
	fp1 := Fingerprint("the quick brown fox jumps over the lazy dog")
	fp2 := Fingerprint("the quick brown fox leaps over the lazy dog")

	if dist := Distance(fp1, fp2); dist > SimilarityThreshold {
		t.Errorf("similar texts have distance %d, want <= %d", dist, SimilarityThreshold)
	}
}

func TestFingerprint_DifferentTextsAreFar(t *testing.T) {
	fp1 := Fingerprint("the quick brown fox jumps over the lazy dog")
	fp2 := Fingerprint("completely unrelated content about quantum physics and mathematics")

	if dist := Distance(fp1, fp2); dist < 5 {
		t.Errorf("very different texts have distance %d, want >= 5", dist)
	}
}

func TestFingerprint_EmptyInput(t *testing.T) {
	if fp := Fingerprint(""); fp != 0 {
		t.Errorf("empty input fingerprint = %064b, want 0", fp)
	}
}

func TestSimilar(t *testing.T) {
	fp := Fingerprint("some page content here")
	if !Similar(fp, fp, 0) {
		t.Error("a fingerprint is not similar to itself at threshold 0")
	}
	if Similar(0, ^uint64(0), SimilarityThreshold) {
		t.Error("opposite fingerprints reported similar")
	}
}

func TestVisibleText_SkipsScriptAndStyle(t *testing.T) {
	page := []byte(`<html><head>
		<style>body { color: red }</style>
		<script>var hidden = "secret";</script>
	</head><body>
		<h1>Visible Heading</h1>
		<p>Body text.</p>
		<noscript>fallback</noscript>
	</body></html>`)

	text := visibleText(page)
	for _, want := range []string{"Visible Heading", "Body text."} {
		if !strings.Contains(text, want) {
			t.Errorf("visible text missing %q: %q", want, text)
		}
	}
	for _, banned := range []string{"color: red", "secret", "fallback"} {
		if strings.Contains(text, banned) {
			t.Errorf("visible text leaked %q: %q", banned, text)
		}
	}
}
