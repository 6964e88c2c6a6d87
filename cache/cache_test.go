package cache

import (
	"testing"

	"github.com/rankscore-ai/rankscore/models"
)

func TestGetAndSet(t *testing.T) {
	c := New(10)
	key := Key("https://example.com")
	resp := &models.AnalyzeResponse{Success: true, Assessment: "good"}

	if _, hit := c.Get(key, 1000); hit {
		t.Error("hit on empty cache")
	}

	c.Set(key, resp)
	got, hit := c.Get(key, 60_000)
	if !hit {
		t.Fatal("miss after Set")
	}
	if got.Assessment != "good" {
		t.Errorf("Assessment = %q", got.Assessment)
	}
}

func TestGet_ZeroMaxAgeSkipsLookup(t *testing.T) {
	c := New(10)
	key := Key("https://example.com")
	c.Set(key, &models.AnalyzeResponse{Success: true})

	if _, hit := c.Get(key, 0); hit {
		t.Error("maxAge 0 must skip the cache")
	}
}

func TestSet_EvictsAtCapacity(t *testing.T) {
	c := New(2)
	c.Set(Key("https://a.example.com"), &models.AnalyzeResponse{})
	c.Set(Key("https://b.example.com"), &models.AnalyzeResponse{})
	c.Set(Key("https://c.example.com"), &models.AnalyzeResponse{})

	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.store) > 2 {
		t.Errorf("store holds %d entries, capacity 2", len(c.store))
	}
}

func TestKey_DistinctURLs(t *testing.T) {
	if Key("https://a.example.com") == Key("https://b.example.com") {
		t.Error("different URLs share a cache key")
	}
}
