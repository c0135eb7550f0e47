package cache

import (
	"testing"
	"time"

	"github.com/use-agent/tokensaver/cleaner"
)

func TestCache_SetGet(t *testing.T) {
	c := New(10, time.Hour)
	key := Key("a    b", "soft", "text")
	res := cleaner.Clean("a    b", cleaner.Soft)

	c.Set(key, res)

	got, hit := c.Get(key, 60_000)
	if !hit {
		t.Fatal("expected cache hit")
	}
	if got != res {
		t.Errorf("Get = %+v, want %+v", got, res)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestCache_MaxAgeDisablesLookup(t *testing.T) {
	c := New(10, time.Hour)
	key := Key("x", "soft", "text")
	c.Set(key, cleaner.Clean("x", cleaner.Soft))

	if _, hit := c.Get(key, 0); hit {
		t.Error("maxAge 0 should never hit")
	}
}

func TestCache_StaleEntryMisses(t *testing.T) {
	c := New(10, time.Hour)
	key := Key("x", "soft", "text")
	c.Set(key, cleaner.Clean("x", cleaner.Soft))

	time.Sleep(5 * time.Millisecond)
	if _, hit := c.Get(key, 1); hit {
		t.Error("entry older than maxAge should miss")
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2, time.Hour)
	k1, k2, k3 := Key("1", "soft", "text"), Key("2", "soft", "text"), Key("3", "soft", "text")

	c.Set(k1, cleaner.Result{Text: "1"})
	c.Set(k2, cleaner.Result{Text: "2"})
	c.Get(k1, 60_000) // k1 is now most recent
	c.Set(k3, cleaner.Result{Text: "3"})

	if _, hit := c.Get(k2, 60_000); hit {
		t.Error("k2 should have been evicted")
	}
	if _, hit := c.Get(k1, 60_000); !hit {
		t.Error("k1 should still be cached")
	}
}

func TestKey_DistinguishesInputs(t *testing.T) {
	keys := map[string]bool{
		Key("text", "soft", "text"):       true,
		Key("text", "aggressive", "text"): true,
		Key("text", "soft", "html"):       true,
		Key("other", "soft", "text"):      true,
	}
	if len(keys) != 4 {
		t.Errorf("expected 4 distinct keys, got %d", len(keys))
	}
}
