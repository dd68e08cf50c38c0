package cache

import (
	"testing"
	"time"
)

func TestKeyStableAndSafe(t *testing.T) {
	k1 := Key("score", "gpt-4o-mini", "some review text")
	k2 := Key("score", "gpt-4o-mini", "some review text")
	if k1 != k2 {
		t.Error("same parts produced different keys")
	}
	if k1 == Key("score", "gpt-4o-mini", "other text") {
		t.Error("different parts produced the same key")
	}
	// Separator prevents ("ab","c") colliding with ("a","bc").
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("part boundaries not preserved")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("hit on missing key")
	}

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("Get = %q, %v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("hit after delete")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	key := Key("score", "text")
	if err := c.Set(key, []byte("0.75"), time.Minute); err != nil {
		t.Fatal(err)
	}
	val, found := c.Get(key)
	if !found || string(val) != "0.75" {
		t.Errorf("Get = %q, %v", val, found)
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("v"), -time.Second); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expired entry returned")
	}
}

func TestLayeredCachePromotion(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}

	// A fresh layered cache over the same directory only has the disk
	// copy; Get must fall through and promote it.
	fresh := NewLayeredCache(time.Minute, dir, time.Hour)
	val, found := fresh.Get("k")
	if !found || string(val) != "v" {
		t.Fatalf("disk fallthrough Get = %q, %v", val, found)
	}
	if _, found := fresh.memory.Get("k"); !found {
		t.Error("disk hit not promoted to memory")
	}
}

func TestLayeredCacheClear(t *testing.T) {
	c := NewLayeredCache(time.Minute, t.TempDir(), time.Hour)
	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("hit after clear")
	}
}
