package driver

import (
	"bytes"
	"context"
	"testing"

	"burnish/internal/config"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	key := formatDigest(config.Default().Format, []byte("new a;\n"))
	in := cachePayload{Schema: cacheSchemaVersion, Formatted: []byte("new a;\n")}
	if err := cache.Put(key, &in); err != nil {
		t.Fatalf("put: %v", err)
	}

	var out cachePayload
	ok, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if !bytes.Equal(out.Formatted, in.Formatted) {
		t.Errorf("payload corrupted: %q", out.Formatted)
	}
}

func TestDiskCacheMissOnUnknownKey(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var out cachePayload
	ok, err := cache.Get(formatDigest(config.Default().Format, []byte("nothing")), &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("unexpected hit")
	}
}

func TestDigestDependsOnSettings(t *testing.T) {
	content := []byte("new a;\n")
	base := config.Default().Format
	tabs := base
	tabs.UseTabs = true
	if formatDigest(base, content) == formatDigest(tabs, content) {
		t.Error("settings change did not change the digest")
	}
	if formatDigest(base, content) == formatDigest(base, []byte("new b;\n")) {
		t.Error("content change did not change the digest")
	}
}

func TestNilCacheIsInert(t *testing.T) {
	var cache *DiskCache
	var out cachePayload
	ok, err := cache.Get(Digest{}, &out)
	if err != nil || ok {
		t.Errorf("nil cache Get = (%v, %v)", ok, err)
	}
	if err := cache.Put(Digest{}, &cachePayload{}); err != nil {
		t.Errorf("nil cache Put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Errorf("nil cache DropAll: %v", err)
	}
}

func TestFormatPathsUsesCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	dir := t.TempDir()
	path := writeFile(t, dir, "a.pwn", "if(a)\nb=1\n")

	opts := FormatOptions{Config: config.Default(), Stdout: true, Cache: cache}
	first, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	// Подсовываем в кэш другой результат: попадание обязано вернуть его.
	key := formatDigest(opts.Config.Format, []byte("if(a)\nb=1\n"))
	if err := cache.Put(key, &cachePayload{Schema: cacheSchemaVersion, Formatted: []byte("CACHED\n")}); err != nil {
		t.Fatalf("put: %v", err)
	}
	second, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if string(second[0].Formatted) != "CACHED\n" {
		t.Errorf("cache not consulted: %q", second[0].Formatted)
	}
	if string(first[0].Formatted) == "CACHED\n" {
		t.Error("first run hit a cold cache")
	}
}
