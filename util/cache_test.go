// util/cache_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import "testing"

type cachePayload struct {
	Name   string
	Values []float64
}

func TestCacheStoreRetrieveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	want := cachePayload{Name: "subflight-1", Values: []float64{30, 30, 15}}
	if err := CacheStoreObject("roundtrip-test", &want); err != nil {
		t.Fatalf("CacheStoreObject: %v", err)
	}

	var got cachePayload
	if _, err := CacheRetrieveObject("roundtrip-test", &got); err != nil {
		t.Fatalf("CacheRetrieveObject: %v", err)
	}

	if got.Name != want.Name || len(got.Values) != len(want.Values) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want.Values {
		if got.Values[i] != want.Values[i] {
			t.Errorf("value %d: got %v, want %v", i, got.Values[i], want.Values[i])
		}
	}
}

func TestCacheRetrieveMissingObjectErrors(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var got cachePayload
	if _, err := CacheRetrieveObject("does-not-exist", &got); err == nil {
		t.Errorf("expected an error retrieving a nonexistent cache object")
	}
}

func TestCacheCullObjectsRemovesOldestFirst(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	for i := 0; i < 5; i++ {
		obj := cachePayload{Name: "x", Values: make([]float64, 1000)}
		if err := CacheStoreObject("bulk-"+string(rune('a'+i)), &obj); err != nil {
			t.Fatalf("CacheStoreObject: %v", err)
		}
	}

	if err := CacheCullObjects(0); err != nil {
		t.Fatalf("CacheCullObjects: %v", err)
	}

	var got cachePayload
	allMissing := true
	for i := 0; i < 5; i++ {
		if _, err := CacheRetrieveObject("bulk-"+string(rune('a'+i)), &got); err == nil {
			allMissing = false
		}
	}
	if !allMissing {
		t.Errorf("expected CacheCullObjects(0) to remove every cached file")
	}
}

func TestCacheCullObjectsNoCacheDirIsNotAnError(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	if err := CacheCullObjects(1 << 20); err != nil {
		t.Errorf("expected no error when the cache directory has never been created, got %v", err)
	}
}

