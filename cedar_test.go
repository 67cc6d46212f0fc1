// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cedar

import "testing"

func buildDict(t *testing.T, pairs []KV) *Cedar {
	t.Helper()
	c := New()
	if err := c.Build(pairs); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return c
}

func mustValue(t *testing.T, c *Cedar, key string) int32 {
	t.Helper()
	m, ok := c.ExactMatchSearch([]byte(key))
	if !ok {
		t.Fatalf("ExactMatchSearch(%q): expected a match, got none", key)
	}
	return m.Value
}

func mustAbsent(t *testing.T, c *Cedar, key string) {
	t.Helper()
	if m, ok := c.ExactMatchSearch([]byte(key)); ok {
		t.Fatalf("ExactMatchSearch(%q): expected absent, got %+v", key, m)
	}
}

// S1 — basic build/search.
func TestBasic(t *testing.T) {
	c := buildDict(t, []KV{
		{Key: []byte("a"), Value: 0},
		{Key: []byte("ab"), Value: 1},
		{Key: []byte("abc"), Value: 2},
	})

	if v := mustValue(t, c, "abc"); v != 2 {
		t.Fatalf("abc: got %d, want 2", v)
	}

	got := valuesOf(c.CommonPrefixSearch([]byte("abcdefg")))
	want := []int32{0, 1, 2}
	assertValues(t, got, want)
}

// S3 — erase.
func TestErase(t *testing.T) {
	c := buildDict(t, []KV{
		{Key: []byte("a"), Value: 0},
		{Key: []byte("ab"), Value: 1},
		{Key: []byte("abc"), Value: 2},
	})

	c.Erase([]byte("abc"))
	mustAbsent(t, c, "abc")
	if v := mustValue(t, c, "ab"); v != 1 {
		t.Fatalf("ab: got %d, want 1", v)
	}
	if v := mustValue(t, c, "a"); v != 0 {
		t.Fatalf("a: got %d, want 0", v)
	}

	c.Erase([]byte("ab"))
	mustAbsent(t, c, "ab")
	mustAbsent(t, c, "abc")
	if v := mustValue(t, c, "a"); v != 0 {
		t.Fatalf("a: got %d, want 0", v)
	}

	c.Erase([]byte("a"))
	mustAbsent(t, c, "a")
	mustAbsent(t, c, "ab")
	mustAbsent(t, c, "abc")
}

// S4 — update after build.
func TestUpdateAfterBuild(t *testing.T) {
	c := buildDict(t, []KV{
		{Key: []byte("a"), Value: 0},
		{Key: []byte("ab"), Value: 1},
		{Key: []byte("abc"), Value: 2},
	})

	if err := c.Update([]byte("abcd"), 3); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if v := mustValue(t, c, "abcd"); v != 3 {
		t.Fatalf("abcd: got %d, want 3", v)
	}
	mustAbsent(t, c, "abcde")
}

// S5 — duplicate-key last-writer-wins.
func TestDuplicateKeyLastWriterWins(t *testing.T) {
	c := buildDict(t, []KV{
		{Key: []byte("亞"), Value: 5},
		{Key: []byte("亞"), Value: 6},
	})

	if v := mustValue(t, c, "亞"); v != 6 {
		t.Fatalf("got %d, want 6", v)
	}
}

// Zero-length keys are rejected without mutating the trie.
func TestUpdateRejectsEmptyKey(t *testing.T) {
	c := New()
	err := c.Update(nil, 0)
	if err == nil {
		t.Fatalf("Update(nil, 0): expected error, got nil")
	}
	if _, ok := err.(*ErrInvalidInput); !ok {
		t.Fatalf("Update(nil, 0): got error type %T, want *ErrInvalidInput", err)
	}
}

// Erasing an absent key, or a key that was only ever a structural prefix
// of a longer key (never itself given a value), is a silent no-op.
func TestEraseAbsentIsNoop(t *testing.T) {
	c := buildDict(t, []KV{{Key: []byte("xyz"), Value: 42}})

	c.Erase([]byte("nope"))
	if v := mustValue(t, c, "xyz"); v != 42 {
		t.Fatalf("xyz: got %d, want 42", v)
	}

	c.Erase([]byte("xy")) // structural prefix only, never itself inserted
	if v := mustValue(t, c, "xyz"); v != 42 {
		t.Fatalf("xyz after erasing structural-only prefix: got %d, want 42", v)
	}
}

func valuesOf(matches []PrefixMatch) []int32 {
	out := make([]int32, len(matches))
	for i, m := range matches {
		out[i] = m.Value
	}
	return out
}

func assertValues(t *testing.T, got, want []int32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
