// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cedar

import "testing"

// siblingChain returns the labels of from's children in chain order,
// failing the test if the chain is found to be cyclic.
func siblingChain(t *testing.T, c *Cedar, from int32) []byte {
	t.Helper()

	var labels []byte
	base := c.array[from].base
	cur := c.ninfo[from].child
	if from == 0 {
		cur = c.ninfo[base^int32(cur)].sibling
	}

	seen := make(map[byte]bool)
	for cur != 0 {
		if seen[cur] {
			t.Fatalf("sibling chain under node %d is cyclic at label %d", from, cur)
		}
		seen[cur] = true
		labels = append(labels, cur)
		cur = c.ninfo[base^int32(cur)].sibling
	}
	return labels
}

// Invariant 6/7: with the default ordered trie, sibling chains are
// strictly increasing, and common-prefix-predict therefore visits keys
// in lexicographic order.
func TestOrderedSiblingChains(t *testing.T) {
	c := buildDict(t, []KV{
		{Key: []byte("b"), Value: 0},
		{Key: []byte("a"), Value: 1},
		{Key: []byte("d"), Value: 2},
		{Key: []byte("c"), Value: 3},
	})

	labels := siblingChain(t, c, 0)
	for i := 1; i < len(labels); i++ {
		if labels[i-1] >= labels[i] {
			t.Fatalf("root sibling chain not strictly increasing: %v", labels)
		}
	}

	got := c.CommonPrefixPredict(nil)
	want := []int32{1, 0, 3, 2} // a, b, c, d in insertion-value order
	if len(got) != len(want) {
		t.Fatalf("got %d matches, want %d: %+v", len(got), len(want), got)
	}
	for i, m := range got {
		if m.Value != want[i] {
			t.Fatalf("predict order mismatch at %d: got %+v, want %v", i, got, want)
		}
	}
}

// Unordered mode: insertion still round-trips correctly; chains are no
// longer required to be byte-ascending.
func TestUnorderedMode(t *testing.T) {
	c := NewWithOptions(Options{Ordered: false, MaxTrial: 1})

	pairs := []KV{
		{Key: []byte("b"), Value: 0},
		{Key: []byte("a"), Value: 1},
		{Key: []byte("d"), Value: 2},
		{Key: []byte("c"), Value: 3},
	}
	if err := c.Build(pairs); err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, kv := range pairs {
		if v := mustValue(t, c, string(kv.Key)); v != kv.Value {
			t.Fatalf("key %q: got %d, want %d", kv.Key, v, kv.Value)
		}
	}
}
