// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cedar

// find advances *from by following key byte by byte, reporting
// (value, ok). ok is false iff the path breaks partway through key — a
// true structural absence. When ok is true, value may still be
// cedarNoValue: *from reached a real interior node, just one with no
// stored value of its own (the node's own 0-labelled child isn't owned by
// it). Callers at the public API boundary treat that as absent too;
// iterators that walk byte-by-byte treat it as "skip, keep going".
func (c *Cedar) find(key []byte, from *int32) (int32, bool) {
	pos := 0
	for pos < len(key) {
		to := c.array[*from].base ^ int32(key[pos])
		if c.array[to].check != *from {
			return 0, false
		}
		*from = to
		pos++
	}

	n := c.array[c.array[*from].base^0]
	if n.check != *from {
		return cedarNoValue, true
	}
	return n.base, true
}

// begin descends from `from` to the leftmost leaf of its subtree,
// returning that leaf's value, node id and depth (p, incremented once per
// byte descended). ok is false only for the from==0, no-children-at-all
// case (an empty trie).
func (c *Cedar) begin(from, p int32) (int32, int32, int32, bool) {
	cur := c.ninfo[from].child

	if from == 0 {
		cur = c.ninfo[c.array[from].base^int32(cur)].sibling
		if cur == 0 {
			return 0, from, p, false
		}
	}

	for cur != 0 {
		from = c.array[from].base ^ int32(cur)
		cur = c.ninfo[from].child
		p++
	}

	v := c.array[c.array[from].base^int32(cur)].base
	return v, from, p, true
}

// next advances from one leaf to the next in subtree order, ascending
// until a sibling is found (or root is reached) and then descending via
// begin into that sibling's subtree.
func (c *Cedar) next(from, p, root int32) (int32, int32, int32, bool) {
	sib := c.ninfo[c.array[from].base].sibling

	for sib == 0 && from != root {
		sib = c.ninfo[from].sibling
		from = c.array[from].check
		p--
	}

	if sib == 0 {
		return 0, from, p, false
	}

	from = c.array[from].base ^ int32(sib)
	return c.begin(from, p+1)
}

// PrefixMatch is one result of common-prefix enumeration: the value
// stored at a prefix of the queried key, and that prefix's last byte
// index into the key (0-based, matching original_source's raw `self.i`
// field — not a byte count; see DESIGN.md).
type PrefixMatch struct {
	Value  int32
	Length int
}

// PrefixIter lazily enumerates every prefix of key that has a stored
// value, shortest first.
type PrefixIter struct {
	c    *Cedar
	key  []byte
	from int32
	i    int
}

// CommonPrefixIter returns a lazy iterator over every prefix of key that
// carries a value.
func (c *Cedar) CommonPrefixIter(key []byte) *PrefixIter {
	return &PrefixIter{c: c, key: key}
}

// Next returns the next prefix match, or ok == false once no further
// prefix of the key can match (either the key is exhausted or the trie
// path has broken).
func (it *PrefixIter) Next() (PrefixMatch, bool) {
	for it.i < len(it.key) {
		value, ok := it.c.find(it.key[it.i:it.i+1], &it.from)
		if !ok {
			break
		}
		if value == cedarNoValue {
			it.i++
			continue
		}
		m := PrefixMatch{Value: value, Length: it.i}
		it.i++
		return m, true
	}
	return PrefixMatch{}, false
}

// CommonPrefixSearch collects CommonPrefixIter's full result.
func (c *Cedar) CommonPrefixSearch(key []byte) []PrefixMatch {
	it := c.CommonPrefixIter(key)
	var out []PrefixMatch
	for {
		m, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, m)
	}
}

// PredictMatch is one result of prefix-predictive enumeration: a value
// whose key begins with the queried prefix, and that key's depth (byte
// length) below the prefix's subtree root.
type PredictMatch struct {
	Value int32
	Depth int
}

// PredictIter lazily enumerates every value whose key begins with a
// queried prefix, in subtree (and, when the trie is ordered,
// lexicographic) order.
type PredictIter struct {
	c     *Cedar
	key   []byte
	from  int32
	p     int32
	root  int32
	value int32
	ok    bool

	started bool
	broken  bool
}

// CommonPrefixPredictIter returns a lazy iterator over every value whose
// key begins with key.
func (c *Cedar) CommonPrefixPredictIter(key []byte) *PredictIter {
	return &PredictIter{c: c, key: key}
}

// Next returns the next predictive match, or ok == false once the subtree
// is exhausted or key itself does not exist as a prefix.
func (it *PredictIter) Next() (PredictMatch, bool) {
	if it.broken {
		return PredictMatch{}, false
	}

	if !it.started {
		it.started = true
		from := int32(0)
		if _, ok := it.c.find(it.key, &from); !ok {
			it.broken = true
			return PredictMatch{}, false
		}
		it.root = from
		it.value, it.from, it.p, it.ok = it.c.begin(from, 0)
	}

	if !it.ok {
		it.broken = true
		return PredictMatch{}, false
	}

	result := PredictMatch{Value: it.value, Depth: int(it.p)}
	it.value, it.from, it.p, it.ok = it.c.next(it.from, it.p, it.root)
	return result, true
}

// CommonPrefixPredict collects CommonPrefixPredictIter's full result.
func (c *Cedar) CommonPrefixPredict(key []byte) []PredictMatch {
	it := c.CommonPrefixPredictIter(key)
	var out []PredictMatch
	for {
		m, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, m)
	}
}

// ScanMatch is one result of a common-prefix scan over running text: a
// value whose key matched text[Start:End].
type ScanMatch struct {
	Value int32
	Start int
	End   int
}

// ScanIter lazily slides a common-prefix search across every byte offset
// of a text, emitting every dictionary match found starting at any
// offset, in offset order.
type ScanIter struct {
	c    *Cedar
	text []byte
	from int32
	i    int
	base int
}

// CommonPrefixScanIter returns a lazy iterator over every dictionary
// match anywhere in text.
func (c *Cedar) CommonPrefixScanIter(text []byte) *ScanIter {
	return &ScanIter{c: c, text: text}
}

// Next returns the next scan match, or ok == false once every offset of
// the text has been tried.
func (it *ScanIter) Next() (ScanMatch, bool) {
	for it.base < len(it.text) {
		limit := len(it.text) - it.base
		slice := it.text[it.base:]

		for it.i < limit {
			value, ok := it.c.find(slice[it.i:it.i+1], &it.from)
			if !ok {
				break
			}
			if value == cedarNoValue {
				it.i++
				continue
			}
			m := ScanMatch{Value: value, Start: it.base, End: it.base + it.i + 1}
			it.i++
			return m, true
		}

		it.from = 0
		it.i = 0
		it.base++
	}
	return ScanMatch{}, false
}

// CommonPrefixScan collects CommonPrefixScanIter's full result.
func (c *Cedar) CommonPrefixScan(text []byte) []ScanMatch {
	it := c.CommonPrefixScanIter(text)
	var out []ScanMatch
	for {
		m, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, m)
	}
}
