// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cedar

import (
	"math"

	"github.com/cznic/mathutil"
)

// blockSize is the fixed span of a block: 256 node ids, one per possible
// edge label.
const blockSize = 256

// cedarNoValue is the internal sentinel returned when a query walks to a
// valid interior node that carries no value of its own (spec §4.9's
// "sentinel miss"). It is never surfaced to a caller as a bare int32 —
// every public entry point disambiguates it via an ok bool instead.
const cedarNoValue = int32(math.MinInt32)

// node is one slot of the double array, indexed by node id.
//
// In use: base is the XOR-base for n's outgoing edges (the child reached
// via label l lives at base^l) and check is the id of n's parent.
//
// Free: base holds the negated id of the previous free node in its block's
// cyclic free list and check holds the negated id of the next one. A node
// is free iff check < 0.
type node struct {
	base  int32
	check int32
}

// ninfo threads the sibling chain rooted at each node's first child: child
// is the label of n's first child in byte order, sibling is the label of
// the next sibling under n's parent.
type ninfo struct {
	child   byte
	sibling byte
}

// grow doubles capacity and the three backing vectors, preserving every
// existing entry by index, when the trie has exhausted its current
// capacity. No compaction ever happens — node ids are stable for the life
// of the trie.
//
// Every newly-appended block is seeded to the same free-block defaults
// add_block expects (num == blockSize, reject == blockSize+1); add_block
// itself threads the new span's free cycle and sets e_head.
//
// Callers elsewhere must never hold a *node or *block across a call that
// can reach grow (any call that can allocate a new block) — always re-read
// array[i]/blocks[i] by index afterwards. See DESIGN.md.
func (c *Cedar) grow() {
	if c.size != c.capacity {
		return
	}

	newCap := int32(mathutil.Max(int(c.capacity)*2, blockSize))

	na := make([]node, newCap)
	copy(na, c.array)
	c.array = na

	nn := make([]ninfo, newCap)
	copy(nn, c.ninfo)
	c.ninfo = nn

	nb := make([]block, newCap/blockSize)
	copy(nb, c.blocks)
	for i := len(c.blocks); i < len(nb); i++ {
		nb[i] = newBlock()
	}
	c.blocks = nb

	c.capacity = newCap
}
