// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cedar

import (
	"sort"

	"github.com/cznic/sortutil"
)

// listKind names one of the three block lists a block can belong to.
type listKind int

const (
	listOpen listKind = iota
	listClosed
	listFull
)

// block is the per-256-node metadata record: a free-node count, a
// rejection-threshold hint, a probe-trial counter, the entry point into the
// block's own cyclic free list, and doubly-linked-list pointers for
// whichever of Open/Closed/Full it currently belongs to.
//
// Block 0 holds the root and is never migrated: every push/pop/transfer
// call below is guarded by its caller to skip block 0, so it never heads a
// list. It can still be stitched into the Full cycle as a plain link (see
// transferBlock), and blockIDs(listFull) then reports it.
type block struct {
	prev, next int32
	num        int32 // free slots, 0..blockSize
	reject     int32 // smallest child-set size proven not to fit
	trial      int32 // probes since the last reset
	eHead      int32 // entry point into this block's free cycle
}

func newBlock() block {
	return block{num: blockSize, reject: blockSize + 1}
}

func (c *Cedar) headRef(k listKind) *int32 {
	switch k {
	case listOpen:
		return &c.headOpen
	case listClosed:
		return &c.headClosed
	default:
		return &c.headFull
	}
}

// popBlock removes block idx from list k. last must be true iff idx was the
// sole member of k (its next still points to itself).
func (c *Cedar) popBlock(idx int32, k listKind, last bool) {
	head := c.headRef(k)
	if last {
		*head = 0
		return
	}

	prev, next := c.blocks[idx].prev, c.blocks[idx].next
	c.blocks[prev].next = next
	c.blocks[next].prev = prev
	if idx == *head {
		*head = next
	}
}

// pushBlock inserts block idx at the head of list k. empty must be true iff
// k currently has no members; otherwise idx is spliced in immediately
// before the current head, becoming the new head.
func (c *Cedar) pushBlock(idx int32, k listKind, empty bool) {
	head := c.headRef(k)
	if empty {
		c.blocks[idx].next = idx
		c.blocks[idx].prev = idx
		*head = idx
		return
	}

	c.blocks[idx].prev = c.blocks[*head].prev
	c.blocks[idx].next = *head
	tail := c.blocks[*head].prev
	c.blocks[tail].next = idx
	c.blocks[*head].prev = idx
	*head = idx
}

// transferBlock atomically pops idx from from and pushes it onto to.
// toEmpty is whether to had no members before this move. to is treated as
// empty only when idx also still has free slots, so a move onto an empty
// Full list (num == 0) takes the non-empty path with head 0: block 0 becomes
// the link in idx's cycle and stays in the Full cycle until the last full
// block leaves it.
func (c *Cedar) transferBlock(idx int32, from, to listKind, toEmpty bool) {
	isLast := idx == c.blocks[idx].next
	isEmpty := toEmpty && c.blocks[idx].num != 0
	c.popBlock(idx, from, isLast)
	c.pushBlock(idx, to, isEmpty)
}

// blockIDs reports the member ids of list k in ascending order. It exists
// for Stats and tests and is never called from the hot insert/erase path,
// which only ever needs the head and is indifferent to overall order.
func (c *Cedar) blockIDs(k listKind) []int64 {
	head := *c.headRef(k)
	if head == 0 {
		// Block 0 never heads a list, so a head of 0 means empty.
		return nil
	}

	var ids sortutil.Int64Slice
	idx := head
	for {
		ids = append(ids, int64(idx))
		idx = c.blocks[idx].next
		if idx == head {
			break
		}
	}
	sort.Sort(ids)
	return []int64(ids)
}
