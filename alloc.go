// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cedar

import "github.com/cznic/mathutil"

// maxTrialDefault is the Options.MaxTrial default: the number of failed
// find_places probes a block tolerates before it is forced to Closed.
const maxTrialDefault = 1

// findPlace returns a single free node id suitable for one new edge: the
// e_head of the first Closed block if any exists, else of the first Open
// block, else a freshly grown block's first node.
func (c *Cedar) findPlace() int32 {
	if c.headClosed != 0 {
		return c.blocks[c.headClosed].eHead
	}
	if c.headOpen != 0 {
		return c.blocks[c.headOpen].eHead
	}
	return c.addBlock() << 8
}

// findPlaces returns a raw free node id e such that e^children[0] is the
// base of a region where e and every base^children[i] are simultaneously
// free. The caller recovers that base via base := e^children[0] — the same
// XOR-involution trick findPlace's single-slot callers use, letting both
// entry points share one "return a free node id" convention.
func (c *Cedar) findPlaces(children []byte) int32 {
	idx := c.headOpen
	if idx != 0 {
		bz := c.blocks[idx].prev
		nc := int32(len(children))

		for {
			blk := &c.blocks[idx]
			if blk.num >= nc && nc < blk.reject {
				e := blk.eHead
				for {
					base := e ^ int32(children[0])
					found := true
					for _, ch := range children[1:] {
						if c.array[base^int32(ch)].check >= 0 {
							found = false
							break
						}
					}
					if found {
						blk.eHead = e
						return e
					}
					e = -c.array[e].check
					if e == blk.eHead {
						break
					}
				}
			}

			blk.reject = nc
			if blk.reject < c.reject[blk.num] {
				c.reject[blk.num] = blk.reject
			}

			next := blk.next
			blk.trial++
			if blk.trial == c.maxTrial {
				c.transferBlock(idx, listOpen, listClosed, c.headClosed == 0)
			}

			if idx == bz {
				break
			}
			idx = next
		}
	}
	return c.addBlock() << 8
}

// addBlock doubles capacity if needed, seeds the new block's free cycle,
// pushes it onto Open and returns its block index.
func (c *Cedar) addBlock() int32 {
	c.grow()

	idx := c.size >> 8

	blk := &c.blocks[idx]
	*blk = newBlock()

	base := idx << 8
	for i := base; i < base+blockSize; i++ {
		c.array[i].check = -(i + 1)
		c.array[i].base = -(i - 1)
	}
	// Close the cycle and splice in the special-cased first/last offsets,
	// matching the classic cedar seeding used by add_block: the cycle
	// wraps at the block boundary rather than the global index space.
	c.array[base].base = -(base + blockSize - 1)
	c.array[base+blockSize-1].check = -base
	blk.eHead = base

	c.pushBlock(idx, listOpen, c.headOpen == 0)

	c.size += blockSize
	return idx
}

// popENode acquires the node to hold the edge from --label--> and returns
// its id. base is from's current base (may be negative meaning "unset").
func (c *Cedar) popENode(base, label, from int32) int32 {
	var e int32
	if base < 0 {
		e = c.findPlace()
	} else {
		e = base ^ label
	}

	bi := e >> 8
	blk := &c.blocks[bi]
	blk.num--
	if blk.num == 0 {
		if bi != 0 {
			c.transferBlock(bi, listClosed, listFull, c.headFull == 0)
		}
	} else {
		// splice e out of the free cycle
		prev := -c.array[e].base
		next := -c.array[e].check
		c.array[prev].check = -next
		c.array[next].base = -prev
		if e == blk.eHead {
			blk.eHead = next
		}
		if blk.num == 1 && blk.trial != c.maxTrial && bi != 0 {
			c.transferBlock(bi, listOpen, listClosed, c.headClosed == 0)
		}
	}

	// Standard variant: a used node's base is -1 until it gets children of
	// its own, except the label-0 value slot, whose base holds the stored
	// value (initialised to 0 until Update overwrites it).
	if label != 0 {
		c.array[e].base = -1
	} else {
		c.array[e].base = 0
	}
	c.array[e].check = from
	if base < 0 {
		c.array[from].base = e ^ label
	}

	return e
}

// pushENode releases e back to its block's free cycle.
func (c *Cedar) pushENode(e int32) {
	bi := e >> 8
	blk := &c.blocks[bi]
	blk.num++

	if blk.num == 1 {
		blk.eHead = e
		c.array[e].base = -e
		c.array[e].check = -e
		if bi != 0 {
			c.transferBlock(bi, listFull, listClosed, c.headClosed == 0)
		}
	} else {
		head := blk.eHead
		prevOfHead := -c.array[head].base
		c.array[e].base = -prevOfHead
		c.array[e].check = -head
		c.array[prevOfHead].check = -e
		c.array[head].base = -e

		if (blk.num == 2 || blk.trial == c.maxTrial) && bi != 0 {
			c.transferBlock(bi, listClosed, listOpen, c.headOpen == 0)
		}
		blk.trial = 0
	}

	blk.reject = int32(mathutil.Max(int(blk.reject), int(c.reject[blk.num])))

	c.ninfo[e] = ninfo{}
}
