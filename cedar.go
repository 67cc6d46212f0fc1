// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cedar

import "fmt"

// Options configures a Cedar at construction time. The zero Options is not
// valid on its own — use DefaultOptions or NewWithOptions, which fills in
// MaxTrial when it is left at zero.
type Options struct {
	// Ordered requires sibling chains to stay strictly byte-ascending,
	// which in turn makes every prefix enumeration emit lexicographic
	// order. Disabling it skips the chain-order bookkeeping in follow
	// and resolve at the cost of that ordering guarantee.
	Ordered bool

	// MaxTrial bounds how many failed find_places probes a block
	// tolerates before it is forced into Closed regardless of its free
	// count. Defaults to 1.
	MaxTrial int32
}

// DefaultOptions returns the configuration new Cedar values use unless
// told otherwise: ordered sibling chains, MaxTrial 1.
func DefaultOptions() Options {
	return Options{Ordered: true, MaxTrial: maxTrialDefault}
}

// Cedar is an efficiently-updatable double-array trie mapping byte-string
// keys to int32 values. The zero value is not usable; construct one with
// New or NewWithOptions.
//
// A *Cedar is safe for any number of concurrent readers as long as no
// writer is mutating it concurrently; Update, Erase and Build all require
// exclusive access.
type Cedar struct {
	array  []node
	ninfo  []ninfo
	blocks []block
	reject []int32

	headFull   int32
	headClosed int32
	headOpen   int32

	capacity int32
	size     int32

	ordered  bool
	maxTrial int32
}

// New returns an empty Cedar using DefaultOptions.
func New() *Cedar {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions returns an empty Cedar configured per opts.
func NewWithOptions(opts Options) *Cedar {
	maxTrial := opts.MaxTrial
	if maxTrial == 0 {
		maxTrial = maxTrialDefault
	}

	c := &Cedar{
		array:    make([]node, blockSize),
		ninfo:    make([]ninfo, blockSize),
		blocks:   make([]block, 1),
		reject:   make([]int32, blockSize+1),
		capacity: blockSize,
		size:     blockSize,
		ordered:  opts.Ordered,
		maxTrial: maxTrial,
	}

	for i := range c.reject {
		c.reject[i] = int32(i) + 1
	}

	c.blocks[0] = newBlock()

	// Node 0 is the virtual root: its base starts at 0 (already "in use"
	// as far as follow is concerned), so its direct single-byte children
	// are reached by plain index computation rather than findPlace, and
	// block 0 is never pushed onto any of the three lists.
	c.array[0] = node{base: 0, check: -1}
	for i := int32(1); i < blockSize; i++ {
		c.array[i] = node{base: -(i - 1), check: -(i + 1)}
	}
	c.array[1].base = -(blockSize - 1)
	c.array[blockSize-1].check = -1

	c.blocks[0].eHead = 1
	c.blocks[0].num = blockSize - 1 // node 0 is the root, not a free slot

	return c
}

// KV is one key/value pair for Build.
type KV struct {
	Key   []byte
	Value int32
}

// Build inserts every pair in order, last write winning on duplicate keys.
// It fails (leaving already-inserted pairs in place) on the first
// zero-length key.
func (c *Cedar) Build(pairs []KV) error {
	for _, kv := range pairs {
		if err := c.Update(kv.Key, kv.Value); err != nil {
			return err
		}
	}
	return nil
}

// Update inserts key with value, overwriting any existing value. It
// rejects a zero-length key with *ErrInvalidInput and leaves the trie
// unchanged.
func (c *Cedar) Update(key []byte, value int32) error {
	if len(key) == 0 {
		return &ErrInvalidInput{Op: "Update", Key: key}
	}

	from := int32(0)
	for pos := 0; pos < len(key); pos++ {
		from = c.follow(from, key[pos])
	}

	to := c.follow(from, 0)
	c.array[to].base = value
	return nil
}

// Erase removes key if present; it is a silent no-op if key was never
// inserted (or was already erased). Unlike a literal port of the
// reference's erase, this checks that key actually resolved to a stored
// value — not merely to a structurally-reachable interior node — before
// touching the tree; see DESIGN.md.
func (c *Cedar) Erase(key []byte) {
	from := int32(0)
	value, ok := c.find(key, &from)
	if !ok || value == cedarNoValue {
		return
	}
	c.eraseAt(from)
}

// eraseAt frees the value node reached by the last-byte node `from`,
// ascending and freeing ancestor nodes that become childless, stopping as
// soon as an ancestor level still has another sibling. The root is never
// freed.
func (c *Cedar) eraseAt(from int32) {
	e := c.array[from].base

	for {
		hasSibling := c.ninfo[c.array[from].base^int32(c.ninfo[from].child)].sibling != 0
		if hasSibling {
			c.popSibling(from, c.array[from].base, byte(c.array[from].base^e))
		}

		c.pushENode(e)
		e = from
		from = c.array[from].check

		if hasSibling {
			break
		}
	}
}

// MatchResult is the successful result of ExactMatchSearch.
type MatchResult struct {
	Value  int32
	Length int
	Cursor int32
}

// ExactMatchSearch reports the value stored for key, if any.
func (c *Cedar) ExactMatchSearch(key []byte) (MatchResult, bool) {
	from := int32(0)
	value, ok := c.find(key, &from)
	if !ok || value == cedarNoValue {
		return MatchResult{}, false
	}
	return MatchResult{Value: value, Length: len(key), Cursor: from}, true
}

// Stats reports a snapshot of the allocator's internal bookkeeping, for
// diagnostics and tests.
type Stats struct {
	Size         int32
	Capacity     int32
	NumBlocks    int32
	OpenBlocks   []int64
	ClosedBlocks []int64
	FullBlocks   []int64
}

// Stats returns a snapshot of the trie's current size and block
// classification.
func (c *Cedar) Stats() Stats {
	return Stats{
		Size:         c.size,
		Capacity:     c.capacity,
		NumBlocks:    c.size / blockSize,
		OpenBlocks:   c.blockIDs(listOpen),
		ClosedBlocks: c.blockIDs(listClosed),
		FullBlocks:   c.blockIDs(listFull),
	}
}

// String renders a one-line summary, mirroring the debug form a caller
// would print for a quick sanity check rather than full dump.
func (c *Cedar) String() string {
	return fmt.Sprintf("Cedar(size=%d, ordered=%t)", c.size, c.ordered)
}
