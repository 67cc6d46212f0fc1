// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package cedar implements an efficiently-updatable double-array trie: a data
structure mapping byte-string keys to 32-bit integer values that supports
insertion, deletion, exact lookup, and two flavours of prefix enumeration
(common-prefix and prefix-predictive) over arbitrary byte input.

The structure is the classic "cedar" double array: two parallel node fields,
base and check, let a child of node n reached by label l live at index
base[n]^l with check at that index equal to n. What makes the structure
practical at scale is not the lookup itself but the free-slot allocator: a
dynamic classification of 256-node blocks into Open, Closed and Full lists
that lets insertion find (and, on collision, relocate) child groups in
amortised constant time instead of re-scanning the whole array.

The public surface is narrow by design — New, Build, Update, Erase,
ExactMatchSearch and the three prefix operations — the same "thin surface
over an internal engine" shape this package's internals borrow from a
block-classified free-space allocator. Everything else (array.go, block.go,
alloc.go, follow.go) is the engine backing that surface.

There is no serialisation, no on-disk format and no concurrency contract:
a *Cedar is safe for any number of concurrent readers only while no writer
is mutating it; mutation requires exclusive access, enforced by the caller.
*/
package cedar
