// Package conversation rebuilds the set of conversations for an address out
// of its raw handshake entries.
//
// The ledger holds no conversation record: state is an emergent property of
// independently queried, unordered, possibly duplicated entries, recomputed
// from scratch on every pass. The fold is pure and free of I/O so it can be
// tested against fixed entry sets, and idempotent so partial or out-of-order
// arrival cannot leave an inconsistent final state once all entries are
// eventually available. It favors creating a provisional record over
// dropping information; later passes refine provisional state, never discard
// it.
package conversation
