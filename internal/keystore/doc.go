// Package keystore persists local secrets: derived conversation keys in a
// durable per-wallet Badger store, and the identity keypair in a
// passphrase-encrypted file.
//
// Each wallet identity gets its own store namespace, addressed by a stable
// suffix of the wallet address, so switching local identities cannot leak
// keys across identities. Opening a store before any data exists yields an
// empty store, not an error. An in-memory cache shadows the durable store
// for hot-path reads; the durable store is authoritative.
package keystore
