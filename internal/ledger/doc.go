// Package ledger provides the HTTP client for the external indexing service
// that crawls the public ledger and answers coarse queries: handshake entries
// by sender, handshake entries by receiver, and contextual messages by
// sender and alias.
//
// This is a pure network boundary with no local state. The paired handshake
// queries run concurrently, each under its own timeout, and degrade to empty
// result sets on any transport error; reconciliation runs on whatever subset
// succeeded and self-heals on a later pass, so no retries are attempted here.
package ledger
