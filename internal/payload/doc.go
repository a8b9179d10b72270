// Package payload builds and parses the on-ledger byte payloads of the
// ciphmsg protocol: handshakes, contextual messages, and public broadcast
// posts.
//
// The indexer does not disclose how a given entry's bytes were processed on
// their way back to us, and historical senders used an older compact format,
// so parsing is format sniffing: an ordered list of candidate decoders is
// tried in a fixed priority order and the first success wins. Only after
// every candidate has been tried is an entry declared unparseable (nil).
// Unparseable entries are skipped by callers, never fatal.
package payload
