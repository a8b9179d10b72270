// Package commands implements the ciphmsg CLI.
//
// Commands operate on payload bytes: building a handshake or message prints
// the exact payload to attach to a ledger entry, and reading commands pull
// entries back through the indexer. Submitting payloads to the ledger itself
// is the wallet's job and stays outside this tool.
package commands
