// Package crypto implements the key-derivation and encryption layer of the
// ciphmsg protocol.
//
// Contents
//
//   - Shared-secret conversation keys derived from both parties' wallet
//     signatures (SharedConversationKey)
//   - Ephemeral-key encryption to a recipient's long-lived public key with
//     the ephemeral public embedded in each message (EncryptEphemeral,
//     DecryptEphemeral)
//   - Deterministic identity keypair derivation from a wallet signature
//     (DeriveIdentity)
//   - The scheme-tagged ciphertext wire format (sym:/ecies: + hex)
//
// # Notes
//
// Both derivation schemes end in HKDF-SHA256 with domain-separated inputs and
// produce 32-byte ChaCha20-Poly1305 keys. Decryption failures come back as
// ErrCannotDecrypt so callers can render a placeholder instead of crashing a
// conversation view.
package crypto
