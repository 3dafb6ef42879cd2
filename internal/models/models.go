package models

// Block is the flat export row for an admitted block: its height in the
// chain, its content hash, and the canonical JSON payload.
type Block struct {
	Height uint64
	Hash   string
	Data   []byte
}

// Transaction is the flat export row for a block's transaction, keyed by the
// hash of its canonical serialization.
type Transaction struct {
	Hash string
	Data []byte
}
