package result

type (
	// Block is a signed Hive block as returned by block_api.get_block.
	// Transactions are left raw, this client doesn't interpret operations.
	Block struct {
		BlockID               string   `json:"block_id"`
		Previous              string   `json:"previous"`
		Timestamp             string   `json:"timestamp"`
		Witness               string   `json:"witness"`
		TransactionMerkleRoot string   `json:"transaction_merkle_root"`
		SigningKey            string   `json:"signing_key"`
		WitnessSignature      string   `json:"witness_signature"`
		TransactionIDs        []string `json:"transaction_ids"`
	}

	// GetBlock is a result of the block_api.get_block call. Block is absent
	// when the chain hasn't produced the requested block yet.
	GetBlock struct {
		Block *Block `json:"block"`
	}
)
