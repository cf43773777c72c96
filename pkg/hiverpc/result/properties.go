package result

type (
	// DynamicGlobalProperties is a result of the
	// database_api.get_dynamic_global_properties call, mapping the chain state
	// fields most callers care about.
	DynamicGlobalProperties struct {
		HeadBlockNumber          uint32 `json:"head_block_number"`
		HeadBlockID              string `json:"head_block_id"`
		Time                     string `json:"time"`
		CurrentWitness           string `json:"current_witness"`
		LastIrreversibleBlockNum uint32 `json:"last_irreversible_block_num"`
		CurrentAslot             uint64 `json:"current_aslot"`
	}

	// Version model used for reporting node version info, a result of the
	// database_api.get_version call.
	Version struct {
		BlockchainVersion string `json:"blockchain_version"`
		HiveRevision      string `json:"hive_revision"`
		FCRevision        string `json:"fc_revision"`
		ChainID           string `json:"chain_id"`
	}
)
