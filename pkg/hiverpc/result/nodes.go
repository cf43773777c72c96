package result

// NodeData is a set of RPC endpoints extracted from account metadata. Nodes
// keeps the order the account owner published them in, FailingNodes maps an
// endpoint to a human-readable reason it's considered unusable.
type NodeData struct {
	Nodes        []string          `json:"nodes"`
	FailingNodes map[string]string `json:"failing_nodes"`
}
