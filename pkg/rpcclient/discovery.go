package rpcclient

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nectarflower/nectarflower-go/pkg/hiverpc/result"
	"go.uber.org/zap"
)

// GetNodesFromAccount fetches the given account and extracts a node list from
// its JSON metadata. The metadata is expected to carry a "nodes" array (its
// absence is an error) and may carry a "failing_nodes" object; a malformed
// "failing_nodes" value is not fatal, it's logged and an empty map is returned
// instead. The client's own node list is not touched, use
// UpdateNodesFromAccount for that.
func (c *Client) GetNodesFromAccount(accountName string) (result.NodeData, error) {
	var nodeData result.NodeData

	accs, err := c.FindAccounts([]string{accountName})
	if err != nil {
		return nodeData, fmt.Errorf("fetching account: %w", err)
	}
	if len(accs.Accounts) == 0 {
		return nodeData, fmt.Errorf("account %q not found", accountName)
	}
	acc := accs.Accounts[0]

	var metadata map[string]json.RawMessage
	if err := json.Unmarshal([]byte(acc.JSONMetadata), &metadata); err != nil {
		// Metadata that is valid JSON, but not an object, has no "nodes" key
		// by definition.
		if json.Valid([]byte(acc.JSONMetadata)) {
			return nodeData, errors.New("no nodes found in account metadata")
		}
		return nodeData, fmt.Errorf("parsing account metadata: %w", err)
	}

	rawNodes, ok := metadata["nodes"]
	if !ok {
		return nodeData, errors.New("no nodes found in account metadata")
	}
	if err := json.Unmarshal(rawNodes, &nodeData.Nodes); err != nil {
		return result.NodeData{}, fmt.Errorf("parsing nodes: %w", err)
	}

	nodeData.FailingNodes = make(map[string]string)
	if rawFailing, ok := metadata["failing_nodes"]; ok {
		if err := json.Unmarshal(rawFailing, &nodeData.FailingNodes); err != nil {
			c.log.Warn("malformed failing_nodes in account metadata, ignoring them",
				zap.String("account", accountName),
				zap.Error(err))
			nodeData.FailingNodes = make(map[string]string)
		}
	}
	return nodeData, nil
}

// UpdateNodesFromAccount fetches a node list from the given account's metadata
// via GetNodesFromAccount and installs it with SetNodes. If discovery fails
// the client's node list stays exactly as it was.
func (c *Client) UpdateNodesFromAccount(accountName string) error {
	nodeData, err := c.GetNodesFromAccount(accountName)
	if err != nil {
		return err
	}
	c.SetNodes(nodeData.Nodes, nodeData.FailingNodes)
	return nil
}
