package rpcclient

import (
	"fmt"

	"github.com/nectarflower/nectarflower-go/pkg/hiverpc/result"
)

// findAccountsParams is a parameter object for database_api.find_accounts.
type findAccountsParams struct {
	Accounts []string `json:"accounts"`
}

// getBlockParams is a parameter object for block_api.get_block.
type getBlockParams struct {
	BlockNum uint32 `json:"block_num"`
}

// FindAccounts returns the accounts with the given names. Names unknown to the
// chain are simply absent from the result.
func (c *Client) FindAccounts(names []string) (result.FindAccounts, error) {
	var (
		params = findAccountsParams{Accounts: names}
		resp   result.FindAccounts
	)
	if err := c.performRequest("database_api.find_accounts", params, &resp); err != nil {
		return result.FindAccounts{}, err
	}
	return resp, nil
}

// GetDynamicGlobalProperties returns the current chain state (head block
// number, current witness and so on).
func (c *Client) GetDynamicGlobalProperties() (result.DynamicGlobalProperties, error) {
	var resp result.DynamicGlobalProperties
	if err := c.performRequest("database_api.get_dynamic_global_properties", nil, &resp); err != nil {
		return result.DynamicGlobalProperties{}, err
	}
	return resp, nil
}

// GetBlock returns the block with the given number or an error if the chain
// hasn't produced it yet.
func (c *Client) GetBlock(num uint32) (*result.Block, error) {
	var (
		params = getBlockParams{BlockNum: num}
		resp   result.GetBlock
	)
	if err := c.performRequest("block_api.get_block", params, &resp); err != nil {
		return nil, err
	}
	if resp.Block == nil {
		return nil, fmt.Errorf("block %d not found", num)
	}
	return resp.Block, nil
}

// GetVersion returns the version of the node that ends up serving the call.
func (c *Client) GetVersion() (result.Version, error) {
	var resp result.Version
	if err := c.performRequest("database_api.get_version", nil, &resp); err != nil {
		return result.Version{}, err
	}
	return resp, nil
}
