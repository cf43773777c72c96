/*
Package result contains typed models for the subset of Hive RPC responses this
client works with. Payloads not covered here can always be decoded into caller
provided structures via the generic Call.
*/
package result

type (
	// Account is a Hive account as returned by database_api.find_accounts. Hive
	// returns many more fields for an account, only the ones used by this
	// client are mapped.
	Account struct {
		Name string `json:"name"`
		// JSONMetadata is a JSON document encoded into a string, its contents
		// are entirely up to the account owner.
		JSONMetadata        string `json:"json_metadata"`
		PostingJSONMetadata string `json:"posting_json_metadata,omitempty"`
	}

	// FindAccounts is a result of the database_api.find_accounts call.
	FindAccounts struct {
		Accounts []Account `json:"accounts"`
	}
)
