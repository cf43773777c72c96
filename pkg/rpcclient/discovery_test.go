package rpcclient

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// initAccountServer returns a server responding to any call with a single
// "nectarflower" account carrying the given (raw, not yet string-encoded)
// JSON metadata.
func initAccountServer(t *testing.T, metadata string) *httptest.Server {
	resp := fmt.Sprintf(`{"id":1,"jsonrpc":"2.0","result":{"accounts":[{"name":"nectarflower","json_metadata":%s}]}}`,
		strconv.Quote(metadata))
	srv, _ := initTestServer(t, http.StatusOK, resp)
	return srv
}

func TestGetNodesFromAccount(t *testing.T) {
	srv := initAccountServer(t, `{"nodes":["https://a","https://b"],"failing_nodes":{"https://b":"down"}}`)
	c := newTestClient(t, srv.URL)

	nodeData, err := c.GetNodesFromAccount("nectarflower")
	require.NoError(t, err)
	require.Equal(t, []string{"https://a", "https://b"}, nodeData.Nodes)
	require.Equal(t, map[string]string{"https://b": "down"}, nodeData.FailingNodes)

	// Discovery itself must not touch the node list.
	require.Equal(t, []string{srv.URL}, c.Nodes())

	c.SetNodes(nodeData.Nodes, nodeData.FailingNodes)
	require.Equal(t, []string{"https://a"}, c.Nodes())
	require.Equal(t, map[string]string{"https://b": "down"}, c.FailingNodes())
}

func TestGetNodesFromAccountNotFound(t *testing.T) {
	srv, _ := initTestServer(t, http.StatusOK, `{"id":1,"jsonrpc":"2.0","result":{"accounts":[]}}`)
	c := newTestClient(t, srv.URL)

	_, err := c.GetNodesFromAccount("nobody")
	require.Error(t, err)
	require.Contains(t, err.Error(), `account "nobody" not found`)
}

func TestGetNodesFromAccountCallFailure(t *testing.T) {
	srv, _ := initTestServer(t, http.StatusInternalServerError, "nope")
	c := newTestClient(t, srv.URL)

	_, err := c.GetNodesFromAccount("nectarflower")
	require.Error(t, err)
	require.Contains(t, err.Error(), "fetching account")
}

func TestGetNodesFromAccountNoNodesKey(t *testing.T) {
	srv := initAccountServer(t, `{"profile":{"name":"Flower"}}`)
	c := newTestClient(t, srv.URL)

	_, err := c.GetNodesFromAccount("nectarflower")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no nodes found in account metadata")
}

func TestGetNodesFromAccountMalformedNodes(t *testing.T) {
	srv := initAccountServer(t, `{"nodes":"https://a"}`)
	c := newTestClient(t, srv.URL)

	_, err := c.GetNodesFromAccount("nectarflower")
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing nodes")
}

func TestGetNodesFromAccountMalformedFailingNodes(t *testing.T) {
	srv := initAccountServer(t, `{"nodes":["https://a"],"failing_nodes":"all of them"}`)
	c := newTestClient(t, srv.URL)

	nodeData, err := c.GetNodesFromAccount("nectarflower")
	require.NoError(t, err)
	require.Equal(t, []string{"https://a"}, nodeData.Nodes)
	require.NotNil(t, nodeData.FailingNodes)
	require.Empty(t, nodeData.FailingNodes)
}

func TestGetNodesFromAccountBadMetadata(t *testing.T) {
	for _, metadata := range []string{"", "{invalid"} {
		t.Run(metadata, func(t *testing.T) {
			srv := initAccountServer(t, metadata)
			c := newTestClient(t, srv.URL)

			_, err := c.GetNodesFromAccount("nectarflower")
			require.Error(t, err)
			require.Contains(t, err.Error(), "parsing account metadata")
		})
	}
}

func TestGetNodesFromAccountNonObjectMetadata(t *testing.T) {
	srv := initAccountServer(t, `["https://a"]`)
	c := newTestClient(t, srv.URL)

	_, err := c.GetNodesFromAccount("nectarflower")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no nodes found in account metadata")
}

func TestUpdateNodesFromAccount(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := initAccountServer(t, `{"nodes":["https://a","https://b"],"failing_nodes":{"https://b":"down"}}`)
		c := newTestClient(t, srv.URL)

		require.NoError(t, c.UpdateNodesFromAccount("nectarflower"))
		require.Equal(t, []string{"https://a"}, c.Nodes())
		require.Equal(t, map[string]string{"https://b": "down"}, c.FailingNodes())
	})

	t.Run("failure leaves nodes unmodified", func(t *testing.T) {
		srv := initAccountServer(t, `{"profile":{}}`)
		c := newTestClient(t, srv.URL)

		require.Error(t, c.UpdateNodesFromAccount("nectarflower"))
		require.Equal(t, []string{srv.URL}, c.Nodes())
		require.Empty(t, c.FailingNodes())
	})
}
