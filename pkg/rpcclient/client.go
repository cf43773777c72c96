package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/nectarflower/nectarflower-go/pkg/hiverpc"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const (
	defaultDialTimeout    = 4 * time.Second
	defaultRequestTimeout = 10 * time.Second
)

// DefaultEndpoint is the RPC node every new Client is bootstrapped with. It's
// only used at construction time, SetNodes replaces it with whatever list the
// caller (or node discovery) provides.
const DefaultEndpoint = "https://api.hive.blog"

// ErrNoNodesAvailable is returned by Call if the active node list is empty, no
// network I/O is performed in this case.
var ErrNoNodesAvailable = errors.New("no nodes available")

// Client represents the middleman for executing JSON RPC calls to remote Hive
// RPC nodes. It keeps an ordered list of nodes and retries a failed call on
// the next node in the list until one of them succeeds. Client is thread-safe
// and can be used from multiple goroutines.
type Client struct {
	cli  *http.Client
	ctx  context.Context
	opts Options
	log  *zap.Logger

	// requestF performs a single request to a single node. It is defined on
	// Client, so that our testing code can override it to avoid real network
	// I/O.
	requestF func(*url.URL, *hiverpc.Request) (*hiverpc.Response, error)

	nodesLock    sync.RWMutex
	nodes        []*url.URL
	failingNodes map[string]string

	latestReqID *atomic.Uint64
	// getNextRequestID returns an ID to be used for the subsequent request
	// creation. It is defined on Client, so that our testing code can override
	// this method for the sake of more predictable request IDs generation
	// behavior.
	getNextRequestID func() uint64
}

// Options defines options for the RPC client. All values are optional. If the
// request timeout is not specified, a default of 10 seconds will be used.
type Options struct {
	DialTimeout    time.Duration
	RequestTimeout time.Duration
	// Limit total number of connections per host. No limit by default.
	MaxConnsPerHost int
	// Log is used for non-fatal warnings the client runs into (like malformed
	// optional metadata during node discovery). It may be nil, in which case
	// nothing is ever logged.
	Log *zap.Logger
}

// New returns a new Client ready to use, bootstrapped with DefaultEndpoint.
// Use SetNodes or UpdateNodesFromAccount to switch it to a fresher node list.
func New(ctx context.Context, opts Options) (*Client, error) {
	cl := new(Client)
	err := initClient(ctx, cl, opts)
	if err != nil {
		return nil, err
	}
	return cl, nil
}

func initClient(ctx context.Context, cl *Client, opts Options) error {
	defaultNode, err := parseEndpoint(DefaultEndpoint)
	if err != nil {
		return err
	}

	if opts.DialTimeout <= 0 {
		opts.DialTimeout = defaultDialTimeout
	}

	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}

	httpClient := &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.DialTimeout,
			}).DialContext,
			MaxConnsPerHost: opts.MaxConnsPerHost,
		},
		Timeout: opts.RequestTimeout,
	}

	cl.ctx = ctx
	cl.cli = httpClient
	cl.nodes = []*url.URL{defaultNode}
	cl.failingNodes = make(map[string]string)
	cl.latestReqID = atomic.NewUint64(0)
	cl.getNextRequestID = (cl).getRequestID
	cl.opts = opts
	cl.log = opts.Log
	if cl.log == nil {
		cl.log = zap.NewNop()
	}
	cl.requestF = cl.makeHTTPRequest
	updateActiveNodesMetric(1)
	return nil
}

func (c *Client) getRequestID() uint64 {
	return c.latestReqID.Inc()
}

// parseEndpoint checks that the given string is usable as an HTTP RPC node
// address. Plain url.Parse is too lax for that, it hardly ever fails, so
// scheme and host are checked as well.
func parseEndpoint(endpoint string) (*url.URL, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return nil, fmt.Errorf("invalid endpoint scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("endpoint host is missing")
	}
	return u, nil
}

// SetNodes replaces the node list the client works with. Nodes that are
// mentioned in failingNodes or don't look like HTTP(S) URLs are dropped,
// everything else is installed in the order given. The failing node map is
// installed as is. The swap is atomic, a concurrent Call sees either the old
// list or the new one.
func (c *Client) SetNodes(nodes []string, failingNodes map[string]string) {
	valid := make([]*url.URL, 0, len(nodes))
	for _, node := range nodes {
		if _, ok := failingNodes[node]; ok {
			continue
		}
		u, err := parseEndpoint(node)
		if err != nil {
			c.log.Debug("dropping invalid node", zap.String("node", node), zap.Error(err))
			continue
		}
		valid = append(valid, u)
	}
	if failingNodes == nil {
		failingNodes = make(map[string]string)
	}

	c.nodesLock.Lock()
	c.nodes = valid
	c.failingNodes = failingNodes
	updateActiveNodesMetric(len(valid))
	c.nodesLock.Unlock()
}

// Nodes returns a copy of the active node list in the order the client probes
// them.
func (c *Client) Nodes() []string {
	c.nodesLock.RLock()
	defer c.nodesLock.RUnlock()

	nodes := make([]string, len(c.nodes))
	for i, u := range c.nodes {
		nodes[i] = u.String()
	}
	return nodes
}

// FailingNodes returns a copy of the known-bad node map (node address to the
// reason it's considered failing).
func (c *Client) FailingNodes() map[string]string {
	c.nodesLock.RLock()
	defer c.nodesLock.RUnlock()

	failing := make(map[string]string, len(c.failingNodes))
	for k, v := range c.failingNodes {
		failing[k] = v
	}
	return failing
}

func (c *Client) nodeSnapshot() []*url.URL {
	c.nodesLock.RLock()
	defer c.nodesLock.RUnlock()

	nodes := make([]*url.URL, len(c.nodes))
	copy(nodes, c.nodes)
	return nodes
}

// Call executes a JSON-RPC method against the active node list. Nodes are
// tried strictly in list order, one at a time, and the first one to return a
// result that decodes into v wins. A transport error, a bad HTTP status, a
// server-reported RPC error and a result that fails to decode all count the
// same way: the node is skipped and the next one is tried. If every node
// fails, the error of the last one is returned. The node list itself is never
// modified by Call. v may be nil if the caller doesn't care about the result
// payload.
func (c *Client) Call(method string, params any, v any) error {
	return c.performRequest(method, params, v)
}

func (c *Client) performRequest(method string, params any, v any) error {
	if params == nil {
		params = struct{}{} // Hive wants at least an empty object here.
	}
	var r = hiverpc.Request{
		JSONRPC: hiverpc.JSONRPCVersion,
		Method:  method,
		Params:  params,
		ID:      c.getNextRequestID(),
	}

	nodes := c.nodeSnapshot()
	if len(nodes) == 0 {
		return ErrNoNodesAvailable
	}

	var lastErr error
	for _, node := range nodes {
		err := c.callNode(node, &r, v)
		if err == nil {
			addCallMetric(method, true)
			return nil
		}
		incNodeFailureMetric(node.String())
		lastErr = err
	}
	addCallMetric(method, false)
	return lastErr
}

// callNode performs a single request against a single node and decodes its
// result into v.
func (c *Client) callNode(node *url.URL, r *hiverpc.Request, v any) error {
	raw, err := c.requestF(node, r)
	if err != nil {
		return err
	}
	if raw.Error != nil {
		return raw.Error
	}
	if raw.Result == nil {
		return errors.New("no result returned")
	}
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(raw.Result, v); err != nil {
		return fmt.Errorf("result decoding: %w", err)
	}
	return nil
}

func (c *Client) makeHTTPRequest(node *url.URL, r *hiverpc.Request) (*hiverpc.Response, error) {
	var (
		buf = new(bytes.Buffer)
		raw = new(hiverpc.Response)
	)

	if err := json.NewEncoder(buf).Encode(r); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, node.String(), buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.cli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// A failed response still can carry a proper JSON-RPC error in the
		// body, it has more relevant data than the HTTP status code. Whatever
		// else it carries is not to be trusted.
		if err := json.NewDecoder(resp.Body).Decode(raw); err == nil && raw.Error != nil {
			return nil, raw.Error
		}
		return nil, fmt.Errorf("HTTP %d/%s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(raw); err != nil {
		return nil, fmt.Errorf("JSON decoding: %w", err)
	}
	return raw, nil
}

// Close closes unused underlying networks connections.
func (c *Client) Close() {
	c.cli.CloseIdleConnections()
}

// Ping attempts to create a TCP connection to the first node in the active
// list and returns an error if it can't.
func (c *Client) Ping() error {
	nodes := c.nodeSnapshot()
	if len(nodes) == 0 {
		return ErrNoNodesAvailable
	}
	conn, err := net.DialTimeout("tcp", hostPort(nodes[0]), c.opts.DialTimeout)
	if err != nil {
		return err
	}
	_ = conn.Close()
	return nil
}

func hostPort(u *url.URL) string {
	if u.Port() != "" {
		return u.Host
	}
	port := "80"
	if u.Scheme == "https" {
		port = "443"
	}
	return net.JoinHostPort(u.Hostname(), port)
}
