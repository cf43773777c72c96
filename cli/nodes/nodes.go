// Package nodes implements CLI commands around node list discovery.
package nodes

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/nectarflower/nectarflower-go/cli/options"
	"github.com/nectarflower/nectarflower-go/pkg/hiverpc/result"
	"github.com/urfave/cli"
)

// NewCommands returns the 'nodes' command.
func NewCommands() []cli.Command {
	nodesFlags := append([]cli.Flag{
		options.Account,
		options.ConfigFile,
		options.Debug,
	}, options.RPC...)
	return []cli.Command{{
		Name:  "nodes",
		Usage: "node list discovery from account metadata",
		Subcommands: []cli.Command{
			{
				Name:   "show",
				Usage:  "fetch the node list published in account metadata and print it",
				Action: showNodes,
				Flags:  nodesFlags,
			},
			{
				Name:   "update",
				Usage:  "update the client node list from account metadata and print the result",
				Action: updateNodes,
				Flags:  nodesFlags,
			},
		},
	}}
}

func showNodes(ctx *cli.Context) error {
	account, err := options.GetDiscoveryAccount(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()

	c, exitErr := options.GetRPCClient(gctx, ctx)
	if exitErr != nil {
		return exitErr
	}
	defer c.Close()

	nodeData, err := c.GetNodesFromAccount(account)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to fetch nodes from @%s: %w", account, err), 1)
	}

	dumpNodeData(ctx, nodeData)
	return nil
}

func updateNodes(ctx *cli.Context) error {
	account, err := options.GetDiscoveryAccount(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()

	c, exitErr := options.GetRPCClient(gctx, ctx)
	if exitErr != nil {
		return exitErr
	}
	defer c.Close()

	if err := c.UpdateNodesFromAccount(account); err != nil {
		return cli.NewExitError(fmt.Errorf("failed to update nodes from @%s: %w", account, err), 1)
	}

	dumpNodeData(ctx, result.NodeData{
		Nodes:        c.Nodes(),
		FailingNodes: c.FailingNodes(),
	})
	return nil
}

func dumpNodeData(ctx *cli.Context, nodeData result.NodeData) {
	buf := bytes.NewBuffer(nil)

	// Ignore the errors below because `Write` to buffer doesn't return error.
	tw := tabwriter.NewWriter(buf, 0, 4, 4, '\t', 0)
	for _, node := range nodeData.Nodes {
		_, _ = tw.Write([]byte(node + "\tOK\n"))
	}
	for node, reason := range nodeData.FailingNodes {
		_, _ = tw.Write([]byte(node + "\tFAILING: " + reason + "\n"))
	}
	_ = tw.Flush()
	fmt.Fprint(ctx.App.Writer, buf.String())
}
