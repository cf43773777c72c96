// Package query implements read-only CLI commands against the chain API.
package query

import (
	"bytes"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/nectarflower/nectarflower-go/cli/options"
	"github.com/urfave/cli"
)

// NewCommands returns the 'query' command.
func NewCommands() []cli.Command {
	queryFlags := append([]cli.Flag{
		options.ConfigFile,
		options.Debug,
	}, options.RPC...)
	return []cli.Command{{
		Name:  "query",
		Usage: "query chain data",
		Subcommands: []cli.Command{
			{
				Name:   "props",
				Usage:  "query dynamic global properties",
				Action: queryProps,
				Flags:  queryFlags,
			},
			{
				Name:   "account",
				Usage:  "query account metadata",
				Action: queryAccount,
				Flags:  queryFlags,
			},
			{
				Name:   "block",
				Usage:  "query block by number",
				Action: queryBlock,
				Flags:  queryFlags,
			},
			{
				Name:   "version",
				Usage:  "query node version",
				Action: queryVersion,
				Flags:  queryFlags,
			},
		},
	}}
}

func queryProps(ctx *cli.Context) error {
	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()

	c, exitErr := options.GetRPCClient(gctx, ctx)
	if exitErr != nil {
		return exitErr
	}
	defer c.Close()

	props, err := c.GetDynamicGlobalProperties()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	buf := bytes.NewBuffer(nil)
	tw := tabwriter.NewWriter(buf, 0, 4, 4, '\t', 0)
	_, _ = tw.Write([]byte("HeadBlock:\t" + strconv.FormatUint(uint64(props.HeadBlockNumber), 10) + "\n"))
	_, _ = tw.Write([]byte("HeadBlockID:\t" + props.HeadBlockID + "\n"))
	_, _ = tw.Write([]byte("LastIrreversible:\t" + strconv.FormatUint(uint64(props.LastIrreversibleBlockNum), 10) + "\n"))
	_, _ = tw.Write([]byte("Time:\t" + props.Time + "\n"))
	_, _ = tw.Write([]byte("CurrentWitness:\t" + props.CurrentWitness + "\n"))
	_ = tw.Flush()
	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}

func queryAccount(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) == 0 {
		return cli.NewExitError("Account name is missing", 1)
	}
	name := args[0]

	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()

	c, exitErr := options.GetRPCClient(gctx, ctx)
	if exitErr != nil {
		return exitErr
	}
	defer c.Close()

	accs, err := c.FindAccounts([]string{name})
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if len(accs.Accounts) == 0 {
		return cli.NewExitError(fmt.Sprintf("Account '%s' not found", name), 1)
	}

	acc := accs.Accounts[0]
	buf := bytes.NewBuffer(nil)
	tw := tabwriter.NewWriter(buf, 0, 4, 4, '\t', 0)
	_, _ = tw.Write([]byte("Name:\t" + acc.Name + "\n"))
	_, _ = tw.Write([]byte("Metadata:\t" + acc.JSONMetadata + "\n"))
	_ = tw.Flush()
	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}

func queryBlock(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) == 0 {
		return cli.NewExitError("Block number is missing", 1)
	}
	num, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("Invalid block number: %s", args[0]), 1)
	}

	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()

	c, exitErr := options.GetRPCClient(gctx, ctx)
	if exitErr != nil {
		return exitErr
	}
	defer c.Close()

	block, err := c.GetBlock(uint32(num))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	buf := bytes.NewBuffer(nil)
	tw := tabwriter.NewWriter(buf, 0, 4, 4, '\t', 0)
	_, _ = tw.Write([]byte("BlockID:\t" + block.BlockID + "\n"))
	_, _ = tw.Write([]byte("Previous:\t" + block.Previous + "\n"))
	_, _ = tw.Write([]byte("Timestamp:\t" + block.Timestamp + "\n"))
	_, _ = tw.Write([]byte("Witness:\t" + block.Witness + "\n"))
	_, _ = tw.Write([]byte("Transactions:\t" + strconv.Itoa(len(block.TransactionIDs)) + "\n"))
	_ = tw.Flush()
	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}

func queryVersion(ctx *cli.Context) error {
	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()

	c, exitErr := options.GetRPCClient(gctx, ctx)
	if exitErr != nil {
		return exitErr
	}
	defer c.Close()

	version, err := c.GetVersion()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	buf := bytes.NewBuffer(nil)
	tw := tabwriter.NewWriter(buf, 0, 4, 4, '\t', 0)
	_, _ = tw.Write([]byte("Blockchain:\t" + version.BlockchainVersion + "\n"))
	_, _ = tw.Write([]byte("HiveRevision:\t" + version.HiveRevision + "\n"))
	_, _ = tw.Write([]byte("ChainID:\t" + version.ChainID + "\n"))
	_ = tw.Flush()
	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}
