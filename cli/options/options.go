/*
Package options contains a set of common CLI options and helper functions to use them.
*/
package options

import (
	"context"
	"fmt"
	"time"

	"github.com/nectarflower/nectarflower-go/pkg/config"
	"github.com/nectarflower/nectarflower-go/pkg/rpcclient"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultTimeout is the default timeout used for RPC requests.
const DefaultTimeout = 10 * time.Second

// RPCEndpointFlag is a long flag name for an RPC endpoint. It can be used to
// check for flag presence in the context.
const RPCEndpointFlag = "rpc-endpoint"

// AccountFlag is a long flag name for the discovery account.
const AccountFlag = "account"

// RPC is a set of flags used for RPC connections (endpoints and timeout).
var RPC = []cli.Flag{
	cli.StringSliceFlag{
		Name:  RPCEndpointFlag + ", r",
		Usage: "RPC node address (can be given more than once, the order sets the failover order)",
	},
	cli.DurationFlag{
		Name:  "timeout, s",
		Value: DefaultTimeout,
		Usage: "Timeout for the operation",
	},
}

// Account is a flag for commands that fetch node lists from account metadata.
var Account = cli.StringFlag{
	Name:  AccountFlag + ", a",
	Usage: "Account whose JSON metadata carries the node list",
	Value: config.DefaultDiscoveryAccount,
}

// ConfigFile is a flag for commands that can take settings from a YAML file.
var ConfigFile = cli.StringFlag{
	Name:  "config-file",
	Usage: "path to the YAML configuration file",
}

// Debug is a flag for commands that allow debug mode usage.
var Debug = cli.BoolFlag{
	Name:  "debug, d",
	Usage: "enable debug logging (LOTS of output, overrides configuration)",
}

// GetTimeoutContext returns a context.Context with the default or a user-set timeout.
func GetTimeoutContext(ctx *cli.Context) (context.Context, func()) {
	dur := ctx.Duration("timeout")
	if dur == 0 {
		dur = DefaultTimeout
	}
	return context.WithTimeout(context.Background(), dur)
}

// GetConfigFromContext reads the config file if one is given and applies flag
// overrides on top of it.
func GetConfigFromContext(ctx *cli.Context) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if configFile := ctx.String("config-file"); len(configFile) != 0 {
		cfg, err = config.LoadFile(configFile)
		if err != nil {
			return cfg, err
		}
	} else {
		cfg.DiscoveryAccount = config.DefaultDiscoveryAccount
	}
	if endpoints := ctx.StringSlice(RPCEndpointFlag); len(endpoints) != 0 {
		cfg.Endpoints = endpoints
	}
	if ctx.IsSet(AccountFlag) || cfg.DiscoveryAccount == "" {
		cfg.DiscoveryAccount = ctx.String(AccountFlag)
	}
	if ctx.IsSet("timeout") {
		cfg.RequestTimeout = ctx.Duration("timeout")
	}
	return cfg, nil
}

// GetRPCClient returns an RPC client instance for the given Context. The
// client starts with the endpoints from flags or config (in that order of
// preference) and falls back to the built-in default node if neither is set.
func GetRPCClient(gctx context.Context, ctx *cli.Context) (*rpcclient.Client, cli.ExitCoder) {
	cfg, err := GetConfigFromContext(ctx)
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	log, err := HandleLoggingParams(ctx.Bool("debug"))
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	c, err := rpcclient.New(gctx, rpcclient.Options{
		DialTimeout:    cfg.DialTimeout,
		RequestTimeout: cfg.RequestTimeout,
		Log:            log,
	})
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	if len(cfg.Endpoints) != 0 {
		c.SetNodes(cfg.Endpoints, nil)
		if len(c.Nodes()) == 0 {
			c.Close()
			return nil, cli.NewExitError(fmt.Errorf("no valid RPC endpoints among %v", cfg.Endpoints), 1)
		}
	}
	return c, nil
}

// GetDiscoveryAccount returns the account name node discovery should use.
func GetDiscoveryAccount(ctx *cli.Context) (string, error) {
	cfg, err := GetConfigFromContext(ctx)
	if err != nil {
		return "", err
	}
	if cfg.DiscoveryAccount == "" {
		return "", fmt.Errorf("no account specified, use option '--%s' or '-a'", AccountFlag)
	}
	return cfg.DiscoveryAccount, nil
}

// HandleLoggingParams reads logging parameters. If a user selected debug
// level -- function enables it.
func HandleLoggingParams(debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cc.Encoding = "console"
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil

	return cc.Build()
}
