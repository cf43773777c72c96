package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nectarflower/nectarflower-go/cli/nodes"
	"github.com/nectarflower/nectarflower-go/cli/query"
	"github.com/nectarflower/nectarflower-go/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "nectarflower\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a nectarflower instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "nectarflower"
	ctl.Version = config.Version
	ctl.Usage = "Hive RPC client with account metadata based node discovery"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, nodes.NewCommands()...)
	ctl.Commands = append(ctl.Commands, query.NewCommands()...)
	return ctl
}
