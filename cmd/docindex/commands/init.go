package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docindex/internal/config"
)

// DefaultConfigFile is written by 'init' when no --config path is given.
const DefaultConfigFile = "docindex.yaml"

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, cli *CLI) error {
	path := cli.Config
	if path == "" {
		path = DefaultConfigFile
	}

	_, _ = fmt.Fprintf(g.Stdout, "Writing configuration to %s\n", path)
	if err := config.Init(path, i.Force); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(g.Stdout, "initialized successfully")
	return nil
}
