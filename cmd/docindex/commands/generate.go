package commands

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Root string `arg:"" name:"root" help:"Directory to index; the page is written into it"`

	Overrides `embed:""`
}

func (g *GenerateCmd) Run(_ *Global, cli *CLI) error {
	cfg, err := cli.LoadConfig(&g.Overrides)
	if err != nil {
		return err
	}

	result, err := newGenerator(cfg).Generate(g.Root)
	if err != nil {
		return err
	}
	logResult(result)
	return nil
}
