package todo

import (
	"github.com/urfave/cli/v2"
)

const (
	flagOutput    = "output"
	flagCompleted = "completed"
)

func Commands() []*cli.Command {
	return []*cli.Command{
		listCommand(),
		addCommand(),
		toggleCommand(),
		setCommand(),
		deleteCommand(),
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Value:   OutputTable,
		Usage:   "Output format (table, json, yaml)",
	}
}
