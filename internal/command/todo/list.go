package todo

import (
	"os"

	"github.com/bornholm/todo/internal/command/common"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func listCommand() *cli.Command {
	flags := common.WithCommonFlags(outputFlag())

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List todos, most recently created first",
		Flags:   flags,
		Before:  common.LoadConfig(flags),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			todoClient, err := common.GetTodoClient(cCtx)
			if err != nil {
				return errors.Wrap(err, "could not create todo client")
			}

			todos, err := todoClient.ListTodos(ctx)
			if err != nil {
				return errors.Wrap(err, "could not list todos")
			}

			if err := writeTodos(os.Stdout, cCtx.String(flagOutput), todos...); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}
