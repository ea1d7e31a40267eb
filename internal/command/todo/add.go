package todo

import (
	"os"
	"strings"

	"github.com/bornholm/todo/internal/command/common"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func addCommand() *cli.Command {
	flags := common.WithCommonFlags(
		outputFlag(),
		&cli.BoolFlag{
			Name:  flagCompleted,
			Value: false,
			Usage: "Create the todo as already completed",
		},
	)

	return &cli.Command{
		Name:      "add",
		Usage:     "Create a new todo",
		ArgsUsage: "<value>",
		Flags:     flags,
		Before:    common.LoadConfig(flags),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			value := strings.Join(cCtx.Args().Slice(), " ")

			todoClient, err := common.GetTodoClient(cCtx)
			if err != nil {
				return errors.Wrap(err, "could not create todo client")
			}

			todo, err := todoClient.AddTodo(ctx, value, cCtx.Bool(flagCompleted))
			if err != nil {
				return errors.Wrap(err, "could not add todo")
			}

			if err := writeTodos(os.Stdout, cCtx.String(flagOutput), *todo); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}
