package cli

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/idilsaglam/toyboard/internal/board"
	"github.com/idilsaglam/toyboard/internal/model"
	"github.com/idilsaglam/toyboard/internal/tui"
	"github.com/idilsaglam/toyboard/internal/ui"
)

var errUnknownToy = errors.New("unknown toy")

func runBoard(c *cli.Context) error {
	if c.Args().Present() {
		return cli.Exit(fmt.Sprintf("unknown subcommand: %s", c.Args().First()), exitUsage)
	}
	cfg := configFrom(c)
	log, closer, err := fileLogger(cfg)
	if err != nil {
		return cli.Exit(err.Error(), exitError)
	}
	defer closer.Close()

	cl, err := newClient(cfg)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	if err := tui.Run(c.Context, cl, log); err != nil {
		return cli.Exit("tui: "+err.Error(), exitError)
	}
	return nil
}

func runList(c *cli.Context) error {
	return withController(c, func(ctrl *board.Controller) error {
		if err := ctrl.Dispatch(c.Context, board.Refresh{}); err != nil {
			return err
		}
		ui.Cards(ctrl.Board().Cards())
		return nil
	})
}

func runAdd(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: toyboard add <name> <image-url>", exitUsage)
	}
	return withController(c, func(ctrl *board.Controller) error {
		if err := ctrl.Dispatch(c.Context, board.ToggleForm{}); err != nil {
			return err
		}
		submit := board.Submit{Name: c.Args().Get(0), Image: c.Args().Get(1)}
		if err := ctrl.Dispatch(c.Context, submit); err != nil {
			return err
		}
		card := ctrl.Board().Cards()[ctrl.Board().Len()-1]
		ui.OK(fmt.Sprintf("added %s (id %s)", card.Name, card.ID))
		return nil
	})
}

func runLike(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: toyboard like <id>", exitUsage)
	}
	id := model.ID(c.Args().First())
	return withController(c, func(ctrl *board.Controller) error {
		if err := ctrl.Dispatch(c.Context, board.Refresh{}); err != nil {
			return err
		}
		if _, ok := ctrl.Board().Card(id); !ok {
			ui.Fail(fmt.Sprintf("no toy with id %s", id))
			ui.Hint("Hint: run `toyboard ls` to see valid ids")
			return errUnknownToy
		}
		if err := ctrl.Dispatch(c.Context, board.LikeCard{ID: id}); err != nil {
			return err
		}
		card, _ := ctrl.Board().Card(id)
		ui.OK(fmt.Sprintf("%s now has %s", card.Name, card.LikesLabel()))
		return nil
	})
}
