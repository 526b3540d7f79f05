package cli

import (
	"errors"
	"fmt"
	"io"
	"listo/internal/mirror"
	"listo/internal/view"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newListsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Show every list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.load(cmd.Context()); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			for _, list := range app.mirror.Lists() {
				fmt.Fprintf(w, "%s\t%s\t%d/%d\n", list.Slug, list.Name, view.CompletedCount(list.Items), len(list.Items))
			}

			return w.Flush()
		},
	}
}

func newItemsCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "items <list>",
		Short: "Show the items of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.load(cmd.Context()); err != nil {
				return err
			}

			list, ok := app.mirror.List(args[0])
			if !ok {
				return listNotFound(args[0])
			}

			showCompleted := app.cfg.ShowCompleted || all

			printItems(cmd.OutOrStdout(), view.Visible(list.Items, showCompleted, app.cfg.ViewOrder()), time.Now())

			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include completed items")

	return cmd
}

func newAddListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add-list <name>",
		Short: "Create a list and print its slug",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.load(cmd.Context()); err != nil {
				return err
			}

			slug, err := app.mirror.AddList(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), slug)

			return nil
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <list> <text>",
		Short: "Add an item and print its id",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.load(cmd.Context()); err != nil {
				return err
			}

			item, err := app.mirror.AddItem(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if errors.Is(err, mirror.ErrListNotFound) {
				return listNotFound(args[0])
			}

			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), item.ID)

			return nil
		},
	}
}

func newSetCompletedCmd(app *App, use string, completed bool) *cobra.Command {
	short := "Mark an item completed"
	if !completed {
		short = "Mark an item not completed"
	}

	return &cobra.Command{
		Use:   use + " <list> <id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.loadItem(cmd, args[0], args[1])
			if err != nil {
				return err
			}

			return app.mirror.SetCompleted(cmd.Context(), args[0], id, completed)
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <list> <id> <text>",
		Short: "Change the text of an item",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.loadItem(cmd, args[0], args[1])
			if err != nil {
				return err
			}

			return app.mirror.EditText(cmd.Context(), args[0], id, strings.Join(args[2:], " "))
		},
	}
}

func newMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <list> <id> <target-list>",
		Short: "Move an item to another list",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.loadItem(cmd, args[0], args[1])
			if err != nil {
				return err
			}

			payload := view.Payload{ItemID: id, FromList: args[0]}

			if _, ok := app.mirror.List(args[2]); !ok {
				return listNotFound(args[2])
			}

			return view.DropOnList(cmd.Context(), app.mirror, payload, args[2])
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <list> <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.loadItem(cmd, args[0], args[1])
			if err != nil {
				return err
			}

			_, _, err = view.DropOnZone(cmd.Context(), app.mirror, view.Payload{ItemID: id, FromList: args[0]}, view.ZoneDelete)

			return err
		},
	}
}

func newRenameListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename-list <list> <name>",
		Short: "Rename a list. The slug stays the same",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.load(cmd.Context()); err != nil {
				return err
			}

			err := app.mirror.RenameList(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if errors.Is(err, mirror.ErrListNotFound) {
				return listNotFound(args[0])
			}

			return err
		},
	}
}

func newRemoveListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm-list <list>",
		Short: "Delete a list and all of its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.load(cmd.Context()); err != nil {
				return err
			}

			return app.mirror.DeleteList(cmd.Context(), args[0])
		},
	}
}

// loadItem loads the mirror and checks that the item exists in list.
func (a *App) loadItem(cmd *cobra.Command, list, rawID string) (int64, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid item id %q", rawID)
	}

	if err := a.load(cmd.Context()); err != nil {
		return 0, err
	}

	if _, ok := a.mirror.Item(list, id); !ok {
		return 0, fmt.Errorf("item %d not found in %q", id, list)
	}

	return id, nil
}

func printItems(out io.Writer, items []mirror.Item, now time.Time) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	for _, item := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\n", item.ID, view.PlainText(item), view.TimeAgo(item.CreatedAt, now))
	}

	_ = w.Flush()
}

func listNotFound(slug string) error {
	return fmt.Errorf("list %q not found", slug)
}
