package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/activity"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/categories"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/render"
)

func newCategoryCommand() *cobra.Command {
	categoryCmd := &cobra.Command{
		Use:   "category",
		Short: "Manage spending categories",
	}
	categoryCmd.AddCommand(
		newCategoryListCommand(),
		newCategoryAddCommand(),
		newCategoryUpdateCommand(),
		newCategoryRemoveCommand(),
	)
	return categoryCmd
}

func newCategoryListCommand() *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				snap := a.book.Snapshot()
				cats := snap.Categories()
				if typeName != "" {
					t, err := model.ParseType(typeName)
					if err != nil {
						return err
					}
					cats = snap.CategoriesByType(t)
				}

				t := render.Table{Headers: []string{"ID", "Name", "Type", "Icon", "Color", "Built-in"}}
				for _, c := range cats {
					builtin := ""
					if c.Builtin {
						builtin = "yes"
					}
					t.Rows = append(t.Rows, []string{c.ID, c.Name, c.Type.Label(), c.Icon, c.Color, builtin})
				}
				a.printf("%s", render.RenderTable(t))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "only categories of this type (needs, wants, savings)")
	return cmd
}

func newCategoryAddCommand() *cobra.Command {
	var name, typeName, color, icon string

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a custom category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				t, err := model.ParseType(typeName)
				if err != nil {
					return err
				}
				c, err := a.book.RegisterCategory(model.Category{ID: args[0], Name: name, Type: t, Color: color, Icon: icon})
				if err != nil {
					return err
				}
				if err := a.commit(ctx, activity.Entry{Action: activity.CategoryAdded, RecordID: c.ID, Details: string(c.Type)}); err != nil {
					return err
				}
				a.printf("Added category %s (%s)\n", c.ID, c.Type.Label())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (default the ID)")
	cmd.Flags().StringVar(&typeName, "type", "", "needs, wants or savings (required)")
	_ = cmd.MarkFlagRequired("type")
	cmd.Flags().StringVar(&color, "color", "", "display color as #rrggbb")
	cmd.Flags().StringVar(&icon, "icon", "", "display icon")
	return cmd
}

func newCategoryUpdateCommand() *cobra.Command {
	var u categories.Update

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a category's name, color or icon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				c, err := a.book.UpdateCategory(args[0], u)
				if err != nil {
					return err
				}
				if err := a.commit(ctx, activity.Entry{Action: activity.CategoryUpdated, RecordID: c.ID, Details: c.Name}); err != nil {
					return err
				}
				a.printf("Updated category %s\n", c.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&u.Name, "name", "", "display name")
	cmd.Flags().StringVar(&u.Color, "color", "", "display color as #rrggbb")
	cmd.Flags().StringVar(&u.Icon, "icon", "", "display icon")
	return cmd
}

func newCategoryRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a custom category that has no expenses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.book.RemoveCategory(args[0]); err != nil {
					return err
				}
				if err := a.commit(ctx, activity.Entry{Action: activity.CategoryRemoved, RecordID: args[0]}); err != nil {
					return err
				}
				a.printf("Removed category %s\n", args[0])
				return nil
			})
		},
	}
}
