package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"jobboard/infrastructure"
)

func migrateCommand(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Apply or revert schema migrations.

Subcommands:
  up      - apply pending migrations
  down    - revert applied migrations
  status  - list migrations and whether they are applied`,
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}
			defer app.close()

			ran, err := infrastructure.NewMigrator(app.db, infrastructure.Migrations, app.logger).Up(cmd.Context())
			if err != nil {
				return err
			}
			if len(ran) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			}
			for _, id := range ran {
				fmt.Fprintln(cmd.OutOrStdout(), "applied", id)
			}
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Revert the latest migrations",
		Example: `  jobboard migrate down            # revert the last migration
  jobboard migrate down --steps 2  # revert the last two`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}
			defer app.close()

			reverted, err := infrastructure.NewMigrator(app.db, infrastructure.Migrations, app.logger).Down(cmd.Context(), steps)
			if err != nil {
				return err
			}
			if len(reverted) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to revert")
			}
			for _, id := range reverted {
				fmt.Fprintln(cmd.OutOrStdout(), "reverted", id)
			}
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to revert")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}
			defer app.close()

			list, err := infrastructure.NewMigrator(app.db, infrastructure.Migrations, app.logger).Status(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tAPPLIED AT\tDESCRIPTION")
			for _, st := range list {
				state, at := "pending", "-"
				if st.Applied {
					state, at = "applied", st.AppliedAt.Format(time.RFC3339)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", st.ID, state, at, st.Description)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(up, down, status)
	return cmd
}
