package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/splitledger/splitledger/internal/activity"
	"github.com/splitledger/splitledger/internal/model"
)

func newParticipantCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "participant",
		Aliases: []string{"participants"},
		Short:   "Manage the group's participants",
	}
	cmd.AddCommand(newParticipantAddCommand(e), newParticipantListCommand(e))
	return cmd
}

func newParticipantAddCommand(e *env) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := openGroup(e)
			if err != nil {
				return err
			}

			p := model.Participant{ID: args[0], Name: name}
			if err := g.roster.Add(p); err != nil {
				return err
			}
			if err := g.roster.Save(g.dir); err != nil {
				return err
			}

			if _, err := g.record(e, "participant: add "+p.ID, activity.Entry{
				Action:  activity.ActionAddParticipant,
				Details: p.DisplayName(),
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", p.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	return cmd
}

func newParticipantListCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List participants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := openGroup(e)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME")
			for _, p := range g.roster.All() {
				fmt.Fprintf(tw, "%s\t%s\n", p.ID, p.Name)
			}
			return tw.Flush()
		},
	}
}
