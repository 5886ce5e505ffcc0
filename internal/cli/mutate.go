package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newFavoriteCmd(rt *runtime) *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "favorite <id>",
		Short: "Mark a fellowship as favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := rt.client()
			if err != nil {
				return err
			}

			id := strings.TrimSpace(args[0])
			if err := client.SetFavorite(cmd.Context(), id, !off); err != nil {
				return err
			}
			if off {
				success(cmd.OutOrStdout(), "Fellowship %s is no longer a favorite.", id)
			} else {
				success(cmd.OutOrStdout(), "Fellowship %s marked as favorite.", id)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "clear the favorite flag instead")
	return cmd
}

func newRemoveCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Hide a fellowship from the listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := rt.client()
			if err != nil {
				return err
			}

			id := strings.TrimSpace(args[0])
			if err := client.Remove(cmd.Context(), id); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Fellowship %s removed. Undo with: fellows undo %s", id, id)
			return nil
		},
	}
}

func newUndoCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <id>",
		Short: "Show a removed fellowship again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := rt.client()
			if err != nil {
				return err
			}

			id := strings.TrimSpace(args[0])
			if err := client.Undo(cmd.Context(), id); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Fellowship %s restored.", id)
			return nil
		},
	}
}
