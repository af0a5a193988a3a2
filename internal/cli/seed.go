package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/kmod24/moodboard/internal/core/domain"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [mood]",
		Short: "Print the static bundle for a mood, or list the hand-written moods",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return printJSON(cmd.OutOrStdout(), domain.SeedMoods())
			}
			return printJSON(cmd.OutOrStdout(), domain.SeedBundle(strings.TrimSpace(args[0])))
		},
	}
}
