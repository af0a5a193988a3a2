package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/kmod24/moodboard/internal/app"
	"github.com/kmod24/moodboard/internal/core/domain"
	"github.com/kmod24/moodboard/internal/core/services"
	"github.com/kmod24/moodboard/internal/worker"
)

type dayboardOutput struct {
	Mood string `json:"mood"`
	domain.Bundle
	Provenance *services.Provenance `json:"provenance,omitempty"`
}

func newDayboardCmd(root *rootOptions) *cobra.Command {
	var (
		offline    bool
		workers    int
		provenance bool
	)

	cmd := &cobra.Command{
		Use:   "dayboard <mood>...",
		Short: "Build a dayboard for each mood and print it as JSON",
		Long: "Builds a dayboard for each mood argument. Quote multi-word moods. " +
			"Without OPENAI_API_KEY, or with --offline, bundles come from the seed table.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := app.NewOrchestrator(root.cfg, offline, root.logger)
			results := worker.BuildAll(cmd.Context(), o, args, workers, root.logger)

			out := make([]dayboardOutput, 0, len(results))
			for _, r := range results {
				item := dayboardOutput{Mood: domain.NormalizeMood(r.Mood), Bundle: r.Bundle}
				if provenance {
					prov := r.Provenance
					item.Provenance = &prov
				}
				out = append(out, item)
			}

			if len(out) == 1 {
				return printJSON(cmd.OutOrStdout(), out[0])
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the generation API and use seed bundles")
	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "Moods built concurrently")
	cmd.Flags().BoolVar(&provenance, "provenance", false, "Include the source of each field")
	return cmd
}
