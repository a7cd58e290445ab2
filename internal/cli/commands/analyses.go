package commands

import (
	"github.com/spf13/cobra"

	"github.com/starfold-labs/starfold/pkg/analyses"
)

// analysisInfo is the structured listing entry for one analysis.
type analysisInfo struct {
	Name string `json:"name" yaml:"name"`
	Doc  string `json:"doc" yaml:"doc"`
}

// NewAnalysesCommand creates the analyses command.
func NewAnalysesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyses",
		Short: "List the available analyses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := commandConfig(cmd.Context())
			if err != nil {
				return err
			}

			all := analyses.All()
			infos := make([]analysisInfo, len(all))
			rows := make([][]string, len(all))
			for i, a := range all {
				infos[i] = analysisInfo{Name: a.Name, Doc: a.Doc}
				rows[i] = []string{a.Name, a.Doc}
			}
			return renderListing(cmd.OutOrStdout(), cfg.Output, []string{"Name", "Description"}, rows, infos)
		},
	}
}
