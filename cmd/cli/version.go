package cli

import (
	"fmt"

	"github.com/connectorhq/fivetran-universal-connector/internal/version"

	"github.com/spf13/cobra"
)

func NewVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version and build information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()

			fmt.Printf("%s %s\n", info.Service, info.Version)
			if info.GitCommit != "" {
				fmt.Printf("   Commit: %s\n", info.GitCommit)
			}
			if info.BuildDate != "" {
				fmt.Printf("   Built: %s\n", info.BuildDate)
			}
			fmt.Printf("   Go: %s (%s)\n", info.GoVersion, info.Platform)
		},
	}

	return cmd
}
