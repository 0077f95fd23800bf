package cli

import (
	"fmt"
	"strings"

	"github.com/connectorhq/fivetran-universal-connector/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the effective service configuration",
		Long:  `Display the effective configuration, including which settings protected routes still need.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}

	return cmd
}

func runStatus() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
		return err
	}

	fmt.Printf("   Address: %s\n", cfg.HTTPAddress)
	fmt.Printf("   Fivetran API: %s\n", cfg.FivetranAPIURL)
	fmt.Printf("   Certificate backend: %s\n", cfg.CertificateBackend)
	if cfg.CertificateBackend == "s3" {
		fmt.Printf("   Certificate bucket: %s\n", cfg.CertificateS3Bucket)
	} else {
		fmt.Printf("   Certificate directory: %s\n", cfg.CertificateDir)
	}

	if missing := config.MissingRequestSettings(cfg); len(missing) > 0 {
		fmt.Println("❌ Protected routes are not usable yet")
		fmt.Printf("   Missing: %s\n", strings.Join(missing, ", "))
	} else {
		fmt.Println("✅ Service is fully configured")
	}

	return nil
}
