package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/connectorhq/fivetran-universal-connector/internal/auth"
	"github.com/connectorhq/fivetran-universal-connector/internal/config"
	"github.com/connectorhq/fivetran-universal-connector/internal/controllers"
	"github.com/connectorhq/fivetran-universal-connector/internal/domain"
	"github.com/connectorhq/fivetran-universal-connector/internal/managers"
	"github.com/connectorhq/fivetran-universal-connector/internal/server"
	"github.com/connectorhq/fivetran-universal-connector/internal/version"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the connector facade HTTP server",
		Long:  `Start the HTTP server exposing the Fivetran group, connector, and certificate endpoints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	return cmd
}

func runServe() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info().
		Str("version", version.GetVersion()).
		Msg("Starting fivetran-universal-connector")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	store, err := newCertificateStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize certificate store")
	}

	clients := managers.NewUpstreamClientFactory(managers.UpstreamClientFactoryDependencies{
		APIURL:    cfg.FivetranAPIURL,
		APIKey:    cfg.FivetranAPIKey,
		APISecret: cfg.FivetranAPISecret,
		Timeout:   cfg.UpstreamTimeout,
	})

	verifier := auth.NewIdentityClient(auth.IdentityClientDependencies{
		BaseURL: cfg.IdentityAPIURL,
		Timeout: cfg.IdentityTimeout,
	})

	app := server.NewHTTPServer(ctx, server.HTTPServerDependencies{
		IdentityVerifier: verifier,
		GroupController: controllers.NewGroupController(controllers.GroupControllerDependencies{
			GroupManager: managers.NewGroupManager(managers.GroupManagerDependencies{
				Clients: clients,
			}),
		}),
		ConnectorController: controllers.NewConnectorController(controllers.ConnectorControllerDependencies{
			ConnectorManager: managers.NewConnectorManager(managers.ConnectorManagerDependencies{
				Clients: clients,
				GroupID: cfg.FivetranGroupID,
			}),
		}),
		CertificateController: controllers.NewCertificateController(controllers.CertificateControllerDependencies{
			CertificateManager: managers.NewCertificateManager(managers.CertificateManagerDependencies{
				Store: store,
			}),
		}),
	})

	log.Info().
		Str("address", cfg.HTTPAddress).
		Str("certificate_backend", cfg.CertificateBackend).
		Msg("HTTP server listening")

	if err := app.Listen(cfg.HTTPAddress, fiber.ListenConfig{
		GracefulContext:       ctx,
		DisableStartupMessage: true,
	}); err != nil {
		log.Error().Err(err).Msg("HTTP server failed")
	}

	log.Info().Msg("Service stopped")
	return nil
}

// newCertificateStore builds the certificate storage backend the config
// selects.
func newCertificateStore(cfg *config.Config) (domain.CertificateStore, error) {
	if cfg.CertificateBackend == "s3" {
		return managers.NewS3CertificateStore(managers.S3CertificateStoreDependencies{
			Bucket:          cfg.CertificateS3Bucket,
			Region:          cfg.CertificateS3Region,
			Prefix:          cfg.CertificateS3Prefix,
			AccessKeyID:     cfg.CertificateS3AccessKeyID,
			SecretAccessKey: cfg.CertificateS3SecretAccessKey,
		})
	}

	return managers.NewFileCertificateStore(managers.FileCertificateStoreDependencies{
		Dir: cfg.CertificateDir,
	})
}
