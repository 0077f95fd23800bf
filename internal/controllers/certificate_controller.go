package controllers

import (
	"fmt"
	"io"

	"github.com/connectorhq/fivetran-universal-connector/internal/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// CertificateController handles multipart uploads and listing of TLS
// material used by database connectors.
type CertificateController struct {
	certificateManager domain.CertificateManager
}

type CertificateControllerDependencies struct {
	CertificateManager domain.CertificateManager
}

func NewCertificateController(deps CertificateControllerDependencies) *CertificateController {
	return &CertificateController{
		certificateManager: deps.CertificateManager,
	}
}

// UploadClientCertificate stores a certificate and private key pair. Both
// files must validate before anything is written.
func (c *CertificateController) UploadClientCertificate(ctx fiber.Ctx) error {
	certFileName, certData, err := readFormFile(ctx, "cert_file")
	if err != nil {
		return err
	}

	keyFileName, keyData, err := readFormFile(ctx, "key_file")
	if err != nil {
		return err
	}

	cert, err := c.certificateManager.StoreClientCertificate(ctx.RequestCtx(), domain.StoreClientCertificateParams{
		Name:         ctx.FormValue("cert_name"),
		CertFileName: certFileName,
		CertData:     certData,
		KeyFileName:  keyFileName,
		KeyData:      keyData,
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("name", cert.Name).
		Msg("Client certificate uploaded")

	return ctx.JSON(fiber.Map{
		"ok":     true,
		"result": cert,
	})
}

// UploadCACertificate stores a CA certificate.
func (c *CertificateController) UploadCACertificate(ctx fiber.Ctx) error {
	fileName, data, err := readFormFile(ctx, "ca_file")
	if err != nil {
		return err
	}

	ca, err := c.certificateManager.StoreCACertificate(ctx.RequestCtx(), domain.StoreCACertificateParams{
		Name:     ctx.FormValue("ca_name"),
		FileName: fileName,
		Data:     data,
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("name", ca.Name).
		Msg("CA certificate uploaded")

	return ctx.JSON(fiber.Map{
		"ok":     true,
		"result": ca,
	})
}

// ListCertificates returns the stored client and CA certificate records.
func (c *CertificateController) ListCertificates(ctx fiber.Ctx) error {
	listing, err := c.certificateManager.ListCertificates(ctx.RequestCtx())
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"ok":     true,
		"result": listing,
	})
}

// readFormFile pulls one file out of the multipart form body.
func readFormFile(ctx fiber.Ctx, field string) (string, []byte, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		return "", nil, domain.NewValidationError(fmt.Sprintf("%s is required", field))
	}

	file, err := header.Open()
	if err != nil {
		return "", nil, domain.NewInternalError(fmt.Errorf("failed to open uploaded %s: %w", field, err))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, domain.NewInternalError(fmt.Errorf("failed to read uploaded %s: %w", field, err))
	}

	return header.Filename, data, nil
}
