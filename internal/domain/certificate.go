package domain

import (
	"context"
)

// CertificateKind selects the storage suffix of an uploaded object
type CertificateKind string

const (
	CertificateKindCert CertificateKind = "cert"
	CertificateKindKey  CertificateKind = "key"
	CertificateKindCA   CertificateKind = "ca"
)

// StoredObject is one object held by a certificate store backend
type StoredObject struct {
	Name     string
	Location string
}

// CertificateStore is durable storage for uploaded certificate material.
// Implementations map (name, kind) to an object keyed {name}_{kind}.pem and
// must tolerate concurrent Puts of distinct names.
type CertificateStore interface {
	Put(ctx context.Context, name string, kind CertificateKind, data []byte) (string, error)
	List(ctx context.Context, kind CertificateKind) ([]StoredObject, error)
}

// ClientCertificate is a stored certificate/key pair
type ClientCertificate struct {
	Name     string `json:"name"`
	CertFile string `json:"cert_file"`
	KeyFile  string `json:"key_file"`
}

// CACertificate is a stored certificate-authority certificate
type CACertificate struct {
	Name   string `json:"name"`
	CAFile string `json:"ca_file"`
}

// CertificateListing pairs stored objects back into logical records
type CertificateListing struct {
	Certificates   []ClientCertificate `json:"certificates"`
	CACertificates []CACertificate     `json:"ca_certificates"`
}

type StoreClientCertificateParams struct {
	Name         string
	CertFileName string
	CertData     []byte
	KeyFileName  string
	KeyData      []byte
}

type StoreCACertificateParams struct {
	Name     string
	FileName string
	Data     []byte
}

// CertificateManager validates and stores uploaded TLS material. Validation
// covers file extension and PEM header markers only; both files of a client
// pair are validated before either is written. Re-uploading a name replaces
// the stored objects.
type CertificateManager interface {
	StoreClientCertificate(ctx context.Context, params StoreClientCertificateParams) (ClientCertificate, error)
	StoreCACertificate(ctx context.Context, params StoreCACertificateParams) (CACertificate, error)
	ListCertificates(ctx context.Context) (CertificateListing, error)
}
