package managers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/xid"

	"github.com/connectorhq/fivetran-universal-connector/internal/domain"
)

type fileCertificateStore struct {
	dir string
}

type FileCertificateStoreDependencies struct {
	Dir string
}

// NewFileCertificateStore creates a store keeping certificate objects as
// files under one directory
func NewFileCertificateStore(deps FileCertificateStoreDependencies) (domain.CertificateStore, error) {
	if deps.Dir == "" {
		return nil, fmt.Errorf("certificate directory is required")
	}

	if err := os.MkdirAll(deps.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create certificate directory: %w", err)
	}

	return &fileCertificateStore{
		dir: deps.Dir,
	}, nil
}

// objectFileName maps (name, kind) to the storage naming convention
func objectFileName(name string, kind domain.CertificateKind) string {
	return fmt.Sprintf("%s_%s.pem", name, kind)
}

// kindSuffix is the file name suffix shared by all objects of one kind
func kindSuffix(kind domain.CertificateKind) string {
	return fmt.Sprintf("_%s.pem", kind)
}

// Put writes through a temp file plus rename so a crashed upload never
// leaves a partial object visible.
func (s *fileCertificateStore) Put(ctx context.Context, name string, kind domain.CertificateKind, data []byte) (string, error) {
	path := filepath.Join(s.dir, objectFileName(name, kind))
	tempPath := fmt.Sprintf("%s.%s.tmp", path, xid.New().String())

	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write certificate object: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to finalize certificate object: %w", err)
	}

	return path, nil
}

func (s *fileCertificateStore) List(ctx context.Context, kind domain.CertificateKind) ([]domain.StoredObject, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read certificate directory: %w", err)
	}

	suffix := kindSuffix(kind)

	var objects []domain.StoredObject
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		fileName := entry.Name()
		if !strings.HasSuffix(fileName, suffix) {
			continue
		}

		name := strings.TrimSuffix(fileName, suffix)
		if name == "" {
			continue
		}

		objects = append(objects, domain.StoredObject{
			Name:     name,
			Location: filepath.Join(s.dir, fileName),
		})
	}

	return objects, nil
}
