package managers

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/connectorhq/fivetran-universal-connector/internal/domain"
)

type s3CertificateStore struct {
	client   *s3.S3
	uploader *s3manager.Uploader
	bucket   string
	prefix   string
}

type S3CertificateStoreDependencies struct {
	Bucket          string
	Region          string
	Prefix          string // Optional
	AccessKeyID     string // Optional - default credential chain when empty
	SecretAccessKey string // Optional
}

// NewS3CertificateStore creates a store keeping certificate objects in an
// S3 bucket under an optional key prefix
func NewS3CertificateStore(deps S3CertificateStoreDependencies) (domain.CertificateStore, error) {
	if deps.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	if deps.Region == "" {
		return nil, fmt.Errorf("s3 region is required")
	}

	awsConfig := &aws.Config{
		Region: aws.String(deps.Region),
	}
	if deps.AccessKeyID != "" && deps.SecretAccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(deps.AccessKeyID, deps.SecretAccessKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}

	prefix := deps.Prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	client := s3.New(sess)

	return &s3CertificateStore{
		client:   client,
		uploader: s3manager.NewUploaderWithClient(client),
		bucket:   deps.Bucket,
		prefix:   prefix,
	}, nil
}

func (s *s3CertificateStore) Put(ctx context.Context, name string, kind domain.CertificateKind, data []byte) (string, error) {
	key := s.prefix + objectFileName(name, kind)

	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/x-pem-file"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload certificate object: %w", err)
	}

	return key, nil
}

func (s *s3CertificateStore) List(ctx context.Context, kind domain.CertificateKind) ([]domain.StoredObject, error) {
	suffix := kindSuffix(kind)

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	}
	if s.prefix != "" {
		input.Prefix = aws.String(s.prefix)
	}

	var objects []domain.StoredObject

	err := s.client.ListObjectsV2PagesWithContext(ctx, input, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, object := range page.Contents {
			key := aws.StringValue(object.Key)

			fileName := strings.TrimPrefix(key, s.prefix)
			if !strings.HasSuffix(fileName, suffix) || strings.Contains(fileName, "/") {
				continue
			}

			name := strings.TrimSuffix(fileName, suffix)
			if name == "" {
				continue
			}

			objects = append(objects, domain.StoredObject{
				Name:     name,
				Location: key,
			})
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list certificate objects: %w", err)
	}

	return objects, nil
}
