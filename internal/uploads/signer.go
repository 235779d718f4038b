package uploads

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// CredentialSigner mints a time-boxed credential authorizing exactly one PUT
// of one object key with one content type. Implementations sign locally and
// never contact the storage backend.
type CredentialSigner interface {
	SignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
}

// S3Signer signs PUT credentials against an S3 bucket using SigV4 presigning.
type S3Signer struct {
	presign *s3.PresignClient
	bucket  string
}

// NewS3Signer wraps an S3 presign client for the given bucket.
func NewS3Signer(presign *s3.PresignClient, bucket string) *S3Signer {
	return &S3Signer{presign: presign, bucket: bucket}
}

// SignPut returns a presigned URL authorizing a single PUT of key with
// contentType until the expiry window closes.
func (s *S3Signer) SignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	out, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expires
	})
	if err != nil {
		return "", err
	}
	return out.URL, nil
}

var _ CredentialSigner = (*S3Signer)(nil)
