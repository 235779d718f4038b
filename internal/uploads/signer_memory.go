package uploads

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"
)

// MemorySigner produces URLs shaped like presigned S3 URLs without any AWS
// configuration. The signature is an HMAC over the write-intent descriptor,
// so the same intent always signs to the same value within a process.
type MemorySigner struct {
	bucket string
	region string
	secret []byte
}

// NewMemorySigner constructs a fake signer with a per-process random secret.
func NewMemorySigner(bucket, region string) *MemorySigner {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		secret = []byte(fmt.Sprintf("%d", time.Now().UnixNano()))
	}
	return &MemorySigner{bucket: bucket, region: region, secret: secret}
}

// SignPut returns a deterministic fake presigned URL for the write intent.
func (s *MemorySigner) SignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "PUT\n%s\n%s\n%s\n%d", s.bucket, key, contentType, int64(expires.Seconds()))
	sig := hex.EncodeToString(mac.Sum(nil))

	q := url.Values{}
	q.Set("X-Amz-Expires", fmt.Sprintf("%d", int64(expires.Seconds())))
	q.Set("X-Amz-SignedHeaders", "content-type;host")
	q.Set("X-Amz-Signature", sig)

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s?%s", s.bucket, s.region, url.PathEscape(key), q.Encode()), nil
}

var _ CredentialSigner = (*MemorySigner)(nil)
