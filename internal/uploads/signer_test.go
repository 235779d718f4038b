package uploads

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func newTestS3Signer(t *testing.T) *S3Signer {
	t.Helper()
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider("AKID", "SECRET", "")),
	}
	client := s3.NewFromConfig(cfg)
	return NewS3Signer(s3.NewPresignClient(client), "demo-bucket-bacash")
}

func TestS3SignerSignPut(t *testing.T) {
	signer := newTestS3Signer(t)

	signed, err := signer.SignPut(context.Background(), "receipt-1700000000000-abcdef012345.jpg", "image/jpeg", 300*time.Second)
	if err != nil {
		t.Fatalf("sign put: %v", err)
	}

	parsed, err := url.Parse(signed)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}

	if !strings.Contains(parsed.Path, "receipt-1700000000000-abcdef012345.jpg") {
		t.Fatalf("url path %q missing object key", parsed.Path)
	}
	if got := parsed.Query().Get("X-Amz-Expires"); got != "300" {
		t.Fatalf("expected X-Amz-Expires=300, got %q", got)
	}

	headers := parsed.Query().Get("X-Amz-SignedHeaders")
	if !strings.Contains(headers, "host") {
		t.Fatalf("expected host in signed headers: %s", headers)
	}
	if !strings.Contains(headers, "content-type") {
		t.Fatalf("expected content-type in signed headers: %s", headers)
	}
	if parsed.Query().Get("X-Amz-Signature") == "" {
		t.Fatalf("expected a signature in presigned url")
	}
}

func TestMemorySignerDeterministicPerIntent(t *testing.T) {
	signer := NewMemorySigner("demo-bucket-bacash", "us-east-1")

	first, err := signer.SignPut(context.Background(), "receipt-1-aaaaaaaaaaaa.jpg", "image/jpeg", 300*time.Second)
	if err != nil {
		t.Fatalf("sign put: %v", err)
	}
	second, err := signer.SignPut(context.Background(), "receipt-1-aaaaaaaaaaaa.jpg", "image/jpeg", 300*time.Second)
	if err != nil {
		t.Fatalf("sign put: %v", err)
	}
	if first != second {
		t.Fatalf("same intent signed differently:\n%s\n%s", first, second)
	}

	other, err := signer.SignPut(context.Background(), "receipt-2-bbbbbbbbbbbb.jpg", "image/jpeg", 300*time.Second)
	if err != nil {
		t.Fatalf("sign put: %v", err)
	}
	if first == other {
		t.Fatalf("different keys produced the same credential")
	}
}
