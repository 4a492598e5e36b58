package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSBucket stores webinar recordings. Objects stay private; readers get
// short-lived signed URLs instead of public ACLs.
type GCSBucket struct {
	client *gcs.Client
	bucket string
}

func NewGCSBucket(ctx context.Context, bucket string) (*GCSBucket, error) {
	var opts []option.ClientOption
	if creds := os.Getenv("GCP_CREDENTIALS_JSON"); creds != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	}

	c, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GCSBucket{client: c, bucket: bucket}, nil
}

func (u *GCSBucket) Close() error { return u.client.Close() }

func (u *GCSBucket) Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (string, error) {
	obj := u.client.Bucket(u.bucket).Object(objectName)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return fmt.Sprintf("gs://%s/%s", u.bucket, objectName), nil
}

// SignedGetURL returns a V4 signed URL the transcription vendor can fetch the
// recording from without bucket credentials.
func (u *GCSBucket) SignedGetURL(ctx context.Context, objectName string, ttl time.Duration) (string, error) {
	return u.client.Bucket(u.bucket).SignedURL(objectName, &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(ttl),
	})
}
