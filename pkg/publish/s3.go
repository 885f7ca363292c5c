package publish

import (
	"bytes"
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vnest-dev/vnest/internal/errors"
)

// PutObjectAPI is the part of *s3.Client used by S3Target.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Target stores objects in an S3 bucket.
type S3Target struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// NewS3Target creates a target writing to bucket, with every key prefixed
// by prefix (e.g. "site/").
func NewS3Target(client PutObjectAPI, bucket, prefix string) *S3Target {
	return &S3Target{client: client, bucket: bucket, prefix: prefix}
}

// Put uploads body.
func (t *S3Target) Put(ctx context.Context, key, contentType string, body []byte) error {
	if t.bucket == "" {
		return errors.New("E402")
	}
	_, err := t.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(t.bucket),
		Key:         aws.String(t.prefix + key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"publish-time": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return errors.New("E401").WithDetail("s3://" + t.bucket + "/" + t.prefix + key).Wrap(err)
	}
	return nil
}

// NewS3Client builds an S3 client for region. A non-empty endpoint points
// the client at an S3-compatible service using path-style addressing.
func NewS3Client(region, endpoint string, creds aws.CredentialsProvider) *s3.Client {
	cfg := aws.Config{
		Region:      region,
		Credentials: creds,
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
}
