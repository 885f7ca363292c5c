package main

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/cobra"

	"github.com/vnest-dev/vnest/internal/errors"
	"github.com/vnest-dev/vnest/pkg/publish"
)

func publishCmd() *cobra.Command {
	var (
		bucket   string
		key      string
		region   string
		endpoint string
		prefix   string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the demo page snapshot to S3",
		Long: `Render the demo page and upload the snapshot to an S3 bucket.

Credentials are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
AWS_SESSION_TOKEN.

Examples:
  vnest publish --bucket=my-site
  vnest publish --bucket=my-site --key=demo/index.html --region=eu-west-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if bucket == "" {
				bucket = cfg.Publish.Bucket
			}
			if key == "" {
				key = cfg.Publish.Key
			}
			if region == "" {
				region = cfg.Publish.Region
			}
			if endpoint == "" {
				endpoint = cfg.Publish.Endpoint
			}
			if bucket == "" {
				return errors.New("E402").WithSuggestion("Pass --bucket or set publish.bucket in vnest.json")
			}

			doc, err := buildDemo(cfg)
			if err != nil {
				return err
			}

			client := publish.NewS3Client(region, endpoint, envCredentials())
			p := publish.New(publish.NewS3Target(client, bucket, prefix))
			if err := p.Publish(cmd.Context(), doc, key); err != nil {
				return err
			}
			success("Published s3://%s/%s%s", bucket, prefix, key)
			return nil
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Bucket name (default from config)")
	cmd.Flags().StringVarP(&key, "key", "k", "", "Object key (default from config)")
	cmd.Flags().StringVarP(&region, "region", "r", "", "Bucket region (default from config)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "S3-compatible endpoint URL")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix")

	return cmd
}

// envCredentials reads static credentials from the standard AWS variables.
func envCredentials() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		creds := aws.Credentials{
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "Environment",
		}
		if !creds.HasKeys() {
			return aws.Credentials{}, errors.New("E401").
				WithDetail("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are not set")
		}
		return creds, nil
	})
}
