// Package publish writes rendered page snapshots to a Target: a local
// directory or an S3 bucket.
//
// Example:
//
//	cfg, _ := awsconfig.LoadDefaultConfig(ctx)
//	target := publish.NewS3Target(s3.NewFromConfig(cfg), "my-site", "pages/")
//	p := publish.New(target)
//	err := p.Publish(ctx, doc, "index.html")
package publish
