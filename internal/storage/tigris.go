package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/sandwatch/sandwatch/pkg/types"
)

// Config holds the configuration for the Tigris bucket probe.
type Config struct {
	Endpoint        string
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	ForcePathStyle  bool
}

// BucketProbe checks, from the control-plane side, that the bucket backing
// the sandbox's FUSE mount is reachable with the configured credentials.
// It complements the in-sandbox mount check: the mount can be up while the
// credentials have expired, and vice versa.
type BucketProbe struct {
	client *s3.Client
	bucket string
}

// NewBucketProbe creates a probe for the given bucket.
func NewBucketProbe(cfg Config) *BucketProbe {
	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID, cfg.SecretAccessKey, "",
			)
			if cfg.ForcePathStyle {
				o.UsePathStyle = true
			}
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
		},
	}

	return &BucketProbe{
		client: s3.New(s3.Options{}, opts...),
		bucket: cfg.Bucket,
	}
}

// Check issues a HeadBucket call and reports reachability. Failures are
// data, not errors: the caller always gets a structured status.
func (p *BucketProbe) Check(ctx context.Context) types.BucketStatus {
	_, err := p.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(p.bucket),
	})
	if err != nil {
		return types.BucketStatus{Reachable: false, Bucket: p.bucket, Detail: err.Error()}
	}
	return types.BucketStatus{Reachable: true, Bucket: p.bucket}
}
