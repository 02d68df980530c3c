package resolver

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used by the resolver.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Client returns the injected client or builds one from the default AWS
// configuration chain on first use.
func (d *Default) s3Client(ctx context.Context) (S3API, error) {
	d.s3Once.Do(func() {
		var loadOpts []func(*awsconfig.LoadOptions) error
		if d.cfg.S3Region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(d.cfg.S3Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			d.s3Err = fmt.Errorf("%w: loading AWS config: %v", ErrNetwork, err)
			return
		}
		d.s3 = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if d.cfg.S3Endpoint != "" {
				o.BaseEndpoint = aws.String(d.cfg.S3Endpoint)
			}
			o.UsePathStyle = d.cfg.S3UsePathStyle
		})
	})
	return d.s3, d.s3Err
}

// fetchS3 downloads s3://bucket/key.
func (d *Default) fetchS3(ctx context.Context, u *url.URL, dst string) error {
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return fmt.Errorf("%w: s3 url needs bucket and key: %s", ErrInvalidArgument, u)
	}

	client, err := d.s3Client(ctx)
	if err != nil {
		return err
	}
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%w: getting %s: %v", ErrNetwork, u, err)
	}
	defer func() { _ = out.Body.Close() }()

	body := &readTracker{r: out.Body}
	if err := writeAtomic(dst, body); err != nil {
		if body.err != nil {
			return fmt.Errorf("%w: reading %s: %v", ErrNetwork, u, body.err)
		}
		return err
	}
	return nil
}
