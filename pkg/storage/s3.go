package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/shashiranjanraj/bistro/config"
)

// s3Disk stores objects in an S3-compatible bucket. A custom endpoint with
// path-style addressing covers MinIO, Spaces, and R2 alongside AWS itself.
type s3Disk struct {
	api    *s3.Client
	bucket *string
	public string
}

func newS3Disk() (*s3Disk, error) {
	bucket := config.StorageS3Bucket()
	if bucket == "" {
		return nil, fmt.Errorf("storage/s3: S3_BUCKET is not configured")
	}
	region := config.StorageS3Region()

	loadOpts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(region)}
	if key, secret := config.StorageS3Key(), config.StorageS3Secret(); key != "" && secret != "" {
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, "")))
	}

	cfg, err := awscfg.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage/s3: load config: %w", err)
	}

	api := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := config.StorageS3Endpoint(); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true // MinIO and friends require path-style keys
		}
	})

	public := strings.TrimRight(config.StorageS3URL(), "/")
	if public == "" {
		public = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return &s3Disk{api: api, bucket: aws.String(bucket), public: public}, nil
}

func (d *s3Disk) Put(path string, content []byte) error {
	_, err := d.api.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: d.bucket,
		Key:    aws.String(path),
		Body:   bytes.NewReader(content),
	})
	if err != nil {
		return fmt.Errorf("storage/s3: put %s: %w", path, err)
	}
	return nil
}

func (d *s3Disk) PutStream(path string, r io.Reader) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("storage/s3: read stream: %w", err)
	}
	return d.Put(path, content)
}

func (d *s3Disk) Get(path string) ([]byte, error) {
	out, err := d.api.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: d.bucket,
		Key:    aws.String(path),
	})
	if err != nil {
		return nil, fmt.Errorf("storage/s3: get %s: %w", path, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (d *s3Disk) Exists(path string) bool {
	_, err := d.api.HeadObject(context.Background(), &s3.HeadObjectInput{
		Bucket: d.bucket,
		Key:    aws.String(path),
	})
	return err == nil
}

func (d *s3Disk) Delete(path string) error {
	_, err := d.api.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: d.bucket,
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("storage/s3: delete %s: %w", path, err)
	}
	return nil
}

func (d *s3Disk) URL(path string) string {
	return d.public + "/" + strings.TrimLeft(path, "/")
}
