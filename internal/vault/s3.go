package vault

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"tcm-go/internal/config"
	"tcm-go/internal/tcm"
)

// S3Vault stores snapshots in an S3 bucket under an optional key prefix:
//
//	<prefix>/snapshots/<name>.snap
//	<prefix>/snapshots/<name>.version
//
// Credentials come from the standard AWS chain unless static credentials
// are configured.
type S3Vault struct {
	name     string
	bucket   string
	prefix   string
	client   *s3.Client
	uploader *manager.Uploader
}

// NewS3Vault creates an S3 vault from configuration.
func NewS3Vault(cfg config.VaultConfig) (*S3Vault, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3 vault requires s3_bucket to be set")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Vault{
		name:     cfg.Name,
		bucket:   cfg.S3Bucket,
		prefix:   strings.TrimSuffix(cfg.S3Prefix, "/"),
		client:   client,
		uploader: manager.NewUploader(client),
	}, nil
}

func (v *S3Vault) key(parts ...string) string {
	key := strings.Join(parts, "/")
	if v.prefix != "" {
		return v.prefix + "/" + key
	}
	return key
}

// PutSnapshot stores a snapshot under the given name and version.
func (v *S3Vault) PutSnapshot(name string, r io.Reader, size int64, version int64) error {
	current, err := v.GetSnapshotVersion(name)
	if err != nil {
		return err
	}
	if version <= current {
		return fmt.Errorf("stale snapshot version %d (vault has %d)", version, current)
	}

	ctx := context.Background()
	_, err = v.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(v.bucket),
		Key:    aws.String(v.key("snapshots", name+".snap")),
		Body:   r,
	})
	if err != nil {
		return fmt.Errorf("uploading snapshot: %w", err)
	}

	versionData := strconv.FormatInt(version, 10)
	_, err = v.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(v.bucket),
		Key:    aws.String(v.key("snapshots", name+".version")),
		Body:   bytes.NewReader([]byte(versionData)),
	})
	if err != nil {
		return fmt.Errorf("writing version marker: %w", err)
	}
	return nil
}

// GetSnapshot retrieves the stored snapshot and writes it to w.
func (v *S3Vault) GetSnapshot(name string, w io.Writer) error {
	out, err := v.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(v.bucket),
		Key:    aws.String(v.key("snapshots", name+".snap")),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return fmt.Errorf("snapshot not found: %s", name)
		}
		return fmt.Errorf("downloading snapshot: %w", err)
	}
	defer out.Body.Close()

	if _, err := io.Copy(w, out.Body); err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	return nil
}

// GetSnapshotVersion returns the stored snapshot's version.
// Returns 0 if no version marker exists.
func (v *S3Vault) GetSnapshotVersion(name string) (int64, error) {
	out, err := v.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(v.bucket),
		Key:    aws.String(v.key("snapshots", name+".version")),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading version marker: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return 0, fmt.Errorf("reading version marker: %w", err)
	}

	version, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing version: %w", err)
	}
	return version, nil
}

// ValidateSetup verifies that the bucket is accessible.
func (v *S3Vault) ValidateSetup() error {
	_, err := v.client.HeadBucket(context.Background(), &s3.HeadBucketInput{
		Bucket: aws.String(v.bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket not accessible: %w", err)
	}
	return nil
}

// Compile-time check that S3Vault implements tcm.Vault interface
var _ tcm.Vault = (*S3Vault)(nil)
