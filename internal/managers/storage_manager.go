package managers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	log "github.com/sirupsen/logrus"

	"red-social-api/internal/config"
)

// StorageMgr mirrors accepted avatar files to object storage. The local
// upload directory stays the source of truth; mirroring is best effort
// and only active when a bucket is configured.
type StorageMgr interface {
	Enabled() bool
	MirrorAvatar(ctx context.Context, path, key string) error
}

// StorageManager talks to an S3-compatible endpoint (AWS or MinIO).
type StorageManager struct {
	client *s3.Client
	bucket string
}

// NewStorageManager builds the S3 client from configuration. When no
// bucket is configured a disabled manager is returned.
func NewStorageManager(cfg *config.Config) (StorageMgr, error) {
	if !cfg.S3Enabled() {
		log.Info("Avatar mirroring disabled, no S3 bucket configured")
		return &StorageManager{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading object storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		}
		o.UsePathStyle = cfg.S3BaseEndpoint != ""
	})

	log.Info("Initialized storage manager for bucket ", cfg.S3Bucket)
	return &StorageManager{client: client, bucket: cfg.S3Bucket}, nil
}

// Enabled reports whether mirroring is configured.
func (sm *StorageManager) Enabled() bool {
	return sm.client != nil
}

// MirrorAvatar uploads the file at path under the given key.
func (sm *StorageManager) MirrorAvatar(ctx context.Context, path, key string) error {
	if !sm.Enabled() {
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	ctx, cancel := context.WithDeadline(ctx, time.Now().Add(10*time.Second))
	defer cancel()

	_, err = sm.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(sm.bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	return err
}

// AvatarKey builds the object key for an avatar file.
func AvatarKey(fileName string) string {
	d := time.Now()
	return fmt.Sprintf("avatars/%d/%02d/%s", d.Year(), d.Month(), fileName)
}
