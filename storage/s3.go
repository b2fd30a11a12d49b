package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"restaurant-api/models"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

// S3Store implements ObjectStore on top of an S3 bucket.
type S3Store struct {
	bucket   string
	uploader *s3manager.Uploader
	client   *s3.S3
}

func NewS3Store(bucket, region, keyID, secret string) (*S3Store, error) {
	cfg := aws.NewConfig().WithRegion(region)
	if keyID != "" {
		cfg = cfg.WithCredentials(credentials.NewStaticCredentials(keyID, secret, ""))
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return &S3Store{
		bucket:   bucket,
		uploader: s3manager.NewUploader(sess),
		client:   s3.New(sess),
	}, nil
}

// Upload pushes each file under a unique key and returns its descriptor.
// Fails on the first upload error; files already uploaded are not rolled back.
func (s *S3Store) Upload(ctx context.Context, files []File) ([]models.Image, error) {
	images := make([]models.Image, 0, len(files))
	for _, f := range files {
		key := objectKey(f.Name)
		out, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
			Body:   f.Body,
		})
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		images = append(images, models.Image{
			Key:    key,
			Bucket: s.bucket,
			URL:    out.Location,
			ETag:   aws.StringValue(out.ETag),
		})
	}
	return images, nil
}

// Delete removes the given objects in a single batch call.
func (s *S3Store) Delete(ctx context.Context, images []models.Image) error {
	if len(images) == 0 {
		return nil
	}
	objects := make([]*s3.ObjectIdentifier, 0, len(images))
	for _, img := range images {
		objects = append(objects, &s3.ObjectIdentifier{Key: aws.String(img.Key)})
	}
	_, err := s.client.DeleteObjectsWithContext(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &s3.Delete{Objects: objects},
	})
	if err != nil {
		return fmt.Errorf("delete objects: %w", err)
	}
	return nil
}

// objectKey builds a collision-free key from the original filename
func objectKey(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(filepath.Base(name), ext)
	return fmt.Sprintf("restaurants/%s_%s%s", base, uuid.NewString(), ext)
}
