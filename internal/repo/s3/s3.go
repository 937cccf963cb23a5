package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/vidora/backend/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

type UploadFileRequest struct {
	Name        string
	ContentType string
	File        []byte
}

// UploadedFile references a stored object: URL for serving, ObjectID for a
// later delete.
type UploadedFile struct {
	URL      string `json:"url"`
	ObjectID string `json:"objectId"`
}

type Storage struct {
	cli     *minio.Client
	bucket  string
	baseURL string
}

func New(conf config.MinioConfig) *Storage {
	cli, err := minio.New(
		conf.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(conf.AccessKey, conf.SecretKey, ""),
			Secure: conf.UseSSL,
		},
	)
	if err != nil {
		zap.L().Fatal("failed to create media storage client", zap.Error(err))
	}

	ctx := context.Background()
	exists, err := cli.BucketExists(ctx, conf.Bucket)
	if err != nil {
		zap.L().Fatal("failed to check media bucket", zap.Error(err))
	}

	if !exists {
		if err = cli.MakeBucket(ctx, conf.Bucket, minio.MakeBucketOptions{}); err != nil {
			zap.L().Fatal("failed to create media bucket", zap.Error(err))
		}
	}

	return &Storage{
		cli:     cli,
		bucket:  conf.Bucket,
		baseURL: conf.PublicBaseURL,
	}
}

func (s *Storage) UploadFile(ctx context.Context, req *UploadFileRequest) (UploadedFile, error) {
	const op = "media.UploadFile.s3"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	objectID := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(req.Name))
	_, err := s.cli.PutObject(
		ctx,
		s.bucket,
		objectID,
		bytes.NewReader(req.File),
		int64(len(req.File)),
		minio.PutObjectOptions{ContentType: req.ContentType},
	)
	if err != nil {
		zap.L().Error(
			"failed to upload file",
			zap.String("op", op),
			zap.String("object", objectID),
			zap.Error(err),
		)

		return UploadedFile{}, err
	}

	return UploadedFile{
		URL:      fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, objectID),
		ObjectID: objectID,
	}, nil
}

func (s *Storage) Delete(ctx context.Context, objectID string) error {
	const op = "media.Delete.s3"
	span, ctx := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	err := s.cli.RemoveObject(ctx, s.bucket, objectID, minio.RemoveObjectOptions{})
	if err != nil {
		zap.L().Error(
			"failed to delete file",
			zap.String("op", op),
			zap.String("object", objectID),
			zap.Error(err),
		)

		return err
	}

	return nil
}
