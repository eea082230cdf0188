package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioAPI подмножество *minio.Client, нужное для снимков. Позволяет подменять клиента в тестах.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(
		ctx context.Context,
		bucketName, objectName string,
		reader io.Reader,
		objectSize int64,
		opts minio.PutObjectOptions,
	) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
}

type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName) //nolint:wrapcheck
}

func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts) //nolint:wrapcheck
}

func (w minioClientWrapper) PutObject(
	ctx context.Context,
	bucketName, objectName string,
	reader io.Reader,
	objectSize int64,
	opts minio.PutObjectOptions,
) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts) //nolint:wrapcheck
}

func (w minioClientWrapper) GetObject(
	ctx context.Context,
	bucketName, objectName string,
	opts minio.GetObjectOptions,
) (io.ReadCloser, error) {
	obj, err := w.c.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return obj, nil
}

// MinioConfig параметры подключения к MinIO.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Object    string
	UseSSL    bool
}

// MinioSink хранит снимок объектом в бакете MinIO.
type MinioSink struct {
	api    minioAPI
	bucket string
	object string
}

// NewMinioSink подключается к MinIO и создает бакет, если его нет.
func NewMinioSink(ctx context.Context, conf MinioConfig) (*MinioSink, error) {
	client, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKey, conf.SecretKey, ""),
		Secure: conf.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return newMinioSinkWithAPI(ctx, minioClientWrapper{c: client}, conf.Bucket, conf.Object)
}

func newMinioSinkWithAPI(ctx context.Context, api minioAPI, bucket, object string) (*MinioSink, error) {
	if object == "" {
		object = "snapshot.json"
	}
	s := &MinioSink{api: api, bucket: bucket, object: object}

	exists, err := api.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err = api.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	return s, nil
}

func (s *MinioSink) Write(ctx context.Context, data []byte) error {
	_, err := s.api.PutObject(ctx, s.bucket, s.object, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}
	return nil
}

func (s *MinioSink) Read(ctx context.Context) ([]byte, error) {
	obj, err := s.api.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		// minio отдает NoSuchKey лениво, при первом чтении объекта.
		if isNoSuchKey(err) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoSnapshot
	}
	return data, nil
}

func (s *MinioSink) String() string {
	return fmt.Sprintf("minio://%s/%s", s.bucket, s.object)
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
