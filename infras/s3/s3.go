package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"aula/config"
	"aula/infras/otel"
	"aula/shared/constant"
)

const (
	otelAttrObjectName = "object_name"
	otelAttrBucket     = "bucket"
)

// S3 archives raw uploaded timetable documents so a batch sync can always be
// traced back to the document it came from.
type S3 interface {
	UploadBytes(ctx context.Context, directory, objectName, contentType string, data []byte) (url string, err error)
	Delete(ctx context.Context, directory, objectName string) error
}

type s3Impl struct {
	client *s3.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) S3 {
	ctx := context.Background()

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx,
		awsConfig.WithRegion(cfg.External.S3.Region),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.External.S3.AccessKey, cfg.External.S3.SecretKey, ""),
		),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load S3 configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.External.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.External.S3.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Impl{
		client: client,
		cfg:    cfg,
		otel:   ot,
	}
}

func (svc *s3Impl) UploadBytes(ctx context.Context, directory, objectName, contentType string, data []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadBytes")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucket := svc.cfg.External.S3.BucketName
	objectKey := path.Join(directory, objectName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectName: objectKey,
		otelAttrBucket:     bucket,
	})

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload object %s: %w", objectKey, err)
	}

	return fmt.Sprintf("s3://%s/%s", bucket, objectKey), nil
}

func (svc *s3Impl) Delete(ctx context.Context, directory, objectName string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucket := svc.cfg.External.S3.BucketName
	objectKey := path.Join(directory, objectName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectName: objectKey,
		otelAttrBucket:     bucket,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", objectKey, err)
	}

	return nil
}
