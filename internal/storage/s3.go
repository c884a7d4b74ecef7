// Package storage stores uploaded images in S3.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"project_showcase/internal/apperr"
	"project_showcase/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Upload folders
const (
	ProjectFolder = "projects"
	AvatarFolder  = "users"
)

// ObjectPutter is the part of the S3 client the uploader needs
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Object describes a stored upload
type Object struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}

// UploadOptions controls where an upload goes and what it may contain
type UploadOptions struct {
	Folder     string // Key prefix
	Name       string // Original filename, only its extension is kept
	ImagesOnly bool   // Reject anything not sniffed as image/*
}

// S3Uploader puts files into a bucket and returns their public URL
type S3Uploader struct {
	client    ObjectPutter
	bucket    string
	publicURL string
	maxBytes  int64
}

// NewS3Uploader builds an uploader from the default AWS credential chain
func NewS3Uploader(ctx context.Context, cfg *config.Config) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}
	return NewUploader(s3.NewFromConfig(awsCfg), cfg.S3Bucket, publicURL, cfg.UploadMaxBytes), nil
}

// NewUploader wraps an existing client
func NewUploader(client ObjectPutter, bucket, publicURL string, maxBytes int64) *S3Uploader {
	return &S3Uploader{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		maxBytes:  maxBytes,
	}
}

// MaxBytes is the largest upload accepted
func (u *S3Uploader) MaxBytes() int64 {
	return u.maxBytes
}

// Upload validates r and stores it under a fresh key
func (u *S3Uploader) Upload(ctx context.Context, r io.Reader, opts UploadOptions) (*Object, error) {
	data, err := io.ReadAll(io.LimitReader(r, u.maxBytes+1))
	if err != nil {
		return nil, apperr.NewValidation("file", "could not read upload")
	}
	if len(data) == 0 {
		return nil, apperr.NewValidation("file", "file is empty")
	}
	if int64(len(data)) > u.maxBytes {
		return nil, apperr.NewValidation("file", fmt.Sprintf("file is larger than %d bytes", u.maxBytes))
	}

	mtype := mimetype.Detect(data)
	if opts.ImagesOnly && !strings.HasPrefix(mtype.String(), "image/") {
		return nil, apperr.NewValidation("file", "file must be an image")
	}

	ext := mtype.Extension()
	if ext == "" {
		ext = path.Ext(opts.Name)
	}
	key := path.Join(opts.Folder, uuid.NewString()+ext)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(mtype.String()),
	})
	if err != nil {
		return nil, apperr.NewInternal("failed to store upload", err)
	}

	logrus.WithFields(logrus.Fields{
		"key":          key,
		"content_type": mtype.String(),
		"size":         len(data),
	}).Info("Upload stored")
	return &Object{
		Key:         key,
		URL:         u.publicURL + "/" + key,
		ContentType: mtype.String(),
		Size:        len(data),
	}, nil
}
