// file: internal/storage/cloudinary.go
package storage

import (
	"academichub/internal/config"
	"academichub/internal/models"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Store abstracts the external file store. The repository keeps metadata
// only; bytes live behind this interface.
type Store interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
	Validate(file *multipart.FileHeader) error
}

// UploadResult contains the outcome of a successful upload
type UploadResult struct {
	URL      string
	PublicID string
	Format   string
	Size     int
}

var (
	ErrFileTooLarge       = fmt.Errorf("file size exceeds limit")
	ErrInvalidExtension   = fmt.Errorf("invalid file extension")
	ErrMissingCredentials = fmt.Errorf("cloudinary credentials are missing")
	ErrUploadFailed       = fmt.Errorf("failed to upload file")
	ErrDeleteFailed       = fmt.Errorf("failed to delete file")
)

// allowedExtensions is derived from the supported file formats
var allowedExtensions = buildAllowedExtensions()

func buildAllowedExtensions() []string {
	exts := make([]string, 0, len(models.AllFileTypes))
	for _, ft := range models.AllFileTypes {
		exts = append(exts, "."+strings.ToLower(string(ft)))
	}
	return exts
}

// CloudinaryStore implements Store on top of the Cloudinary API
type CloudinaryStore struct {
	client        *cloudinary.Cloudinary
	logger        *zap.Logger
	maxFileSize   int64
	uploadTimeout time.Duration
	maxRetries    int
}

// NewCloudinaryStore creates a Cloudinary-backed store
func NewCloudinaryStore(cfg *config.StorageConfig, logger *zap.Logger) (*CloudinaryStore, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, ErrMissingCredentials
	}

	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Info("Cloudinary store initialized", zap.String("cloud_name", cfg.CloudName))

	return &CloudinaryStore{
		client:        client,
		logger:        logger,
		maxFileSize:   cfg.MaxFileSize,
		uploadTimeout: 30 * time.Second,
		maxRetries:    3,
	}, nil
}

// Validate checks size and extension before any bytes leave the process
func (s *CloudinaryStore) Validate(file *multipart.FileHeader) error {
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, file.Size, s.maxFileSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !slices.Contains(allowedExtensions, ext) {
		return fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}
	return nil
}

// Upload sends the file to Cloudinary, retrying transient failures
func (s *CloudinaryStore) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (*UploadResult, error) {
	if err := s.Validate(file); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open file: %w", err)
	}
	defer src.Close()

	params := uploader.UploadParams{
		Folder:         folder,
		UseFilename:    ptrBool(true),
		UniqueFilename: ptrBool(true),
		ResourceType:   "auto",
	}

	var result *uploader.UploadResult
	operation := func() error {
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return backoff.Permanent(err)
		}
		var opErr error
		result, opErr = s.client.Upload.Upload(ctx, src, params)
		return opErr
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = s.uploadTimeout / 2

	err = backoff.RetryNotify(
		operation,
		backoff.WithMaxRetries(policy, uint64(s.maxRetries)),
		func(err error, d time.Duration) {
			s.logger.Warn("Upload attempt failed",
				zap.String("filename", file.Filename),
				zap.Error(err),
				zap.Duration("backoff", d))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w after %d attempts: %v", ErrUploadFailed, s.maxRetries, err)
	}

	s.logger.Info("File uploaded",
		zap.String("filename", file.Filename),
		zap.Int64("size", file.Size),
		zap.String("public_id", result.PublicID),
	)

	return &UploadResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Format:   result.Format,
		Size:     result.Bytes,
	}, nil
}

// Delete removes a previously uploaded file
func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("%w: %s", ErrDeleteFailed, resp.Result)
	}

	s.logger.Info("File deleted from store", zap.String("public_id", publicID))
	return nil
}

func ptrBool(b bool) *bool { return &b }
