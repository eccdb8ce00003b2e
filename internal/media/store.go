// Package media owns the two on-disk buckets: customer uploads and
// operator delivery artifacts. Files are referenced by name from order
// records and served statically.
package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	MaxUploadSize   = 20 * 1024 * 1024 // customer-side, per image
	MaxDeliverySize = 50 * 1024 * 1024 // operator-side, per image
)

var (
	ErrEmptyFile         = errors.New("file is empty")
	ErrFileTooLarge      = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedFormat = errors.New("only JPG/PNG/WEBP/BMP/TIFF images are supported")
)

// imageExtensions is the allow-list shared by upload validation and the
// retention sweeper.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".bmp":  true,
	".tiff": true,
}

// IsImage reports whether the filename carries a recognized image extension.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

type Store struct {
	UploadsDir    string
	DeliveriesDir string
}

// NewStore creates both buckets under dataDir if they do not exist yet.
func NewStore(dataDir string) (*Store, error) {
	s := &Store{
		UploadsDir:    filepath.Join(dataDir, "uploads"),
		DeliveriesDir: filepath.Join(dataDir, "deliveries"),
	}
	for _, dir := range []string{s.UploadsDir, s.DeliveriesDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create media directory: %w", err)
		}
	}
	return s, nil
}

// SaveUpload stores a customer source image tagged artwork or space.
// The stored name is <tag>_<uuid><ext> so the operator can tell the
// inputs apart at a glance.
func (s *Store) SaveUpload(fh *multipart.FileHeader, tag string) (string, error) {
	if err := checkFile(fh, MaxUploadSize); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s%s", tag, uuid.New().String(), strings.ToLower(filepath.Ext(fh.Filename)))
	if err := writeFile(fh, filepath.Join(s.UploadsDir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// SaveDelivery stores an operator result image as delivery_<uuid><ext>.
func (s *Store) SaveDelivery(fh *multipart.FileHeader) (string, error) {
	if err := checkFile(fh, MaxDeliverySize); err != nil {
		return "", err
	}
	name := fmt.Sprintf("delivery_%s%s", uuid.New().String(), strings.ToLower(filepath.Ext(fh.Filename)))
	if err := writeFile(fh, filepath.Join(s.DeliveriesDir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// DeliveryPath returns the absolute path for a delivery artifact name.
func (s *Store) DeliveryPath(name string) string {
	return filepath.Join(s.DeliveriesDir, filepath.Base(name))
}

// RemoveUpload deletes a customer source image. Missing files are not
// an error: the sweeper may have raced us.
func (s *Store) RemoveUpload(name string) {
	_ = os.Remove(filepath.Join(s.UploadsDir, filepath.Base(name)))
}

// RemoveDelivery deletes a delivery artifact, tolerating missing files.
func (s *Store) RemoveDelivery(name string) {
	_ = os.Remove(filepath.Join(s.DeliveriesDir, filepath.Base(name)))
}

func checkFile(fh *multipart.FileHeader, maxSize int64) error {
	if fh.Size == 0 {
		return ErrEmptyFile
	}
	if fh.Size > maxSize {
		return ErrFileTooLarge
	}
	if !IsImage(fh.Filename) {
		return ErrUnsupportedFormat
	}
	return nil
}

func writeFile(fh *multipart.FileHeader, absPath string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(absPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(absPath)
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
