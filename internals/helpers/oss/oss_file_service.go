package helper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/*
BlobService adalah facade upload/hapus yang seragam untuk controller.

- UploadImage: gambar (avatar anak, gambar umum) ke "images/<slot>/<owner>".
- UploadRawToDir: file apa adanya (gambar/audio emosi) ke subdir bebas.
- DeleteByPublicURL: hapus berdasarkan URL publik hasil upload.
*/
type BlobService interface {
	UploadImage(ctx context.Context, ownerID uuid.UUID, slot string, fh *multipart.FileHeader) (publicURL string, err error)
	UploadRawToDir(ctx context.Context, dir string, fh *multipart.FileHeader) (publicURL, contentType string, err error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

// NewBlobServiceFromEnv: OSS kalau ENV lengkap, selain itu simpan di disk lokal.
func NewBlobServiceFromEnv(prefix, localDir string) BlobService {
	if OSSConfigured() {
		svc, err := NewOSSBlobServiceFromEnv(prefix)
		if err == nil {
			log.Println("[INFO] Blob storage: Aliyun OSS")
			return svc
		}
		log.Printf("[WARN] OSS init failed, falling back to local storage: %v", err)
	}
	log.Printf("[INFO] Blob storage: local dir %s", localDir)
	return NewLocalBlobService(localDir, "/uploads")
}

func imageDir(ownerID uuid.UUID, slot string) string {
	slot = strings.Trim(strings.ToLower(strings.TrimSpace(slot)), "/")
	if slot == "" {
		slot = "default"
	}
	return fmt.Sprintf("images/%s/%s", slot, ownerID.String())
}

// --------------------------------------------------
// Implementasi berbasis Aliyun OSS
// --------------------------------------------------

type OSSBlobService struct {
	svc *OSSService
}

func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: s}, nil
}

func (b *OSSBlobService) UploadImage(ctx context.Context, ownerID uuid.UUID, slot string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File not found")
	}
	if ownerID == uuid.Nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid owner id")
	}
	url, err := b.svc.UploadAsWebP(ctx, fh, imageDir(ownerID, slot))
	if err != nil {
		var fe *fiber.Error
		switch {
		case errors.As(err, &fe):
			return "", fe
		case errors.Is(err, errUnsupportedFormat):
			return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Unsupported image format (use jpg/png/webp)")
		}
		log.Printf("[ERROR] OSS upload: %v", err)
		return "", fiber.NewError(fiber.StatusBadGateway, "Failed to upload to OSS")
	}
	return url, nil
}

func (b *OSSBlobService) UploadRawToDir(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
	if fh == nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "File not found")
	}
	key, ct, err := b.svc.UploadFromFormFileToDir(ctx, dir, fh)
	if err != nil {
		log.Printf("[ERROR] OSS upload: %v", err)
		return "", "", fiber.NewError(fiber.StatusBadGateway, "Failed to upload to OSS")
	}
	return b.svc.PublicURL(key), ct, nil
}

func (b *OSSBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if strings.TrimSpace(publicURL) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Empty URL")
	}
	if err := b.svc.DeleteByPublicURL(ctx, publicURL); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("Failed to delete object: %v", err))
	}
	return nil
}

// --------------------------------------------------
// Implementasi disk lokal (UPLOAD_DIR, diserve di /uploads)
// --------------------------------------------------

type LocalBlobService struct {
	Dir       string
	URLPrefix string
}

func NewLocalBlobService(dir, urlPrefix string) *LocalBlobService {
	return &LocalBlobService{
		Dir:       filepath.Clean(dir),
		URLPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}
}

// IsLocalURL: true kalau URL menunjuk file hasil upload lokal.
func (l *LocalBlobService) IsLocalURL(publicURL string) bool {
	return strings.HasPrefix(strings.TrimSpace(publicURL), l.URLPrefix+"/")
}

func (l *LocalBlobService) UploadImage(ctx context.Context, ownerID uuid.UUID, slot string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File not found")
	}
	if ownerID == uuid.Nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid owner id")
	}
	if fh.Size > maxUploadSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "Image must be at most 5MB")
	}
	url, ct, err := l.UploadRawToDir(ctx, imageDir(ownerID, slot), fh)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(ct, "image/") {
		_ = l.DeleteByPublicURL(ctx, url)
		return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Unsupported image format (use jpg/png/webp)")
	}
	return url, nil
}

func (l *LocalBlobService) UploadRawToDir(_ context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
	if fh == nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "File not found")
	}
	rel := path.Join(path.Clean("/"+strings.Trim(dir, "/")), objectName(fh.Filename))
	dst := filepath.Join(l.Dir, filepath.FromSlash(rel))

	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	ct, reader, err := detectContentType(src, fh.Filename)
	if err != nil {
		return "", "", err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", "", fmt.Errorf("mkdir: %w", err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return "", "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, reader); err != nil {
		return "", "", fmt.Errorf("write file: %w", err)
	}
	return l.URLPrefix + rel, ct, nil
}

// DeleteByPublicURL: URL non-lokal dilewati (tidak error).
func (l *LocalBlobService) DeleteByPublicURL(_ context.Context, publicURL string) error {
	if !l.IsLocalURL(publicURL) {
		return nil
	}
	rel := path.Clean("/" + strings.TrimPrefix(strings.TrimSpace(publicURL), l.URLPrefix))
	p := filepath.Join(l.Dir, filepath.FromSlash(rel))
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// --------------------------------------------------
// Helper kecil untuk controller
// --------------------------------------------------

// IsMultipart menilai request multipart/form-data
func IsMultipart(c *fiber.Ctx) bool {
	ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	return strings.HasPrefix(ct, "multipart/form-data")
}

var defaultImageFields = []string{"image", "file", "photo", "avatar"}

// GetImageFile mencari file dari beberapa kemungkinan field form.
// Jika tidak ada file, kembalikan (nil, nil) supaya controller bisa fallback.
func GetImageFile(c *fiber.Ctx, fieldNames ...string) (*multipart.FileHeader, error) {
	if !IsMultipart(c) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Use multipart/form-data")
	}
	names := fieldNames
	if len(names) == 0 {
		names = defaultImageFields
	}
	for _, fn := range names {
		if fh, err := c.FormFile(fn); err == nil && fh != nil {
			return fh, nil
		}
	}
	return nil, nil
}

// --------------------------------------------------
// Mock untuk unit test
// --------------------------------------------------

type MockBlobService struct {
	UploadImageFn       func(ctx context.Context, ownerID uuid.UUID, slot string, fh *multipart.FileHeader) (string, error)
	UploadRawToDirFn    func(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error)
	DeleteByPublicURLFn func(ctx context.Context, publicURL string) error
}

func (m *MockBlobService) UploadImage(ctx context.Context, ownerID uuid.UUID, slot string, fh *multipart.FileHeader) (string, error) {
	if m.UploadImageFn == nil {
		return "", errors.New("not implemented")
	}
	return m.UploadImageFn(ctx, ownerID, slot, fh)
}

func (m *MockBlobService) UploadRawToDir(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
	if m.UploadRawToDirFn == nil {
		return "", "", errors.New("not implemented")
	}
	return m.UploadRawToDirFn(ctx, dir, fh)
}

func (m *MockBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if m.DeleteByPublicURLFn == nil {
		return errors.New("not implemented")
	}
	return m.DeleteByPublicURLFn(ctx, publicURL)
}
