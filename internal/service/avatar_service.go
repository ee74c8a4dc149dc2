package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"devconnect/internal/config"
	"devconnect/internal/models"
	"devconnect/internal/repository"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultAvatarUploadDir = "/tmp/devconnect/avatars"
	AvatarSize             = 400
	AvatarWebPQuality      = 80
	AvatarURLPrefix        = "/media/avatars/"

	// AvatarMaxPixels bounds the decoded size of an upload. A small file can
	// declare huge dimensions, so this is checked before decoding.
	AvatarMaxPixels = 8000 * 8000
)

type AvatarService struct {
	userRepo           repository.UserRepository
	uploadDir          string
	maxUploadSizeBytes int64
}

type UploadAvatarInput struct {
	UserID      uint
	Filename    string
	ContentType string
	Content     []byte
}

func NewAvatarService(userRepo repository.UserRepository, cfg *config.Config) *AvatarService {
	dir := DefaultAvatarUploadDir
	maxMB := 5
	if cfg != nil {
		if strings.TrimSpace(cfg.AvatarUploadDir) != "" {
			dir = cfg.AvatarUploadDir
		}
		if cfg.AvatarMaxUploadMB > 0 {
			maxMB = cfg.AvatarMaxUploadMB
		}
	}
	return &AvatarService{
		userRepo:           userRepo,
		uploadDir:          dir,
		maxUploadSizeBytes: int64(maxMB) * 1024 * 1024,
	}
}

// Dir is the directory avatars are written to and served from.
func (s *AvatarService) Dir() string {
	return s.uploadDir
}

// Upload center-crops the image to a square, scales it to AvatarSize, stores
// it as WebP and points the user's avatar at it.
func (s *AvatarService) Upload(ctx context.Context, in UploadAvatarInput) (*models.User, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		return nil, models.NewValidationError("Invalid image type")
	}
	if provided := normalizeContentType(in.ContentType); strings.HasPrefix(provided, "image/") && !isAllowedImageMIME(provided) {
		return nil, models.NewValidationError("Invalid image type")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > AvatarMaxPixels {
		return nil, models.NewValidationError("Image dimensions too large")
	}

	decoded, _, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	avatar := resizeSquare(cropSquare(decoded), AvatarSize)
	encoded, err := encodeWebP(avatar, AvatarWebPQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	name := avatarFilename(in.UserID, encoded)
	path := filepath.Join(s.uploadDir, name)
	if err := writeBytesToFile(path, encoded); err != nil {
		return nil, models.NewInternalError(err)
	}

	previous := user.Avatar
	user.Avatar = AvatarURLPrefix + name
	if err := s.userRepo.Update(ctx, user); err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	if old, ok := strings.CutPrefix(previous, AvatarURLPrefix); ok && old != name {
		_ = os.Remove(filepath.Join(s.uploadDir, filepath.Base(old)))
	}
	return user, nil
}

// cropSquare keeps the centered square of src.
func cropSquare(src image.Image) image.Image {
	b := src.Bounds()
	side := min(b.Dx(), b.Dy())
	if side <= 0 {
		return src
	}
	x := b.Min.X + (b.Dx()-side)/2
	y := b.Min.Y + (b.Dy()-side)/2
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(dst, dst.Bounds(), src, image.Point{X: x, Y: y}, draw.Src)
	return dst
}

func resizeSquare(src image.Image, size int) image.Image {
	bounds := src.Bounds()
	if bounds.Dx() == size && bounds.Dy() == size {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

// avatarFilename is stable for identical uploads by the same user.
func avatarFilename(userID uint, content []byte) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%d:", userID)
	h.Write(content)
	return fmt.Sprintf("%d-%s.webp", userID, hex.EncodeToString(h.Sum(nil))[:16])
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
