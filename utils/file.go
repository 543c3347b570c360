package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"organicroots/config"
	"organicroots/libs"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedVideoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mov":  true,
}

// UploadImage saves an uploaded image under UPLOAD_DIR/subDir and returns its
// public URL path. When Cloudinary is configured the file is mirrored there
// and the CDN URL is returned instead.
func UploadImage(c *gin.Context, fileHeader *multipart.FileHeader, subDir string) (string, error) {
	return upload(c, fileHeader, subDir, allowedImageExtensions, ".jpg")
}

// UploadVideo is UploadImage for video assets.
func UploadVideo(c *gin.Context, fileHeader *multipart.FileHeader, subDir string) (string, error) {
	return upload(c, fileHeader, subDir, allowedVideoExtensions, ".mp4")
}

func upload(c *gin.Context, fileHeader *multipart.FileHeader, subDir string, allowed map[string]bool, defaultExt string) (string, error) {
	if fileHeader.Size > config.AppConfig.MaxUploadSize {
		return "", errors.New("file size exceeds maximum allowed size")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == "" {
		ext = defaultExt
	}
	if !allowed[ext] {
		return "", errors.New("invalid file type")
	}

	uploadPath := filepath.Join(config.AppConfig.UploadDir, subDir)
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
	fullPath := filepath.Join(uploadPath, filename)

	if err := c.SaveUploadedFile(fileHeader, fullPath); err != nil {
		return "", err
	}

	if libs.CloudinaryEnabled() {
		if remoteURL, err := libs.UploadToCloudinary(fullPath, subDir); err == nil {
			return remoteURL, nil
		}
		// Fall back to the local copy if the mirror fails.
	}

	return "/upload/" + subDir + "/" + filename, nil
}

func DeleteUpload(urlPath string) error {
	// Cloudinary and other remote URLs are not local files.
	if !strings.HasPrefix(urlPath, "/upload/") {
		return nil
	}
	rel := strings.TrimPrefix(urlPath, "/upload/")
	fullPath := filepath.Join(config.AppConfig.UploadDir, rel)
	if _, err := os.Stat(fullPath); err == nil {
		return os.Remove(fullPath)
	}
	return nil
}
