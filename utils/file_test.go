package utils

import (
	"os"
	"path/filepath"
	"testing"

	"organicroots/config"
)

func TestDeleteUpload(t *testing.T) {
	dir := t.TempDir()
	config.AppConfig.UploadDir = dir
	defer func() { config.AppConfig.UploadDir = "" }()

	t.Run("removes replaced local file", func(t *testing.T) {
		subDir := filepath.Join(dir, "products")
		if err := os.MkdirAll(subDir, os.ModePerm); err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(subDir, "old.jpg")
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := DeleteUpload("/upload/products/old.jpg"); err != nil {
			t.Fatalf("DeleteUpload: %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatal("file still exists")
		}
	})

	t.Run("remote URLs are left alone", func(t *testing.T) {
		if err := DeleteUpload("https://res.cloudinary.com/demo/image/upload/v1/products/a.jpg"); err != nil {
			t.Fatalf("DeleteUpload: %v", err)
		}
	})

	t.Run("already-gone file is not an error", func(t *testing.T) {
		if err := DeleteUpload("/upload/products/never-there.jpg"); err != nil {
			t.Fatalf("DeleteUpload: %v", err)
		}
	})
}
