package tomlfile

import (
	"fmt"
	"io"
	"os"
)

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	defer dstFile.Close()

	if _, copyErr := io.Copy(dstFile, srcFile); copyErr != nil {
		return fmt.Errorf("failed to copy data: %w", copyErr)
	}

	return dstFile.Close()
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// backupFile copies path to path.bak when it exists.
func backupFile(path string) error {
	if !fileExists(path) {
		return nil
	}
	if err := copyFile(path, path+".bak"); err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}
	return nil
}
