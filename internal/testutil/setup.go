package testutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

// SetupDocFile copies a fixture document to a temporary directory and
// returns the copy's path. Calls t.Skip if the fixture is not found.
//
// Example:
//
//	path := testutil.SetupDocFile(t, testutil.FixtureReplit, ".replit")
func SetupDocFile(t *testing.T, fixture, tempName string) string {
	t.Helper()
	src := resolveTestPath(t, fixture)
	dst := filepath.Join(t.TempDir(), tempName)
	copyFile(t, src, dst)
	return dst
}

// WriteDocFile writes content to a new file in a temporary directory and
// returns its path.
func WriteDocFile(t *testing.T, tempName, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), tempName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// ReadFixture returns the contents of a fixture document.
func ReadFixture(t *testing.T, fixture string) string {
	t.Helper()
	return ReadFile(t, resolveTestPath(t, fixture))
}

// ReadFile returns the contents of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// resolveTestPath finds a fixture from whichever package directory the test
// runs in.
func resolveTestPath(t *testing.T, relativePath string) string {
	t.Helper()

	candidates := []string{
		relativePath,
		"../" + relativePath,
		"../../" + relativePath,
		"../../../" + relativePath,
		"../../../../" + relativePath,
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	t.Skipf("Fixture not found at any candidate path starting from: %s", relativePath)
	return ""
}

func copyFile(t *testing.T, src, dst string) {
	t.Helper()

	srcFile, err := os.Open(src)
	if err != nil {
		t.Skipf("Fixture not found: %v", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer dstFile.Close()

	if _, copyErr := io.Copy(dstFile, srcFile); copyErr != nil {
		t.Fatalf("Failed to copy fixture: %v", copyErr)
	}
}
