package scanner_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/temirov/pathtree/internal/scanner"
)

const (
	helloContent = "hello"
	// helloDigest is the SHA-256 of helloContent.
	helloDigest = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func resolvedTempDir(t *testing.T) string {
	t.Helper()
	directory, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}
	return directory
}

func TestListRegularFilesRecurses(t *testing.T) {
	root := resolvedTempDir(t)
	writeFile(t, filepath.Join(root, "top.txt"), "1")
	writeFile(t, filepath.Join(root, "a", "b", "deep.txt"), "22")
	writeFile(t, filepath.Join(root, "a", "mid.txt"), "333")
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatalf("mkdir empty: %v", err)
	}

	paths, err := scanner.New(scanner.Options{}).ListRegularFiles(root)
	if err != nil {
		t.Fatalf("ListRegularFiles error: %v", err)
	}
	expected := []string{
		filepath.ToSlash(filepath.Join(root, "a", "b", "deep.txt")),
		filepath.ToSlash(filepath.Join(root, "a", "mid.txt")),
		filepath.ToSlash(filepath.Join(root, "top.txt")),
	}
	if len(paths) != len(expected) {
		t.Fatalf("expected %d paths, got %d: %v", len(expected), len(paths), paths)
	}
	for index := range expected {
		if paths[index] != expected[index] {
			t.Fatalf("path %d: expected %s, got %s", index, expected[index], paths[index])
		}
	}
}

func TestScanSkipsSymbolicLinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
	root := resolvedTempDir(t)
	outside := resolvedTempDir(t)
	writeFile(t, filepath.Join(root, "real.txt"), helloContent)
	writeFile(t, filepath.Join(outside, "linked", "hidden.txt"), helloContent)
	if err := os.Symlink(filepath.Join(root, "real.txt"), filepath.Join(root, "file-link")); err != nil {
		t.Fatalf("symlink file: %v", err)
	}
	if err := os.Symlink(filepath.Join(outside, "linked"), filepath.Join(root, "dir-link")); err != nil {
		t.Fatalf("symlink dir: %v", err)
	}

	result, err := scanner.New(scanner.Options{}).Scan(root)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(result.Files) != 1 || filepath.Base(result.Files[0].Path) != "real.txt" {
		t.Fatalf("expected only real.txt, got %+v", result.Files)
	}
}

func TestScanContinuesPastUnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	root := resolvedTempDir(t)
	writeFile(t, filepath.Join(root, "first", "one.txt"), "1")
	writeFile(t, filepath.Join(root, "locked", "secret.txt"), "2")
	writeFile(t, filepath.Join(root, "third", "three.txt"), "3")
	lockedDirectory := filepath.Join(root, "locked")
	if err := os.Chmod(lockedDirectory, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(lockedDirectory, 0o755) })

	result, err := scanner.New(scanner.Options{}).Scan(root)
	if err == nil {
		t.Fatalf("expected a scan error for the locked directory")
	}
	var scanError *scanner.ScanError
	if !errors.As(err, &scanError) {
		t.Fatalf("expected ScanError, got %T", err)
	}
	if scanError.Root {
		t.Fatalf("locked subdirectory must not be reported as the root")
	}
	if len(result.Files) != 2 {
		t.Fatalf("expected files of the two readable siblings, got %+v", result.Files)
	}
}

func TestScanComputesTagsAndMetadata(t *testing.T) {
	root := resolvedTempDir(t)
	writeFile(t, filepath.Join(root, "hello.txt"), helloContent)

	result, err := scanner.New(scanner.Options{ComputeTags: true}).Scan(root)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if result.Root != filepath.ToSlash(root) {
		t.Fatalf("expected root %s, got %s", root, result.Root)
	}
	if len(result.Files) != 1 {
		t.Fatalf("expected one file, got %d", len(result.Files))
	}
	file := result.Files[0]
	if file.Tag != helloDigest {
		t.Fatalf("unexpected tag %s", file.Tag)
	}
	if file.Size != int64(len(helloContent)) {
		t.Fatalf("unexpected size %d", file.Size)
	}
	if file.ModifiedAt.IsZero() {
		t.Fatalf("expected modification time")
	}
}

func TestScanMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	_, err := scanner.New(scanner.Options{}).Scan(missing)
	var scanError *scanner.ScanError
	if !errors.As(err, &scanError) || !scanError.Root {
		t.Fatalf("expected root ScanError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist cause, got %v", err)
	}
}
