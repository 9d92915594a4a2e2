// Package scanner lists the regular files below a directory.
package scanner

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
)

const (
	readDirectoryWarning = "Error reading folder."
	fileInfoWarning      = "Error file type."
	tagWarning           = "Error computing tag."
	scanFinishedMessage  = "scan finished"

	errorResolveRootFormat = "resolving root %s: %w"
)

// ScanError reports a path that could not be read during a scan.
type ScanError struct {
	Path string
	Err  error
	// Root is set when the scan root itself could not be read.
	Root bool
}

func (scanError *ScanError) Error() string {
	return fmt.Sprintf("scanning %s: %v", scanError.Path, scanError.Err)
}

func (scanError *ScanError) Unwrap() error {
	return scanError.Err
}

// File is a regular file found by a scan. Path uses forward slashes.
type File struct {
	Path       string
	Size       int64
	ModifiedAt time.Time
	AccessedAt time.Time
	Tag        string
}

// Result holds the outcome of a scan. Root is the scanned directory with
// symbolic links resolved, in forward-slash form.
type Result struct {
	Root  string
	Files []File
}

// Options configures a Scanner.
type Options struct {
	// ComputeTags hashes the content of every file into File.Tag.
	ComputeTags bool
	Logger      *zap.Logger
}

// Scanner walks directory trees collecting regular files. Symbolic links and
// other irregular entries are skipped.
type Scanner struct {
	computeTags bool
	logger      *zap.Logger
}

// New constructs a Scanner.
func New(options Options) *Scanner {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{computeTags: options.ComputeTags, logger: logger}
}

// ListRegularFiles returns the slash-separated paths of every regular file under root.
// Unreadable directories are skipped; their errors are returned joined next to the
// paths that could be listed.
func (scanner *Scanner) ListRegularFiles(root string) ([]string, error) {
	result, scanError := scanner.Scan(root)
	paths := make([]string, 0, len(result.Files))
	for _, file := range result.Files {
		paths = append(paths, file.Path)
	}
	return paths, scanError
}

// Scan returns every regular file under root with its metadata, sorted by path.
// Root is made absolute and has its symbolic links resolved first.
// A directory that cannot be read stops the enumeration of that subtree only.
func (scanner *Scanner) Scan(root string) (Result, error) {
	startTime := time.Now()
	absoluteRoot, absolutePathError := filepath.Abs(root)
	if absolutePathError != nil {
		return Result{}, &ScanError{Path: root, Err: absolutePathError, Root: true}
	}
	resolvedRoot, resolveError := filepath.EvalSymlinks(absoluteRoot)
	if resolveError != nil {
		return Result{}, &ScanError{Path: root, Err: fmt.Errorf(errorResolveRootFormat, root, resolveError), Root: true}
	}

	var files []File
	var scanErrors []error
	walkError := filepath.WalkDir(resolvedRoot, func(currentPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if currentPath == resolvedRoot {
				return walkError
			}
			scanner.logger.Warn(readDirectoryWarning, zap.String("path", currentPath), zap.Error(walkError))
			scanErrors = append(scanErrors, &ScanError{Path: currentPath, Err: walkError})
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if directoryEntry.IsDir() || !directoryEntry.Type().IsRegular() {
			return nil
		}
		file, fileError := scanner.describeFile(currentPath, directoryEntry)
		if fileError != nil {
			scanner.logger.Warn(fileInfoWarning, zap.String("path", currentPath), zap.Error(fileError))
			scanErrors = append(scanErrors, &ScanError{Path: currentPath, Err: fileError})
			return nil
		}
		files = append(files, file)
		return nil
	})
	if walkError != nil {
		return Result{}, &ScanError{Path: resolvedRoot, Err: walkError, Root: true}
	}

	sort.Slice(files, func(left, right int) bool {
		return files[left].Path < files[right].Path
	})
	scanner.logger.Debug(scanFinishedMessage,
		zap.String("root", resolvedRoot),
		zap.Int("files", len(files)),
		zap.Int("errors", len(scanErrors)),
		zap.Duration("elapsed", time.Since(startTime)),
	)
	return Result{Root: filepath.ToSlash(resolvedRoot), Files: files}, errors.Join(scanErrors...)
}

func (scanner *Scanner) describeFile(path string, directoryEntry fs.DirEntry) (File, error) {
	info, infoError := directoryEntry.Info()
	if infoError != nil {
		return File{}, infoError
	}
	file := File{
		Path:       filepath.ToSlash(path),
		Size:       info.Size(),
		ModifiedAt: info.ModTime(),
		AccessedAt: accessTime(info),
	}
	if scanner.computeTags {
		tag, tagError := contentTag(path)
		if tagError != nil {
			scanner.logger.Warn(tagWarning, zap.String("path", path), zap.Error(tagError))
		} else {
			file.Tag = tag
		}
	}
	return file, nil
}

// contentTag returns the hex SHA-256 digest of the file content.
//
// #nosec G304
func contentTag(path string) (string, error) {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return "", openError
	}
	defer fileHandle.Close()
	hasher := sha256.New()
	if _, copyError := io.Copy(hasher, fileHandle); copyError != nil {
		return "", copyError
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
