// Package fileutils provides the file discovery and output helpers used by the
// loader, the load cache and the report writers.
package fileutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ErrDirectoryNotFound is returned when the input directory does not exist.
var ErrDirectoryNotFound = errors.New("directory does not exist")

// FileStat is the identity of a matched file as seen by os.Stat.
type FileStat struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// ListMatching returns the regular files directly inside dirPath whose base name
// matches the glob pattern, in lexical order. Subdirectories are not walked.
func ListMatching(dirPath, pattern string) ([]string, error) {
	if !DirectoryExists(dirPath) {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dirPath)
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if ok, _ := filepath.Match(pattern, entry.Name()); ok {
			files = append(files, filepath.Join(dirPath, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// StatMatching is ListMatching plus the size and modification time of each file.
// It never opens the files.
func StatMatching(dirPath, pattern string) ([]FileStat, error) {
	files, err := ListMatching(dirPath, pattern)
	if err != nil {
		return nil, err
	}

	stats := make([]FileStat, 0, len(files))
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		stats = append(stats, FileStat{Path: path, Size: info.Size(), ModTime: info.ModTime()})
	}
	return stats, nil
}

// CreateFile creates or truncates a file for writing
func CreateFile(filePath string) (*os.File, error) {
	dir := filepath.Dir(filePath)
	if err := EnsureDirectoryExists(dir); err != nil {
		return nil, err
	}

	file, err := os.Create(filePath) // #nosec G304 -- output path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	return file, nil
}
