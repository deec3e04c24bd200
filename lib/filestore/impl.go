package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type fileStoreImpl struct {
	rootDir string
}

// NewFileStore creates a file store rooted at the given directory. The
// directory is created if it does not exist. Each account gets its own
// subdirectory named after its ID.
func NewFileStore(rootDir string) (IFileStore, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("file store root directory must not be empty")
	}
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create file store root: %v", err)
	}
	return &fileStoreImpl{rootDir: rootDir}, nil
}

// validateName rejects names that are empty or could escape the account
// directory. File names are plain names, never paths.
func validateName(name string) error {
	switch {
	case name == "":
		return NewError(RetCInvalidName, "file name must not be empty")
	case name == "." || name == "..":
		return NewError(RetCInvalidName, fmt.Sprintf("invalid file name %q", name))
	case strings.ContainsAny(name, `/\`):
		return NewError(RetCInvalidName, fmt.Sprintf("file name %q must not contain path separators", name))
	case name != filepath.Base(name):
		return NewError(RetCInvalidName, fmt.Sprintf("invalid file name %q", name))
	}
	return nil
}

// filePath returns the on-disk location for an account's file
func (f *fileStoreImpl) filePath(accountID uint64, name string) string {
	return filepath.Join(f.rootDir, strconv.FormatUint(accountID, 10), name)
}

// --------------------------------------------------------------------------
// Interface Methods (docu see filestore/interface.go)
// --------------------------------------------------------------------------

func (f *fileStoreImpl) Save(accountID uint64, name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}

	path := f.filePath(accountID, name)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return NewError(RetCInternalError, fmt.Sprintf("failed to create account directory: %v", err))
	}

	// Write to a temp file in the same directory, then rename it into
	// place. The rename makes the replacement atomic.
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return NewError(RetCInternalError, fmt.Sprintf("failed to create temp file: %v", err))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return NewError(RetCInternalError, fmt.Sprintf("failed to write file: %v", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return NewError(RetCInternalError, fmt.Sprintf("failed to close file: %v", err))
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return NewError(RetCInternalError, fmt.Sprintf("failed to store file: %v", err))
	}

	return nil
}

func (f *fileStoreImpl) Load(accountID uint64, name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.filePath(accountID, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewError(RetCNotFound, fmt.Sprintf("no file %q for account %d", name, accountID))
		}
		return nil, NewError(RetCInternalError, fmt.Sprintf("failed to read file: %v", err))
	}

	return data, nil
}
