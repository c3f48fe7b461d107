package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mustso/portal/internal/pkg/logger"
)

// DefaultURLPrefix is where stored uploads are served
const DefaultURLPrefix = "/media"

// LocalStorage handles saving uploads to the local filesystem.
type LocalStorage struct {
	basePath  string // directory where files are stored
	urlPrefix string // public prefix of the returned URLs
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
// An empty urlPrefix means DefaultURLPrefix.
func NewLocalStorage(basePath, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	if urlPrefix == "" {
		urlPrefix = DefaultURLPrefix
	}

	return &LocalStorage{
		basePath:  basePath,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}, nil
}

// Root returns the storage directory
func (ls *LocalStorage) Root() string {
	return ls.basePath
}

// URLPrefix returns the public prefix of stored files
func (ls *LocalStorage) URLPrefix() string {
	return ls.urlPrefix
}

// SaveFileWithPath saves an upload to subPath under a generated name and
// returns its URL, e.g. "/media/leaders/<uuid>.png"
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	subPath = strings.Trim(filepath.ToSlash(filepath.Clean("/"+subPath)), "/")
	dir := filepath.Join(ls.basePath, filepath.FromSlash(subPath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	dstPath := filepath.Join(dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	url := path.Join(ls.urlPrefix, subPath, name)
	logger.Debug().Str("filename", fileHeader.Filename).Str("url", url).Msg("File saved")
	return url, nil
}

// DeleteFile removes a stored file by its URL. Missing files are not an error.
func (ls *LocalStorage) DeleteFile(fileURL string) error {
	physicalPath, ok := ls.resolve(fileURL)
	if !ok {
		return fmt.Errorf("invalid file path: %s", fileURL)
	}

	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// resolve maps a URL under the prefix to a path inside basePath
func (ls *LocalStorage) resolve(fileURL string) (string, bool) {
	rel := strings.TrimPrefix(fileURL, ls.urlPrefix)
	if rel == fileURL || rel == "" {
		return "", false
	}
	rel = strings.Trim(path.Clean("/"+rel), "/")
	if rel == "" {
		return "", false
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(rel)), true
}
