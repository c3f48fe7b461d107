package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for upload storage used by the mock gateway
type FileStorage interface {
	// SaveFileWithPath stores the upload under subPath and returns its public URL
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a file previously returned by SaveFileWithPath
	DeleteFile(fileURL string) error

	// Root is the directory served under the public URL prefix
	Root() string
}
