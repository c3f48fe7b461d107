package dto

import "io"

// FileUpload is a file that accompanies a create or update request.
// Its presence switches the request body to multipart/form-data.
type FileUpload struct {
	Filename string
	Content  io.Reader
}
