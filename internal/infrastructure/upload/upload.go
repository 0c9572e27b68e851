// Package upload reads multipart image uploads into memory.
//
// Article images go through a temporary file that is removed on success and
// failure alike; profile pictures are buffered in memory with no disk
// intermediary.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
)

// ReadSpooled copies the upload to a scoped temp file, reads the bytes back
// and removes the file before returning. The second return value is the MIME
// type declared by the client.
func ReadSpooled(fh *multipart.FileHeader) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "blog-upload-*")
	if err != nil {
		return nil, "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, src); err != nil {
		return nil, "", fmt.Errorf("spool upload: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("rewind temp file: %w", err)
	}

	data, err := io.ReadAll(tmp)
	if err != nil {
		return nil, "", fmt.Errorf("read temp file: %w", err)
	}

	return data, fh.Header.Get("Content-Type"), nil
}

// ReadBuffered reads the upload directly into memory.
func ReadBuffered(fh *multipart.FileHeader) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}

	return data, fh.Header.Get("Content-Type"), nil
}
