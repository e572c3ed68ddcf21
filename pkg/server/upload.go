package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// receiveUpload stores the multipart "file" field under a random name in the
// upload dir. It returns the stored path and the client's file name.
func (s *Server) receiveUpload(w http.ResponseWriter, r *http.Request) (string, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		return "", "", badRequest(fmt.Sprintf("invalid upload: %v", err))
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", "", badRequest("missing file field")
	}
	defer file.Close()

	if err := os.MkdirAll(s.cfg.UploadDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := filepath.Base(header.Filename)
	path := filepath.Join(s.cfg.UploadDir, uuid.New().String()+strings.ToLower(filepath.Ext(name)))

	dst, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to save upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("failed to save upload: %w", err)
	}
	return path, name, nil
}

func (s *Server) discardUpload(path string) {
	if err := os.Remove(path); err != nil {
		s.logger.Warn("failed to remove upload", zap.String("path", path), zap.Error(err))
	}
}
