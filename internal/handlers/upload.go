package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/trn-gabru/lafabrica/internal/transport"
)

// PublicUploadPath is where uploaded assets are served from.
const PublicUploadPath = "/uploads/portfolio/"

const maxUploadMemory = 32 << 20

// Upload stores a single multipart file under the configured upload
// directory and returns its public URL. Names are random, not derived from
// the original filename or the clock, so concurrent uploads cannot collide.
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		log.Warn("upload: invalid multipart form", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Warn("upload: no file provided")
		transport.WriteError(w, http.StatusBadRequest, "no file provided", nil)
		return
	}
	defer file.Close()

	filename := uuid.NewString() + safeExt(header.Filename)

	if err := os.MkdirAll(s.Cfg.UploadDir, 0o755); err != nil {
		log.Error("upload: mkdir failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "failed to store file", nil)
		return
	}

	dst, err := os.Create(filepath.Join(s.Cfg.UploadDir, filename))
	if err != nil {
		log.Error("upload: create failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "failed to store file", nil)
		return
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		log.Error("upload: write failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "failed to store file", nil)
		return
	}

	url := PublicUploadPath + filename
	log.Info("upload: stored",
		slog.String("filename", filename),
		slog.String("original", header.Filename),
		slog.Int64("bytes", written),
	)
	transport.WriteJSON(w, http.StatusOK, map[string]string{
		"url":      url,
		"filename": filename,
	})
}

// safeExt keeps the original extension when it looks like one, so the static
// file server picks a sensible content type.
func safeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) < 2 || len(ext) > 8 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
