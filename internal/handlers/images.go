package handlers

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"brandpress/internal/imaging"
	"brandpress/internal/models"
)

// maxUploadSize caps image uploads at 10 MB.
const maxUploadSize = 10 << 20

// UploadImage accepts a multipart image upload, stores the original plus
// a thumbnail (local disk or S3), records it against the newsletter, and
// returns the URLs the editor can drop into section content.
func (a *App) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSONError(w, "file too large or malformed upload", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSONError(w, "could not read upload", http.StatusBadRequest)
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		writeJSONError(w, "unsupported image type", http.StatusBadRequest)
		return
	}

	name := uuid.New().String() + ext
	thumbName := ""

	variants, err := imaging.GenerateVariants(data, []imaging.Variant{{Name: "thumb", Width: 320, Quality: 75}})
	if err != nil {
		// Not decodable as an image.
		writeJSONError(w, "file is not a valid image", http.StatusBadRequest)
		return
	}
	if len(variants) > 0 {
		thumbName = strings.TrimSuffix(name, ext) + "_thumb" + ext
	}

	var fileURL, thumbURL, storedPath string

	if a.storage != nil {
		if err := a.storage.Upload(r.Context(), name, contentTypeForExt(ext), bytes.NewReader(data), int64(len(data))); err != nil {
			slog.Error("s3 upload failed", "error", err)
			writeJSONError(w, "upload failed", http.StatusInternalServerError)
			return
		}
		fileURL = a.storage.FileURL(name)
		storedPath = name
		if thumbName != "" {
			tv := variants[0]
			if err := a.storage.Upload(r.Context(), thumbName, tv.ContentType, bytes.NewReader(tv.Data), int64(len(tv.Data))); err != nil {
				slog.Warn("s3 thumbnail upload failed", "error", err)
				thumbName = ""
			} else {
				thumbURL = a.storage.FileURL(thumbName)
			}
		}
	} else {
		if err := os.MkdirAll(a.cfg.UploadsDir, 0o755); err != nil {
			slog.Error("uploads dir create failed", "error", err)
			writeJSONError(w, "upload failed", http.StatusInternalServerError)
			return
		}
		storedPath = filepath.Join(a.cfg.UploadsDir, name)
		if err := os.WriteFile(storedPath, data, 0o644); err != nil {
			slog.Error("upload write failed", "error", err)
			writeJSONError(w, "upload failed", http.StatusInternalServerError)
			return
		}
		fileURL = "/uploads/" + name
		if thumbName != "" {
			if err := os.WriteFile(filepath.Join(a.cfg.UploadsDir, thumbName), variants[0].Data, 0o644); err != nil {
				slog.Warn("thumbnail write failed", "error", err)
				thumbName = ""
			} else {
				thumbURL = "/uploads/" + thumbName
			}
		}
	}

	img := &models.Image{
		Filename:         name,
		OriginalFilename: header.Filename,
		Filepath:         storedPath,
		URL:              fileURL,
	}
	if v, err := strconv.ParseInt(r.FormValue("newsletter_id"), 10, 64); err == nil && v > 0 {
		img.NewsletterID = &v
	}
	if v, err := strconv.ParseInt(r.FormValue("section_id"), 10, 64); err == nil && v > 0 {
		img.SectionID = &v
	}

	id, err := a.images.Create(img)
	if err != nil {
		slog.Error("image record insert failed", "error", err)
		writeJSONError(w, "upload failed", http.StatusInternalServerError)
		return
	}

	resp := map[string]any{
		"success":  true,
		"image_id": id,
		"filename": name,
		"url":      fileURL,
	}
	if thumbURL != "" {
		resp["thumb_url"] = thumbURL
	}
	writeJSON(w, http.StatusOK, resp)
}

func contentTypeForExt(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
