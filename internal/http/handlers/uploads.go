package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prestigebuild/siteapi/internal/media"
)

const maxFilesPerRequest = 10

type UploadsHandler struct {
	store *media.Store
}

func NewUploadsHandler(store *media.Store) *UploadsHandler {
	return &UploadsHandler{store: store}
}

// UploadImage accepts a single file in the "image" field.
func (h *UploadsHandler) UploadImage(ctx *gin.Context) {
	header, err := ctx.FormFile("image")

	if err != nil {
		RespondBadRequest(ctx, "Expected a single file in the 'image' field", nil)
		return
	}

	saved, err := h.store.Save(header)

	if err != nil {
		respondUploadError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"file": saved})
}

// UploadImages accepts up to maxFilesPerRequest files in the "images" field.
// The batch is all-or-nothing on validation but not on disk: files already
// written before a failing one stay written and are reported as saved.
func (h *UploadsHandler) UploadImages(ctx *gin.Context) {
	form, err := ctx.MultipartForm()

	if err != nil {
		RespondBadRequest(ctx, "Expected multipart form data", nil)
		return
	}

	headers := form.File["images"]

	if len(headers) == 0 {
		RespondBadRequest(ctx, "Expected files in the 'images' field", nil)
		return
	}

	if len(headers) > maxFilesPerRequest {
		RespondBadRequest(ctx, "Too many files in one request (max 10)", nil)
		return
	}

	saved := make([]media.SavedFile, 0, len(headers))

	for _, header := range headers {
		file, err := h.store.Save(header)

		if err != nil {
			respondUploadErrorPartial(ctx, err, saved)
			return
		}

		saved = append(saved, file)
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"files": saved,
		"count": len(saved),
	})
}

func (h *UploadsHandler) ListUploads(ctx *gin.Context) {
	files, err := h.store.List()

	if err != nil {
		RespondInternal(ctx, "Could not list uploads")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"files": files,
		"count": len(files),
	})
}

func (h *UploadsHandler) DeleteUpload(ctx *gin.Context) {
	filename := ctx.Param("filename")

	err := h.store.Delete(filename)

	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			RespondNotFound(ctx, "File not found")
			return
		}
		if errors.Is(err, media.ErrBadName) {
			RespondBadRequest(ctx, "Invalid filename", nil)
			return
		}
		RespondInternal(ctx, "Could not delete file")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func respondUploadError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, media.ErrNotAllowed):
		RespondError(ctx, http.StatusUnsupportedMediaType, "unsupported_media_type",
			"Only JPEG, PNG, GIF and WebP images are accepted", nil)
	case errors.Is(err, media.ErrTooLarge):
		RespondError(ctx, http.StatusRequestEntityTooLarge, "file_too_large",
			"File exceeds the upload size limit", nil)
	default:
		RespondInternal(ctx, "Could not store upload")
	}
}

func respondUploadErrorPartial(ctx *gin.Context, err error, saved []media.SavedFile) {
	details := gin.H{"saved": saved}

	switch {
	case errors.Is(err, media.ErrNotAllowed):
		RespondError(ctx, http.StatusUnsupportedMediaType, "unsupported_media_type",
			"Only JPEG, PNG, GIF and WebP images are accepted", details)
	case errors.Is(err, media.ErrTooLarge):
		RespondError(ctx, http.StatusRequestEntityTooLarge, "file_too_large",
			"File exceeds the upload size limit", details)
	default:
		RespondError(ctx, http.StatusInternalServerError, "internal_error",
			"Could not store upload", details)
	}
}
