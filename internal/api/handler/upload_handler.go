package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-manager/internal/api/metrics"
	"github.com/taskforge/task-manager/internal/core/ports"
)

// maxUploadBytes caps attachment size at 5 MiB.
const maxUploadBytes = 5 << 20

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

type UploadHandler struct {
	store  ports.ImageStore
	folder string
}

func NewUploadHandler(store ports.ImageStore, folder string) *UploadHandler {
	return &UploadHandler{store: store, folder: folder}
}

// Upload stores a task image and returns its public URL.
//
// @Summary      Upload an image
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "Image file"
// @Success      201    {object}  Response{data=ports.UploadedImage}
// @Failure      400    {object}  Response
// @Router       /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no image file provided")
	}
	if file.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "image exceeds the 5MB limit")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read image file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read image file")
	}
	if len(data) > maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "image exceeds the 5MB limit")
	}

	contentType := http.DetectContentType(data)
	if _, ok := allowedImageTypes[contentType]; !ok {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported image type")
	}

	uploaded, err := h.store.Upload(c.Request().Context(), data, h.folder)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.UploadsTotal.WithLabelValues("success").Inc()

	return respond(c, http.StatusCreated, uploaded, "image uploaded successfully")
}
