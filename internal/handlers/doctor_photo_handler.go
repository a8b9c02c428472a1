package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
	ucDoctor "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/doctor"
)

type DoctorPhotoHandler struct {
	upload *ucDoctor.UploadPhoto
	get    *ucDoctor.GetPhotoURL
	remove *ucDoctor.DeletePhoto
}

func NewDoctorPhotoHandler(
	upload *ucDoctor.UploadPhoto,
	get *ucDoctor.GetPhotoURL,
	remove *ucDoctor.DeletePhoto,
) *DoctorPhotoHandler {
	return &DoctorPhotoHandler{upload: upload, get: get, remove: remove}
}

func (h *DoctorPhotoHandler) Upload(c *gin.Context) {
	doctorID, ok := uuidParam(c, "doctor_id")
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.Unprocessable(c, "missing_file", "multipart field 'file' is required")
		return
	}
	if fh.Size > storage.MaxPhotoBytes {
		httperr.Unprocessable(c, "photo_too_large", "Photo exceeds 5 MiB")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, storage.MaxPhotoBytes+1))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	key, err := h.upload.Execute(c.Request.Context(), middleware.PrincipalFrom(c), doctorID, data)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Photo updated", "photo_key": key})
}

// Get redirects to a short-lived presigned URL.
func (h *DoctorPhotoHandler) Get(c *gin.Context) {
	doctorID, ok := uuidParam(c, "doctor_id")
	if !ok {
		return
	}

	url, err := h.get.Execute(c.Request.Context(), doctorID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

func (h *DoctorPhotoHandler) Delete(c *gin.Context) {
	doctorID, ok := uuidParam(c, "doctor_id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.PrincipalFrom(c), doctorID); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Photo deleted"})
}
