package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hadi891/CareerCompass/internal/delivery/http/response"
	"github.com/Hadi891/CareerCompass/internal/domain"
	"github.com/Hadi891/CareerCompass/pkg/apperror"
)

// Resume uploads above this size are rejected before buffering.
const maxUploadBytes = 10 << 20

type CVHandler struct {
	cvUC domain.CVUsecase
}

func NewCVHandler(protected *gin.RouterGroup, cvUC domain.CVUsecase) {
	handler := &CVHandler{cvUC: cvUC}

	cv := protected.Group("/cv")
	{
		cv.POST("/upload", handler.Upload)
		cv.GET("/me", handler.Me)
	}
}

func (h *CVHandler) Upload(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("A PDF file is required in the 'file' field"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.Error(apperror.BadRequest("File exceeds the 10MB upload limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	document, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	snap, err := h.cvUC.IngestCV(c.Request.Context(), userID, fileHeader.Filename, document)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "CV processed", snap)
}

func (h *CVHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	snap, err := h.cvUC.GetCVSnapshot(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Current CV", snap)
}
