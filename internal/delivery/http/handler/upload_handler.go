package handler

import (
	"errors"

	"hr-recruitment/internal/delivery/http/middleware"
	"hr-recruitment/internal/pkg/response"
	"hr-recruitment/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UploadHandler struct {
	uc usecase.UploadUsecase
}

func NewUploadHandler(uc usecase.UploadUsecase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

func (h *UploadHandler) UploadCV(c fiber.Ctx) error {
	return h.upload(c, "cv", usecase.UploadCV, "CV uploaded successfully")
}

func (h *UploadHandler) UploadProfileImage(c fiber.Ctx) error {
	return h.upload(c, "profileImage", usecase.UploadProfileImage, "Profile image uploaded successfully")
}

func (h *UploadHandler) upload(c fiber.Ctx, field string, kind usecase.UploadKind, msg string) error {
	fh, err := c.FormFile(field)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "No file uploaded", nil, err)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	defer f.Close()

	res, err := h.uc.Upload(c.Context(), kind, usecase.UploadInput{
		OriginalName: fh.Filename,
		ContentType:  fh.Header.Get(fiber.HeaderContentType),
		Size:         fh.Size,
		Body:         f,
	})
	if err != nil {
		return mapUploadUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, msg, res)
}

func mapUploadUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrFileRequired):
		return middleware.NewAppError(fiber.StatusBadRequest, "No file uploaded", nil, err)
	case errors.Is(err, usecase.ErrFileTooLarge):
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "File too large", nil, err).WithCode("FILE_TOO_LARGE")
	case errors.Is(err, usecase.ErrUnsupportedFileType):
		return middleware.NewAppError(fiber.StatusBadRequest, "Unsupported file type", nil, err).WithCode("INVALID_FILE_TYPE")
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
