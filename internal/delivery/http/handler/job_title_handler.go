package handler

import (
	"errors"

	"hr-recruitment/internal/delivery/http/middleware"
	"hr-recruitment/internal/pkg/response"
	"hr-recruitment/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobTitleHandler struct {
	uc usecase.JobTitleUsecase
}

type jobTitleRequest struct {
	Title    *string `json:"title"`
	IsActive *bool   `json:"isActive"`
}

func NewJobTitleHandler(uc usecase.JobTitleUsecase) *JobTitleHandler {
	return &JobTitleHandler{uc: uc}
}

func (h *JobTitleHandler) ListActive(c fiber.Ctx) error {
	items, err := h.uc.ListActive(c.Context())
	if err != nil {
		return mapJobTitleUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "", items)
}

func (h *JobTitleHandler) ListAll(c fiber.Ctx) error {
	items, err := h.uc.ListAll(c.Context())
	if err != nil {
		return mapJobTitleUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "", items)
}

func (h *JobTitleHandler) Create(c fiber.Ctx) error {
	var req jobTitleRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	title := ""
	if req.Title != nil {
		title = *req.Title
	}

	j, err := h.uc.Create(c.Context(), title, req.IsActive)
	if err != nil {
		return mapJobTitleUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job created successfully", j)
}

func (h *JobTitleHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	}

	var req jobTitleRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	j, err := h.uc.Update(c.Context(), id, req.Title, req.IsActive)
	if err != nil {
		return mapJobTitleUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job updated successfully", j)
}

func (h *JobTitleHandler) SetStatus(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	}

	var req jobTitleRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.IsActive == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "isActive is required", nil, nil)
	}

	j, err := h.uc.SetActive(c.Context(), id, *req.IsActive)
	if err != nil {
		return mapJobTitleUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job status updated successfully", j)
}

func (h *JobTitleHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapJobTitleUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job deleted successfully", nil)
}

func mapJobTitleUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Job title is required", nil, err)
	case errors.Is(err, usecase.ErrJobTitleExists):
		return middleware.NewAppError(fiber.StatusConflict, "Job title already exists", nil, err)
	case errors.Is(err, usecase.ErrJobTitleNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
