package handler

import (
	"errors"
	"strconv"
	"strings"

	"hr-recruitment/internal/delivery/http/dto"
	"hr-recruitment/internal/delivery/http/middleware"
	"hr-recruitment/internal/domain/application"
	"hr-recruitment/internal/pkg/response"
	"hr-recruitment/internal/pkg/validator"
	"hr-recruitment/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	submit   usecase.ApplicationSubmitUsecase
	query    usecase.ApplicationQueryUsecase
	status   usecase.ApplicationStatusUsecase
	export   usecase.ApplicationExportUsecase
	validate *validator.Validator
}

func NewApplicationHandler(
	submit usecase.ApplicationSubmitUsecase,
	query usecase.ApplicationQueryUsecase,
	status usecase.ApplicationStatusUsecase,
	export usecase.ApplicationExportUsecase,
	v *validator.Validator,
) *ApplicationHandler {
	if v == nil {
		v = validator.New()
	}
	v.RegisterNormalizers(dto.FlexString{})
	return &ApplicationHandler{submit: submit, query: query, status: status, export: export, validate: v}
}

func (h *ApplicationHandler) HandleSubmit(c fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}
	if errs, err := h.validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	} else if len(errs) > 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", errs, nil)
	}

	res, err := h.submit.Submit(c.Context(), req.ToInput())
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Application submitted successfully", res)
}

func (h *ApplicationHandler) HandleList(c fiber.Ctx) error {
	params, err := listParams(c)
	if err != nil {
		return err
	}
	params.Status = c.Query("status")

	page, err := h.query.List(c.Context(), params)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "", page)
}

func (h *ApplicationHandler) HandleListAcceptedToJoin(c fiber.Ctx) error {
	params, err := listParams(c)
	if err != nil {
		return err
	}

	page, err := h.query.ListAcceptedToJoin(c.Context(), params)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "", page)
}

func (h *ApplicationHandler) HandleGet(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	}

	d, err := h.query.GetByID(c.Context(), id)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "", dto.ApplicationDetailResponse{Application: d})
}

func (h *ApplicationHandler) HandleUpdateStatus(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	}

	var req dto.UpdateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	change, err := h.status.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application status updated successfully", change)
}

func (h *ApplicationHandler) HandleStats(c fiber.Ctx) error {
	stats, err := h.query.Stats(c.Context())
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "", stats)
}

func (h *ApplicationHandler) HandleExport(c fiber.Ctx) error {
	file, err := h.export.Export(c.Context(), c.Query("format"))
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	c.Attachment(file.Filename)
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentLength, strconv.Itoa(len(file.Data)))
	return c.Status(fiber.StatusOK).Send(file.Data)
}

func listParams(c fiber.Ctx) (usecase.ListApplicationsParams, error) {
	page, err := parsePositiveQuery(c, "page", 1)
	if err != nil {
		return usecase.ListApplicationsParams{}, middleware.NewAppError(fiber.StatusBadRequest, "page must be a positive integer", nil, err)
	}
	limit, err := parsePositiveQuery(c, "limit", usecase.DefaultPageSize)
	if err != nil {
		return usecase.ListApplicationsParams{}, middleware.NewAppError(fiber.StatusBadRequest, "limit must be a positive integer", nil, err)
	}
	return usecase.ListApplicationsParams{
		Page:     page,
		Limit:    limit,
		Search:   strings.TrimSpace(c.Query("search")),
		JobTitle: strings.TrimSpace(c.Query("jobTitle")),
	}, nil
}

var errNotPositive = errors.New("must be >= 1")

func parsePositiveQuery(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 1 {
		return 0, errNotPositive
	}
	return v, nil
}

func mapApplicationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var fe *usecase.FieldError
	switch {
	case errors.Is(err, usecase.ErrMissingJobTitle):
		return middleware.NewAppError(fiber.StatusBadRequest, "Job title is required", nil, err)
	case errors.As(err, &fe):
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed",
			[]validator.FieldError{{Field: fe.Field, Message: fe.Message}}, err)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest,
			"Invalid status. Must be one of: "+strings.Join(statusNames(), ", "), nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrNothingToExport):
		return middleware.NewAppError(fiber.StatusBadRequest, "No applications found to export", nil, err)
	case errors.Is(err, usecase.ErrUnsupportedFormat):
		return middleware.NewAppError(fiber.StatusBadRequest, "Unsupported export format", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func statusNames() []string {
	all := application.Statuses()
	out := make([]string, 0, len(all))
	for _, s := range all {
		out = append(out, string(s))
	}
	return out
}
