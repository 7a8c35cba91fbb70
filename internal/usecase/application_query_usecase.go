package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"hr-recruitment/internal/domain/application"
	"hr-recruitment/internal/repository"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type ListApplicationsParams struct {
	Page     int
	Limit    int
	Search   string
	Status   string
	JobTitle string
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

type ApplicationPage struct {
	Applications []application.Summary `json:"applications"`
	Pagination   Pagination            `json:"pagination"`
}

type ApplicationQueryUsecase interface {
	List(ctx context.Context, params ListApplicationsParams) (ApplicationPage, error)
	ListAcceptedToJoin(ctx context.Context, params ListApplicationsParams) (ApplicationPage, error)
	GetByID(ctx context.Context, id uuid.UUID) (application.Details, error)
	Stats(ctx context.Context) (application.Stats, error)
}

type ApplicationQuery struct {
	repo   repository.ApplicationQueryRepository
	logger *log.Logger
}

func NewApplicationQueryUsecase(repo repository.ApplicationQueryRepository, logger *log.Logger) *ApplicationQuery {
	return &ApplicationQuery{repo: repo, logger: logger}
}

// List excludes the accepted-to-join pool unless a status is requested.
func (u *ApplicationQuery) List(ctx context.Context, params ListApplicationsParams) (ApplicationPage, error) {
	f := repository.ApplicationFilter{
		JobTitle: params.JobTitle,
		Search:   params.Search,
	}
	if raw := strings.TrimSpace(params.Status); raw != "" {
		st, ok := application.ParseStatus(raw)
		if !ok {
			return ApplicationPage{}, ErrInvalidStatus
		}
		f.Status = &st
	} else {
		excluded := application.StatusAcceptedToJoin
		f.ExcludeStatus = &excluded
	}
	return u.page(ctx, f, params)
}

func (u *ApplicationQuery) ListAcceptedToJoin(ctx context.Context, params ListApplicationsParams) (ApplicationPage, error) {
	st := application.StatusAcceptedToJoin
	f := repository.ApplicationFilter{
		Status:   &st,
		JobTitle: params.JobTitle,
		Search:   params.Search,
	}
	return u.page(ctx, f, params)
}

func (u *ApplicationQuery) page(ctx context.Context, f repository.ApplicationFilter, params ListApplicationsParams) (ApplicationPage, error) {
	page, limit, err := normalizePage(params.Page, params.Limit)
	if err != nil {
		return ApplicationPage{}, err
	}

	total, err := u.repo.Count(ctx, f)
	if err != nil {
		u.logf("[Applications] count failed | err=%v", err)
		return ApplicationPage{}, ErrInternal
	}

	items := []application.Summary{}
	if total > 0 && (page-1)*limit < total {
		items, err = u.repo.List(ctx, f, limit, (page-1)*limit)
		if err != nil {
			u.logf("[Applications] list failed | err=%v", err)
			return ApplicationPage{}, ErrInternal
		}
	}

	return ApplicationPage{Applications: items, Pagination: Paginate(page, limit, total)}, nil
}

func normalizePage(page, limit int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultPageSize
	}
	if page < 1 || limit < 1 || limit > MaxPageSize {
		return 0, 0, ErrInvalidInput
	}
	return page, limit, nil
}

// Paginate derives page metadata for total matching rows.
func Paginate(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  pages,
		TotalCount:  total,
		HasNextPage: page < pages,
		HasPrevPage: page > 1,
	}
}

func (u *ApplicationQuery) GetByID(ctx context.Context, id uuid.UUID) (application.Details, error) {
	a, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return application.Details{}, ErrApplicationNotFound
		}
		u.logf("[Applications] find failed | application_id=%s err=%v", id, err)
		return application.Details{}, ErrInternal
	}

	details, err := u.repo.LoadDetails(ctx, []application.Application{a})
	if err != nil || len(details) != 1 {
		u.logf("[Applications] load details failed | application_id=%s err=%v", id, err)
		return application.Details{}, ErrInternal
	}
	return details[0], nil
}

// Stats returns the total application count and the count per status.
func (u *ApplicationQuery) Stats(ctx context.Context) (application.Stats, error) {
	counts, err := u.repo.CountByStatus(ctx)
	if err != nil {
		u.logf("[Applications] stats failed | err=%v", err)
		return application.Stats{}, ErrInternal
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	return application.Stats{TotalApplications: total, ByStatus: counts}, nil
}

func (u *ApplicationQuery) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
