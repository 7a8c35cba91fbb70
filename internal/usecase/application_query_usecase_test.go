package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hr-recruitment/internal/domain/application"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryFixture() *memApplications {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return newMemApplications(
		seedApp("Backend Engineer", application.StatusPending, base, &application.PersonalInfo{Name: "Ali Hassan", WhatsappNumber: ptr("01001234567")}),
		seedApp("Accountant", application.StatusReviewed, base.Add(time.Hour), nil),
		seedApp("Backend Engineer", application.StatusAcceptedToJoin, base.Add(2*time.Hour), &application.PersonalInfo{Name: "Mona"}),
		seedApp("Driver", application.StatusAccepted, base.Add(3*time.Hour), &application.PersonalInfo{Name: "Omar", MobileNumber: ptr("01119876543")}),
	)
}

func TestList_DefaultExcludesAcceptedToJoin(t *testing.T) {
	repo := queryFixture()
	uc := NewApplicationQueryUsecase(repo, nil)

	page, err := uc.List(context.Background(), ListApplicationsParams{})
	require.NoError(t, err)
	require.Len(t, page.Applications, 3)
	for _, a := range page.Applications {
		assert.NotEqual(t, application.StatusAcceptedToJoin, a.Status)
	}
	require.NotNil(t, repo.lastF.ExcludeStatus)
	assert.Equal(t, application.StatusAcceptedToJoin, *repo.lastF.ExcludeStatus)
	assert.Nil(t, repo.lastF.Status)

	// newest first
	assert.Equal(t, "Driver", page.Applications[0].JobTitle)
}

func TestList_ExplicitStatusFilter(t *testing.T) {
	uc := NewApplicationQueryUsecase(queryFixture(), nil)

	page, err := uc.List(context.Background(), ListApplicationsParams{Status: "accepted_to_join"})
	require.NoError(t, err)
	require.Len(t, page.Applications, 1)
	assert.Equal(t, application.StatusAcceptedToJoin, page.Applications[0].Status)

	_, err = uc.List(context.Background(), ListApplicationsParams{Status: "hired"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListAcceptedToJoin_IgnoresStatusParam(t *testing.T) {
	uc := NewApplicationQueryUsecase(queryFixture(), nil)

	page, err := uc.ListAcceptedToJoin(context.Background(), ListApplicationsParams{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, page.Applications, 1)
	assert.Equal(t, application.StatusAcceptedToJoin, page.Applications[0].Status)
}

func TestList_SearchRequiresPersonalInfo(t *testing.T) {
	uc := NewApplicationQueryUsecase(queryFixture(), nil)

	page, err := uc.List(context.Background(), ListApplicationsParams{Search: "0111"})
	require.NoError(t, err)
	require.Len(t, page.Applications, 1)
	assert.Equal(t, "Omar", page.Applications[0].PersonalInfo.Name)

	page, err = uc.List(context.Background(), ListApplicationsParams{})
	require.NoError(t, err)
	found := false
	for _, a := range page.Applications {
		if a.PersonalInfo == nil {
			found = true
		}
	}
	assert.True(t, found, "applications without personal info must be listed when not searching")
}

func TestList_JobTitleSubstring(t *testing.T) {
	uc := NewApplicationQueryUsecase(queryFixture(), nil)

	page, err := uc.List(context.Background(), ListApplicationsParams{JobTitle: "backend"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.TotalCount)
}

func TestList_RejectsBadPaging(t *testing.T) {
	uc := NewApplicationQueryUsecase(queryFixture(), nil)

	for _, p := range []ListApplicationsParams{{Page: -1}, {Limit: -5}, {Limit: MaxPageSize + 1}} {
		_, err := uc.List(context.Background(), p)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestList_StorageFailureIsInternal(t *testing.T) {
	repo := queryFixture()
	repo.listErr = errors.New("boom")
	uc := NewApplicationQueryUsecase(repo, nil)

	_, err := uc.List(context.Background(), ListApplicationsParams{})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestPaginate(t *testing.T) {
	cases := []struct {
		page, limit, total int
		want               Pagination
	}{
		{1, 10, 0, Pagination{CurrentPage: 1, TotalPages: 0, TotalCount: 0}},
		{1, 10, 10, Pagination{CurrentPage: 1, TotalPages: 1, TotalCount: 10}},
		{1, 10, 11, Pagination{CurrentPage: 1, TotalPages: 2, TotalCount: 11, HasNextPage: true}},
		{2, 10, 11, Pagination{CurrentPage: 2, TotalPages: 2, TotalCount: 11, HasPrevPage: true}},
		{2, 3, 10, Pagination{CurrentPage: 2, TotalPages: 4, TotalCount: 10, HasNextPage: true, HasPrevPage: true}},
		{7, 3, 10, Pagination{CurrentPage: 7, TotalPages: 4, TotalCount: 10, HasPrevPage: true}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Paginate(tc.page, tc.limit, tc.total))
	}
}

func TestList_PageBeyondEndIsEmpty(t *testing.T) {
	uc := NewApplicationQueryUsecase(queryFixture(), nil)

	page, err := uc.List(context.Background(), ListApplicationsParams{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Applications)
	assert.NotNil(t, page.Applications)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.False(t, page.Pagination.HasNextPage)
}

func TestGetByID(t *testing.T) {
	repo := queryFixture()
	uc := NewApplicationQueryUsecase(repo, nil)

	var id uuid.UUID
	for k := range repo.items {
		id = k
		break
	}
	d, err := uc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, d.ID)

	_, err = uc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestStats(t *testing.T) {
	uc := NewApplicationQueryUsecase(queryFixture(), nil)

	s, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, s.TotalApplications)
	assert.Equal(t, 1, s.ByStatus[application.StatusAccepted])
	_, ok := s.ByStatus[application.StatusRejected]
	assert.False(t, ok, "absent statuses are not reported")
}

// midReadUpdate commits a status change while the first stats read is in flight.
type midReadUpdate struct {
	*memApplications
	once   sync.Once
	during func()
}

func (m *midReadUpdate) CountByStatus(ctx context.Context) (map[application.Status]int, error) {
	counts, err := m.memApplications.CountByStatus(ctx)
	m.once.Do(m.during)
	return counts, err
}

func TestStats_StatusChangeDuringReadIsVisibleNext(t *testing.T) {
	repo := &midReadUpdate{memApplications: queryFixture()}
	query := NewApplicationQueryUsecase(repo, nil)
	status := NewApplicationStatusUsecase(repo.memApplications, nil)
	ctx := context.Background()

	var pending uuid.UUID
	for id, d := range repo.items {
		if d.Status == application.StatusPending {
			pending = id
		}
	}
	require.NotEqual(t, uuid.Nil, pending)

	repo.during = func() {
		_, err := status.UpdateStatus(ctx, pending, string(application.StatusRejected))
		require.NoError(t, err)
	}

	stale, err := query.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stale.ByStatus[application.StatusPending])

	fresh, err := query.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.ByStatus[application.StatusRejected])
	assert.Zero(t, fresh.ByStatus[application.StatusPending])
	assert.Equal(t, 4, fresh.TotalApplications)
}
