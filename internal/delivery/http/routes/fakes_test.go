package routes

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"hr-recruitment/internal/database"
	"hr-recruitment/internal/domain/application"
	"hr-recruitment/internal/domain/hruser"
	"hr-recruitment/internal/domain/jobtitle"
	"hr-recruitment/internal/repository"
	"hr-recruitment/internal/usecase"
	ucauth "hr-recruitment/internal/usecase/auth"

	"github.com/google/uuid"
)

var errUnsupported = errors.New("not supported by memory store")

// memStore keeps committed applications in memory. Writes go through memTx
// and only become visible on Commit.
type memStore struct {
	mu    sync.Mutex
	items map[uuid.UUID]application.Details
	order []uuid.UUID
}

func newMemStore() *memStore {
	return &memStore{items: map[uuid.UUID]application.Details{}}
}

func (s *memStore) Begin(context.Context) (database.Tx, error) {
	return &memTx{store: s, staged: map[uuid.UUID]*application.Details{}}, nil
}

type memTx struct {
	store  *memStore
	staged map[uuid.UUID]*application.Details
	ids    []uuid.UUID
	done   bool
}

func (t *memTx) Exec(context.Context, string, ...any) (int64, error) { return 0, errUnsupported }
func (t *memTx) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errUnsupported
}
func (t *memTx) QueryRow(context.Context, string, ...any) database.Row { return nil }

func (t *memTx) Commit(context.Context) error {
	if t.done {
		return errors.New("tx closed")
	}
	t.done = true
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, id := range t.ids {
		t.store.items[id] = *t.staged[id]
		t.store.order = append(t.store.order, id)
	}
	return nil
}

func (t *memTx) Rollback(context.Context) error {
	t.done = true
	return nil
}

type memWriter struct{ tx *memTx }

func newMemWriter(q database.Querier) repository.ApplicationWriter {
	return memWriter{tx: q.(*memTx)}
}

func (w memWriter) get(id uuid.UUID) *application.Details { return w.tx.staged[id] }

func (w memWriter) InsertApplication(_ context.Context, a application.Application) error {
	d := application.NewDetails(a)
	w.tx.staged[a.ID] = &d
	w.tx.ids = append(w.tx.ids, a.ID)
	return nil
}

func (w memWriter) InsertPersonalInfo(_ context.Context, p application.PersonalInfo) error {
	w.get(p.ApplicationID).PersonalInfo = &p
	return nil
}

func (w memWriter) InsertExperiences(_ context.Context, items []application.Experience) error {
	for _, e := range items {
		d := w.get(e.ApplicationID)
		d.Experiences = append(d.Experiences, e)
	}
	return nil
}

func (w memWriter) InsertCurrentJob(_ context.Context, c application.CurrentJob) error {
	w.get(c.ApplicationID).CurrentJob = &c
	return nil
}

func (w memWriter) InsertPredefinedSkills(_ context.Context, s application.PredefinedSkills) error {
	w.get(s.ApplicationID).PredefinedSkills = &s
	return nil
}

func (w memWriter) InsertCustomSkills(_ context.Context, items []application.CustomSkill) error {
	for _, s := range items {
		d := w.get(s.ApplicationID)
		d.CustomSkills = append(d.CustomSkills, s)
	}
	return nil
}

func (w memWriter) InsertLanguages(_ context.Context, l application.Languages) error {
	w.get(l.ApplicationID).Languages = &l
	return nil
}

func (w memWriter) InsertAdditionalLanguages(_ context.Context, items []application.AdditionalLanguage) error {
	for _, l := range items {
		d := w.get(l.ApplicationID)
		d.AdditionalLanguages = append(d.AdditionalLanguages, l)
	}
	return nil
}

func (w memWriter) InsertCompanyRelationships(_ context.Context, c application.CompanyRelationships) error {
	w.get(c.ApplicationID).CompanyRelationships = &c
	return nil
}

func (w memWriter) InsertEducation(_ context.Context, items []application.Education) error {
	for _, e := range items {
		d := w.get(e.ApplicationID)
		d.Education = append(d.Education, e)
	}
	return nil
}

func (s *memStore) match(f repository.ApplicationFilter) []application.Details {
	out := []application.Details{}
	for i := len(s.order) - 1; i >= 0; i-- {
		d := s.items[s.order[i]]
		if f.Status != nil && d.Status != *f.Status {
			continue
		}
		if f.Status == nil && f.ExcludeStatus != nil && d.Status == *f.ExcludeStatus {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (s *memStore) List(_ context.Context, f repository.ApplicationFilter, limit, offset int) ([]application.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.match(f)
	out := []application.Summary{}
	for i := offset; i < len(all) && i < offset+limit; i++ {
		d := all[i]
		out = append(out, application.Summary{ID: d.ID, JobTitle: d.JobTitle, Status: d.Status, CreatedAt: d.CreatedAt})
	}
	return out, nil
}

func (s *memStore) Count(_ context.Context, f repository.ApplicationFilter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.match(f)), nil
}

func (s *memStore) FindByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.items[id]
	if !ok {
		return application.Application{}, repository.ErrNotFound
	}
	return d.Application, nil
}

func (s *memStore) ListAll(context.Context) ([]application.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []application.Application{}
	for _, d := range s.match(repository.ApplicationFilter{}) {
		out = append(out, d.Application)
	}
	return out, nil
}

func (s *memStore) LoadDetails(_ context.Context, apps []application.Application) ([]application.Details, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]application.Details, 0, len(apps))
	for _, a := range apps {
		d := s.items[a.ID]
		d.Application = a
		out = append(out, d)
	}
	return out, nil
}

func (s *memStore) CountByStatus(context.Context) (map[application.Status]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[application.Status]int{}
	for _, d := range s.items {
		out[d.Status]++
	}
	return out, nil
}

func (s *memStore) UpdateStatus(_ context.Context, id uuid.UUID, st application.Status) (application.StatusChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.items[id]
	if !ok {
		return application.StatusChange{}, repository.ErrNotFound
	}
	prev := d.Status
	d.Status = st
	d.UpdatedAt = time.Now().UTC()
	s.items[id] = d
	return application.StatusChange{ApplicationID: id, Previous: prev, Status: st, UpdatedAt: d.UpdatedAt}, nil
}

// stubAuth accepts a fixed set of bearer tokens.
type stubAuth struct {
	tokens map[string]hruser.User
}

func (a stubAuth) Authenticate(_ context.Context, token string) (hruser.User, error) {
	u, ok := a.tokens[token]
	if !ok {
		return hruser.User{}, usecase.ErrUnauthorized
	}
	return u, nil
}

func (a stubAuth) Login(_ context.Context, in ucauth.LoginInput) (usecase.LoginResult, error) {
	for tok, u := range a.tokens {
		if u.Username == in.Username && in.Password == "secret1" {
			return usecase.LoginResult{User: u, Token: tok, ExpiresAt: time.Now().Add(time.Hour)}, nil
		}
	}
	return usecase.LoginResult{}, ucauth.ErrInvalidCredentials
}

func (a stubAuth) Profile(ctx context.Context, id uuid.UUID) (hruser.User, error) {
	for _, u := range a.tokens {
		if u.ID == id {
			return u, nil
		}
	}
	return hruser.User{}, ucauth.ErrUserNotFound
}

func (a stubAuth) ChangePassword(context.Context, uuid.UUID, string, string) error { return nil }

func (a stubAuth) ListUsers(context.Context) ([]hruser.User, error) {
	out := []hruser.User{}
	for _, u := range a.tokens {
		out = append(out, u)
	}
	return out, nil
}

func (a stubAuth) CreateUser(context.Context, ucauth.CreateUserInput) (hruser.User, error) {
	return hruser.User{}, ucauth.ErrUserExists
}

func (a stubAuth) UpdateUser(context.Context, uuid.UUID, ucauth.UpdateUserInput) (hruser.User, error) {
	return hruser.User{}, ucauth.ErrUserNotFound
}

func (a stubAuth) DeleteUser(_ context.Context, actorID, id uuid.UUID) (hruser.User, error) {
	if actorID == id {
		return hruser.User{}, ucauth.ErrCannotDeleteSelf
	}
	return hruser.User{}, ucauth.ErrUserNotFound
}

func (a stubAuth) Roles() []usecase.RoleInfo {
	return (&usecase.Auth{}).Roles()
}

type countingLimiter struct {
	mu   sync.Mutex
	seen map[string]int
}

func (l *countingLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seen == nil {
		l.seen = map[string]int{}
	}
	l.seen[key]++
	return l.seen[key] <= limit
}

type stubJobTitles struct {
	mu    sync.Mutex
	items []jobtitle.JobTitle
}

func newStubJobTitles() *stubJobTitles { return &stubJobTitles{} }

func (s *stubJobTitles) ListActive(context.Context) ([]jobtitle.JobTitle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []jobtitle.JobTitle{}
	for _, j := range s.items {
		if j.IsActive {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *stubJobTitles) ListAll(context.Context) ([]jobtitle.JobTitle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]jobtitle.JobTitle{}, s.items...), nil
}

func (s *stubJobTitles) Create(_ context.Context, title string, isActive *bool) (jobtitle.JobTitle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.items {
		if strings.EqualFold(j.Title, title) {
			return jobtitle.JobTitle{}, usecase.ErrJobTitleExists
		}
	}
	j := jobtitle.JobTitle{ID: uuid.New(), Title: title, IsActive: isActive == nil || *isActive}
	s.items = append(s.items, j)
	return j, nil
}

func (s *stubJobTitles) Update(ctx context.Context, id uuid.UUID, title *string, isActive *bool) (jobtitle.JobTitle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if title != nil {
			s.items[i].Title = *title
		}
		if isActive != nil {
			s.items[i].IsActive = *isActive
		}
		return s.items[i], nil
	}
	return jobtitle.JobTitle{}, usecase.ErrJobTitleNotFound
}

func (s *stubJobTitles) SetActive(ctx context.Context, id uuid.UUID, isActive bool) (jobtitle.JobTitle, error) {
	return s.Update(ctx, id, nil, &isActive)
}

func (s *stubJobTitles) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, j := range s.items {
		if j.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return usecase.ErrJobTitleNotFound
}
