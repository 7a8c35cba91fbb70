package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"hr-recruitment/internal/domain/application"
	"hr-recruitment/internal/repository"

	"github.com/google/uuid"
)

// memApplications mimics the listing semantics of the Postgres repository
// over an in-memory set of expanded applications.
type memApplications struct {
	mu      sync.Mutex
	items   map[uuid.UUID]application.Details
	lastF   repository.ApplicationFilter
	listErr error
}

func newMemApplications(items ...application.Details) *memApplications {
	m := &memApplications{items: map[uuid.UUID]application.Details{}}
	for _, d := range items {
		m.items[d.ID] = d
	}
	return m
}

func (m *memApplications) match(f repository.ApplicationFilter) []application.Details {
	var out []application.Details
	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, d := range m.items {
		if f.Status != nil && d.Status != *f.Status {
			continue
		}
		if f.Status == nil && f.ExcludeStatus != nil && d.Status == *f.ExcludeStatus {
			continue
		}
		if jt := strings.ToLower(strings.TrimSpace(f.JobTitle)); jt != "" && !strings.Contains(strings.ToLower(d.JobTitle), jt) {
			continue
		}
		if search != "" {
			p := d.PersonalInfo
			if p == nil {
				continue
			}
			hit := strings.Contains(strings.ToLower(p.Name), search) ||
				(p.WhatsappNumber != nil && strings.Contains(*p.WhatsappNumber, search)) ||
				(p.MobileNumber != nil && strings.Contains(*p.MobileNumber, search))
			if !hit {
				continue
			}
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memApplications) List(_ context.Context, f repository.ApplicationFilter, limit, offset int) ([]application.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastF = f
	if m.listErr != nil {
		return nil, m.listErr
	}
	all := m.match(f)
	out := []application.Summary{}
	for i := offset; i < len(all) && i < offset+limit; i++ {
		d := all[i]
		s := application.Summary{ID: d.ID, JobTitle: d.JobTitle, Status: d.Status, CreatedAt: d.CreatedAt}
		if d.PersonalInfo != nil {
			s.PersonalInfo = &application.PersonalSummary{Name: d.PersonalInfo.Name}
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memApplications) Count(_ context.Context, f repository.ApplicationFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastF = f
	return len(m.match(f)), nil
}

func (m *memApplications) FindByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.items[id]
	if !ok {
		return application.Application{}, repository.ErrNotFound
	}
	return d.Application, nil
}

func (m *memApplications) ListAll(context.Context) ([]application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []application.Application{}
	for _, d := range m.match(repository.ApplicationFilter{}) {
		out = append(out, d.Application)
	}
	return out, nil
}

func (m *memApplications) LoadDetails(_ context.Context, apps []application.Application) ([]application.Details, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]application.Details, 0, len(apps))
	for _, a := range apps {
		out = append(out, m.items[a.ID])
	}
	return out, nil
}

func (m *memApplications) CountByStatus(context.Context) (map[application.Status]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[application.Status]int{}
	for _, d := range m.items {
		out[d.Status]++
	}
	return out, nil
}

func (m *memApplications) UpdateStatus(_ context.Context, id uuid.UUID, st application.Status) (application.StatusChange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.items[id]
	if !ok {
		return application.StatusChange{}, repository.ErrNotFound
	}
	prev := d.Status
	d.Status = st
	d.UpdatedAt = time.Now()
	m.items[id] = d
	return application.StatusChange{ApplicationID: id, Previous: prev, Status: st, UpdatedAt: d.UpdatedAt}, nil
}

func seedApp(jobTitle string, st application.Status, created time.Time, p *application.PersonalInfo) application.Details {
	d := application.NewDetails(application.Application{
		ID:        uuid.New(),
		JobTitle:  jobTitle,
		Status:    st,
		CreatedAt: created,
		UpdatedAt: created,
	})
	d.PersonalInfo = p
	return d
}
