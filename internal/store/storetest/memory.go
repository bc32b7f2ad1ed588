// Package storetest 提供 store.Store 的内存实现，供处理器与通知流程的测试使用
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"campus-notifier/internal/model"
	"campus-notifier/internal/store"
)

var _ store.Store = (*Memory)(nil)

// Memory 与 GormStore 行为一致：写入前执行模型校验，维护邮箱与报名唯一性，删除活动或用户时级联删除报名
type Memory struct {
	mu     sync.Mutex
	nextID uint

	users         map[uint]model.User
	events        map[uint]model.Event
	opportunities map[uint]model.Opportunity
	registrations map[uint]model.EventRegistration

	// Fail 按方法名注入错误，例如 Fail["ListUserEmails"] = errors.New("down")
	Fail map[string]error
}

func NewMemory() *Memory {
	return &Memory{
		users:         map[uint]model.User{},
		events:        map[uint]model.Event{},
		opportunities: map[uint]model.Opportunity{},
		registrations: map[uint]model.EventRegistration{},
		Fail:          map[string]error{},
	}
}

func (m *Memory) fail(method string) error {
	return m.Fail[method]
}

func (m *Memory) stamp(mdl *model.Model) {
	now := time.Now()
	if mdl.ID == 0 {
		m.nextID++
		mdl.ID = m.nextID
		mdl.CreatedAt = now
	}
	mdl.UpdatedAt = now
}

func (m *Memory) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fail("Ping")
}

// ---- users ----

func (m *Memory) emailTaken(email string, except uint) bool {
	for id, u := range m.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

func (m *Memory) CreateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateUser"); err != nil {
		return err
	}
	if err := u.Validate(); err != nil {
		return err
	}
	if m.emailTaken(u.Email, 0) {
		return store.ErrDuplicate
	}
	m.stamp(&u.Model)
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) GetUser(_ context.Context, id uint) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *Memory) ListUsers(context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ListUsers"); err != nil {
		return nil, err
	}
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) UpdateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return store.ErrNotFound
	}
	if err := u.Validate(); err != nil {
		return err
	}
	if m.emailTaken(u.Email, u.ID) {
		return store.ErrDuplicate
	}
	m.stamp(&u.Model)
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) DeleteUser(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.users, id)
	for rid, r := range m.registrations {
		if r.UserID == id {
			delete(m.registrations, rid)
		}
	}
	return nil
}

func (m *Memory) ListUserEmails(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ListUserEmails"); err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(m.users))
	for id, u := range m.users {
		if u.Email != "" {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	emails := make([]string, 0, len(ids))
	for _, id := range ids {
		emails = append(emails, m.users[id].Email)
	}
	return emails, nil
}

// ---- events ----

func (m *Memory) CreateEvent(_ context.Context, e *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateEvent"); err != nil {
		return err
	}
	if err := e.Validate(); err != nil {
		return err
	}
	m.stamp(&e.Model)
	m.events[e.ID] = *e
	return nil
}

func (m *Memory) GetEvent(_ context.Context, id uint) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetEvent"); err != nil {
		return nil, err
	}
	e, ok := m.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &e, nil
}

func (m *Memory) ListEvents(_ context.Context, p store.Page) ([]model.Event, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]model.Event, 0, len(m.events))
	for _, e := range m.events {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].OpeningDate.Equal(all[j].OpeningDate) {
			return all[i].ID < all[j].ID
		}
		return all[i].OpeningDate.Before(all[j].OpeningDate)
	})
	return window(all, p), int64(len(all)), nil
}

func (m *Memory) UpdateEvent(_ context.Context, e *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[e.ID]; !ok {
		return store.ErrNotFound
	}
	if err := e.Validate(); err != nil {
		return err
	}
	m.stamp(&e.Model)
	m.events[e.ID] = *e
	return nil
}

func (m *Memory) DeleteEvent(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.events, id)
	for rid, r := range m.registrations {
		if r.EventID == id {
			delete(m.registrations, rid)
		}
	}
	return nil
}

// ---- opportunities ----

func (m *Memory) CreateOpportunity(_ context.Context, o *model.Opportunity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateOpportunity"); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	m.stamp(&o.Model)
	m.opportunities[o.ID] = *o
	return nil
}

func (m *Memory) GetOpportunity(_ context.Context, id uint) (*model.Opportunity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.opportunities[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &o, nil
}

func (m *Memory) ListOpportunities(_ context.Context, f store.OpportunityFilter, p store.Page) ([]model.Opportunity, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []model.Opportunity
	for _, o := range m.opportunities {
		if f.Category != "" && o.Category != f.Category {
			continue
		}
		if f.Location != "" && o.Location != f.Location {
			continue
		}
		matched = append(matched, o)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return window(matched, p), int64(len(matched)), nil
}

func (m *Memory) UpdateOpportunity(_ context.Context, o *model.Opportunity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.opportunities[o.ID]; !ok {
		return store.ErrNotFound
	}
	if err := o.Validate(); err != nil {
		return err
	}
	m.stamp(&o.Model)
	m.opportunities[o.ID] = *o
	return nil
}

func (m *Memory) DeleteOpportunity(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.opportunities[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.opportunities, id)
	return nil
}

// ---- registrations ----

func (m *Memory) populate(r model.EventRegistration) model.EventRegistration {
	if e, ok := m.events[r.EventID]; ok {
		r.Event = &e
	}
	if u, ok := m.users[r.UserID]; ok {
		r.User = &u
	}
	return r
}

func (m *Memory) CreateRegistration(_ context.Context, r *model.EventRegistration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateRegistration"); err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if _, ok := m.events[r.EventID]; !ok {
		return store.ErrNotFound
	}
	if _, ok := m.users[r.UserID]; !ok {
		return store.ErrNotFound
	}
	for _, existing := range m.registrations {
		if existing.EventID == r.EventID && existing.UserID == r.UserID {
			return store.ErrDuplicate
		}
	}
	m.stamp(&r.Model)
	stored := *r
	stored.Event, stored.User = nil, nil
	m.registrations[r.ID] = stored
	return nil
}

func (m *Memory) GetRegistration(_ context.Context, id uint) (*model.EventRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.registrations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	r = m.populate(r)
	return &r, nil
}

func (m *Memory) ListRegistrations(_ context.Context, eventID uint) ([]model.EventRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ListRegistrations"); err != nil {
		return nil, err
	}
	out := []model.EventRegistration{}
	for _, r := range m.registrations {
		if eventID != 0 && r.EventID != eventID {
			continue
		}
		out = append(out, m.populate(r))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RegistrationDate.Equal(out[j].RegistrationDate) {
			return out[i].ID > out[j].ID
		}
		return out[i].RegistrationDate.After(out[j].RegistrationDate)
	})
	return out, nil
}

func (m *Memory) RegistrationExists(_ context.Context, eventID, userID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("RegistrationExists"); err != nil {
		return false, err
	}
	for _, r := range m.registrations {
		if r.EventID == eventID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) DeleteRegistration(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.registrations[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.registrations, id)
	return nil
}

func window[T any](all []T, p store.Page) []T {
	start := p.Offset()
	if start >= len(all) || start < 0 {
		return []T{}
	}
	end := start + p.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
