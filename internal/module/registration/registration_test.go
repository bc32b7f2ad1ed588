package registration

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"campus-notifier/internal/global/response"
	"campus-notifier/internal/model"
	"campus-notifier/internal/store"
	"campus-notifier/internal/store/storetest"
	"campus-notifier/test"
	"campus-notifier/tools"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fixture struct {
	store *storetest.Memory
	mod   *ModuleRegistration
	r     *gin.Engine
}

func setup(t *testing.T, st store.Store, locker lockerFunc) *fixture {
	t.Helper()
	mem := storetest.NewMemory()
	if st == nil {
		st = mem
	}
	f := &fixture{store: mem, mod: &ModuleRegistration{Store: st}}
	if locker != nil {
		f.mod.Locker = locker
	}
	f.r = test.Engine(f.mod)
	return f
}

// seed 创建两个用户与一个活动
func (f *fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	for _, email := range []string{"a@wsu.ac.za", "b@wsu.ac.za"} {
		require.NoError(t, f.store.CreateUser(ctx, &model.User{Name: "N", LastName: "L", Email: email, Password: "hash"}))
	}
	open := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, f.store.CreateEvent(ctx, &model.Event{
		Title: "Career Expo", Description: "d", Location: "Great Hall",
		OpeningDate: open, ClosingDate: open.Add(time.Hour),
	}))
}

type lockerFunc func(ctx context.Context, key string, ttl time.Duration) (func(), bool, error)

func (f lockerFunc) Lock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	return f(ctx, key, ttl)
}

// 用户 1、2 为 seed 创建的用户，活动 3 为 seed 创建的活动
func register(t *testing.T, f *fixture, userID uint) (*httptest.ResponseRecorder, test.ResponseBody) {
	return test.Do(t, f.r, test.Request{
		Method: http.MethodPost,
		Path:   "/api/event-register/3",
		Token:  test.Token(t, userID, model.RoleUser),
	})
}

func TestRegisterOnce(t *testing.T) {
	f := setup(t, nil, nil)
	f.seed(t)

	w, body := register(t, f, 1)
	require.Equal(t, http.StatusCreated, w.Code, body.Msg)
	reg := test.Data[model.EventRegistration](t, body)
	assert.Equal(t, uint(3), reg.EventID)
	assert.Equal(t, uint(1), reg.UserID)
	assert.Equal(t, model.UserDetails{Name: "Test", Surname: "User"}, reg.UserDetails)
	assert.False(t, reg.RegistrationDate.IsZero())

	w, body = register(t, f, 1)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	test.ErrorEqual(t, response.ErrAlreadyRegistered, body)

	w, _ = register(t, f, 2)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRegisterRejects(t *testing.T) {
	f := setup(t, nil, nil)
	f.seed(t)
	token := test.Token(t, 1, model.RoleUser)

	w, _ := test.Do(t, f.r, test.Request{Method: http.MethodPost, Path: "/api/event-register/3"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := test.Do(t, f.r, test.Request{Method: http.MethodPost, Path: "/api/event-register/99", Token: token})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.ErrNotFound.Code, body.Code)

	w, body = test.Do(t, f.r, test.Request{Method: http.MethodPost, Path: "/api/event-register/xyz", Token: token})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	test.ErrorEqual(t, response.ErrInvalidID, body)
}

func TestRegisterLock(t *testing.T) {
	var keys []string
	busy := lockerFunc(func(_ context.Context, key string, _ time.Duration) (func(), bool, error) {
		keys = append(keys, key)
		return func() {}, false, nil
	})
	f := setup(t, nil, busy)
	f.seed(t)

	w, body := register(t, f, 1)
	assert.Equal(t, http.StatusConflict, w.Code)
	test.ErrorEqual(t, response.ErrRegistrationBusy, body)
	assert.Equal(t, []string{"registration:3:1"}, keys)

	broken := lockerFunc(func(context.Context, string, time.Duration) (func(), bool, error) {
		return func() {}, false, errors.New("redis: connection refused")
	})
	f = setup(t, nil, broken)
	f.seed(t)
	w, _ = register(t, f, 1)
	assert.Equal(t, http.StatusCreated, w.Code)
}

// racyStore 模拟存在性检查与插入之间的竞争窗口
type racyStore struct {
	*storetest.Memory
}

func (racyStore) RegistrationExists(context.Context, uint, uint) (bool, error) {
	return false, nil
}

func TestRegisterDuplicateInsert(t *testing.T) {
	mem := storetest.NewMemory()
	f := setup(t, racyStore{mem}, nil)
	f.store = mem
	f.seed(t)

	w, _ := register(t, f, 1)
	require.Equal(t, http.StatusCreated, w.Code)
	w, body := register(t, f, 1)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	test.ErrorEqual(t, response.ErrAlreadyRegistered, body)
}

func TestRegisterConcurrent(t *testing.T) {
	f := setup(t, nil, nil)
	f.seed(t)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w, _ := register(t, f, 1)
			if w.Code == http.StatusCreated {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)

	list, err := f.store.ListRegistrations(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestList(t *testing.T) {
	f := setup(t, nil, nil)
	f.seed(t)
	register(t, f, 1)
	register(t, f, 2)

	w, body := test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/event-register"})
	require.Equal(t, http.StatusOK, w.Code)
	all := test.Data[[]model.EventRegistration](t, body)
	require.Len(t, all, 2)
	require.NotNil(t, all[0].Event)
	assert.Equal(t, "Career Expo", all[0].Event.Title)
	require.NotNil(t, all[0].User)
	assert.NotEmpty(t, all[0].User.Email)

	_, body = test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/event-register?eventId=42"})
	assert.Empty(t, test.Data[[]model.EventRegistration](t, body))

	_, body = test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/event-register?eventId=abc"})
	test.ErrorEqual(t, response.ErrInvalidID, body)
}

func TestGet(t *testing.T) {
	f := setup(t, nil, nil)
	f.seed(t)
	register(t, f, 1)

	w, _ := test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/event-register/4"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	_, body := test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/event-register/4", Token: test.Token(t, 2, model.RoleUser)})
	test.NoError(t, body)
	assert.Equal(t, uint(1), test.Data[model.EventRegistration](t, body).UserID)

	_, body = test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/event-register/40", Token: test.Token(t, 2, model.RoleUser)})
	test.ErrorEqual(t, response.ErrNotFound, body)
}

func TestDeleteOwnership(t *testing.T) {
	f := setup(t, nil, nil)
	f.seed(t)
	register(t, f, 1)
	register(t, f, 2)

	w, body := test.Do(t, f.r, test.Request{Method: http.MethodDelete, Path: "/api/event-register/4", Token: test.Token(t, 2, model.RoleUser)})
	assert.Equal(t, http.StatusForbidden, w.Code)
	test.ErrorEqual(t, response.ErrUnauthorized, body)

	w, _ = test.Do(t, f.r, test.Request{Method: http.MethodDelete, Path: "/api/event-register/4", Token: test.Token(t, 1, model.RoleUser)})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = test.Do(t, f.r, test.Request{Method: http.MethodDelete, Path: "/api/event-register/5", Token: test.Token(t, 9, model.RoleAdmin)})
	assert.Equal(t, http.StatusOK, w.Code)

	w, body = test.Do(t, f.r, test.Request{Method: http.MethodDelete, Path: "/api/event-register/5", Token: test.Token(t, 9, model.RoleAdmin)})
	assert.Equal(t, http.StatusNotFound, w.Code)
	test.ErrorEqual(t, response.ErrNotFound, body)

	w, body = test.Do(t, f.r, test.Request{Method: http.MethodDelete, Path: "/api/event-register/0", Token: test.Token(t, 9, model.RoleAdmin)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	test.ErrorEqual(t, response.ErrInvalidID, body)
}

func TestExport(t *testing.T) {
	f := setup(t, nil, nil)
	f.seed(t)
	register(t, f, 1)

	w, _ := test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/event-register/export", Token: test.Token(t, 1, model.RoleUser)})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/event-register/export?eventId=3", Token: test.Token(t, 9, model.RoleAdmin)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tools.ExcelContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "registrations-event-3.xlsx")

	book, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer book.Close()
	rows, err := book.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Registration ID", "Event ID", "Event", "Name", "Surname", "Email", "Registered At"}, rows[0])
	assert.Equal(t, []string{"4", "3", "Career Expo", "Test", "User", "a@wsu.ac.za"}, rows[1][:6])
}
