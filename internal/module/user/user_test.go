package user

import (
	"context"
	"net/http"
	"testing"

	"campus-notifier/internal/global/jwt"
	"campus-notifier/internal/global/response"
	"campus-notifier/internal/model"
	"campus-notifier/internal/store/storetest"
	"campus-notifier/test"
	"campus-notifier/tools"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store *storetest.Memory
	box   *test.Mailbox
	mod   *ModuleUser
	r     *gin.Engine
}

func setup(t *testing.T, admins ...string) *fixture {
	t.Helper()
	f := &fixture{store: storetest.NewMemory(), box: &test.Mailbox{}}
	n := test.Notifier(f.store, f.box)
	t.Cleanup(n.Wait)
	f.mod = &ModuleUser{Store: f.store, Notifier: n, AdminEmails: admins}
	f.r = test.Engine(f.mod)
	return f
}

func (f *fixture) seed(t *testing.T, email string, role model.Role) *model.User {
	t.Helper()
	hash, err := tools.PasswordEncrypt("password123")
	require.NoError(t, err)
	u := &model.User{Name: "Thandi", LastName: "Mokoena", Email: email, Password: hash, Role: role}
	require.NoError(t, f.store.CreateUser(context.Background(), u))
	return u
}

func TestSignup(t *testing.T) {
	f := setup(t)
	w, body := test.Do(t, f.r, test.Request{
		Method: http.MethodPost,
		Path:   "/api/users/signup",
		Body:   gin.H{"name": "Thandi", "lastName": "Mokoena", "email": " Thandi@WSU.ac.za ", "password": "password123"},
	})
	require.Equal(t, http.StatusCreated, w.Code, body.Msg)

	session := test.Data[Session](t, body)
	assert.Equal(t, "thandi@wsu.ac.za", session.Email)
	assert.Equal(t, model.RoleUser, session.Role)
	claims, ok := jwt.ParseToken(session.Token)
	require.True(t, ok)
	assert.Equal(t, "Mokoena", claims.Surname)

	f.mod.Notifier.Wait()
	sent := f.box.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "thandi@wsu.ac.za", sent[0].To)
	assert.Equal(t, "Welcome to WSU Event Notifier!", sent[0].Subject)
}

func TestSignupAdminBootstrap(t *testing.T) {
	f := setup(t, "Dean@wsu.ac.za")
	_, body := test.Do(t, f.r, test.Request{
		Method: http.MethodPost,
		Path:   "/api/users/signup",
		Body:   gin.H{"name": "Dean", "lastName": "Office", "email": "dean@wsu.ac.za", "password": "password123"},
	})
	assert.Equal(t, model.RoleAdmin, test.Data[Session](t, body).Role)
}

func TestSignupRejects(t *testing.T) {
	f := setup(t)
	f.seed(t, "taken@wsu.ac.za", model.RoleUser)

	_, body := test.Do(t, f.r, test.Request{
		Method: http.MethodPost,
		Path:   "/api/users/signup",
		Body:   gin.H{"name": "A", "lastName": "B", "email": "taken@wsu.ac.za", "password": "password123"},
	})
	test.ErrorEqual(t, response.ErrEmailInUse, body)

	w, body := test.Do(t, f.r, test.Request{
		Method: http.MethodPost,
		Path:   "/api/users/signup",
		Body:   gin.H{"name": "A", "lastName": "B", "email": "not-an-email", "password": "short"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	test.ErrorEqual(t, response.ErrValidation, body)
	assert.ElementsMatch(t, []string{"email: is not a valid address", "password: must be at least 8"}, body.Fields)
}

func TestLogin(t *testing.T) {
	f := setup(t)
	u := f.seed(t, "thandi@wsu.ac.za", model.RoleUser)

	w, body := test.Do(t, f.r, test.Request{
		Method: http.MethodPost,
		Path:   "/api/users/login",
		Body:   gin.H{"email": "THANDI@wsu.ac.za", "password": "password123"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	session := test.Data[Session](t, body)
	claims, ok := jwt.ParseToken(session.Token)
	require.True(t, ok)
	assert.Equal(t, u.ID, claims.ID)

	w, body = test.Do(t, f.r, test.Request{
		Method: http.MethodPost,
		Path:   "/api/users/login",
		Body:   gin.H{"email": "  Thandi@WSU.ac.za\t", "password": "password123"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "thandi@wsu.ac.za", test.Data[Session](t, body).Email)

	for _, creds := range []gin.H{
		{"email": "thandi@wsu.ac.za", "password": "wrong-password"},
		{"email": "nobody@wsu.ac.za", "password": "password123"},
	} {
		w, body = test.Do(t, f.r, test.Request{Method: http.MethodPost, Path: "/api/users/login", Body: creds})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		test.ErrorEqual(t, response.ErrInvalidPassword, body)
	}
}

func TestListRequiresAdmin(t *testing.T) {
	f := setup(t)
	u := f.seed(t, "thandi@wsu.ac.za", model.RoleUser)

	w, _ := test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/users"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/users", Token: test.Token(t, u.ID, model.RoleUser)})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body := test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/users", Token: test.Token(t, 99, model.RoleAdmin)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, test.Data[[]model.User](t, body), 1)
	assert.NotContains(t, string(body.Data), "password")
}

func TestGetSelfOrAdmin(t *testing.T) {
	f := setup(t)
	a := f.seed(t, "a@wsu.ac.za", model.RoleUser)
	b := f.seed(t, "b@wsu.ac.za", model.RoleUser)

	w, _ := test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/users/2", Token: test.Token(t, a.ID, model.RoleUser)})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body := test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/users/2", Token: test.Token(t, b.ID, model.RoleUser)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b@wsu.ac.za", test.Data[model.User](t, body).Email)

	_, body = test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/users/abc", Token: test.Token(t, a.ID, model.RoleAdmin)})
	test.ErrorEqual(t, response.ErrInvalidID, body)

	_, body = test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/users/42", Token: test.Token(t, a.ID, model.RoleAdmin)})
	test.ErrorEqual(t, response.ErrNotFound, body)
}

func TestUpdateEmail(t *testing.T) {
	f := setup(t)
	a := f.seed(t, "a@wsu.ac.za", model.RoleUser)
	f.seed(t, "b@wsu.ac.za", model.RoleUser)
	token := test.Token(t, a.ID, model.RoleUser)

	_, body := test.Do(t, f.r, test.Request{Method: http.MethodPatch, Path: "/api/users/1", Token: token, Body: gin.H{"email": "b@wsu.ac.za"}})
	test.ErrorEqual(t, response.ErrEmailInUse, body)

	w, body := test.Do(t, f.r, test.Request{Method: http.MethodPatch, Path: "/api/users/1", Token: token, Body: gin.H{"email": "a@wsu.ac.za", "name": "Ayanda"}})
	require.Equal(t, http.StatusOK, w.Code, body.Msg)
	updated := test.Data[model.User](t, body)
	assert.Equal(t, "Ayanda", updated.Name)
	assert.Equal(t, "Mokoena", updated.LastName)
	assert.Equal(t, "a@wsu.ac.za", updated.Email)
}

func TestUpdatePasswordAndRole(t *testing.T) {
	f := setup(t)
	a := f.seed(t, "a@wsu.ac.za", model.RoleUser)

	_, body := test.Do(t, f.r, test.Request{
		Method: http.MethodPatch, Path: "/api/users/1",
		Token: test.Token(t, a.ID, model.RoleUser),
		Body:  gin.H{"role": "admin"},
	})
	assert.Equal(t, response.ErrUnauthorized.Code, body.Code)

	w, _ := test.Do(t, f.r, test.Request{
		Method: http.MethodPatch, Path: "/api/users/1",
		Token: test.Token(t, 7, model.RoleAdmin),
		Body:  gin.H{"role": "admin", "password": "new-password"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := f.store.GetUser(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, stored.Role)
	assert.True(t, tools.PasswordCompare("new-password", stored.Password))
}

func TestDelete(t *testing.T) {
	f := setup(t)
	f.seed(t, "a@wsu.ac.za", model.RoleUser)
	admin := test.Token(t, 9, model.RoleAdmin)

	w, _ := test.Do(t, f.r, test.Request{Method: http.MethodDelete, Path: "/api/users/1", Token: admin})
	require.Equal(t, http.StatusOK, w.Code)

	w, body := test.Do(t, f.r, test.Request{Method: http.MethodDelete, Path: "/api/users/1", Token: admin})
	assert.Equal(t, http.StatusNotFound, w.Code)
	test.ErrorEqual(t, response.ErrNotFound, body)

	w, body = test.Do(t, f.r, test.Request{Method: http.MethodDelete, Path: "/api/users/0", Token: admin})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	test.ErrorEqual(t, response.ErrInvalidID, body)
}
