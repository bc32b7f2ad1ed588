package opportunity

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"campus-notifier/internal/global/paging"
	"campus-notifier/internal/global/response"
	"campus-notifier/internal/model"
	"campus-notifier/internal/store/storetest"
	"campus-notifier/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store *storetest.Memory
	box   *test.Mailbox
	mod   *ModuleOpportunity
	r     *gin.Engine
	admin string
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: storetest.NewMemory(), box: &test.Mailbox{}}
	n := test.Notifier(f.store, f.box)
	t.Cleanup(n.Wait)
	f.mod = &ModuleOpportunity{Store: f.store, Notifier: n}
	f.r = test.Engine(f.mod)
	f.admin = test.Token(t, 1, model.RoleAdmin)
	return f
}

func (f *fixture) users(t *testing.T, emails ...string) {
	t.Helper()
	for _, email := range emails {
		require.NoError(t, f.store.CreateUser(context.Background(), &model.User{
			Name: "N", LastName: "L", Email: email, Password: "hash",
		}))
	}
}

func (f *fixture) opportunity(t *testing.T, title string, cat model.Category, loc model.WorkLocation) {
	t.Helper()
	require.NoError(t, f.store.CreateOpportunity(context.Background(), &model.Opportunity{
		Title: title, Organization: "WSU", Category: cat, Location: loc,
		Commitment: "Part-time", Duration: "3 months", Description: "d",
	}))
}

func internship() gin.H {
	return gin.H{
		"title":        "Data Intern",
		"organization": "Acme",
		"category":     "Jobs",
		"location":     "Remote",
		"commitment":   "Full-time",
		"duration":     "6 months",
		"description":  "Work with data",
		"skills":       []string{"SQL", "Go"},
	}
}

func TestCreateNotifiesAllUsers(t *testing.T) {
	f := setup(t)
	f.users(t, "a@wsu.ac.za", "b@wsu.ac.za", "c@wsu.ac.za")
	f.box.Fail = map[string]error{"a@wsu.ac.za": errors.New("550 mailbox unavailable")}

	w, body := test.Do(t, f.r, test.Request{Method: http.MethodPost, Path: "/api/opportunities", Token: f.admin, Body: internship()})
	require.Equal(t, http.StatusCreated, w.Code, body.Msg)
	created := test.Data[model.Opportunity](t, body)
	assert.Equal(t, []string{"SQL", "Go"}, created.Skills)

	f.mod.Notifier.Wait()
	assert.ElementsMatch(t, []string{"a@wsu.ac.za", "b@wsu.ac.za", "c@wsu.ac.za"}, f.box.Recipients())
	assert.Equal(t, "🎯 New Opportunity: Data Intern - Acme", f.box.Sent()[0].Subject)
	assert.Contains(t, f.box.Sent()[0].Text, "SQL, Go")
}

func TestCreateWithoutUsersSendsNothing(t *testing.T) {
	f := setup(t)
	body := internship()
	delete(body, "skills")
	w, resp := test.Do(t, f.r, test.Request{Method: http.MethodPost, Path: "/api/opportunities", Token: f.admin, Body: body})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{}, test.Data[model.Opportunity](t, resp).Skills)

	f.mod.Notifier.Wait()
	assert.Empty(t, f.box.Sent())
}

func TestCreateValidation(t *testing.T) {
	f := setup(t)
	body := internship()
	body["category"] = "Internships"
	delete(body, "organization")

	w, resp := test.Do(t, f.r, test.Request{Method: http.MethodPost, Path: "/api/opportunities", Token: f.admin, Body: body})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	test.ErrorEqual(t, response.ErrValidation, resp)
	assert.ElementsMatch(t, []string{
		"organization: is required",
		"category: must be one of Bursary, In-Service, Jobs, Heckathons",
	}, resp.Fields)

	w, _ = test.Do(t, f.r, test.Request{Method: http.MethodPost, Path: "/api/opportunities", Token: test.Token(t, 5, model.RoleUser), Body: internship()})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListFilters(t *testing.T) {
	f := setup(t)
	f.opportunity(t, "bursary", model.CategoryBursary, model.WorkLocationNA)
	f.opportunity(t, "remote job", model.CategoryJobs, model.WorkLocationRemote)
	f.opportunity(t, "onsite job", model.CategoryJobs, model.WorkLocationOnSite)

	_, body := test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/opportunities?category=Jobs"})
	page := test.Data[paging.Result[model.Opportunity]](t, body)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, defaultLimit, page.Limit)
	for _, o := range page.Data {
		assert.Equal(t, model.CategoryJobs, o.Category)
	}

	_, body = test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/opportunities?category=Jobs&location=Remote"})
	page = test.Data[paging.Result[model.Opportunity]](t, body)
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "remote job", page.Data[0].Title)

	_, body = test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/opportunities?limit=1&page=2"})
	page = test.Data[paging.Result[model.Opportunity]](t, body)
	assert.EqualValues(t, 3, page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "remote job", page.Data[0].Title)

	_, body = test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/opportunities?category=Volunteer"})
	test.ErrorEqual(t, response.ErrValidation, body)
}

func TestUpdateAndDelete(t *testing.T) {
	f := setup(t)
	f.opportunity(t, "bursary", model.CategoryBursary, model.WorkLocationNA)

	_, body := test.Do(t, f.r, test.Request{
		Method: http.MethodPatch, Path: "/api/opportunities/1", Token: f.admin,
		Body: gin.H{"location": "Hybrid", "skills": []string{"Excel"}},
	})
	test.NoError(t, body)
	updated := test.Data[model.Opportunity](t, body)
	assert.Equal(t, model.WorkLocationHybrid, updated.Location)
	assert.Equal(t, model.CategoryBursary, updated.Category)
	assert.Equal(t, []string{"Excel"}, updated.Skills)

	_, body = test.Do(t, f.r, test.Request{Method: http.MethodPatch, Path: "/api/opportunities/1", Token: f.admin, Body: gin.H{"location": "Mars"}})
	test.ErrorEqual(t, response.ErrValidation, body)

	w, _ := test.Do(t, f.r, test.Request{Method: http.MethodDelete, Path: "/api/opportunities/1", Token: f.admin})
	require.Equal(t, http.StatusOK, w.Code)

	_, body = test.Do(t, f.r, test.Request{Method: http.MethodGet, Path: "/api/opportunities/1"})
	test.ErrorEqual(t, response.ErrNotFound, body)

	_, body = test.Do(t, f.r, test.Request{Method: http.MethodDelete, Path: "/api/opportunities/1", Token: f.admin})
	test.ErrorEqual(t, response.ErrNotFound, body)

	_, body = test.Do(t, f.r, test.Request{Method: http.MethodDelete, Path: "/api/opportunities/-1", Token: f.admin})
	test.ErrorEqual(t, response.ErrInvalidID, body)
}
