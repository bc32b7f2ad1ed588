package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpportunityValidateTrimsAndDefaults(t *testing.T) {
	o := &Opportunity{
		Title:        "  Data Intern  ",
		Organization: "ACME",
		Category:     " Jobs ",
		Location:     "Remote",
		Commitment:   "Full-time",
		Duration:     "6 months",
		Description:  "Work on pipelines",
	}
	require.NoError(t, o.Validate())
	assert.Equal(t, "Data Intern", o.Title)
	assert.Equal(t, CategoryJobs, o.Category)
	assert.NotNil(t, o.Skills)
	assert.Empty(t, o.Skills)
}

func TestOpportunityValidateRejectsUnknownEnums(t *testing.T) {
	o := &Opportunity{
		Title:        "Hack night",
		Organization: "CS Society",
		Category:     "Party",
		Location:     "Moon",
		Commitment:   "1 night",
		Duration:     "12h",
		Description:  "Build things",
	}
	err := o.Validate()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	fields := map[string]bool{}
	for _, fe := range ve.Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["category"])
	assert.True(t, fields["location"])
	assert.Len(t, ve.FieldErrors(), 2)
	assert.Contains(t, ve.FieldErrors(), "category: must be one of Bursary, In-Service, Jobs, Heckathons")
	assert.Contains(t, ve.FieldErrors(), "location: must be one of On-site, Remote, Hybrid, N/A")
}

func TestOpportunityValidateAcceptsEveryEnum(t *testing.T) {
	for _, c := range Categories {
		for _, l := range WorkLocations {
			o := &Opportunity{
				Title: "t", Organization: "o", Category: Category(c), Location: WorkLocation(l),
				Commitment: "c", Duration: "d", Description: "x",
			}
			assert.NoError(t, o.Validate(), "%s/%s", c, l)
		}
	}
}

func TestEventValidate(t *testing.T) {
	open := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	e := &Event{Title: " ", Description: "d", Location: "Hall", OpeningDate: open, ClosingDate: open.Add(-time.Hour)}

	err := e.Validate()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.FieldErrors(), "title: is required")
	assert.Contains(t, ve.FieldErrors(), "closingDate: must not be before openingDate")

	e.Title = "Open day"
	e.ClosingDate = open
	assert.NoError(t, e.Validate())

	err = (&Event{Title: "t", Description: "d", Location: "l"}).Validate()
	require.True(t, errors.As(err, &ve))
	assert.ElementsMatch(t, []string{"openingDate: is required", "closingDate: is required"}, ve.FieldErrors())
}

func TestUserValidateNormalisesEmailAndRole(t *testing.T) {
	u := &User{Name: "Ada", LastName: "Lovelace", Email: "  Ada@Example.COM ", Password: "hash"}
	require.NoError(t, u.Validate())
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)

	u.Role = "root"
	assert.Error(t, u.Validate())

	u.Role = RoleAdmin
	u.Email = "not-an-email"
	err := u.Validate()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"email: is not a valid address"}, ve.FieldErrors())

	err = (&User{Name: "Ada", LastName: "Lovelace", Email: "ada@example.com"}).Validate()
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"password: is required"}, ve.FieldErrors())
}

func TestRegistrationValidateSetsDate(t *testing.T) {
	r := &EventRegistration{EventID: 1, UserID: 2, UserDetails: UserDetails{Name: "A", Surname: "B"}}
	require.NoError(t, r.Validate())
	assert.False(t, r.RegistrationDate.IsZero())

	err := (&EventRegistration{UserDetails: UserDetails{Name: "  "}}).Validate()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.ElementsMatch(t, []string{
		"eventId: is required",
		"userId: is required",
		"userDetails.name: is required",
		"userDetails.surname: is required",
	}, ve.FieldErrors())
}

func TestRegistrationValidateIgnoresPopulatedRefs(t *testing.T) {
	r := &EventRegistration{
		EventID:     1,
		UserID:      2,
		UserDetails: UserDetails{Name: "A", Surname: "B"},
		Event:       &Event{Title: "only title selected"},
		User:        &User{Name: "A"},
	}
	assert.NoError(t, r.Validate())
}

func TestRoleLevel(t *testing.T) {
	assert.Greater(t, RoleAdmin.Level(), RoleUser.Level())
	assert.Equal(t, 0, Role("").Level())
}
