package form

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tags(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Tag)
	}
	return out
}

func TestValidateCourseForm(t *testing.T) {
	r := Validate(CourseSchema, url.Values{
		"name":        {"  Comedies "},
		"description": {"satire and humour"},
		"cover":       {"https://example.com/c.png"},
		"is_new":      {"y"},
		"date_start":  {"2022-09-23T12:00"},
		"date_end":    {""},
	})
	require.True(t, r.Valid(), "errors: %v", r.Errors)

	assert.Equal(t, "Comedies", r.String("name"))
	assert.Equal(t, "satire and humour", r.String("description"))
	assert.True(t, r.Bool("is_new"))
	require.NotNil(t, r.Time("date_start"))
	assert.Equal(t, time.Date(2022, 9, 23, 12, 0, 0, 0, time.UTC), *r.Time("date_start"))
	assert.Nil(t, r.Time("date_end"))
}

func TestValidateReportsFieldErrors(t *testing.T) {
	r := Validate(CourseSchema, url.Values{
		"name":       {""},
		"cover":      {"not a url"},
		"date_start": {"yesterday"},
	})
	require.False(t, r.Valid())

	assert.Equal(t, []string{"required"}, tags(r.Errors["name"]))
	assert.Equal(t, []string{"required"}, tags(r.Errors["description"]))
	assert.Equal(t, []string{"http_url"}, tags(r.Errors["cover"]))
	assert.Equal(t, []string{"datetime"}, tags(r.Errors["date_start"]))
	assert.NotContains(t, r.Errors, "is_new")
	assert.Equal(t, "not a url", r.Value("cover"))
}

func TestValidateBoolCoercion(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		want   bool
	}{
		{"absent", url.Values{}, false},
		{"checkbox on", url.Values{"remember_me": {"on"}}, true},
		{"explicit false", url.Values{"remember_me": {"false"}}, false},
		{"empty but present", url.Values{"remember_me": {""}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.values.Set("email", "a@b.cd")
			tt.values.Set("password", "x")
			r := Validate(LoginSchema, tt.values)
			require.True(t, r.Valid())
			assert.Equal(t, tt.want, r.Bool("remember_me"))
		})
	}
}

func TestValidateLoginForm(t *testing.T) {
	// any stored login is accepted, not only well-formed addresses
	r := Validate(LoginSchema, url.Values{"email": {" root "}, "password": {" pass "}})
	require.True(t, r.Valid(), "errors: %v", r.Errors)
	assert.Equal(t, "root", r.String("email"))
	assert.Equal(t, " pass ", r.String("password"))
	assert.Empty(t, r.Value("password"), "passwords are never redisplayed")

	r = Validate(LoginSchema, url.Values{"email": {""}, "password": {""}})
	assert.Equal(t, []string{"required"}, tags(r.Errors["email"]))
	assert.Equal(t, []string{"required"}, tags(r.Errors["password"]))
	assert.Equal(t, "form.errors.required", r.Errors["email"][0].MessageID())
}

func TestValidateCoverNeedsWebURL(t *testing.T) {
	tests := []struct {
		cover string
		valid bool
	}{
		{"https://example.com/c.png", true},
		{"http://example.com/c.png", true},
		{"javascript:alert(1)", false},
		{"foo:bar", false},
		{"example.com/c.png", false},
	}
	for _, tt := range tests {
		t.Run(tt.cover, func(t *testing.T) {
			r := Validate(CourseSchema, url.Values{
				"name":        {"n"},
				"description": {"d"},
				"cover":       {tt.cover},
			})
			assert.Equal(t, tt.valid, r.Valid(), "errors: %v", r.Errors)
		})
	}
}

func TestValidateDateTimeLayouts(t *testing.T) {
	for _, v := range []string{"2022-12-23T12:00", "2022-12-23T12:00:00", "2022-12-23T12:00:00Z"} {
		r := Validate(Schema{{Name: "d", Kind: DateTime}}, url.Values{"d": {v}})
		require.True(t, r.Valid(), v)
		assert.True(t, r.Time("d").Equal(time.Date(2022, 12, 23, 12, 0, 0, 0, time.UTC)), v)
	}
}

func TestAddError(t *testing.T) {
	r := Validate(Schema{}, url.Values{})
	assert.True(t, r.Valid())
	r.AddError("date_end", "after_start", "")
	assert.False(t, r.Valid())
	assert.Equal(t, "form.errors.after_start", r.Errors["date_end"][0].MessageID())
}
