package normalize

import (
	"testing"

	"github.com/mustso/portal/internal/app/models"
	"github.com/stretchr/testify/assert"
)

func TestPersonName(t *testing.T) {
	tests := []struct {
		name string
		ref  models.PersonRef
		want string
	}{
		{"plain string", models.PersonName("Sarah Johnson"), "Sarah Johnson"},
		{"empty string kept", models.PersonName(""), ""},
		{"full name", models.Identity{FirstName: "Jane", LastName: "Doe", Email: "j@x.com"}, "Jane Doe"},
		{"first name only", models.Identity{FirstName: "Jane", Email: "j@x.com"}, "Jane"},
		{"email fallback", models.Identity{Email: "j@x.com"}, "j@x.com"},
		{"whitespace names", models.Identity{FirstName: "  ", LastName: " ", Email: "j@x.com"}, "j@x.com"},
		{"empty identity", models.Identity{}, "Unknown"},
		{"nil", nil, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PersonName(tt.ref))
		})
	}
}

func TestPersonNameStringIdempotent(t *testing.T) {
	for _, s := range []string{"Ada Lovelace", "Unknown", "j@x.com", ""} {
		once := PersonName(models.PersonName(s))
		assert.Equal(t, s, once)
		assert.Equal(t, once, PersonName(models.PersonName(once)))
	}
}

func TestCategoryLabel(t *testing.T) {
	named := "Academic"
	empty := ""

	tests := []struct {
		name string
		ref  models.CategoryRef
		want string
	}{
		{"plain string", models.CategoryName("Company News"), "Company News"},
		{"the string Unknown", models.CategoryName("Unknown"), "Unknown"},
		{"object with name", models.CategoryInfo{ID: "1", Name: &named}, "Academic"},
		{"object with empty name", models.CategoryInfo{Name: &empty}, ""},
		{"object without name", models.CategoryInfo{ID: "1", Slug: "academic"}, "Unknown"},
		{"nil", nil, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryLabel(tt.ref))
		})
	}
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "U", Initials(""))
	assert.Equal(t, "U", Initials("   "))
	assert.Equal(t, "AL", Initials("Ada Lovelace"))
	assert.Equal(t, "M", Initials("Madonna"))
	assert.Equal(t, "DS", Initials("dr. sarah johnson"))
	assert.Equal(t, "ÉZ", Initials("émile zola"))
}

func TestUserName(t *testing.T) {
	assert.Equal(t, "Unknown", UserName(nil))
	assert.Equal(t, "John Doe", UserName(&models.User{FirstName: "John", LastName: "Doe"}))
	assert.Equal(t, "a@b.c", UserName(&models.User{Email: "a@b.c"}))
}
