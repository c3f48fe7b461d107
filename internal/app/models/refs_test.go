package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonDecoding(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want PersonRef
	}{
		{"plain name", `"Sarah Johnson"`, PersonName("Sarah Johnson")},
		{"null", `null`, nil},
		{
			"camelCase identity",
			`{"id": 7, "email": "j@x.com", "firstName": "Jane", "lastName": "Doe"}`,
			Identity{ID: "7", Email: "j@x.com", FirstName: "Jane", LastName: "Doe"},
		},
		{
			"snake_case identity",
			`{"id": "7", "email": "j@x.com", "first_name": "Jane", "last_name": "Doe"}`,
			Identity{ID: "7", Email: "j@x.com", FirstName: "Jane", LastName: "Doe"},
		},
		{
			"camelCase wins",
			`{"firstName": "Jane", "first_name": "Janet"}`,
			Identity{FirstName: "Jane"},
		},
		{"empty object", `{}`, Identity{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Person
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &p))
			assert.Equal(t, tt.want, p.Ref)
		})
	}

	t.Run("bare primary key", func(t *testing.T) {
		var p Person
		require.NoError(t, json.Unmarshal([]byte(`42`), &p))
		assert.Equal(t, Identity{ID: "42"}, p.Ref)
	})

	for _, raw := range []string{`true`, `[1, 2]`} {
		t.Run("unusable "+raw, func(t *testing.T) {
			var p Person
			require.NoError(t, json.Unmarshal([]byte(raw), &p))
			assert.Nil(t, p.Ref)
		})
	}
}

func TestAnnouncementListWithOddReferences(t *testing.T) {
	var items []Announcement
	raw := `[{"id": 1, "author": "Jane"}, {"id": 2, "author": 7, "category": 3}, {"id": 3, "author": false, "category": ["x"]}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &items))
	require.Len(t, items, 3)

	assert.Equal(t, PersonName("Jane"), items[0].Author.Ref)
	assert.Equal(t, Identity{ID: "7"}, items[1].Author.Ref)
	assert.Equal(t, CategoryInfo{ID: "3"}, items[1].Category.Ref)
	assert.Nil(t, items[2].Author.Ref)
	assert.Nil(t, items[2].Category.Ref)
}

func TestPersonFieldMissing(t *testing.T) {
	var c Comment
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "content": "hi"}`), &c))
	assert.Nil(t, c.Author.Ref)
}

func TestCategoryDecoding(t *testing.T) {
	name := "Academic"

	tests := []struct {
		name string
		raw  string
		want CategoryRef
	}{
		{"plain label", `"Company News"`, CategoryName("Company News")},
		{"object", `{"id": 3, "name": "Academic", "slug": "academic"}`, CategoryInfo{ID: "3", Name: &name, Slug: "academic"}},
		{"object without name", `{"id": 3, "slug": "academic"}`, CategoryInfo{ID: "3", Slug: "academic"}},
		{"bare primary key", `3`, CategoryInfo{ID: "3"}},
		{"null", `null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c CategoryField
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &c))
			assert.Equal(t, tt.want, c.Ref)
		})
	}
}

func TestIDCodec(t *testing.T) {
	var ids []ID
	require.NoError(t, json.Unmarshal([]byte(`[1, "2", "abc", null]`), &ids))
	assert.Equal(t, []ID{"1", "2", "abc", ""}, ids)

	out, err := json.Marshal([]ID{"12", "abc", "007", "+5", "-3"})
	require.NoError(t, err)
	assert.JSONEq(t, `[12, "abc", "007", "+5", -3]`, string(out))

	out, err = json.Marshal(struct{ ID ID }{"007"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ID": "007"}`, string(out))
}

func TestAchievementsDecoding(t *testing.T) {
	t.Run("plain strings", func(t *testing.T) {
		var a Achievements
		require.NoError(t, json.Unmarshal([]byte(`["Led orientation", "Raised funds"]`), &a))
		assert.Equal(t, Achievements{"Led orientation", "Raised funds"}, a)
	})

	t.Run("structured entries sorted by order", func(t *testing.T) {
		var a Achievements
		raw := `[{"id": 2, "achievement": "second", "order": 1}, {"id": 1, "achievement": "first", "order": 0}]`
		require.NoError(t, json.Unmarshal([]byte(raw), &a))
		assert.Equal(t, Achievements{"first", "second"}, a)
	})
}

func TestCollegeLegacyLeader(t *testing.T) {
	raw := `{
		"id": "1",
		"name": "College of Engineering & Technology",
		"leader": {"name": "Dr. Sarah Johnson", "image": ""},
		"departments": [{"name": "Computer Science", "leaderName": "Prof. David Wilson"}]
	}`

	var c College
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	assert.Equal(t, "Dr. Sarah Johnson", c.LeaderName)
	require.Len(t, c.Departments, 1)
	assert.Equal(t, "Prof. David Wilson", c.Departments[0].LeaderName)
}

func TestUserNameVariants(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id": 2, "email": "a@b.c", "first_name": "Sarah", "last_name": "Johnson", "role": "admin"}`), &u))
	assert.Equal(t, "Sarah", u.FirstName)
	assert.Equal(t, "Johnson", u.LastName)
	assert.True(t, u.IsAdmin())

	var nilUser *User
	assert.False(t, nilUser.IsAdmin())
}

func TestParseTimestamp(t *testing.T) {
	_, ok := ParseTimestamp("2024-01-15T10:00:00Z")
	assert.True(t, ok)
	_, ok = ParseTimestamp("2024-01-15")
	assert.True(t, ok)
	_, ok = ParseTimestamp("2 hours ago")
	assert.False(t, ok)
}
