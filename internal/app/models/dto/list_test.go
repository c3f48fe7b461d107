package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID int `json:"id"`
}

func TestListPayloadBareArray(t *testing.T) {
	var l ListPayload[item]
	require.NoError(t, json.Unmarshal([]byte(`[{"id": 1}, {"id": 2}]`), &l))

	assert.False(t, l.Paginated)
	assert.Len(t, l.Items(), 2)
	assert.Equal(t, int64(2), l.Total())
}

func TestListPayloadPaginated(t *testing.T) {
	var l ListPayload[item]
	raw := `{"count": 12, "next": "http://x/?page=2", "previous": null, "results": [{"id": 1}, {"id": 2}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &l))

	assert.True(t, l.Paginated)
	assert.Len(t, l.Items(), 2)
	assert.Equal(t, int64(12), l.Total())
	require.NotNil(t, l.Next)
	assert.Nil(t, l.Previous)
}

func TestListPayloadEmptyResults(t *testing.T) {
	var l ListPayload[item]
	require.NoError(t, json.Unmarshal([]byte(`{"count": 0, "results": null}`), &l))
	assert.NotNil(t, l.Items())
	assert.Empty(t, l.Items())
}

func TestEnvelope(t *testing.T) {
	ok := Ok([]int{1}, "done").WithPagination(PaginationInfo{Page: 1, Limit: 1, Total: 1, TotalPages: 1})
	assert.True(t, ok.Success)
	assert.NoError(t, ok.Err())
	require.NotNil(t, ok.Pagination)

	cause := errors.New("boom")
	failed := Fail[[]int](cause)
	assert.False(t, failed.Success)
	assert.Equal(t, "boom", failed.Error)
	assert.ErrorIs(t, failed.Err(), cause)
	assert.Nil(t, failed.Data)
}
