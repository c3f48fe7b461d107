package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(25, 2, 10)
	assert.Equal(t, 2, info.Page)
	assert.Equal(t, 10, info.Limit)
	assert.Equal(t, int64(25), info.Total)
	assert.Equal(t, 3, info.TotalPages)

	empty := NewPaginationInfo(0, 0, 0)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, DefaultPageSize, empty.Limit)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(2, 2))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 1, TotalPages(5, 0))
}

func TestCalculateSliceIndices(t *testing.T) {
	start, end := CalculateSliceIndices(2, 3, 7)
	assert.Equal(t, 3, start)
	assert.Equal(t, 6, end)

	start, end = CalculateSliceIndices(3, 3, 7)
	assert.Equal(t, 6, start)
	assert.Equal(t, 7, end)

	start, end = CalculateSliceIndices(9, 3, 7)
	assert.Equal(t, 7, start)
	assert.Equal(t, 7, end)
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	parse := func(query string) (int, int, bool) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/announcements/"+query, nil)
		return ParsePaginationParams(c, 10)
	}

	page, size, paginated := parse("")
	assert.False(t, paginated)
	assert.Equal(t, 1, page)
	assert.Equal(t, 0, size)

	page, size, paginated = parse("?page=3&page_size=5")
	assert.True(t, paginated)
	assert.Equal(t, 3, page)
	assert.Equal(t, 5, size)

	page, size, paginated = parse("?page=x&page_size=1000")
	assert.True(t, paginated)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)
}
