package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/mustso/portal/internal/pkg/helpers"
)

// pageSize is the default page size of paginated lists
var pageSize = helpers.DefaultPageSize

// SetPageSize changes the default page size; non-positive values are ignored
func SetPageSize(size int) {
	if size > 0 {
		pageSize = min(size, helpers.MaxPageSize)
	}
}

// respondList writes items as a bare array, or as a {count, next,
// previous, results} page when the request asks for page or page_size
func respondList[T any](ctx *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}

	page, size, paginated := helpers.ParsePaginationParams(ctx, pageSize)
	if !paginated {
		ctx.JSON(http.StatusOK, items)
		return
	}

	start, end := helpers.CalculateSliceIndices(page, size, len(items))
	resp := dto.PageResponse[T]{
		Count:   int64(len(items)),
		Results: items[start:end],
	}
	if end < len(items) {
		next := pageURL(ctx, page+1)
		resp.Next = &next
	}
	if page > 1 && start > 0 {
		prev := pageURL(ctx, page-1)
		resp.Previous = &prev
	}
	ctx.JSON(http.StatusOK, resp)
}

func pageURL(ctx *gin.Context, page int) string {
	u := *ctx.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.RequestURI()
}
