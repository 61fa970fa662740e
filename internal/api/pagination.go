package api

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Pohioki/foodgram-project-react/internal/types"
)

const defaultPageSize = 6

// pageParams reads `page` and `limit` query parameters. Pages are 1-based;
// bad or missing values fall back to defaults rather than erroring.
func pageParams(c *gin.Context) (page, limit int) {
	page = 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	limit = defaultPageSize
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}

// paginate wraps results in the {count, next, previous, results} envelope,
// with next/previous rendered as full request URLs.
func paginate(c *gin.Context, count int64, page, limit int, results interface{}) types.Page {
	envelope := types.Page{
		Count:   count,
		Results: results,
	}
	if int64(page*limit) < count {
		envelope.Next = pageURL(c, page+1)
	}
	if page > 1 {
		envelope.Previous = pageURL(c, page-1)
	}
	return envelope
}

func pageURL(c *gin.Context, page int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	link := u.String()
	if c.Request.Host != "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		link = fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, link)
	}
	return &link
}
