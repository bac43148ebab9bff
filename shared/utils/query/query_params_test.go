package query

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type row struct {
	name, status string
}

var rowFields = Fields[row]{
	"name":   func(r row) string { return r.name },
	"status": func(r row) string { return r.status },
}

func TestParseQueryParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/x?page=2&limit=500&search=acme&filters[status]=active&filters[plan]=&sort[field]=name&sort[order]=sideways", nil)

	p := ParseQueryParams(c)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, "acme", p.Search)
	assert.Equal(t, map[string]string{"status": "active"}, p.Filters)
	assert.Equal(t, SortParams{Field: "name", Order: "asc"}, p.Sort)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/x?page=-1&limit=0", nil)
	p = ParseQueryParams(c)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.Limit)
}

func TestApply(t *testing.T) {
	rows := []row{
		{"Acme", "active"},
		{"Beta", "trial"},
		{"acme west", "active"},
		{"Gamma", "active"},
	}

	got, page := Apply(rows, FilterParams{
		Filters: map[string]string{"status": "active", "unknown": "x"},
		Search:  "ACME",
		Sort:    SortParams{Field: "name", Order: "desc"},
		Page:    1,
		Limit:   10,
	}, rowFields, []string{"name"})
	assert.Equal(t, []row{{"acme west", "active"}, {"Acme", "active"}}, got)
	assert.Equal(t, int64(2), page.Total)
	assert.False(t, page.HasNext)

	got, page = Apply(rows, FilterParams{Page: 2, Limit: 3, Sort: SortParams{Order: "asc"}}, rowFields, nil)
	assert.Equal(t, []row{{"Gamma", "active"}}, got)
	assert.Equal(t, int64(2), page.TotalPages)
	assert.True(t, page.HasPrev)

	got, _ = Apply(rows, FilterParams{Page: 1, Limit: 2, Sort: SortParams{Order: "desc"}}, rowFields, nil)
	assert.Equal(t, []row{{"Gamma", "active"}, {"acme west", "active"}}, got)

	got, _ = Apply(rows, FilterParams{Page: 9, Limit: 2}, rowFields, nil)
	assert.Empty(t, got)
}

func TestBuildPaginationResponse(t *testing.T) {
	p := BuildPaginationResponse(1, 10, 25)
	assert.Equal(t, int64(3), p.TotalPages)
	assert.True(t, p.HasNext)
	assert.False(t, p.HasPrev)
}
