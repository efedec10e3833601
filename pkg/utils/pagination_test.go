package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return c
}

func TestParsePagination_Defaults(t *testing.T) {
	p := ParsePagination(paginationContext(""))

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset())
}

func TestParsePagination_CapsLimit(t *testing.T) {
	p := ParsePagination(paginationContext("page=3&limit=500"))

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 200, p.Offset())
}

func TestParsePagination_InvalidValuesFallBack(t *testing.T) {
	p := ParsePagination(paginationContext("page=-2&limit=abc"))

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
}
