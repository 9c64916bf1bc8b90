package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-rel/jpql-example/api/handler"
	"github.com/go-rel/rel"
	"github.com/go-rel/reltest"
	"github.com/stretchr/testify/assert"
)

// failingCommit runs fn and reports a failed commit afterwards.
type failingCommit struct {
	rel.Repository
}

func (failingCommit) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}

	return errors.New("commit failed")
}

func TestTransaction(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		status      int
		response    string
		location    string
		transaction bool
	}{
		{
			name:     "read",
			method:   "GET",
			status:   http.StatusOK,
			response: `{"id":1}`,
			location: "/1",
		},
		{
			name:        "commit",
			method:      "POST",
			status:      http.StatusCreated,
			response:    `{"id":1}`,
			location:    "/1",
			transaction: true,
		},
		{
			name:        "rollback",
			method:      "DELETE",
			status:      http.StatusUnprocessableEntity,
			response:    `{"id":1}`,
			location:    "/1",
			transaction: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var (
				router     = gin.New()
				repository = reltest.New()
				req, _     = http.NewRequest(test.method, "/", nil)
				rr         = httptest.NewRecorder()
			)

			if test.transaction {
				repository.ExpectTransaction(func(repository *reltest.Repository) {})
			}

			router.Use(handler.Transaction(repository))
			router.Handle(test.method, "/", func(c *gin.Context) {
				c.Header("Location", "/1")
				c.JSON(test.status, gin.H{"id": 1})
			})
			router.ServeHTTP(rr, req)

			assert.Equal(t, test.status, rr.Code)
			assert.JSONEq(t, test.response, rr.Body.String())
			assert.Equal(t, test.location, rr.Header().Get("Location"))
			repository.AssertExpectations(t)
		})
	}
}

func TestTransaction_noContent(t *testing.T) {
	var (
		router     = gin.New()
		repository = reltest.New()
		req, _     = http.NewRequest("DELETE", "/", nil)
		rr         = httptest.NewRecorder()
	)

	repository.ExpectTransaction(func(repository *reltest.Repository) {})

	router.Use(handler.Transaction(repository))
	router.DELETE("/", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "", rr.Body.String())
	repository.AssertExpectations(t)
}

func TestTransaction_commitError(t *testing.T) {
	var (
		router = gin.New()
		req, _ = http.NewRequest("POST", "/", nil)
		rr     = httptest.NewRecorder()
	)

	router.Use(handler.Transaction(failingCommit{}))
	router.POST("/", func(c *gin.Context) {
		c.Header("Location", "/1")
		c.JSON(http.StatusCreated, gin.H{"id": 1})
	})
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"commit failed"}`, rr.Body.String())
	assert.Empty(t, rr.Header().Get("Location"))
}
