package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-rel/rel"
	"go.uber.org/zap"
)

var errRollback = errors.New("rollback")

// Transaction is middleware that runs every non-GET request inside a
// database transaction. The transaction is rolled back when the response
// status is 400 or above. The response is held back until the transaction
// ends, a failed commit is answered with 500.
func Transaction(repository rel.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		w := &bufferedWriter{ResponseWriter: c.Writer, status: http.StatusOK}
		c.Writer = w
		defer func() { c.Writer = w.ResponseWriter }()

		err := repository.Transaction(c.Request.Context(), func(ctx context.Context) error {
			c.Request = c.Request.WithContext(ctx)
			c.Next()

			if w.Status() >= http.StatusBadRequest {
				return errRollback
			}

			return nil
		})

		c.Writer = w.ResponseWriter
		if err != nil && !errors.Is(err, errRollback) {
			logger.Error("transaction error", zap.Error(err))
			c.Writer.Header().Del("Location")
			render(c, err, 500)
			return
		}

		w.flush()
	}
}

// bufferedWriter keeps status and body in memory, headers go straight to
// the wrapped writer.
type bufferedWriter struct {
	gin.ResponseWriter
	status  int
	body    bytes.Buffer
	written bool
}

func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 {
		w.status = code
	}
}

func (w *bufferedWriter) WriteHeaderNow() {
	w.written = true
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	w.written = true
	return w.body.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.written = true
	return w.body.WriteString(s)
}

func (w *bufferedWriter) Status() int {
	return w.status
}

func (w *bufferedWriter) Size() int {
	if !w.written {
		return -1
	}

	return w.body.Len()
}

func (w *bufferedWriter) Written() bool {
	return w.written
}

func (w *bufferedWriter) Flush() {}

func (w *bufferedWriter) flush() {
	w.ResponseWriter.WriteHeader(w.status)
	w.ResponseWriter.WriteHeaderNow()

	if w.body.Len() > 0 {
		if _, err := w.ResponseWriter.Write(w.body.Bytes()); err != nil {
			logger.Warn("write error", zap.Error(err))
		}
	}
}
