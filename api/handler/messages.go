package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-rel/jpql-example/messages"
	"github.com/go-rel/rel"
	"github.com/go-rel/rel/where"
	"go.uber.org/zap"
)

const (
	loadKey string = "messagesLoadKey"
)

// Messages for messages endpoints.
type Messages struct {
	repository rel.Repository
	messages   messages.Service
}

type query struct {
	Query      string         `json:"query"`
	Parameters map[string]any `json:"parameters"`
}

type count struct {
	Count int `json:"count"`
}

// Index handle GET /.
func (m Messages) Index(c *gin.Context) {
	var (
		result []messages.Message
	)

	filter, err := bindFilter(c)
	if err != nil {
		render(c, err, 400)
		return
	}

	if err := m.messages.Search(c, &result, filter); err != nil {
		logger.Error("search error", zap.Error(err))
		render(c, err, 500)
		return
	}

	render(c, result, 200)
}

// Count handle GET /count.
func (m Messages) Count(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		render(c, err, 400)
		return
	}

	n, err := m.messages.Count(c, filter)
	if err != nil {
		logger.Error("count error", zap.Error(err))
		render(c, err, 500)
		return
	}

	render(c, count{Count: n}, 200)
}

// Query handle GET /query, it shows the statement Index would run.
func (m Messages) Query(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		render(c, err, 400)
		return
	}

	b, err := m.messages.Query(filter)
	if err != nil {
		render(c, err, 422)
		return
	}

	render(c, query{Query: b.Render(), Parameters: b.Parameters()}, 200)
}

// Filter handle GET /filter, content and id are LIKE patterns.
func (m Messages) Filter(c *gin.Context) {
	result, err := m.messages.FilterByContentAndID(c, c.DefaultQuery("content", "%"), c.DefaultQuery("id", "%"))
	if err != nil {
		logger.Error("filter error", zap.Error(err))
		render(c, err, 500)
		return
	}

	render(c, result, 200)
}

// Create handle POST /
func (m Messages) Create(c *gin.Context) {
	var (
		message messages.Message
	)

	if err := c.ShouldBindJSON(&message); err != nil {
		logger.Warn("decode error", zap.Error(err))
		render(c, ErrBadRequest, 400)
		return
	}

	if err := m.messages.Create(c, &message); err != nil {
		render(c, err, 422)
		return
	}

	c.Header("Location", fmt.Sprint(c.Request.RequestURI, "/", message.ID))
	render(c, message, 201)
}

// Show handle GET /{ID}
func (m Messages) Show(c *gin.Context) {
	var (
		message = c.MustGet(loadKey).(messages.Message)
	)

	render(c, message, 200)
}

// Destroy handle DELETE /{ID}
func (m Messages) Destroy(c *gin.Context) {
	var (
		message = c.MustGet(loadKey).(messages.Message)
	)

	if err := m.messages.Delete(c, &message); err != nil {
		render(c, err, 422)
		return
	}

	render(c, nil, 204)
}

// Load is middleware that loads messages to context.
func (m Messages) Load(c *gin.Context) {
	var (
		id, _   = strconv.Atoi(c.Param("ID"))
		message messages.Message
	)

	if err := m.repository.Find(c, &message, where.Eq("id", id)); err != nil {
		if errors.Is(err, rel.ErrNotFound) {
			render(c, err, 404)
			c.Abort()
			return
		}
		panic(err)
	}

	c.Set(loadKey, message)
	c.Next()
}

// Mount handlers to router group.
func (m Messages) Mount(router *gin.RouterGroup) {
	router.GET("/", m.Index)
	router.GET("/count", m.Count)
	router.GET("/query", m.Query)
	router.GET("/filter", m.Filter)
	router.POST("/", m.Create)
	router.GET("/:ID", m.Load, m.Show)
	router.DELETE("/:ID", m.Load, m.Destroy)
}

// NewMessages handler.
func NewMessages(repository rel.Repository, messages messages.Service) Messages {
	return Messages{
		repository: repository,
		messages:   messages,
	}
}

func bindFilter(c *gin.Context) (messages.Filter, error) {
	var (
		filter = messages.Filter{
			Keyword: c.Query("keyword"),
			Profile: c.Query("profile"),
		}
		ints = []struct {
			key   string
			value *int
		}{
			{"profile_id", &filter.ProfileID},
			{"from_id", &filter.FromID},
			{"to_id", &filter.ToID},
		}
	)

	for _, param := range ints {
		str := c.Query(param.key)
		if str == "" {
			continue
		}

		n, err := strconv.Atoi(str)
		if err != nil {
			return filter, fmt.Errorf("%w: %s must be a number", ErrBadRequest, param.key)
		}

		*param.value = n
	}

	return filter, nil
}
