package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-rel/jpql-example/events"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Events for events endpoints.
type Events struct {
	events events.Service
}

// Index handle GET /
func (e Events) Index(c *gin.Context) {
	var (
		result []events.Event
		filter = events.Filter{
			Title: c.Query("title"),
		}
	)

	for _, param := range []struct {
		key  string
		date *time.Time
	}{
		{"from", &filter.From},
		{"to", &filter.To},
	} {
		str := c.Query(param.key)
		if str == "" {
			continue
		}

		date, err := time.Parse(dateLayout, str)
		if err != nil {
			render(c, fmt.Errorf("%w: %s must be formatted as %s", ErrBadRequest, param.key, dateLayout), 400)
			return
		}

		*param.date = date
	}

	if err := e.events.Search(c, &result, filter); err != nil {
		logger.Error("search error", zap.Error(err))
		render(c, err, 500)
		return
	}

	render(c, result, 200)
}

// Create handle POST /
func (e Events) Create(c *gin.Context) {
	var (
		event events.Event
	)

	if err := c.ShouldBindJSON(&event); err != nil {
		logger.Warn("decode error", zap.Error(err))
		render(c, ErrBadRequest, 400)
		return
	}

	if err := e.events.Create(c, &event); err != nil {
		render(c, err, 422)
		return
	}

	c.Header("Location", fmt.Sprint(c.Request.RequestURI, "/", event.ID))
	render(c, event, 201)
}

// Seed handle POST /seed
func (e Events) Seed(c *gin.Context) {
	result, err := e.events.Seed(c)
	if err != nil {
		logger.Error("seed error", zap.Error(err))
		render(c, err, 500)
		return
	}

	render(c, result, 201)
}

// Mount handlers to router group.
func (e Events) Mount(router *gin.RouterGroup) {
	router.GET("/", e.Index)
	router.POST("/", e.Create)
	router.POST("/seed", e.Seed)
}

// NewEvents handler.
func NewEvents(events events.Service) Events {
	return Events{
		events: events,
	}
}
