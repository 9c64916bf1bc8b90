// Package api exposes the message board and events over HTTP.
package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/go-rel/jpql-example/api/handler"
	"github.com/go-rel/jpql-example/events"
	"github.com/go-rel/jpql-example/jpql"
	"github.com/go-rel/jpql-example/messages"
	"github.com/go-rel/jpql-example/session"
	"github.com/go-rel/rel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewMux api.
func NewMux(repository rel.Repository, gatherer prometheus.Gatherer, options ...jpql.Option) *gin.Engine {
	var (
		logger, _       = zap.NewProduction()
		router          = gin.New()
		registry        = session.NewRegistry(messages.Mappings...)
		queries         = session.New(repository, registry)
		messagesService = messages.New(repository, queries, options...)
		eventsService   = events.New(repository, queries, options...)
		healthzHandler  = handler.NewHealthz()
		messagesHandler = handler.NewMessages(repository, messagesService)
		eventsHandler   = handler.NewEvents(eventsService)
	)

	registry.Register(events.Mapping)
	healthzHandler.Add("database", queries)

	router.ContextWithFallback = true
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(requestid.New())
	router.Use(cors.Default())
	router.Use(handler.Transaction(repository))

	healthzHandler.Mount(router.Group("/healthz"))
	messagesHandler.Mount(router.Group("/messages"))
	eventsHandler.Mount(router.Group("/events"))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return router
}
