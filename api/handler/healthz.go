package handler

import (
	"context"
	"maps"
	"slices"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pinger interface.
type Pinger interface {
	Ping(ctx context.Context) error
}

type ping struct {
	Service string `json:"service"`
	Status  string `json:"status"`
}

// Healthz handler.
type Healthz struct {
	pingers map[string]Pinger
}

// Show handle GET /
func (h Healthz) Show(c *gin.Context) {
	var (
		group    errgroup.Group
		status   = 200
		services = slices.Sorted(maps.Keys(h.pingers))
		pings    = make([]ping, len(services))
	)

	for i, service := range services {
		group.Go(func() error {
			pings[i] = ping{Service: service, Status: "UP"}
			if err := h.pingers[service].Ping(c); err != nil {
				logger.Error("ping error", zap.String("service", service), zap.Error(err))
				pings[i].Status = err.Error()
			}

			return nil
		})
	}
	group.Wait()

	for _, ping := range pings {
		if ping.Status != "UP" {
			status = 503
		}
	}

	render(c, pings, status)
}

// Add a pinger.
func (h *Healthz) Add(name string, ping Pinger) {
	h.pingers[name] = ping
}

// Mount handlers to router group.
func (h *Healthz) Mount(router *gin.RouterGroup) {
	router.GET("/", h.Show)
}

// NewHealthz handler.
func NewHealthz() Healthz {
	h := Healthz{
		pingers: make(map[string]Pinger),
	}

	return h
}
