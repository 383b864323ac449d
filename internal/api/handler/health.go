package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const readinessTimeout = 3 * time.Second

// Liveness answers GET /health. A 200 only proves the process is alive;
// it says nothing about the backing stores.
func Liveness(c echo.Context) error {
	return respond(c, http.StatusOK, map[string]string{"status": "ok"}, "")
}

// DependencyProbe checks one backing store.
type DependencyProbe func(ctx context.Context) error

// ReadinessHandler answers GET /health/ready by probing every backing
// store. Any failed probe flips the response to 503 so orchestrators stop
// routing traffic here, with the failure reported per dependency.
type ReadinessHandler struct {
	probes map[string]DependencyProbe
}

func NewReadinessHandler(db *mongo.Database, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{probes: map[string]DependencyProbe{
		"mongodb": func(ctx context.Context) error {
			return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		},
		"redis": func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	}}
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	deps := make(map[string]string, len(h.probes))
	ready := true
	for name, probe := range h.probes {
		if err := probe(ctx); err != nil {
			deps[name] = err.Error()
			ready = false
			continue
		}
		deps[name] = "ok"
	}

	if !ready {
		return c.JSON(http.StatusServiceUnavailable, Response{
			Message: "degraded",
			Data:    deps,
		})
	}
	return respond(c, http.StatusOK, deps, "ready")
}
