package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"status-tracker/models/constants"
	"status-tracker/repositories/incidents"
)

const emptyBufferBody = "No incidents detected yet.\n(The tracker is actively running in the background...)"

func New(incidentsRepo incidents.Repository) *Impl {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	service := &Impl{
		incidentsRepo: incidentsRepo,
		router:        router,
	}
	router.GET("/", service.recentIncidents)

	service.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", viper.GetInt(constants.Port)),
		Handler: router,
	}

	return service
}

// recentIncidents serves the notification buffer as plain text, newest
// first. It only ever reads a snapshot, so a slow HTTP client can never
// block the poll loop.
func (service *Impl) recentIncidents(c *gin.Context) {
	snapshot := service.incidentsRepo.Snapshot()
	if len(snapshot) == 0 {
		c.String(http.StatusOK, emptyBufferBody)
		return
	}

	reversed := make([]string, 0, len(snapshot))
	for i := len(snapshot) - 1; i >= 0; i-- {
		reversed = append(reversed, snapshot[i])
	}

	c.String(http.StatusOK, strings.Join(reversed, "\n\n"))
}

func (service *Impl) ListenAndServe() {
	log.Info().Str("addr", service.server.Addr).Msg("Status page listening")
	if err := service.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Status page server stopped unexpectedly")
	}
}

func (service *Impl) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := service.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown status page server")
	}
}
