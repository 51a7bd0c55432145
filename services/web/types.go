package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"status-tracker/repositories/incidents"
)

type Service interface {
	ListenAndServe()
	Shutdown()
}

type Impl struct {
	incidentsRepo incidents.Repository
	router        *gin.Engine
	server        *http.Server
}
