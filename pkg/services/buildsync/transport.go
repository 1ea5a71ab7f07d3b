package buildsync

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/clients/database"
	"github.com/pipesight/pipesight-api/pkg/clients/githubapi"
	"github.com/rs/zerolog/log"
)

// NewHandler returns a buildsync.Handler
func NewHandler(config *api.APIConfig, service Service, databaseClient database.Client) Handler {
	return Handler{
		config:         config,
		service:        service,
		databaseClient: databaseClient,
	}
}

type Handler struct {
	config         *api.APIConfig
	service        Service
	databaseClient database.Client
}

// Sync triggers a sync pass for the build in the path parameter
func (h *Handler) Sync(c *gin.Context) {

	tenantID, err := api.RequestTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": http.StatusText(http.StatusUnauthorized)})
		return
	}

	buildID := c.Param("id")

	build, err := h.databaseClient.GetBuild(c.Request.Context(), tenantID, buildID)
	if err != nil {
		if errors.Is(err, database.ErrBuildNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusText(http.StatusNotFound)})
			return
		}
		log.Error().Err(err).Msgf("Failed retrieving build %v", buildID)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusText(http.StatusInternalServerError)})
		return
	}

	result, err := h.service.SyncBuildHistory(c.Request.Context(), *build)
	if err != nil {
		if errors.Is(err, githubapi.ErrAuthenticationFailed) || errors.Is(err, ErrNoCredential) {
			c.JSON(http.StatusBadGateway, gin.H{"code": http.StatusText(http.StatusBadGateway), "message": "The github credential for this build was rejected; please update it"})
			return
		}
		log.Error().Err(err).Msgf("Failed syncing build %v", buildID)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusText(http.StatusInternalServerError)})
		return
	}

	c.JSON(http.StatusOK, result)
}
