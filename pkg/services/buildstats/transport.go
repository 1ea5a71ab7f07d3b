package buildstats

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/clients/database"
	"github.com/pipesight/pipesight-api/pkg/contracts"
	"github.com/rs/zerolog/log"
)

// NewHandler returns the gin handler serving build statistics endpoints
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

func (h *Handler) GetBuildStats(c *gin.Context) {

	tenantID, err := api.RequestTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": http.StatusText(http.StatusUnauthorized)})
		return
	}

	build, failed := h.getBuild(c, tenantID)
	if failed {
		return
	}

	stats, err := h.service.GetBuildStats(c.Request.Context(), *build)
	if err != nil {
		log.Error().Err(err).Msgf("Failed aggregating stats for build %v", build.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusText(http.StatusInternalServerError)})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetBuildDetailsStats(c *gin.Context) {

	tenantID, err := api.RequestTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": http.StatusText(http.StatusUnauthorized)})
		return
	}

	build, failed := h.getBuild(c, tenantID)
	if failed {
		return
	}

	stats, err := h.service.GetBuildDetailsStats(c.Request.Context(), *build)
	if err != nil {
		log.Error().Err(err).Msgf("Failed aggregating details stats for build %v", build.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusText(http.StatusInternalServerError)})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// RefreshBuild drops the cached snapshots for the build's repository and re-aggregates
// right away, returning the fresh snapshot
func (h *Handler) RefreshBuild(c *gin.Context) {

	tenantID, err := api.RequestTenantID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": http.StatusText(http.StatusUnauthorized)})
		return
	}

	build, failed := h.getBuild(c, tenantID)
	if failed {
		return
	}

	h.service.InvalidateRepository(*build)

	stats, err := h.service.GetBuildStats(c.Request.Context(), *build)
	if err != nil {
		log.Error().Err(err).Msgf("Failed re-aggregating stats for build %v", build.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusText(http.StatusInternalServerError)})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) getBuild(c *gin.Context, tenantID string) (build *contracts.Build, failed bool) {

	build, err := h.databaseClient.GetBuild(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrBuildNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusText(http.StatusNotFound)})
			return nil, true
		}
		log.Error().Err(err).Msgf("Failed retrieving build %v", c.Param("id"))
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusText(http.StatusInternalServerError)})
		return nil, true
	}

	return build, false
}
