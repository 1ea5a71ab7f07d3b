package buildstats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	jwt "github.com/appleboy/gin-jwt/v2"
	"github.com/gin-gonic/gin"
	gomock "github.com/golang/mock/gomock"
	"github.com/pipesight/pipesight-api/pkg/clients/database"
	"github.com/pipesight/pipesight-api/pkg/contracts"
	"github.com/stretchr/testify/assert"
)

func TestGetBuildStatsEndpoint(t *testing.T) {

	t.Run("ReturnsUnauthorizedWithoutTenantClaim", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		databaseClient := database.NewMockClient(ctrl)

		handler := NewHandler(getConfig(), service, databaseClient)
		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)
		c.Request = httptest.NewRequest("GET", "/api/builds/build-1/stats", nil)

		// act
		handler.GetBuildStats(c)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("ReturnsNotFoundForUnknownBuild", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		databaseClient := database.NewMockClient(ctrl)
		databaseClient.EXPECT().GetBuild(gomock.Any(), "tenant-1", "build-1").Return(nil, database.ErrBuildNotFound)

		handler := NewHandler(getConfig(), service, databaseClient)
		recorder := httptest.NewRecorder()
		c := getAuthenticatedContext(recorder, "GET", "/api/builds/build-1/stats")

		// act
		handler.GetBuildStats(c)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("ReturnsAggregatedStatsForKnownBuild", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		build := getBuild()

		service := NewMockService(ctrl)
		service.EXPECT().GetBuildStats(gomock.Any(), build).Return(contracts.BuildStats{
			TotalExecutions:      4,
			SuccessfulExecutions: 3,
			FailedExecutions:     1,
			HealthPercentage:     75,
		}, nil)
		databaseClient := database.NewMockClient(ctrl)
		databaseClient.EXPECT().GetBuild(gomock.Any(), "tenant-1", "build-1").Return(&build, nil)

		handler := NewHandler(getConfig(), service, databaseClient)
		recorder := httptest.NewRecorder()
		c := getAuthenticatedContext(recorder, "GET", "/api/builds/build-1/stats")

		// act
		handler.GetBuildStats(c)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var stats contracts.BuildStats
		err := json.Unmarshal(recorder.Body.Bytes(), &stats)
		assert.Nil(t, err)
		assert.Equal(t, 75, stats.HealthPercentage)
	})
}

func TestRefreshBuildEndpoint(t *testing.T) {

	t.Run("InvalidatesCachedSnapshotsAndReturnsFreshStats", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		build := getBuild()

		service := NewMockService(ctrl)
		service.EXPECT().InvalidateRepository(build).Times(1)
		service.EXPECT().GetBuildStats(gomock.Any(), build).Return(contracts.BuildStats{HealthPercentage: 92}, nil)
		databaseClient := database.NewMockClient(ctrl)
		databaseClient.EXPECT().GetBuild(gomock.Any(), "tenant-1", "build-1").Return(&build, nil)

		handler := NewHandler(getConfig(), service, databaseClient)
		recorder := httptest.NewRecorder()
		c := getAuthenticatedContext(recorder, "POST", "/api/builds/build-1/refresh")

		// act
		handler.RefreshBuild(c)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"healthPercentage":92`)
	})
}

func getAuthenticatedContext(recorder *httptest.ResponseRecorder, method, path string) *gin.Context {
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(method, path, nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "build-1"}}
	c.Set("JWT_PAYLOAD", jwt.MapClaims{"tenant": "tenant-1"})

	return c
}
