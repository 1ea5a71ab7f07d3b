package buildsync

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/appleboy/gin-jwt/v2"
	"github.com/gin-gonic/gin"
	gomock "github.com/golang/mock/gomock"
	"github.com/pipesight/pipesight-api/pkg/clients/database"
	"github.com/pipesight/pipesight-api/pkg/clients/githubapi"
	"github.com/pipesight/pipesight-api/pkg/contracts"
	"github.com/stretchr/testify/assert"
)

func TestSyncEndpoint(t *testing.T) {

	t.Run("ReturnsUnauthorizedWithoutTenantClaim", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		databaseClient := database.NewMockClient(ctrl)

		handler := NewHandler(getConfig(), service, databaseClient)
		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)
		c.Request = httptest.NewRequest("POST", "/api/builds/build-1/sync", nil)

		// act
		handler.Sync(c)

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
		c := getAuthenticatedContext(recorder)

		// act
		handler.Sync(c)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("ReturnsBadGatewayWhenCredentialIsRejected", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		build := getBuild()

		service := NewMockService(ctrl)
		service.EXPECT().SyncBuildHistory(gomock.Any(), build).Return(contracts.SyncResult{}, githubapi.ErrAuthenticationFailed)
		databaseClient := database.NewMockClient(ctrl)
		databaseClient.EXPECT().GetBuild(gomock.Any(), "tenant-1", "build-1").Return(&build, nil)

		handler := NewHandler(getConfig(), service, databaseClient)
		recorder := httptest.NewRecorder()
		c := getAuthenticatedContext(recorder)

		// act
		handler.Sync(c)

		assert.Equal(t, http.StatusBadGateway, recorder.Code)
	})

	t.Run("ReturnsSyncResultOnSuccess", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		build := getBuild()

		service := NewMockService(ctrl)
		service.EXPECT().SyncBuildHistory(gomock.Any(), build).Return(contracts.SyncResult{
			NewRunsSynced:     12,
			TestResultsParsed: 4,
			LastSyncedAt:      time.Now().UTC(),
		}, nil)
		databaseClient := database.NewMockClient(ctrl)
		databaseClient.EXPECT().GetBuild(gomock.Any(), "tenant-1", "build-1").Return(&build, nil)

		handler := NewHandler(getConfig(), service, databaseClient)
		recorder := httptest.NewRecorder()
		c := getAuthenticatedContext(recorder)

		// act
		handler.Sync(c)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var result contracts.SyncResult
		err := json.Unmarshal(recorder.Body.Bytes(), &result)
		assert.Nil(t, err)
		assert.Equal(t, 12, result.NewRunsSynced)
		assert.Equal(t, 4, result.TestResultsParsed)
	})
}

func getAuthenticatedContext(recorder *httptest.ResponseRecorder) *gin.Context {
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("POST", "/api/builds/build-1/sync", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "build-1"}}
	c.Set("JWT_PAYLOAD", jwt.MapClaims{"tenant": "tenant-1"})

	return c
}
