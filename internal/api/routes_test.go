package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alcyxob/workout-tracker/internal/repository/memory"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := memory.NewMemoryUserRepository()
	exerciseRepo := memory.NewMemoryExerciseRepository()
	workoutRepo := memory.NewMemoryWorkoutRepository()

	router := gin.New()
	err := SetupRoutes(
		router,
		service.NewAuthService(userRepo, testJWTSecret, time.Hour),
		service.NewWorkoutService(workoutRepo, exerciseRepo),
		service.NewReportService(workoutRepo, nil),
		service.NewExerciseService(exerciseRepo, workoutRepo),
	)
	require.NoError(t, err)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func signupAndLogin(t *testing.T, router http.Handler) (token, userID string) {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username": "frank",
		"email":    "frank@example.com",
		"password": "Sup3rS3cret!",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "frank",
		"password": "Sup3rS3cret!",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	require.NotEmpty(t, login.User.ID)
	return login.Token, login.User.ID
}

func TestPing(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestSignupValidationResponses(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username": "frank",
		"email":    "not-an-email",
		"password": "Sup3rS3cret!",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username": "frank",
		"email":    "frank@example.com",
		"password": "weak",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing fields are rejected by request binding.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username": "frank",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupDuplicateConflict(t *testing.T) {
	router := newTestRouter(t)
	signupAndLogin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username": "frank",
		"email":    "other@example.com",
		"password": "Sup3rS3cret!",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := newTestRouter(t)
	signupAndLogin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "frank",
		"password": "WrongPass1!",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGraphQLRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/graphql", "", gin.H{"query": "{ currentUser { id } }"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/graphql", "not-a-jwt", gin.H{"query": "{ currentUser { id } }"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGraphQLRoundTrip(t *testing.T) {
	router := newTestRouter(t)
	token, userID := signupAndLogin(t, router)

	// The identity from the token feeds the currentUser resolver.
	rec := doJSON(t, router, http.MethodPost, "/graphql", token, gin.H{
		"query": "{ currentUser { id username } }",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			CurrentUser struct {
				ID       string `json:"id"`
				Username string `json:"username"`
			} `json:"currentUser"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, userID, resp.Data.CurrentUser.ID)
	assert.Equal(t, "frank", resp.Data.CurrentUser.Username)

	// Resolver failures come back as an errors list with HTTP 200.
	rec = doJSON(t, router, http.MethodPost, "/graphql", token, gin.H{
		"query": "{ nonexistentField }",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var errResp struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.NotEmpty(t, errResp.Errors)

	// A body without a query is a transport-level error.
	rec = doJSON(t, router, http.MethodPost, "/graphql", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGraphQLExplicitNullClearsWeight(t *testing.T) {
	router := newTestRouter(t)
	token, userID := signupAndLogin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/graphql", token, gin.H{
		"query": `mutation { createExercise(name: "Bench Press", muscles: ["chest"]) { id } }`,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var createExercise struct {
		Data struct {
			CreateExercise struct {
				ID string `json:"id"`
			} `json:"createExercise"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &createExercise))
	exerciseID := createExercise.Data.CreateExercise.ID
	require.NotEmpty(t, exerciseID)

	rec = doJSON(t, router, http.MethodPost, "/graphql", token, gin.H{
		"query": `mutation ($userId: String!, $exerciseId: String!) {
			createWorkout(userId: $userId, exerciseId: $exerciseId, sets: 3, reps: 10, date: "2024-01-08", done: true, weight: 60) { id weight }
		}`,
		"variables": gin.H{"userId": userID, "exerciseId": exerciseID},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var createWorkout struct {
		Data struct {
			CreateWorkout struct {
				ID     string `json:"id"`
				Weight *int   `json:"weight"`
			} `json:"createWorkout"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &createWorkout))
	require.NotNil(t, createWorkout.Data.CreateWorkout.Weight)

	// "weight": null in the request body clears the stored value.
	rec = doJSON(t, router, http.MethodPost, "/graphql", token, gin.H{
		"query": `mutation ($workoutId: String!, $userId: String!, $weight: Int) {
			updateWorkout(workoutId: $workoutId, userId: $userId, weight: $weight) { weight }
		}`,
		"variables": map[string]interface{}{
			"workoutId": createWorkout.Data.CreateWorkout.ID,
			"userId":    userID,
			"weight":    nil,
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updateWorkout struct {
		Data struct {
			UpdateWorkout struct {
				Weight *int `json:"weight"`
			} `json:"updateWorkout"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updateWorkout))
	assert.Nil(t, updateWorkout.Data.UpdateWorkout.Weight)
}

func TestLogout(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signupAndLogin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", token, gin.H{})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", "", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
