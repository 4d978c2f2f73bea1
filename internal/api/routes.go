package api

import (
	gql "alcyxob/workout-tracker/internal/api/graphql"
	"alcyxob/workout-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the HTTP surface: the auth endpoints and the single
// GraphQL endpoint everything else goes through.
func SetupRoutes(
	router *gin.Engine,
	authService service.AuthService,
	workoutService service.WorkoutService,
	reportService service.ReportService,
	exerciseService service.ExerciseService,
) error {
	authHandler := NewAuthHandler(authService)

	schema, err := gql.NewSchema(gql.Services{
		Auth:      authService,
		Workouts:  workoutService,
		Reports:   reportService,
		Exercises: exerciseService,
	})
	if err != nil {
		return err
	}
	graphqlHandler := gql.NewHandler(schema)

	authMiddleware := AuthMiddleware(authService.GetJWTSecret())

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}
	}

	router.POST("/graphql", authMiddleware, graphqlHandler.Serve)

	return nil
}
