package graphql

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"
)

// Handler executes incoming GraphQL requests against the schema.
type Handler struct {
	schema graphql.Schema
}

// NewHandler creates a Handler for the given schema.
func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

// request is the standard GraphQL-over-HTTP body: a query string plus a
// mapping of named variables.
type request struct {
	Query     string                 `json:"query" binding:"required"`
	Variables map[string]interface{} `json:"variables"`
}

// Serve handles POST /graphql. The response is either {"data": ...} or
// {"errors": [...]}; resolver-level failures end up in the errors list, they
// never become transport errors.
func (h *Handler) Serve(c *gin.Context) {
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"errors": []string{fmt.Sprintf("invalid request body: %v", err)},
		})
		return
	}

	ctx := WithVariables(c.Request.Context(), req.Variables)
	if userID, exists := c.Get("userID"); exists {
		if id, ok := userID.(string); ok {
			ctx = WithIdentity(ctx, id)
		}
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		Context:        ctx,
	})

	if len(result.Errors) > 0 {
		messages := make([]string, 0, len(result.Errors))
		for _, gqlErr := range result.Errors {
			messages = append(messages, gqlErr.Message)
		}
		logrus.WithField("errors", messages).Debug("graphql request failed")
		c.JSON(http.StatusOK, gin.H{"errors": messages})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result.Data})
}
