package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"

	"event_booking_go/gql"
)

type GraphQLController struct {
	Schema graphql.Schema
}

func NewGraphQLController(schema graphql.Schema) *GraphQLController {
	return &GraphQLController{Schema: schema}
}

// Post handles {"query", "variables", "operationName"} bodies.
func (gc *GraphQLController) Post(c *gin.Context) {
	var req gql.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	gc.execute(c, req)
}

// Get handles ?query=...&variables=<json>&operationName=...
func (gc *GraphQLController) Get(c *gin.Context) {
	var req gql.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if raw := c.Query("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "variables must be a JSON object"})
			return
		}
	}
	gc.execute(c, req)
}

func (gc *GraphQLController) execute(c *gin.Context, req gql.Request) {
	// auth travels in the request context, set by IsAuth
	result := gql.Execute(c.Request.Context(), gc.Schema, req)
	c.JSON(http.StatusOK, result)
}
