// Package gql exposes events, bookings and booking statistics over GraphQL.
package gql

import (
	"context"

	"github.com/graphql-go/graphql"
)

// Request is the standard GraphQL-over-HTTP payload.
type Request struct {
	Query         string                 `json:"query" form:"query" binding:"required"`
	Variables     map[string]interface{} `json:"variables" form:"-"`
	OperationName string                 `json:"operationName" form:"operationName"`
}

// NewSchema builds the schema with every field resolved through r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	var eventType, userType *graphql.Object

	userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"_id":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
				"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				// kept for clients of the old schema, always null
				"password": &graphql.Field{
					Type:    graphql.String,
					Resolve: func(graphql.ResolveParams) (interface{}, error) { return nil, nil },
				},
				"createdEvents": &graphql.Field{
					Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(eventType))),
					Resolve: r.userCreatedEvents,
				},
			}
		}),
	})

	eventType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Event",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"_id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
				"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"price":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
				"date":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"creator": &graphql.Field{
					Type:    graphql.NewNonNull(userType),
					Resolve: r.eventCreator,
				},
			}
		}),
	})

	bookingType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Booking",
		Fields: graphql.Fields{
			"_id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"event": &graphql.Field{
				Type:    graphql.NewNonNull(eventType),
				Resolve: r.bookingEvent,
			},
			"user": &graphql.Field{
				Type:    graphql.NewNonNull(userType),
				Resolve: r.bookingUser,
			},
		},
	})

	authDataType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthData",
		Fields: graphql.Fields{
			"userId":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"token":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"tokenExpiration": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	bucketCountType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PriceBucketCount",
		Fields: graphql.Fields{
			"label": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"min":   &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"max":   &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"count": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	eventInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EventInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"price":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"date":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	userInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"events": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(eventType))),
				Resolve: r.events,
			},
			"bookings": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(bookingType))),
				Resolve: r.bookings,
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authDataType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.login,
			},
			"bookingStats": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(bucketCountType))),
				Resolve: r.bookingStats,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootMutation",
		Fields: graphql.Fields{
			"createEvent": &graphql.Field{
				Type: eventType,
				Args: graphql.FieldConfigArgument{
					"eventInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(eventInput)},
				},
				Resolve: r.createEvent,
			},
			"createUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userInput)},
				},
				Resolve: r.createUser,
			},
			"bookEvent": &graphql.Field{
				Type: graphql.NewNonNull(bookingType),
				Args: graphql.FieldConfigArgument{
					"eventId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.bookEvent,
			},
			"cancelBooking": &graphql.Field{
				Type: graphql.NewNonNull(eventType),
				Args: graphql.FieldConfigArgument{
					"bookingId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.cancelBooking,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

// Execute runs req against schema. Errors are reported inside the result.
func Execute(ctx context.Context, schema graphql.Schema, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}
