package controllers

import (
	"errors"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/kdalam/furnidex/app/repositories"
	gqlhttp "github.com/kdalam/furnidex/pkg/graphql"
	"github.com/kdalam/furnidex/pkg/logger"
)

// productType exposes the catalogue record to API clients.
var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"code":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.String},
		"supplier":    &graphql.Field{Type: graphql.String},
	},
})

// NewGraphQLHandler builds the read-only catalogue query endpoint with
// product(code) and products root fields.
func NewGraphQLHandler(repo *repositories.ProductRepository) (http.HandlerFunc, error) {
	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"code": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					code, _ := p.Args["code"].(string)
					product, err := repo.FindByCode(code)
					if errors.Is(err, repositories.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						logger.Error("graphql: product lookup", "code", code, "error", err)
						return nil, err
					}
					return product, nil
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return repo.All()
				},
			},
		},
	})

	schema, err := gqlhttp.NewSchema(rootQuery)
	if err != nil {
		return nil, err
	}
	return gqlhttp.Handler(schema), nil
}
