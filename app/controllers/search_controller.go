// Package controllers wires HTTP requests to the catalogue services.
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kdalam/furnidex/app/repositories"
	"github.com/kdalam/furnidex/app/views"
	"github.com/kdalam/furnidex/pkg/bind"
	"github.com/kdalam/furnidex/pkg/logger"
	"github.com/kdalam/furnidex/pkg/response"
)

type SearchController struct {
	repo *repositories.ProductRepository
}

func NewSearchController(repo *repositories.ProductRepository) *SearchController {
	return &SearchController{repo: repo}
}

// Home redirects the root path to the search page.
func (c *SearchController) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/search", http.StatusSeeOther)
}

// Page renders the search page. An empty catalogue gets an inline
// warning rather than a redirect, so the page never loops on itself.
func (c *SearchController) Page(w http.ResponseWriter, r *http.Request) {
	count, err := c.repo.Count()
	if err != nil {
		logger.Error("search: count products", "error", err)
	}
	views.Render(w, r, "search", map[string]interface{}{
		"Empty": count == 0,
	})
}

type searchInput struct {
	Code string `json:"code" validate:"required,max=50"`
}

// API answers POST /api/search with the flat shape the search page's
// JavaScript expects: {success, product} or {success, error}.
func (c *SearchController) API(w http.ResponseWriter, r *http.Request) {
	var in searchInput
	errs, err := bind.JSON(r, &in)
	if err != nil || errs != nil {
		response.JSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"error":   "No product code provided",
		})
		return
	}

	code := strings.TrimSpace(in.Code)
	product, err := c.repo.FindByCode(code)
	if errors.Is(err, repositories.ErrNotFound) {
		response.JSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"error":   "Product not found",
		})
		return
	}
	if err != nil {
		logger.Error("search: lookup failed", "code", in.Code, "error", err)
		response.JSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"error":   "search failed",
		})
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"product": product,
	})
}
