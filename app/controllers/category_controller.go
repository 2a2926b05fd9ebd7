package controllers

import (
	"log/slog"
	"net/http"

	"inkwell/app/services"

	"github.com/gorilla/mux"
)

// CategoryController handles HTTP requests for categories
type CategoryController struct {
	categoryService *services.CategoryService
	logger          *slog.Logger
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categoryService *services.CategoryService, logger *slog.Logger) *CategoryController {
	return &CategoryController{categoryService: categoryService, logger: logger}
}

// Index lists all categories
func (cc *CategoryController) Index(w http.ResponseWriter, r *http.Request) {
	categories, err := cc.categoryService.ListCategories()
	if err != nil {
		sendError(w, r, cc.logger, err)
		return
	}
	sendList(w, categories, len(categories), nil)
}

// Show displays a single category
func (cc *CategoryController) Show(w http.ResponseWriter, r *http.Request) {
	category, err := cc.categoryService.GetCategory(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, cc.logger, err)
		return
	}
	sendData(w, http.StatusOK, category)
}

// Create creates a category
func (cc *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CategoryInput
	if err := decodeJSON(w, r, &input); err != nil {
		sendError(w, r, cc.logger, err)
		return
	}
	category, err := cc.categoryService.CreateCategory(input)
	if err != nil {
		sendError(w, r, cc.logger, err)
		return
	}
	sendData(w, http.StatusCreated, category)
}

// Update edits a category
func (cc *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	var input services.CategoryInput
	if err := decodeJSON(w, r, &input); err != nil {
		sendError(w, r, cc.logger, err)
		return
	}
	category, err := cc.categoryService.UpdateCategory(mux.Vars(r)["id"], input)
	if err != nil {
		sendError(w, r, cc.logger, err)
		return
	}
	sendData(w, http.StatusOK, category)
}

// Delete removes a category. Posts referencing it are left as they are.
func (cc *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := cc.categoryService.DeleteCategory(mux.Vars(r)["id"]); err != nil {
		sendError(w, r, cc.logger, err)
		return
	}
	sendData(w, http.StatusOK, struct{}{})
}
