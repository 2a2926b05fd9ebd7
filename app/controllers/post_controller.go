package controllers

import (
	"log/slog"
	"net/http"

	"inkwell/app/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
	logger      *slog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, logger *slog.Logger) *PostController {
	return &PostController{postService: postService, logger: logger}
}

// Index handles listing posts. Supports page, per_page, author and
// category query parameters.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	pc.list(w, r, services.ListOptions{
		Page:       queryInt(r, "page"),
		PerPage:    queryInt(r, "per_page"),
		AuthorID:   query.Get("author"),
		CategoryID: query.Get("category"),
	})
}

// ByAuthor handles listing the posts of one author
func (pc *PostController) ByAuthor(w http.ResponseWriter, r *http.Request) {
	pc.list(w, r, services.ListOptions{
		Page:     queryInt(r, "page"),
		PerPage:  queryInt(r, "per_page"),
		AuthorID: mux.Vars(r)["id"],
	})
}

func (pc *PostController) list(w http.ResponseWriter, r *http.Request, opts services.ListOptions) {
	page, err := pc.postService.ListPosts(opts)
	if err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	sendList(w, page.Posts, len(page.Posts), &Pagination{
		Page:    page.Page,
		PerPage: page.PerPage,
		Total:   page.Total,
	})
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.GetPost(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	sendData(w, http.StatusOK, post)
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := callerOf(r)
	if err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	var input services.PostInput
	if err := decodeJSON(w, r, &input); err != nil {
		sendError(w, r, pc.logger, err)
		return
	}

	post, err := pc.postService.CreatePost(input, caller)
	if err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	sendData(w, http.StatusCreated, post)
}

// Update handles editing an existing post
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := callerOf(r)
	if err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	var input services.PostInput
	if err := decodeJSON(w, r, &input); err != nil {
		sendError(w, r, pc.logger, err)
		return
	}

	post, err := pc.postService.UpdatePost(mux.Vars(r)["id"], input, caller)
	if err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	sendData(w, http.StatusOK, post)
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := callerOf(r)
	if err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	if err := pc.postService.DeletePost(mux.Vars(r)["id"], caller); err != nil {
		sendError(w, r, pc.logger, err)
		return
	}
	sendData(w, http.StatusOK, struct{}{})
}
