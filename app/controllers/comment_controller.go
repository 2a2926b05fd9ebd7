package controllers

import (
	"log/slog"
	"net/http"

	"inkwell/app/services"

	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for the comments of a post
type CommentController struct {
	commentService *services.CommentService
	logger         *slog.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, logger *slog.Logger) *CommentController {
	return &CommentController{commentService: commentService, logger: logger}
}

type commentInput struct {
	Text string `json:"text"`
}

// Index lists the comments of a post
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	comments, err := cc.commentService.ListComments(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, cc.logger, err)
		return
	}
	sendList(w, comments, len(comments), nil)
}

// Create adds a comment and responds with the updated post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := callerOf(r)
	if err != nil {
		sendError(w, r, cc.logger, err)
		return
	}
	var input commentInput
	if err := decodeJSON(w, r, &input); err != nil {
		sendError(w, r, cc.logger, err)
		return
	}

	post, err := cc.commentService.AddComment(mux.Vars(r)["id"], caller, input.Text)
	if err != nil {
		sendError(w, r, cc.logger, err)
		return
	}
	sendData(w, http.StatusCreated, post)
}

// Delete removes a comment and responds with the updated post
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := callerOf(r)
	if err != nil {
		sendError(w, r, cc.logger, err)
		return
	}
	vars := mux.Vars(r)
	post, err := cc.commentService.RemoveComment(vars["id"], vars["commentId"], caller)
	if err != nil {
		sendError(w, r, cc.logger, err)
		return
	}
	sendData(w, http.StatusOK, post)
}
