package handlers

import (
	"net/http"
	"strconv"

	"career-guide/http/response"
)

// ListBlog returns every post.
func (h *Handler) ListBlog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w)
		return
	}
	response.SendJSON(w, http.StatusOK, h.Blog.List(r.Context()))
}

// GetBlogPost returns the post named by the {id} path segment.
func (h *Handler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w)
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		response.Message(w, http.StatusNotFound, "Post not found")
		return
	}
	post, ok := h.Blog.FindByID(r.Context(), id)
	if !ok {
		response.Message(w, http.StatusNotFound, "Post not found")
		return
	}
	response.SendJSON(w, http.StatusOK, post)
}
