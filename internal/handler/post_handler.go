package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"polyglotCMS/internal/repository"
)

type CreatePostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Language  string `json:"language"`
	Slug      string `json:"slug"`
	Published *bool  `json:"published"`
	AuthorID  int64  `json:"authorId"`
}

// parsePostID различает нечисловой ID (400) и отсутствующий пост (404)
func parsePostID(r *http.Request) (int64, bool) {
	idParam := mux.Vars(r)["id"]
	postID, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		return 0, false
	}
	return postID, true
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	language := r.URL.Query().Get("lang")

	posts, err := h.PostService.ListPosts(r.Context(), language)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	postID, ok := parsePostID(r)
	if !ok {
		WriteError(w, "Неверный формат ID поста", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	// published defaults to false when omitted
	published := false
	if req.Published != nil {
		published = *req.Published
	}

	serviceReq := repository.CreatePostRequest{
		Title:     req.Title,
		Content:   req.Content,
		Language:  req.Language,
		Slug:      req.Slug,
		Published: published,
		AuthorID:  req.AuthorID,
	}

	// creating the post; field validation is collected by the service
	post, err := h.PostService.CreatePost(r.Context(), serviceReq)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	postID, ok := parsePostID(r)
	if !ok {
		WriteError(w, "Неверный формат ID поста", http.StatusBadRequest)
		return
	}

	var req repository.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), postID, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	postID, ok := parsePostID(r)
	if !ok {
		WriteError(w, "Неверный формат ID поста", http.StatusBadRequest)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), postID); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Пост успешно удален"}, http.StatusOK)
}
