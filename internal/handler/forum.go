package handler

import (
	"net/http"

	"github.com/templui/soulsync/internal/model"
	"github.com/templui/soulsync/internal/service"
	"github.com/templui/soulsync/internal/ui"
)

type ForumHandler struct {
	forumService *service.ForumService
}

func NewForumHandler(forumService *service.ForumService) *ForumHandler {
	return &ForumHandler{forumService: forumService}
}

type forumResponse struct {
	Categories []model.ForumCategory `json:"categories"`
	Posts      []*model.ForumPost    `json:"posts"`
}

type postRequest struct {
	Category  string `json:"category"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Anonymous bool   `json:"anonymous"`
}

type replyRequest struct {
	Body string `json:"body"`
}

// Board lists categories and posts, filtered by ?category= when given.
func (h *ForumHandler) Board(w http.ResponseWriter, r *http.Request) {
	categories, err := h.forumService.Categories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	posts, err := h.forumService.Posts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if posts == nil {
		posts = []*model.ForumPost{}
	}
	ui.JSON(w, http.StatusOK, forumResponse{Categories: categories, Posts: posts})
}

func (h *ForumHandler) Post(w http.ResponseWriter, r *http.Request) {
	post, err := h.forumService.Post(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusOK, post)
}

func (h *ForumHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req postRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.forumService.CreatePost(r.Context(), session, service.PostParams{
		Category:  req.Category,
		Title:     req.Title,
		Body:      req.Body,
		Anonymous: req.Anonymous,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusCreated, post)
}

func (h *ForumHandler) Reply(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req replyRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.forumService.Reply(r.Context(), session, r.PathValue("id"), req.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ui.JSON(w, http.StatusCreated, post)
}
