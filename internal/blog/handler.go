package blog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/avelic/bookstand/internal/auth"
	"github.com/avelic/bookstand/pkg"
)

type PostsResponse struct {
	Posts []*Post `json:"posts"`
	Total int     `json:"total"`
}

type postRequest struct {
	ID               int      `json:"id"`
	Title            string   `json:"title"`
	Content          string   `json:"content"`
	Excerpt          string   `json:"excerpt"`
	Published        bool     `json:"published"`
	FeaturedImageURL string   `json:"featured_image_url"`
	Tags             []string `json:"tags"`
}

type blogRepo interface {
	AddPost(ctx context.Context, post *Post) error
	UpdatePost(ctx context.Context, post *Post) error
	DeletePost(ctx context.Context, id int) error
	GetPost(ctx context.Context, id int) (*Post, error)
	All(ctx context.Context) ([]*Post, error)
	AllPublished(ctx context.Context) ([]*Post, error)
}

type Handler struct {
	repo        blogRepo
	authChecker auth.Checker
}

func NewHandler(
	repo blogRepo,
	authChecker auth.Checker,
) *Handler {
	return &Handler{
		repo:        repo,
		authChecker: authChecker,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/blog/posts", handler.handlePublished).Methods("GET").Name("blog-posts")
	router.HandleFunc("/blog/posts/{id}", handler.handleGet).Methods("GET").Name("get-blog-post")

	router.HandleFunc("/admin/blog/posts", handler.handleAll).Methods("GET").Name("admin-blog-posts")
	router.HandleFunc("/admin/blog/posts", handler.handleNewPost).Methods("POST", "OPTIONS").Name("new-blog-post")
	router.HandleFunc("/admin/blog/posts", handler.handleUpdatePost).Methods("PUT", "OPTIONS").Name("update-blog-post")
	router.HandleFunc("/admin/blog/posts/{id}", handler.handleDeletePost).Methods("DELETE", "OPTIONS").Name("delete-blog-post")
}

func (handler *Handler) handlePublished(w http.ResponseWriter, r *http.Request) {
	posts, err := handler.repo.AllPublished(r.Context())
	if err != nil {
		log.Errorf("get published blog posts: %s", err)
		http.Error(w, "get blog posts error", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(PostsResponse{Posts: posts, Total: len(posts)})
	if err != nil {
		http.Error(w, "marshal blog posts error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

// handleGet serves a single post to the storefront; drafts stay hidden
// unless the caller is an admin
func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	post, err := handler.repo.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			http.Error(w, "blog post not found", http.StatusNotFound)
			return
		}
		log.Errorf("get blog post %d: %s", id, err)
		http.Error(w, "get blog post error", http.StatusInternalServerError)
		return
	}

	if !post.Published && !handler.authChecker.IsRequestAdmin(r.Context(), r) {
		http.Error(w, "blog post not found", http.StatusNotFound)
		return
	}

	postJson, err := json.Marshal(post)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, postJson)
}

func (handler *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	if !handler.authChecker.IsRequestAdmin(r.Context(), r) {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	posts, err := handler.repo.All(r.Context())
	if err != nil {
		log.Errorf("get all blog posts: %s", err)
		http.Error(w, "get blog posts error", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(PostsResponse{Posts: posts, Total: len(posts)})
	if err != nil {
		http.Error(w, "marshal blog posts error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) handleNewPost(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if !handler.authChecker.IsRequestAdmin(r.Context(), r) {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	postReq, ok := handler.readPostRequest(w, r)
	if !ok {
		return
	}

	if postReq.Title == "" {
		http.Error(w, "error, title empty", http.StatusBadRequest)
		return
	}
	if postReq.Content == "" {
		http.Error(w, "error, content empty", http.StatusBadRequest)
		return
	}

	newPost := &Post{
		Title:            postReq.Title,
		Content:          postReq.Content,
		Excerpt:          postReq.Excerpt,
		Published:        postReq.Published,
		FeaturedImageURL: postReq.FeaturedImageURL,
		Tags:             postReq.Tags,
	}

	if err := handler.repo.AddPost(r.Context(), newPost); err != nil {
		log.Errorf("add new blog post failed: %s", err)
		http.Error(w, "add new blog post failed", http.StatusInternalServerError)
		return
	}

	log.Tracef("new blog post %d: [%s] added", newPost.ID, newPost.Title)

	pkg.WriteResponse(
		w,
		pkg.ContentType.Text,
		fmt.Sprintf("added:%d", newPost.ID),
		http.StatusCreated,
	)
}

func (handler *Handler) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if !handler.authChecker.IsRequestAdmin(r.Context(), r) {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	postReq, ok := handler.readPostRequest(w, r)
	if !ok {
		return
	}

	if postReq.ID == 0 {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	if postReq.Title == "" || postReq.Content == "" {
		http.Error(w, "error, title or content empty", http.StatusBadRequest)
		return
	}

	post := &Post{
		ID:               postReq.ID,
		Title:            postReq.Title,
		Content:          postReq.Content,
		Excerpt:          postReq.Excerpt,
		Published:        postReq.Published,
		FeaturedImageURL: postReq.FeaturedImageURL,
		Tags:             postReq.Tags,
	}

	if err := handler.repo.UpdatePost(r.Context(), post); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			http.Error(w, "blog post not found", http.StatusNotFound)
			return
		}
		log.Errorf("update blog post failed: %s", err)
		http.Error(w, "update blog post failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("updated:%d", post.ID))
}

func (handler *Handler) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if !handler.authChecker.IsRequestAdmin(r.Context(), r) {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)

	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			http.Error(w, "blog post not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete blog post %d: %s", id, err)
		http.Error(w, "error, blog post not deleted, internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("deleted:%d", id))
}

func (handler *Handler) readPostRequest(w http.ResponseWriter, r *http.Request) (postRequest, bool) {
	var postReq postRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&postReq); err != nil {
			log.Errorf("blog post request, unmarshal json params: %s", err)
			http.Error(w, "invalid blog post payload", http.StatusBadRequest)
			return postRequest{}, false
		}
		return postReq, true
	}

	if err := r.ParseForm(); err != nil {
		log.Errorf("blog post request, parse form error: %s", err)
		http.Error(w, "parse form error", http.StatusInternalServerError)
		return postRequest{}, false
	}

	postReq = postRequest{
		Title:            r.Form.Get("title"),
		Content:          r.Form.Get("content"),
		Excerpt:          r.Form.Get("excerpt"),
		Published:        r.Form.Get("published") == "true",
		FeaturedImageURL: r.Form.Get("featured_image_url"),
	}
	if idStr := r.Form.Get("id"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "error, id NaN", http.StatusBadRequest)
			return postRequest{}, false
		}
		postReq.ID = id
	}
	if tags := r.Form.Get("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				postReq.Tags = append(postReq.Tags, tag)
			}
		}
	}

	return postReq, true
}
