package books

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/avelic/bookstand/internal/auth"
	"github.com/avelic/bookstand/pkg"
)

type BooksResponse struct {
	Books []*Book `json:"books"`
	Total int     `json:"total"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type bookRequest struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	IsFree        bool    `json:"is_free"`
	Category      string  `json:"category"`
	CoverImageURL string  `json:"cover_image_url"`
	BookURL       string  `json:"book_url"`
}

type booksRepo interface {
	AddBook(ctx context.Context, book *Book) error
	UpdateBook(ctx context.Context, book *Book) error
	DeleteBook(ctx context.Context, id int) error
	GetBook(ctx context.Context, id int) (*Book, error)
	All(ctx context.Context) ([]*Book, error)
	Categories(ctx context.Context) ([]string, error)
}

type Handler struct {
	repo        booksRepo
	authChecker auth.Checker
}

func NewHandler(
	repo booksRepo,
	authChecker auth.Checker,
) *Handler {
	return &Handler{
		repo:        repo,
		authChecker: authChecker,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/books", handler.handleList).Methods("GET").Name("list-books")
	router.HandleFunc("/books/categories", handler.handleCategories).Methods("GET").Name("book-categories")
	router.HandleFunc("/books/{id}", handler.handleGet).Methods("GET").Name("get-book")

	router.HandleFunc("/admin/books", handler.handleAdminList).Methods("GET").Name("admin-list-books")
	router.HandleFunc("/admin/books", handler.handleAdd).Methods("POST", "OPTIONS").Name("new-book")
	router.HandleFunc("/admin/books", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("update-book")
	router.HandleFunc("/admin/books/{id}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("delete-book")
}

// handleList serves the storefront list, filtered and sorted in memory
// over the whole catalog
func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	allBooks, err := handler.repo.All(r.Context())
	if err != nil {
		log.Errorf("get all books error: %s", err)
		http.Error(w, "get books error", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	filtered := FilterAndSort(allBooks, ListFilter{
		Query:    query.Get("q"),
		Category: query.Get("category"),
		Price:    query.Get("price"),
		Sort:     query.Get("sort"),
	})

	resp := BooksResponse{
		Books: filtered,
		Total: len(filtered),
	}
	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal books error: %s", err)
		http.Error(w, "marshal books error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	book, err := handler.repo.GetBook(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			http.Error(w, "book not found", http.StatusNotFound)
			return
		}
		log.Errorf("get book %d: %s", id, err)
		http.Error(w, "get book error", http.StatusInternalServerError)
		return
	}

	bookJson, err := json.Marshal(book)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, bookJson)
}

func (handler *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := handler.repo.Categories(r.Context())
	if err != nil {
		log.Errorf("get book categories: %s", err)
		http.Error(w, "get categories error", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(CategoriesResponse{Categories: categories})
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) handleAdminList(w http.ResponseWriter, r *http.Request) {
	if !handler.authChecker.IsRequestAdmin(r.Context(), r) {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	allBooks, err := handler.repo.All(r.Context())
	if err != nil {
		log.Errorf("admin get all books error: %s", err)
		http.Error(w, "get books error", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(BooksResponse{Books: allBooks, Total: len(allBooks)})
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if !handler.authChecker.IsRequestAdmin(r.Context(), r) {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	bookReq, ok := handler.readBookRequest(w, r)
	if !ok {
		return
	}

	if bookReq.Title == "" || bookReq.Author == "" || bookReq.Category == "" {
		http.Error(w, "error, title, author and category are required", http.StatusBadRequest)
		return
	}

	newBook := &Book{
		Title:         bookReq.Title,
		Author:        bookReq.Author,
		Description:   bookReq.Description,
		Price:         bookReq.Price,
		IsFree:        bookReq.IsFree,
		Category:      bookReq.Category,
		CoverImageURL: bookReq.CoverImageURL,
		BookURL:       bookReq.BookURL,
	}

	if err := handler.repo.AddBook(r.Context(), newBook); err != nil {
		if pkg.IsUniqueViolationError(err) {
			http.Error(w, "error, book exists already", http.StatusConflict)
			return
		}
		log.Errorf("add new book failed: %s", err)
		http.Error(w, "add new book failed", http.StatusInternalServerError)
		return
	}

	log.Tracef("new book %d: [%s] added", newBook.ID, newBook.Title)

	pkg.WriteResponse(
		w,
		pkg.ContentType.Text,
		fmt.Sprintf("added:%d", newBook.ID),
		http.StatusCreated,
	)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if !handler.authChecker.IsRequestAdmin(r.Context(), r) {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	bookReq, ok := handler.readBookRequest(w, r)
	if !ok {
		return
	}

	if bookReq.ID == 0 {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	if bookReq.Title == "" || bookReq.Author == "" || bookReq.Category == "" {
		http.Error(w, "error, title, author and category are required", http.StatusBadRequest)
		return
	}

	book := &Book{
		ID:            bookReq.ID,
		Title:         bookReq.Title,
		Author:        bookReq.Author,
		Description:   bookReq.Description,
		Price:         bookReq.Price,
		IsFree:        bookReq.IsFree,
		Category:      bookReq.Category,
		CoverImageURL: bookReq.CoverImageURL,
		BookURL:       bookReq.BookURL,
	}

	if err := handler.repo.UpdateBook(r.Context(), book); err != nil {
		if errors.Is(err, ErrBookNotFound) {
			http.Error(w, "book not found", http.StatusNotFound)
			return
		}
		log.Errorf("update book failed: %s", err)
		http.Error(w, "update book failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("updated:%d", book.ID))
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
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

	if err := handler.repo.DeleteBook(r.Context(), id); err != nil {
		if errors.Is(err, ErrBookNotFound) {
			http.Error(w, "book not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete book %d: %s", id, err)
		http.Error(w, "error, book not deleted, internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("deleted:%d", id))
}

func (handler *Handler) readBookRequest(w http.ResponseWriter, r *http.Request) (bookRequest, bool) {
	var bookReq bookRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&bookReq); err != nil {
			log.Errorf("book request, unmarshal json params: %s", err)
			http.Error(w, "invalid book payload", http.StatusBadRequest)
			return bookRequest{}, false
		}
		return bookReq, true
	}

	if err := r.ParseForm(); err != nil {
		log.Errorf("book request, parse form error: %s", err)
		http.Error(w, "parse form error", http.StatusInternalServerError)
		return bookRequest{}, false
	}

	bookReq = bookRequest{
		Title:         r.Form.Get("title"),
		Author:        r.Form.Get("author"),
		Description:   r.Form.Get("description"),
		Category:      r.Form.Get("category"),
		CoverImageURL: r.Form.Get("cover_image_url"),
		BookURL:       r.Form.Get("book_url"),
	}
	if idStr := r.Form.Get("id"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "error, id NaN", http.StatusBadRequest)
			return bookRequest{}, false
		}
		bookReq.ID = id
	}
	if priceStr := r.Form.Get("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			http.Error(w, "error, price NaN", http.StatusBadRequest)
			return bookRequest{}, false
		}
		bookReq.Price = price
	}
	bookReq.IsFree = r.Form.Get("is_free") == "true"

	return bookReq, true
}
