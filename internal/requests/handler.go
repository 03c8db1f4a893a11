package requests

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
	"github.com/avelic/bookstand/internal/middleware"
	"github.com/avelic/bookstand/internal/telemetry/metrics"
	"github.com/avelic/bookstand/pkg"
)

type RequestsResponse struct {
	Requests []*BookRequest `json:"requests"`
	Total    int            `json:"total"`
}

type newRequestRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	BookTitle string `json:"book_title"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type requestsRepo interface {
	Add(ctx context.Context, request *BookRequest) error
	All(ctx context.Context) ([]*BookRequest, error)
	Get(ctx context.Context, id int) (*BookRequest, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}

type Handler struct {
	repo        requestsRepo
	authChecker auth.Checker
	metrics     *metrics.Manager
}

func NewHandler(
	repo requestsRepo,
	authChecker auth.Checker,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:        repo,
		authChecker: authChecker,
		metrics:     metricsManager,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	contactRateLimitAllowedPerMin int,
) {
	contactSubrouter := mainRouter.PathPrefix("/contact").Subrouter()
	contactSubrouter.HandleFunc("", handler.handleNewRequest).Methods("POST", "OPTIONS").Name("new-book-request")

	// rate limit the public contact form to prevent abuse
	contactSubrouter.Use(middleware.RateLimit(rateLimiter, "contact", contactRateLimitAllowedPerMin, handler.metrics))

	mainRouter.HandleFunc("/admin/requests", handler.handleAll).Methods("GET").Name("admin-book-requests")
	mainRouter.HandleFunc("/admin/requests/{id}/status", handler.handleUpdateStatus).Methods("PUT", "OPTIONS").Name("update-book-request-status")
}

func (handler *Handler) handleNewRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var newReq newRequestRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&newReq); err != nil {
			log.Errorf("new book request, unmarshal json params: %s", err)
			http.Error(w, "invalid book request payload", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("new book request, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		newReq = newRequestRequest{
			Name:      r.Form.Get("name"),
			Email:     r.Form.Get("email"),
			Message:   r.Form.Get("message"),
			BookTitle: r.Form.Get("book_title"),
		}
	}

	if newReq.Name == "" || newReq.Email == "" || newReq.Message == "" {
		http.Error(w, "error, name, email and message are required", http.StatusBadRequest)
		return
	}

	bookRequest := &BookRequest{
		Name:      newReq.Name,
		Email:     newReq.Email,
		Message:   newReq.Message,
		BookTitle: newReq.BookTitle,
		Status:    StatusPending,
	}

	if err := handler.repo.Add(r.Context(), bookRequest); err != nil {
		log.Errorf("add new book request failed: %s", err)
		http.Error(w, "add book request failed", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterBookRequests.Inc()
	if userIP, err := pkg.ReadUserIP(r); err == nil {
		log.Tracef("new book request %d from %s", bookRequest.ID, userIP)
	}

	pkg.WriteResponse(
		w,
		pkg.ContentType.Text,
		fmt.Sprintf("added:%d", bookRequest.ID),
		http.StatusCreated,
	)
}

func (handler *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	if !handler.authChecker.IsRequestAdmin(r.Context(), r) {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	all, err := handler.repo.All(r.Context())
	if err != nil {
		log.Errorf("get all book requests: %s", err)
		http.Error(w, "get book requests error", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(RequestsResponse{Requests: all, Total: len(all)})
	if err != nil {
		http.Error(w, "marshal book requests error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

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

	var statusReq updateStatusRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&statusReq); err != nil {
			http.Error(w, "invalid status payload", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		statusReq.Status = r.Form.Get("status")
	}

	if !ValidStatus(statusReq.Status) {
		http.Error(w, "error, invalid status", http.StatusBadRequest)
		return
	}

	if err := handler.repo.UpdateStatus(r.Context(), id, statusReq.Status); err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			http.Error(w, "book request not found", http.StatusNotFound)
			return
		}
		log.Errorf("update book request %d status: %s", id, err)
		http.Error(w, "update book request status failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("updated:%d:%s", id, statusReq.Status))
}
