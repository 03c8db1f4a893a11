package settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/avelic/bookstand/internal/auth"
	"github.com/avelic/bookstand/pkg"
)

type maintenanceResponse struct {
	Enabled bool `json:"enabled"`
}

type setMaintenanceRequest struct {
	Enabled bool `json:"enabled"`
}

type settingsRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type Handler struct {
	repo        settingsRepo
	maintenance *MaintenanceChecker
	authChecker auth.Checker
}

func NewHandler(
	repo settingsRepo,
	maintenance *MaintenanceChecker,
	authChecker auth.Checker,
) *Handler {
	return &Handler{
		repo:        repo,
		maintenance: maintenance,
		authChecker: authChecker,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/admin/settings/maintenance", handler.handleGetMaintenance).Methods("GET", "OPTIONS").Name("get-maintenance")
	router.HandleFunc("/admin/settings/maintenance", handler.handleSetMaintenance).Methods("PUT", "OPTIONS").Name("set-maintenance")
}

func (handler *Handler) handleGetMaintenance(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if !handler.authChecker.IsRequestAdmin(r.Context(), r) {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	value, err := handler.repo.Get(r.Context(), MaintenanceModeKey)
	if err != nil && !errors.Is(err, ErrSettingNotFound) {
		log.Errorf("get maintenance mode: %s", err)
		http.Error(w, "get maintenance mode failed", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(maintenanceResponse{Enabled: value == "true"})
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) handleSetMaintenance(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if !handler.authChecker.IsRequestAdmin(r.Context(), r) {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var setReq setMaintenanceRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&setReq); err != nil {
			log.Errorf("set maintenance mode, unmarshal json params: %s", err)
			http.Error(w, "set maintenance mode failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("set maintenance mode failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		enabled, err := strconv.ParseBool(r.Form.Get("enabled"))
		if err != nil {
			http.Error(w, "error, invalid enabled value", http.StatusBadRequest)
			return
		}
		setReq = setMaintenanceRequest{Enabled: enabled}
	}

	value := strconv.FormatBool(setReq.Enabled)
	if err := handler.repo.Set(r.Context(), MaintenanceModeKey, value); err != nil {
		log.Errorf("set maintenance mode: %s", err)
		http.Error(w, "set maintenance mode failed", http.StatusInternalServerError)
		return
	}

	handler.maintenance.Invalidate()

	log.Warnf("maintenance mode set to: %s", value)
	pkg.WriteTextResponseOK(w, "maintenance:"+value)
}
