// Package settings serves the display preferences and the catalogs they are
// chosen from.
package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"poasmaster/pkg/api/respond"
	core "poasmaster/pkg/core/settings"

	"github.com/sirupsen/logrus"
)

// Store is implemented by *core.FileStore.
type Store interface {
	Load() (core.Settings, error)
	Save(core.Settings) error
}

type Response struct {
	core.Settings
	CurrencySymbol string `json:"currencySymbol"`
}

type CatalogResponse struct {
	Currencies []core.Currency `json:"currencies"`
	Languages  []core.Language `json:"languages"`
	Defaults   core.Settings   `json:"defaults"`
}

// Handler holds dependencies for settings endpoints
type Handler struct {
	store Store
	log   logrus.FieldLogger
}

func NewHandler(store Store, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{store: store, log: log.WithField("component", "settings")}
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.Load()
	if err != nil {
		h.log.WithError(err).Warn("serving default settings")
	}
	respond.JSON(w, http.StatusOK, Response{Settings: s, CurrencySymbol: s.CurrencyInfo().Symbol})
}

// HandlePut replaces the stored settings. Omitted fields keep their
// current value.
func (h *Handler) HandlePut(w http.ResponseWriter, r *http.Request) {
	current, err := h.store.Load()
	if err != nil {
		h.log.WithError(err).Warn("replacing unreadable settings")
	}

	var req core.Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if req.Currency != "" {
		current.Currency = req.Currency
	}
	if req.Language != "" {
		current.Language = req.Language
	}

	if err := h.store.Save(current); err != nil {
		if errors.Is(err, core.ErrUnknownSetting) {
			respond.Error(w, http.StatusBadRequest, "UNKNOWN_SETTING", err.Error())
			return
		}
		h.log.WithError(err).Error("failed to save settings")
		respond.Error(w, http.StatusInternalServerError, "SETTINGS_WRITE_FAILED", "Could not save settings")
		return
	}

	h.log.WithFields(logrus.Fields{"currency": current.Currency, "language": current.Language}).Info("settings updated")
	respond.JSON(w, http.StatusOK, Response{Settings: current, CurrencySymbol: current.CurrencyInfo().Symbol})
}

func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, CatalogResponse{
		Currencies: core.Currencies,
		Languages:  core.Languages,
		Defaults:   core.Defaults(),
	})
}
