// Package config exposes the LLM provider selection.
package config

import (
	"encoding/json"
	"net/http"

	"poasmaster/pkg/api/respond"
	"poasmaster/pkg/core/agent"
)

type Response struct {
	ActiveProvider string   `json:"active_provider"`
	Available      []string `json:"available"`
}

type SwitchRequest struct {
	Provider string `json:"provider"`
}

// ProviderSwitcher is implemented by *agent.Manager.
type ProviderSwitcher interface {
	GetActiveProvider() string
	Available() []string
	SetGlobalProvider(name string) error
}

var _ ProviderSwitcher = (*agent.Manager)(nil)

// Handler holds dependencies for config endpoints
type Handler struct {
	AgentMgr ProviderSwitcher
}

// NewHandler creates a new config handler
func NewHandler(agentMgr ProviderSwitcher) *Handler {
	return &Handler{
		AgentMgr: agentMgr,
	}
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.current())
}

func (h *Handler) HandleSwitch(w http.ResponseWriter, r *http.Request) {
	var req SwitchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	if err := h.AgentMgr.SetGlobalProvider(req.Provider); err != nil {
		respond.Error(w, http.StatusBadRequest, "UNKNOWN_PROVIDER", err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, h.current())
}

func (h *Handler) current() Response {
	return Response{
		ActiveProvider: h.AgentMgr.GetActiveProvider(),
		Available:      h.AgentMgr.Available(),
	}
}
