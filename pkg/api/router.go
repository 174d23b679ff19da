// Package api assembles the HTTP routes.
package api

import (
	"net/http"
	"time"

	"poasmaster/pkg/api/calculator"
	"poasmaster/pkg/api/config"
	"poasmaster/pkg/api/middleware"
	"poasmaster/pkg/api/respond"
	apisettings "poasmaster/pkg/api/settings"
	"poasmaster/pkg/core/advisory"
	"poasmaster/pkg/core/agent"
	"poasmaster/pkg/core/settings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Deps are the collaborators the routes need.
type Deps struct {
	Agents        *agent.Manager
	Prompts       advisory.PromptSource
	Settings      *settings.FileStore
	Log           logrus.FieldLogger
	AllowedOrigin string
	Timeout       time.Duration
}

type healthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Provider string `json:"provider"`
}

// NewRouter registers every endpoint on a gorilla/mux router.
func NewRouter(d Deps) *mux.Router {
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	if d.AllowedOrigin == "" {
		d.AllowedOrigin = "*"
	}

	advisor := advisory.NewLLMAdvisor(d.Agents, d.Prompts, d.Log)
	structured := advisory.NewStructuredAdvisor(d.Agents, d.Prompts, d.Log)

	calcHandler := calculator.NewHandler(advisor, structured, d.Settings, d.Log)
	settingsHandler := apisettings.NewHandler(d.Settings, d.Log)
	configHandler := config.NewHandler(d.Agents)

	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(d.Log), middleware.CORS(d.AllowedOrigin), middleware.Timeout(d.Timeout))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, healthResponse{
			Status:   "ok",
			Message:  "POASMaster API",
			Provider: d.Agents.GetActiveProvider(),
		})
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/calculate", calcHandler.HandleCalculate).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/advice", calcHandler.HandleAdvice).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/settings", settingsHandler.HandleGet).Methods(http.MethodGet)
	r.HandleFunc("/api/settings", settingsHandler.HandlePut).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/api/catalog", settingsHandler.HandleCatalog).Methods(http.MethodGet)
	r.HandleFunc("/api/config", configHandler.HandleConfig).Methods(http.MethodGet)
	r.HandleFunc("/api/config/switch", configHandler.HandleSwitch).Methods(http.MethodPost, http.MethodOptions)

	return r
}
