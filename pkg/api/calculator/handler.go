// Package calculator serves the profitability calculation and the advisory
// endpoint built on top of it.
package calculator

import (
	"encoding/json"
	"errors"
	"net/http"

	"poasmaster/pkg/api/respond"
	"poasmaster/pkg/core/advisory"
	"poasmaster/pkg/core/calc"
	"poasmaster/pkg/core/settings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	FormatMarkdown   = "markdown"
	FormatStructured = "structured"
)

// SettingsLoader supplies the stored currency and language used when a
// request does not name them.
type SettingsLoader interface {
	Load() (settings.Settings, error)
}

// Request carries the six inputs either as numbers or as raw form text.
// Form wins when both are present.
type Request struct {
	Inputs   *calc.CostInputs      `json:"inputs,omitempty"`
	Form     *calc.FormInputs      `json:"form,omitempty"`
	Currency settings.CurrencyCode `json:"currency,omitempty"`
	Language settings.LanguageCode `json:"language,omitempty"`
}

type CalculateResponse struct {
	ID              string                    `json:"id"`
	Inputs          calc.CostInputs           `json:"inputs"`
	Result          *calc.ProfitabilityResult `json:"result"`
	Curve           *calc.BreakEvenCurve      `json:"curve,omitempty"`
	BEPUnitsRounded int                       `json:"bepUnitsRounded,omitempty"`
	Formatted       map[string]string         `json:"formatted"`
	Settings        settings.Settings         `json:"settings"`
}

type AdviceRequest struct {
	Request
	Format string `json:"format,omitempty"`
}

type AdviceResponse struct {
	ID         string                     `json:"id"`
	Advice     string                     `json:"advice"`
	HTML       string                     `json:"html"`
	Sections   []advisory.Section         `json:"sections"`
	Structured *advisory.StructuredAdvice `json:"structured,omitempty"`
}

// Handler holds dependencies for calculator endpoints
type Handler struct {
	advisor    advisory.Advisor
	structured *advisory.StructuredAdvisor
	settings   SettingsLoader
	log        logrus.FieldLogger
}

// NewHandler wires the handler. structured may be nil, in which case
// structured requests are answered by advisor.
func NewHandler(advisor advisory.Advisor, structured *advisory.StructuredAdvisor, store SettingsLoader, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		advisor:    advisor,
		structured: structured,
		settings:   store,
		log:        log.WithField("component", "calculator"),
	}
}

// HandleCalculate computes the snapshot and, when viable, the break-even curve.
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	prefs, ok := h.preferences(w, req)
	if !ok {
		return
	}
	in, res, ok := h.compute(w, req, prefs.Language)
	if !ok {
		return
	}

	resp := CalculateResponse{
		ID:        uuid.NewString(),
		Inputs:    in,
		Result:    res,
		Formatted: formatResult(res, prefs),
		Settings:  prefs,
	}
	if res.IsViable {
		curve := calc.Sample(in, res)
		resp.Curve = curve
		resp.BEPUnitsRounded = curve.BEPUnitsRounded()
	}

	h.log.WithFields(logrus.Fields{"id": resp.ID, "viable": res.IsViable}).Debug("calculated")
	respond.JSON(w, http.StatusOK, resp)
}

// HandleAdvice recomputes the snapshot and asks the advisor about it.
func (h *Handler) HandleAdvice(w http.ResponseWriter, r *http.Request) {
	var req AdviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if req.Format == "" {
		req.Format = FormatMarkdown
	}
	if req.Format != FormatMarkdown && req.Format != FormatStructured {
		respond.Error(w, http.StatusBadRequest, "INVALID_FORMAT", "format must be markdown or structured")
		return
	}

	prefs, ok := h.preferences(w, req.Request)
	if !ok {
		return
	}
	in, res, ok := h.compute(w, req.Request, prefs.Language)
	if !ok {
		return
	}
	if !res.IsViable {
		respond.Error(w, http.StatusUnprocessableEntity, "NOT_VIABLE", "The target profit leaves no room for advertising spend")
		return
	}

	snap := advisory.Snapshot{
		Inputs:         in,
		Result:         res,
		CurrencySymbol: prefs.CurrencyInfo().Symbol,
		Language:       prefs.Language,
	}
	resp := AdviceResponse{ID: uuid.NewString()}

	var err error
	if req.Format == FormatStructured && h.structured != nil {
		resp.Structured, err = h.structured.AdviseStructured(r.Context(), snap)
		if err == nil {
			resp.Advice = resp.Structured.Markdown(prefs.Language)
		}
	} else {
		resp.Advice, err = h.advisor.Advise(r.Context(), snap)
	}
	if err != nil {
		h.log.WithError(err).WithField("id", resp.ID).Error("advice failed")
		respond.Error(w, http.StatusBadGateway, "ADVISORY_UNAVAILABLE", advisory.ConnectionErrorMessage(prefs.Language))
		return
	}

	parsed, err := advisory.ParseAdvice(resp.Advice)
	if err != nil {
		resp.Advice = advisory.UnavailableMessage(prefs.Language)
		parsed, _ = advisory.ParseAdvice(resp.Advice)
	}
	resp.HTML = parsed.HTML
	resp.Sections = parsed.Sections

	respond.JSON(w, http.StatusOK, resp)
}

// preferences merges the request's currency and language over the stored ones.
func (h *Handler) preferences(w http.ResponseWriter, req Request) (settings.Settings, bool) {
	prefs := settings.Defaults()
	if h.settings != nil {
		stored, err := h.settings.Load()
		if err != nil {
			h.log.WithError(err).Warn("falling back to default settings")
		} else {
			prefs = stored
		}
	}
	if req.Currency != "" {
		prefs.Currency = req.Currency
	}
	if req.Language != "" {
		prefs.Language = req.Language
	}
	if err := prefs.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, "UNKNOWN_SETTING", err.Error())
		return prefs, false
	}
	return prefs, true
}

func (h *Handler) compute(w http.ResponseWriter, req Request, lang settings.LanguageCode) (calc.CostInputs, *calc.ProfitabilityResult, bool) {
	var in calc.CostInputs
	switch {
	case req.Form != nil:
		parsed, err := calc.ParseForm(*req.Form)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "INVALID_FIELD", settings.InvalidFieldMessage(lang))
			return in, nil, false
		}
		in = parsed
	case req.Inputs != nil:
		in = *req.Inputs
	default:
		respond.Error(w, http.StatusBadRequest, "MISSING_INPUTS", "inputs or form is required")
		return in, nil, false
	}

	res, err := calc.Compute(in)
	if errors.Is(err, calc.ErrInvalidInput) {
		respond.Error(w, http.StatusBadRequest, "INVALID_INPUT", settings.InvalidAOVMessage(lang))
		return in, nil, false
	}
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return in, nil, false
	}
	return in, res, true
}

func formatResult(res *calc.ProfitabilityResult, prefs settings.Settings) map[string]string {
	cur := prefs.CurrencyInfo()
	money := func(v float64) string { return settings.FormatCurrency(v, prefs.Language, cur) }
	ratio := func(v float64) string { return settings.FormatValue(v, prefs.Language) + "x" }
	return map[string]string{
		"contributionMargin": money(res.ContributionMargin),
		"breakEvenROAS":      ratio(res.BreakEvenROAS),
		"breakEvenCPA":       money(res.BreakEvenCPA),
		"targetROAS":         ratio(res.TargetROAS),
		"targetCPA":          money(res.TargetCPA),
		"targetCPC":          money(res.TargetCPC),
		"dailySpend":         money(res.DailySpend),
		"dailyRevenue":       money(res.DailyRevenue),
		"dailyProfit":        money(res.DailyProfit),
	}
}
