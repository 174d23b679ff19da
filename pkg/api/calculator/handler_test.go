package calculator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"poasmaster/pkg/api/respond"
	"poasmaster/pkg/core/advisory"
	"poasmaster/pkg/core/agent"
	"poasmaster/pkg/core/settings"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdvisor struct {
	text string
	err  error
	got  advisory.Snapshot
}

func (s *stubAdvisor) Advise(ctx context.Context, snap advisory.Snapshot) (string, error) {
	s.got = snap
	return s.text, s.err
}

type stubSettings struct {
	s   settings.Settings
	err error
}

func (s stubSettings) Load() (settings.Settings, error) { return s.s, s.err }

const scenarioA = `"inputs": {"cogs": 10, "opEx": 5, "conversionRate": 2, "avgOrderValue": 50, "ordersPerDay": 20, "targetProfitPercent": 20}`

func newHandler(adv advisory.Advisor, structured *advisory.StructuredAdvisor) *Handler {
	logger, _ := test.NewNullLogger()
	return NewHandler(adv, structured, stubSettings{s: settings.Settings{Currency: settings.USD, Language: settings.English}}, logger)
}

func post(h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandleCalculate_Viable(t *testing.T) {
	h := newHandler(&stubAdvisor{}, nil)
	rec := post(h.HandleCalculate, "/api/calculate", `{`+scenarioA+`}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CalculateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.ID)
	assert.True(t, resp.Result.IsViable)
	assert.InDelta(t, 35, resp.Result.ContributionMargin, 1e-9)
	assert.InDelta(t, 25, resp.Result.TargetCPA, 1e-9)
	assert.InDelta(t, 200, resp.Result.DailyProfit, 1e-9)

	require.NotNil(t, resp.Curve)
	assert.Len(t, resp.Curve.Points, 21)
	assert.InDelta(t, 500.0/35.0, resp.Curve.BEPUnits, 1e-9)
	assert.Equal(t, 15, resp.BEPUnitsRounded)

	assert.Equal(t, settings.Settings{Currency: settings.USD, Language: settings.English}, resp.Settings)
	assert.Equal(t, "25$", resp.Formatted["targetCPA"])
	assert.Equal(t, "1,000$", resp.Formatted["dailyRevenue"])
	assert.Equal(t, "0.5$", resp.Formatted["targetCPC"])
	assert.Equal(t, "1.43x", resp.Formatted["breakEvenROAS"])
}

func TestHandleCalculate_LanguageOverride(t *testing.T) {
	h := newHandler(&stubAdvisor{}, nil)
	rec := post(h.HandleCalculate, "/api/calculate", `{`+scenarioA+`, "currency": "EUR", "language": "es"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CalculateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "1,43x", resp.Formatted["breakEvenROAS"])
	assert.Equal(t, "35€", resp.Formatted["contributionMargin"])
}

func TestHandleCalculate_NotViableOmitsCurve(t *testing.T) {
	h := newHandler(&stubAdvisor{}, nil)
	rec := post(h.HandleCalculate, "/api/calculate", `{"inputs": {"cogs": 40, "opEx": 20, "avgOrderValue": 50, "targetProfitPercent": 20}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotContains(t, resp, "curve")
	result := resp["result"].(map[string]interface{})
	assert.Equal(t, false, result["isViable"])
	assert.Equal(t, 0.0, result["targetROAS"])
}

func TestHandleCalculate_Form(t *testing.T) {
	h := newHandler(&stubAdvisor{}, nil)
	body := `{"form": {"cogs": "10", "opEx": "5", "conversionRate": "2", "avgOrderValue": "50", "ordersPerDay": "20", "targetProfitPercent": "20"}}`
	rec := post(h.HandleCalculate, "/api/calculate", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CalculateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.InDelta(t, 2.0, resp.Result.TargetROAS, 1e-9)
}

func TestHandleCalculate_Errors(t *testing.T) {
	h := newHandler(&stubAdvisor{}, nil)
	cases := []struct {
		name, body, code, message string
	}{
		{"bad json", `{`, "INVALID_BODY", ""},
		{"missing inputs", `{}`, "MISSING_INPUTS", ""},
		{"zero aov", `{"inputs": {"avgOrderValue": 0}}`, "INVALID_INPUT", "Please enter a valid Average Order Value."},
		{"negative aov es", `{"inputs": {"avgOrderValue": -5}, "language": "es"}`, "INVALID_INPUT", "Por favor, introduce un ticket medio válido."},
		{"garbage field", `{"form": {"avgOrderValue": "abc"}}`, "INVALID_FIELD", ""},
		{"unknown currency", `{` + scenarioA + `, "currency": "JPY"}`, "UNKNOWN_SETTING", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(h.HandleCalculate, "/api/calculate", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body respond.ErrorBody
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Error)
			if tc.message != "" {
				assert.Equal(t, tc.message, body.Message)
			}
		})
	}
}

func TestHandleCalculate_SettingsLoadFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	h := NewHandler(&stubAdvisor{}, nil, stubSettings{err: errors.New("disk")}, logger)
	rec := post(h.HandleCalculate, "/api/calculate", `{`+scenarioA+`}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CalculateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, settings.Defaults(), resp.Settings)
	assert.NotEmpty(t, hook.AllEntries())
}

func TestHandleAdvice_Markdown(t *testing.T) {
	adv := &stubAdvisor{text: "🚀 **Diagnosis**\n\nHealthy.\n\n🎯 **Actions**\n\n- One\n- Two"}
	h := newHandler(adv, nil)
	rec := post(h.HandleAdvice, "/api/advice", `{`+scenarioA+`, "language": "fr"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AdviceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.ID)
	assert.Contains(t, resp.HTML, "<strong>Diagnosis</strong>")
	require.Len(t, resp.Sections, 2)
	assert.Equal(t, []string{"One", "Two"}, resp.Sections[1].Items)

	assert.Equal(t, settings.French, adv.got.Language)
	assert.Equal(t, "$", adv.got.CurrencySymbol)
	assert.InDelta(t, 25, adv.got.Result.TargetCPA, 1e-9)
}

func TestHandleAdvice_Structured(t *testing.T) {
	logger, _ := test.NewNullLogger()
	m := agent.NewManager(agent.Config{ActiveProvider: "static"}, logger)
	structured := advisory.NewStructuredAdvisor(m, nil, logger)
	h := newHandler(&stubAdvisor{err: errors.New("must not be called")}, structured)

	rec := post(h.HandleAdvice, "/api/advice", `{`+scenarioA+`, "format": "structured"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AdviceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Structured)
	assert.Len(t, resp.Structured.Actions, 3)
	require.Len(t, resp.Sections, 3)
	assert.Equal(t, "Financial diagnosis", resp.Sections[0].Title)
}

func TestHandleAdvice_NotViable(t *testing.T) {
	adv := &stubAdvisor{text: "never"}
	h := newHandler(adv, nil)
	rec := post(h.HandleAdvice, "/api/advice", `{"inputs": {"cogs": 40, "opEx": 20, "avgOrderValue": 50, "targetProfitPercent": 20}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Nil(t, adv.got.Result)
}

func TestHandleAdvice_ProviderFailure(t *testing.T) {
	h := newHandler(&stubAdvisor{err: advisory.ErrAdvisoryUnavailable}, nil)
	rec := post(h.HandleAdvice, "/api/advice", `{`+scenarioA+`, "language": "es"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body respond.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Error de comunicación con la IA.", body.Message)
}

func TestHandleAdvice_EmptyAdviceFallsBack(t *testing.T) {
	h := newHandler(&stubAdvisor{text: ""}, nil)
	rec := post(h.HandleAdvice, "/api/advice", `{`+scenarioA+`}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AdviceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Analysis unavailable.", resp.Advice)
}

func TestHandleAdvice_InvalidFormat(t *testing.T) {
	h := newHandler(&stubAdvisor{}, nil)
	rec := post(h.HandleAdvice, "/api/advice", `{`+scenarioA+`, "format": "xml"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
