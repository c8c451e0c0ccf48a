package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goliatone/go-intake/internal/config"
	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/wizard"
)

func testSchema(t *testing.T) *model.Questionnaire {
	t.Helper()
	q, err := model.NewQuestionnaire("Brief", model.Theme{}, []model.Field{
		{ID: "goal", Kind: model.KindShortText, Required: true},
		{ID: "consent", Kind: model.KindConsent, Required: true},
		{ID: "notes", Kind: model.KindLongText},
	})
	require.NoError(t, err)
	return q
}

func testServer(t *testing.T, gateway wizard.Gateway) *Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Port = "0"
	cfg.App.CorsAllowedOrigins = "http://localhost:5173"
	return New(cfg, testSchema(t), gateway, zap.NewNop())
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestGetQuestionnaire(t *testing.T) {
	srv := testServer(t, wizard.GatewayFunc(func(context.Context, map[string]model.Value) error {
		return nil
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/questionnaire", nil)
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Brief", data["title"])
}

func postBrief(t *testing.T, srv *Server, payload any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/brief", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	return resp
}

func TestPostBriefAcceptsCompleteAnswers(t *testing.T) {
	var received map[string]model.Value
	var gatewayID string
	srv := testServer(t, wizard.GatewayFunc(func(ctx context.Context, answers map[string]model.Value) error {
		received = answers
		gatewayID, _ = wizard.SubmissionID(ctx)
		return nil
	}))

	resp := postBrief(t, srv, map[string]model.Value{
		"goal":    model.TextValue(model.KindShortText, "Double leads"),
		"consent": model.ConsentValue(true),
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["submission_id"])
	assert.Equal(t, data["submission_id"], gatewayID,
		"gateway must see the same id the client is given")

	require.NotNil(t, received)
	assert.Equal(t, "Double leads", received["goal"].Text)
}

func TestPostBriefRejectsUnknownField(t *testing.T) {
	var reached bool
	srv := testServer(t, wizard.GatewayFunc(func(context.Context, map[string]model.Value) error {
		reached = true
		return nil
	}))

	resp := postBrief(t, srv, map[string]model.Value{
		"ghost": model.TextValue(model.KindShortText, "boo"),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, reached, "gateway must not be reached")
}

func TestPostBriefRejectsKindMismatch(t *testing.T) {
	var reached bool
	srv := testServer(t, wizard.GatewayFunc(func(context.Context, map[string]model.Value) error {
		reached = true
		return nil
	}))

	resp := postBrief(t, srv, map[string]model.Value{
		"goal": model.YesNoValue(true),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, reached, "gateway must not be reached")
}

func TestPostBriefIncompleteReturns422(t *testing.T) {
	var reached bool
	srv := testServer(t, wizard.GatewayFunc(func(context.Context, map[string]model.Value) error {
		reached = true
		return nil
	}))

	resp := postBrief(t, srv, map[string]model.Value{
		"goal":    model.TextValue(model.KindShortText, "Double leads"),
		"consent": model.ConsentValue(false),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, data, "consent")
	assert.False(t, reached, "gateway must not be reached")
}

func TestPostBriefGatewayFailureReturns502(t *testing.T) {
	srv := testServer(t, wizard.GatewayFunc(func(context.Context, map[string]model.Value) error {
		return errors.New("smtp down")
	}))

	resp := postBrief(t, srv, map[string]model.Value{
		"goal":    model.TextValue(model.KindShortText, "Double leads"),
		"consent": model.ConsentValue(true),
	})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestPostBriefMalformedBody(t *testing.T) {
	srv := testServer(t, wizard.GatewayFunc(func(context.Context, map[string]model.Value) error {
		return nil
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/brief", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
