package server_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nbspace"
	"github.com/dmitrymomot/nbspace/internal/config"
	"github.com/dmitrymomot/nbspace/internal/server"
	"github.com/dmitrymomot/nbspace/pkg/changelog"
	"github.com/dmitrymomot/nbspace/pkg/health"
	"github.com/dmitrymomot/nbspace/pkg/keydiff"
	"github.com/dmitrymomot/nbspace/pkg/nbsp"
	"github.com/dmitrymomot/nbspace/pkg/sheetio"
	"github.com/dmitrymomot/nbspace/pkg/transcode"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            8080,
		RequestTimeout:  5 * time.Second,
		ShutdownTimeout: time.Second,
		MaxUploadSize:   1 << 20,
	}
	conv := nbspace.New(nbspace.WithTranscodeOptions(transcode.WithClock(func() time.Time {
		return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	})))
	return server.New(cfg, conv, nbsp.NewEngine(), server.WithChecks(health.Checks{})).Handler()
}

type upload struct {
	field, name string
	data        []byte
}

func multipartRequest(t *testing.T, path string, files ...upload) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = fw.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func sheetBytes(t *testing.T, m transcode.Matrix) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, sheetio.WriteSheet(&buf, m))
	return buf.Bytes()
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	h := newServer(t)

	tests := []struct {
		name           string
		body           string
		acceptLanguage string
		wantStatus     int
		wantText       string
		wantLang       string
	}{
		{"explicit language", `{"text":"1234,56","lang":"fr"}`, "", http.StatusOK, "1\u00a0234,56", "FR"},
		{"accept-language", `{"text":"le chat"}`, "fr-CH, en;q=0.8", http.StatusOK, "le\u00a0chat", "FR"},
		{"default language", `{"text":"1234.56"}`, "", http.StatusOK, "1,234.56", "EN"},
		{"locale style language", `{"text":"1234.56","lang":"en_EN"}`, "", http.StatusOK, "1,234.56", "EN"},
		{"settings override", `{"text":"10 kg","settings":{"unit_spacing":false}}`, "", http.StatusOK, "10 kg", "EN"},
		{"unknown setting", `{"text":"x","settings":{"bogus":true}}`, "", http.StatusBadRequest, "", ""},
		{"malformed body", `{`, "", http.StatusBadRequest, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/v1/normalize", strings.NewReader(tt.body))
			if tt.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp struct {
				Text   string            `json:"text"`
				Lang   string            `json:"lang"`
				Events []changelog.Event `json:"events"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantText, resp.Text)
			assert.Equal(t, tt.wantLang, resp.Lang)
		})
	}

	t.Run("locale style query language", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/v1/normalize?lang=fr_FR", strings.NewReader(`{"text":"le chat"}`))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Text string `json:"text"`
			Lang string `json:"lang"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "le\u00a0chat", resp.Text)
		assert.Equal(t, "FR", resp.Lang)
	})
}

func TestConvert(t *testing.T) {
	t.Parallel()
	h := newServer(t)

	sheet := sheetBytes(t, transcode.Matrix{{"Key", "en_EN"}, {"weight", "10 kg"}})
	req := multipartRequest(t, "/v1/convert/sheet-to-flat",
		upload{"files", "menu [A1].xlsx", sheet},
		upload{"files", "broken.xlsx", []byte("nope")},
	)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RunID   string `json:"run_id"`
		Outputs []struct {
			Name    string `json:"name"`
			Data    []byte `json:"data"`
			Changes int    `json:"changes"`
		} `json:"outputs"`
		Errors []struct {
			File string `json:"file"`
		} `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.RunID)
	require.Len(t, resp.Outputs, 1)
	assert.Equal(t, "menu [A1].txt", resp.Outputs[0].Name)
	assert.Equal(t, "code\tKey\tDate\tweight\nA1\tEN\t26-10-19\t10\u00a0kg", string(resp.Outputs[0].Data))
	assert.Equal(t, 1, resp.Outputs[0].Changes)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "broken.xlsx", resp.Errors[0].File)

	t.Run("flat to sheet", func(t *testing.T) {
		t.Parallel()
		req := multipartRequest(t, "/v1/convert/flat-to-sheet",
			upload{"files", "menu [A1].txt", []byte("code\tKey\tDate\tweight\nA1\tEN\t26-10-19\t10 kg")},
		)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"menu [A1].xlsx"`)
		assert.Contains(t, rec.Body.String(), `"source_charset":"utf-8"`)
	})

	t.Run("all files failed", func(t *testing.T) {
		t.Parallel()
		req := multipartRequest(t, "/v1/convert/sheet-to-flat", upload{"files", "broken.xlsx", []byte("nope")})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("no files", func(t *testing.T) {
		t.Parallel()
		req := multipartRequest(t, "/v1/convert/sheet-to-flat")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDiff(t *testing.T) {
	t.Parallel()
	h := newServer(t)

	req := multipartRequest(t, "/v1/diff",
		upload{"first", "old.xlsx", sheetBytes(t, transcode.Matrix{{"Key", "en_EN"}, {"title", "Menu"}, {"price", "Price"}})},
		upload{"second", "new.xlsx", sheetBytes(t, transcode.Matrix{{"Key", "en_EN"}, {"title", "Menu"}})},
	)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var diff keydiff.Diff
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&diff))
	assert.Equal(t, []string{"price"}, diff.OnlyInFirst)
	assert.Empty(t, diff.OnlyInSecond)
	assert.True(t, diff.CountMismatch)
}

func TestReport(t *testing.T) {
	t.Parallel()
	h := newServer(t)

	body := `{"title":"menu.txt","events":[{"rule":"NBSP before units","before":"10 kg","after":"10\u00a0kg","location":"B2"},{"rule":"Notice","after":"<script>x</script>"}]}`

	req := httptest.NewRequest(http.MethodPost, "/v1/report", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "**2 changes**")

	req = httptest.NewRequest(http.MethodPost, "/v1/report?format=html", strings.NewReader(body))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<strong>2 changes</strong>")
	assert.NotContains(t, rec.Body.String(), "<script>")
}

func TestHealth(t *testing.T) {
	t.Parallel()
	h := newServer(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "OK", rec.Body.String(), path)
	}
}
