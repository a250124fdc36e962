package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfagnish/supplychain-api/internal/config"
	"github.com/alfagnish/supplychain-api/internal/events"
	"github.com/alfagnish/supplychain-api/internal/metrics"
	"github.com/alfagnish/supplychain-api/internal/models"
	"github.com/alfagnish/supplychain-api/internal/storage"
	"github.com/alfagnish/supplychain-api/internal/store"
)

func setupHttptestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		PublicDir: t.TempDir(),
		JWTSecret: "test-secret",
	}
	sp, err := storage.NewLocalProvider(cfg.UploadDir(), "profile", "product")
	require.NoError(t, err)

	srv := httptest.NewServer(New(cfg, Deps{
		Store:   store.New(),
		Storage: sp,
		Hub:     events.NewHub(),
		Metrics: metrics.New(prometheus.NewRegistry()),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestServer_SeededAccounts(t *testing.T) {
	srv := setupHttptestServer(t)

	resp, err := http.Get(srv.URL + "/authAll")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var accounts []models.Account
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&accounts))
	resp.Body.Close()
	assert.Equal(t, models.SeedAccounts(), accounts)
}

func TestServer_AuthCheck(t *testing.T) {
	srv := setupHttptestServer(t)

	resp, err := http.Post(srv.URL+"/auth/admin/admin", "application/json", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"username":"admin","password":"admin","role":"admin"}]`, readAll(t, resp))

	resp, err = http.Post(srv.URL+"/auth/admin/wrong", "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, readAll(t, resp))
}

func TestServer_AddProductScenario(t *testing.T) {
	srv := setupHttptestServer(t)

	resp, err := http.Post(srv.URL+"/addproduct", "application/json",
		strings.NewReader(`{"serialNumber":"CH005","name":"X","brand":"Y"}`))
	require.NoError(t, err)
	assert.Equal(t, "Data inserted", readAll(t, resp))

	resp, err = http.Get(srv.URL + "/product/CH005")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":5,"serialNumber":"CH005","name":"X","brand":"Y"}]`, readAll(t, resp))
}

func TestServer_UploadRoundTrip(t *testing.T) {
	srv := setupHttptestServer(t)

	content := bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 1024)
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile("image", "Chanel_Boy.png")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/upload/product", mw.FormDataContentType(), buf)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var up struct {
		Success   bool   `json:"success"`
		ImagePath string `json:"imagePath"`
		Filename  string `json:"filename"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&up))
	resp.Body.Close()

	assert.True(t, up.Success)
	assert.Regexp(t, `^\d+-Chanel_Boy\.png$`, up.Filename)
	assert.Equal(t, "/uploads/product/"+up.Filename, up.ImagePath)

	resp, err = http.Get(srv.URL + up.ImagePath)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, string(content), readAll(t, resp))
}

func TestServer_ChangeFeed(t *testing.T) {
	srv := setupHttptestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	resp, err := http.Post(srv.URL+"/addproduct", "application/json",
		strings.NewReader(`{"serialNumber":"CH007","name":"Vanity","brand":"Chanel"}`))
	require.NoError(t, err)
	resp.Body.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev struct {
		ID         string         `json:"id"`
		Type       string         `json:"type"`
		Collection string         `json:"collection"`
		Data       models.Product `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, events.ProductCreated, ev.Type)
	assert.Equal(t, "products", ev.Collection)
	assert.Equal(t, "CH007", ev.Data.SerialNumber)
	assert.Equal(t, 5, ev.Data.ID)
}

func TestServer_MetricsAndHealth(t *testing.T) {
	srv := setupHttptestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, readAll(t, resp))

	resp, err = http.Get(srv.URL + "/profile/admin")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body := readAll(t, resp)
	assert.Contains(t, body, `supplychain_http_requests_total{method="GET",route="/profile/{username}",status="200"} 1`)
}

func TestServer_CORS(t *testing.T) {
	srv := setupHttptestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/addprofile", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestServer_UploadDirsUnderPublicRoot(t *testing.T) {
	cfg := &config.Config{PublicDir: "web"}
	assert.Equal(t, filepath.Join("web", "uploads"), cfg.UploadDir())
}
