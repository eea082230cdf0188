package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/linkly/internal/config"
	"github.com/fsdevblog/linkly/internal/db"
	"github.com/fsdevblog/linkly/internal/services"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return config.Config{
		ServerAddress:    "localhost:0",
		BaseURL:          &url.URL{Scheme: "http", Host: "sho.rt"},
		FileStoragePath:  filepath.Join(t.TempDir(), "snapshot.json"),
		JWTSecret:        "test-secret",
		TokenTTL:         time.Hour,
		AllowAdminSignup: true,
		Logger:           logger,
	}
}

func do(t *testing.T, h http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, h http.Handler, email, password string) string {
	t.Helper()
	creds := `{"email":"` + email + `","password":"` + password + `"}`

	rec := do(t, h, http.MethodPost, "/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/auth/login", "", creds)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	return login.Token
}

func TestApp_EndToEnd(t *testing.T) {
	a, err := New(testConfig(t))
	require.NoError(t, err)
	h := a.Handler()

	email := gofakeit.Email()
	token := registerAndLogin(t, h, email, "p4ssw0rd")

	rec := do(t, h, http.MethodPost, "/shorten", token, `{"origUrl":"https://example.com/page"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var link struct {
		Code     string `json:"urlId"`
		ShortURL string `json:"shortUrl"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &link))
	assert.Equal(t, "http://sho.rt/"+link.Code, link.ShortURL)

	rec = do(t, h, http.MethodPost, "/shorten", token, `{"origUrl":"https://example.com/page"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	for range 3 {
		rec = do(t, h, http.MethodGet, "/"+link.Code, "", "")
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "https://example.com/page", rec.Header().Get("Location"))
	}

	rec = do(t, h, http.MethodGet, "/summary", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":1,"totalClicks":3}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/all", token, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	for _, target := range []string{"http://intranet/x", "http://[::1]:8080/x"} {
		rec = do(t, h, http.MethodPost, "/shorten", token, `{"origUrl":"`+target+`"}`)
		assert.Equal(t, http.StatusCreated, rec.Code, target)
	}

	rec = do(t, h, http.MethodGet, "/ping", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApp_BackupRoundTrip(t *testing.T) {
	conf := testConfig(t)

	first, err := New(conf)
	require.NoError(t, err)
	require.NotNil(t, first.dbServices.BackupService)

	token := registerAndLogin(t, first.Handler(), "bob@example.com", "secret")
	rec := do(t, first.Handler(), http.MethodPost, "/shorten", token, `{"origUrl":"https://example.com/b"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	first.makeBackup()

	second, err := New(conf)
	require.NoError(t, err)
	require.NoError(t, second.restoreBackup())

	rec = do(t, second.Handler(), http.MethodGet, "/my", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var links []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &links))
	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/b", links[0]["origUrl"])
}

func TestWhatIsDBStorageType(t *testing.T) {
	tests := []struct {
		name    string
		conf    config.Config
		storage db.StorageType
		service services.ServiceType
	}{
		{name: "postgres", conf: config.Config{DatabaseDSN: "postgres://x", SQLitePath: "a.db"},
			storage: db.StorageTypePostgres, service: services.ServiceTypePostgres},
		{name: "sqlite", conf: config.Config{SQLitePath: "a.db"},
			storage: db.StorageTypeSQLite, service: services.ServiceTypeSQLite},
		{name: "memory", conf: config.Config{},
			storage: db.StorageTypeInMemory, service: services.ServiceTypeInMemory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := whatIsDBStorageType(&tt.conf)
			assert.Equal(t, tt.storage, got)
			assert.Equal(t, tt.service, whatIsServiceType(got))
		})
	}
}
