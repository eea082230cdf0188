package controllers

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/fsdevblog/linkly/internal/controllers/smocks"
	"github.com/fsdevblog/linkly/internal/models"
	"github.com/fsdevblog/linkly/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

type RouterSuite struct {
	suite.Suite
	auth      *smocks.AuthMock
	links     *smocks.LinkMock
	analytics *smocks.AnalyticsMock
	ping      *smocks.PingMock
	router    *gin.Engine
	baseURL   *url.URL
	user      *models.Identity
	admin     *models.Identity
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *RouterSuite) SetupTest() {
	s.auth = new(smocks.AuthMock)
	s.links = new(smocks.LinkMock)
	s.analytics = new(smocks.AnalyticsMock)
	s.ping = new(smocks.PingMock)
	s.baseURL = &url.URL{Scheme: "http", Host: "sho.rt"}
	s.user = &models.Identity{UserID: "u1", Email: "alice@example.com", Role: models.RoleUser}
	s.admin = &models.Identity{UserID: "a1", Email: "root@example.com", Role: models.RoleAdmin}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s.router = SetupRouter(RouterParams{
		AuthService:      s.auth,
		LinkService:      s.links,
		AnalyticsService: s.analytics,
		PingService:      s.ping,
		BaseURL:          s.baseURL,
		Logger:           logger,
	})

	s.auth.On("ResolveIdentity", userToken).Return(s.user, nil).Maybe()
	s.auth.On("ResolveIdentity", adminToken).Return(s.admin, nil).Maybe()
	s.auth.On("ResolveIdentity", "expired").Return(nil, services.ErrTokenExpired).Maybe()
	s.auth.On("ResolveIdentity", "garbage").Return(nil, services.ErrInvalidToken).Maybe()
	s.auth.On("ResolveIdentity", "").Return(nil, services.ErrMissingToken).Maybe()
}

type requestFields struct {
	Method      string
	URL         string
	Body        io.Reader
	ContentType string
	Token       string
	Gzipped     bool
}

func (s *RouterSuite) makeRequest(f requestFields) *http.Response {
	body := f.Body
	if f.Gzipped && body != nil {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		_, err := io.Copy(gz, body)
		s.Require().NoError(err)
		s.Require().NoError(gz.Close())
		body = &buf
	}

	req := httptest.NewRequest(f.Method, f.URL, body)
	if f.ContentType != "" {
		req.Header.Set("Content-Type", f.ContentType)
	}
	if f.Token != "" {
		req.Header.Set("Authorization", "Bearer "+f.Token)
	}
	if f.Gzipped {
		req.Header.Set("Content-Encoding", "gzip")
		req.Header.Set("Accept-Encoding", "gzip")
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec.Result()
}

func readBody(r io.Reader, gzipped bool) ([]byte, error) {
	if gzipped {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(r)
}

func (s *RouterSuite) decodeError(res *http.Response) string {
	var body errorResponse
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
	return body.Error
}

func (s *RouterSuite) TestRegister() {
	s.auth.On("Register", services.RegisterParams{Email: "alice@example.com", Password: "p"}).
		Return(&models.User{ID: "u1", Email: "alice@example.com"}, nil)
	s.auth.On("Register", services.RegisterParams{Email: "alice@example.com", Password: "q"}).
		Return(nil, services.ErrDuplicateIdentity)
	s.auth.On("Register", services.RegisterParams{Email: "bob@example.com"}).
		Return(nil, services.ErrInvalidInput)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "created", body: `{"email":"alice@example.com","password":"p"}`, wantStatus: http.StatusCreated},
		{name: "duplicate", body: `{"email":"alice@example.com","password":"q"}`, wantStatus: http.StatusBadRequest},
		{name: "missing password", body: `{"email":"bob@example.com"}`, wantStatus: http.StatusBadRequest},
		{name: "malformed json", body: `{"email":`, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			res := s.makeRequest(requestFields{
				Method:      http.MethodPost,
				URL:         "/auth/register",
				Body:        strings.NewReader(tt.body),
				ContentType: "application/json",
			})
			defer res.Body.Close()
			s.Equal(tt.wantStatus, res.StatusCode)
		})
	}
}

func (s *RouterSuite) TestLogin() {
	user := &models.User{ID: "u1", Email: "alice@example.com", Name: "Alice", Role: models.RoleUser, PasswordHash: "secret-hash"}
	s.auth.On("Login", "alice@example.com", "p").Return("jwt", user, nil)
	s.auth.On("Login", "alice@example.com", "bad").Return("", nil, services.ErrInvalidCredentials)

	res := s.makeRequest(requestFields{
		Method:      http.MethodPost,
		URL:         "/auth/login",
		Body:        strings.NewReader(`{"email":"alice@example.com","password":"p"}`),
		ContentType: "application/json",
	})
	defer res.Body.Close()
	s.Require().Equal(http.StatusOK, res.StatusCode)

	raw, err := io.ReadAll(res.Body)
	s.Require().NoError(err)
	s.NotContains(string(raw), "secret-hash")

	var body loginResponse
	s.Require().NoError(json.Unmarshal(raw, &body))
	s.Equal("jwt", body.Token)
	s.Equal("u1", body.User.ID)
	s.Equal(models.RoleUser, body.User.Role)

	bad := s.makeRequest(requestFields{
		Method:      http.MethodPost,
		URL:         "/auth/login",
		Body:        strings.NewReader(`{"email":"alice@example.com","password":"bad"}`),
		ContentType: "application/json",
	})
	defer bad.Body.Close()
	s.Equal(http.StatusBadRequest, bad.StatusCode)
	s.Equal("invalid credentials", s.decodeError(bad))
}

func (s *RouterSuite) TestAuthGate() {
	tests := []struct {
		name        string
		token       string
		wantStatus  int
		wantMessage string
	}{
		{name: "missing", token: "", wantStatus: http.StatusUnauthorized, wantMessage: "unauthorized"},
		{name: "invalid", token: "garbage", wantStatus: http.StatusUnauthorized, wantMessage: "unauthorized"},
		{name: "expired", token: "expired", wantStatus: http.StatusUnauthorized, wantMessage: "token has expired"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			res := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/my", Token: tt.token})
			defer res.Body.Close()
			s.Equal(tt.wantStatus, res.StatusCode)
			s.Equal(tt.wantMessage, s.decodeError(res))
		})
	}
	s.links.AssertNotCalled(s.T(), "ListOwn", mock.Anything)
}

func (s *RouterSuite) TestShorten() {
	created := &models.Link{Code: "abc123", TargetURL: "https://example.com/a", ShortURL: "http://sho.rt/abc123"}
	existing := &models.Link{Code: "def456", TargetURL: "https://example.com/b", ShortURL: "http://sho.rt/def456"}

	s.links.On("Shorten", s.user, "https://example.com/a", s.baseURL).Return(created, true, nil)
	s.links.On("Shorten", s.user, "https://example.com/b", s.baseURL).Return(existing, false, nil)
	s.links.On("Shorten", s.user, "nope", s.baseURL).Return(nil, false, services.ErrInvalidInput)

	tests := []struct {
		name        string
		body        string
		contentType string
		gzip        bool
		wantStatus  int
		wantCode    string
	}{
		{name: "new json", body: `{"origUrl":"https://example.com/a"}`, contentType: "application/json",
			wantStatus: http.StatusCreated, wantCode: "abc123"},
		{name: "new json gzip", body: `{"origUrl":"https://example.com/a"}`, contentType: "application/json",
			gzip: true, wantStatus: http.StatusCreated, wantCode: "abc123"},
		{name: "url alias", body: `{"url":"https://example.com/a"}`, contentType: "application/json",
			wantStatus: http.StatusCreated, wantCode: "abc123"},
		{name: "existing plain text", body: "https://example.com/b", contentType: "text/plain",
			wantStatus: http.StatusOK, wantCode: "def456"},
		{name: "invalid", body: `{"origUrl":"nope"}`, contentType: "application/json",
			wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			res := s.makeRequest(requestFields{
				Method:      http.MethodPost,
				URL:         "/shorten",
				Body:        strings.NewReader(tt.body),
				ContentType: tt.contentType,
				Token:       userToken,
				Gzipped:     tt.gzip,
			})
			defer res.Body.Close()
			s.Equal(tt.wantStatus, res.StatusCode)
			if tt.wantCode == "" {
				return
			}

			raw, err := readBody(res.Body, tt.gzip)
			s.Require().NoError(err)
			var link map[string]any
			s.Require().NoError(json.Unmarshal(raw, &link))
			s.Equal(tt.wantCode, link["urlId"])
			s.Contains(link, "origUrl")
			s.Contains(link, "shortUrl")
			s.Contains(link, "clicks")
		})
	}
}

func (s *RouterSuite) TestListAll() {
	s.links.On("ListAll", s.admin).Return([]models.OwnedLink{
		{Link: models.Link{Code: "abc123", OwnerID: "u1"}, OwnerEmail: "alice@example.com"},
	}, nil)

	res := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/all", Token: userToken})
	defer res.Body.Close()
	s.Equal(http.StatusForbidden, res.StatusCode)
	s.links.AssertNotCalled(s.T(), "ListAll", s.user)

	res = s.makeRequest(requestFields{Method: http.MethodGet, URL: "/all", Token: adminToken})
	defer res.Body.Close()
	s.Require().Equal(http.StatusOK, res.StatusCode)

	var links []map[string]any
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&links))
	s.Require().Len(links, 1)
	s.Equal("alice@example.com", links[0]["ownerEmail"])
}

func (s *RouterSuite) TestRedirect() {
	s.links.On("Resolve", "abc123").Return(&models.Link{Code: "abc123", TargetURL: "https://example.com/a"}, nil)
	s.links.On("Resolve", "zzz999").Return(nil, services.ErrRecordNotFound)

	res := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/abc123"})
	defer res.Body.Close()
	s.Equal(http.StatusFound, res.StatusCode)
	s.Equal("https://example.com/a", res.Header.Get("Location"))

	res = s.makeRequest(requestFields{Method: http.MethodGet, URL: "/zzz999"})
	defer res.Body.Close()
	s.Equal(http.StatusNotFound, res.StatusCode)
}

func (s *RouterSuite) TestClicksOverTime() {
	s.analytics.On("ClicksOverTime", s.user, 7).Return([]models.DailyClicks{{Date: "2025-01-01", Clicks: 1}}, nil)
	s.analytics.On("ClicksOverTime", s.user, 30).Return([]models.DailyClicks{}, nil)

	res := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/clicks-over-time", Token: userToken})
	defer res.Body.Close()
	s.Equal(http.StatusOK, res.StatusCode)

	res = s.makeRequest(requestFields{Method: http.MethodGet, URL: "/clicks-over-time?days=30", Token: userToken})
	defer res.Body.Close()
	s.Equal(http.StatusOK, res.StatusCode)

	res = s.makeRequest(requestFields{Method: http.MethodGet, URL: "/clicks-over-time?days=abc", Token: userToken})
	defer res.Body.Close()
	s.Equal(http.StatusBadRequest, res.StatusCode)
}

func (s *RouterSuite) TestAdminAnalytics() {
	s.analytics.On("AdminOverview", s.admin).Return(&models.AdminOverview{URLCount: 2, UserCount: 3}, nil)
	s.analytics.On("AdminClicksOverTime", s.admin).Return([]models.DailyClicks{{Date: "2025-01-01", Clicks: 4}}, nil)

	for _, uri := range []string{"/admin/analytics", "/admin/clicks-over-time"} {
		s.Run(uri, func() {
			forbidden := s.makeRequest(requestFields{Method: http.MethodGet, URL: uri, Token: userToken})
			defer forbidden.Body.Close()
			s.Equal(http.StatusForbidden, forbidden.StatusCode)

			ok := s.makeRequest(requestFields{Method: http.MethodGet, URL: uri, Token: adminToken})
			defer ok.Body.Close()
			s.Equal(http.StatusOK, ok.StatusCode)
		})
	}
}

func (s *RouterSuite) TestInternalErrorIsNotLeaked() {
	s.analytics.On("Summary", s.user).Return(nil, errors.New("pq: connection refused to 10.0.0.5"))

	res := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/summary", Token: userToken})
	defer res.Body.Close()
	s.Equal(http.StatusInternalServerError, res.StatusCode)
	s.Equal("internal error", s.decodeError(res))
}

func (s *RouterSuite) TestPing() {
	s.ping.On("CheckConnection").Return(nil).Once()
	res := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/ping"})
	defer res.Body.Close()
	s.Equal(http.StatusOK, res.StatusCode)

	s.ping.On("CheckConnection").Return(errors.New("down")).Once()
	res = s.makeRequest(requestFields{Method: http.MethodGet, URL: "/ping"})
	defer res.Body.Close()
	s.Equal(http.StatusInternalServerError, res.StatusCode)
}

func (s *RouterSuite) TestInfo() {
	res := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/info"})
	defer res.Body.Close()
	s.Require().Equal(http.StatusOK, res.StatusCode)

	raw, err := io.ReadAll(res.Body)
	s.Require().NoError(err)
	s.Contains(string(raw), "/clicks-over-time")
	s.Contains(string(raw), "/auth/login")
}
