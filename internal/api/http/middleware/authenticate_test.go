package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/gc02/usuario-server/internal/api/http/context"
	"github.com/gc02/usuario-server/internal/dto"
	"github.com/gc02/usuario-server/internal/mocks"
	"github.com/gc02/usuario-server/internal/model"
	"github.com/gc02/usuario-server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthenticate_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		method      string
		target      string
		body        string
		header      string
		verifyUID   string
		verifyErr   error
		wantStatus  int
		wantMessage string
		wantCalled  bool
	}{
		{
			name:        "missing header",
			method:      http.MethodGet,
			target:      "/cesta/7",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: msgMissingToken,
		},
		{
			name:        "not a bearer token",
			method:      http.MethodGet,
			target:      "/cesta/7",
			header:      "Basic abc",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: msgMissingToken,
		},
		{
			name:        "invalid token",
			method:      http.MethodGet,
			target:      "/cesta/7",
			header:      "Bearer bad",
			verifyErr:   model.ErrUnauthenticated,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: msgInvalidToken,
		},
		{
			name:        "verified token without uid",
			method:      http.MethodGet,
			target:      "/cesta/7",
			header:      "Bearer ok",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: msgInvalidToken,
		},
		{
			name:       "path owner matches",
			method:     http.MethodGet,
			target:     "/cesta/7",
			header:     "Bearer ok",
			verifyUID:  "7",
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:        "path owner mismatch",
			method:      http.MethodGet,
			target:      "/cesta/8",
			header:      "Bearer ok",
			verifyUID:   "7",
			wantStatus:  http.StatusForbidden,
			wantMessage: msgOwnerMismatch,
		},
		{
			name:        "path id mismatch",
			method:      http.MethodDelete,
			target:      "/usuarios/8",
			header:      "Bearer ok",
			verifyUID:   "7",
			wantStatus:  http.StatusForbidden,
			wantMessage: msgOwnerMismatch,
		},
		{
			name:       "body owner matches",
			method:     http.MethodPost,
			target:     "/cesta",
			body:       `{"idusuario":7,"idelemento":40}`,
			header:     "Bearer ok",
			verifyUID:  "7",
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:        "body owner mismatch",
			method:      http.MethodPost,
			target:      "/cesta",
			body:        `{"idusuario":8,"idelemento":40}`,
			header:      "Bearer ok",
			verifyUID:   "7",
			wantStatus:  http.StatusForbidden,
			wantMessage: msgOwnerMismatch,
		},
		{
			name:        "body id checked when idusuario is absent",
			method:      http.MethodPut,
			target:      "/usuarios",
			body:        `{"id":8,"nombreusuario":"x"}`,
			header:      "Bearer ok",
			verifyUID:   "7",
			wantStatus:  http.StatusForbidden,
			wantMessage: msgOwnerMismatch,
		},
		{
			name:       "string owner compares as text",
			method:     http.MethodPost,
			target:     "/cesta",
			body:       `{"idusuario":"7","idelemento":40}`,
			header:     "Bearer ok",
			verifyUID:  "7",
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:        "body owner key differs in case",
			method:      http.MethodPost,
			target:      "/cesta",
			body:        `{"IDUSUARIO":8,"idelemento":40}`,
			header:      "Bearer ok",
			verifyUID:   "7",
			wantStatus:  http.StatusForbidden,
			wantMessage: msgOwnerMismatch,
		},
		{
			name:        "body id key differs in case",
			method:      http.MethodPut,
			target:      "/usuarios",
			body:        `{"Id":8,"nombreusuario":"x"}`,
			header:      "Bearer ok",
			verifyUID:   "7",
			wantStatus:  http.StatusForbidden,
			wantMessage: msgOwnerMismatch,
		},
		{
			name:        "every body owner must match",
			method:      http.MethodPut,
			target:      "/usuarios",
			body:        `{"idusuario":7,"id":8,"contrasenia":"x"}`,
			header:      "Bearer ok",
			verifyUID:   "7",
			wantStatus:  http.StatusForbidden,
			wantMessage: msgOwnerMismatch,
		},
		{
			name:        "duplicate owner keys with different case",
			method:      http.MethodPost,
			target:      "/cesta",
			body:        `{"idusuario":7,"IdUsuario":8,"idelemento":40}`,
			header:      "Bearer ok",
			verifyUID:   "7",
			wantStatus:  http.StatusForbidden,
			wantMessage: msgOwnerMismatch,
		},
		{
			name:       "matching owners in several keys",
			method:     http.MethodPut,
			target:     "/usuarios",
			body:       `{"idusuario":7,"ID":7}`,
			header:     "Bearer ok",
			verifyUID:  "7",
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:        "oversized body",
			method:      http.MethodPost,
			target:      "/cesta",
			body:        `{"idusuario":7,"pad":"` + strings.Repeat("x", maxOwnerBodyBytes) + `"}`,
			header:      "Bearer ok",
			verifyUID:   "7",
			wantStatus:  http.StatusBadRequest,
			wantMessage: msgBadBody,
		},
		{
			name:       "no owner present",
			method:     http.MethodGet,
			target:     "/login",
			header:     "Bearer ok",
			verifyUID:  "7",
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "non json body is ignored",
			method:     http.MethodPost,
			target:     "/cesta",
			body:       `not json`,
			header:     "Bearer ok",
			verifyUID:  "7",
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			identity := &mocks.IdentityProvider{}
			if tt.header != "" && strings.HasPrefix(tt.header, "Bearer ") {
				identity.On("VerifyIDToken", mock.Anything, strings.TrimPrefix(tt.header, "Bearer ")).
					Return(model.Identity{UID: tt.verifyUID}, tt.verifyErr)
			}

			manager := httpctx.NewManager()
			auth := NewAuthenticate(identity, manager, testutil.MakeNoopLogger())

			called := false
			var gotUID, gotBody string
			h := func(c *gin.Context) {
				called = true
				gotUID, _ = manager.GetUIDFromContext(c.Request.Context())
				if c.Request.Body != nil {
					b, _ := io.ReadAll(c.Request.Body)
					gotBody = string(b)
				}
				c.Status(http.StatusOK)
			}

			r := gin.New()
			r.GET("/cesta/:idusuario", auth.Handle, h)
			r.POST("/cesta", auth.Handle, h)
			r.DELETE("/usuarios/:id", auth.Handle, h)
			r.PUT("/usuarios", auth.Handle, h)
			r.GET("/login", auth.Handle, h)

			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.target, body)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCalled, called)

			if tt.wantMessage != "" {
				var resp dto.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantStatus, resp.Code)
				assert.Equal(t, tt.wantMessage, resp.Message)
				assert.Equal(t, tt.target, resp.Path)
			}
			if tt.wantCalled {
				assert.Equal(t, tt.verifyUID, gotUID)
				assert.Equal(t, tt.body, gotBody)
			}

			identity.AssertExpectations(t)
		})
	}
}

func TestAuthenticate_VerifyErrorIsNotLeaked(t *testing.T) {
	t.Parallel()

	identity := &mocks.IdentityProvider{}
	identity.On("VerifyIDToken", mock.Anything, "tok").Return(model.Identity{}, errors.New("certificate fetch failed"))

	auth := NewAuthenticate(identity, httpctx.NewManager(), testutil.MakeNoopLogger())
	r := gin.New()
	r.GET("/x", auth.Handle, func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "certificate")
}
