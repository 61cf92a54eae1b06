package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gc02/usuario-server/internal/dto"
	"github.com/gc02/usuario-server/internal/mocks"
	"github.com/gc02/usuario-server/internal/model"
)

func cartRouter(svc *mocks.RelationService) *gin.Engine {
	h := NewCart(svc)
	r := gin.New()
	r.GET("/api/usuarios/cesta/:idusuario", h.Get)
	r.GET("/api/usuarios/cesta/:idusuario/:idelemento", h.Exists)
	r.POST("/api/usuarios/cesta", h.Create)
	r.DELETE("/api/usuarios/cesta/:idusuario/:idelemento", h.Delete)
	return r
}

func TestCart_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		target      string
		mockSetup   func(*mocks.RelationService)
		wantStatus  int
		wantMessage string
	}{
		{
			name:   "absent row",
			target: "/api/usuarios/cesta/7/40",
			mockSetup: func(s *mocks.RelationService) {
				s.On("Delete", mock.Anything, int64(7), int64(40)).Return(model.Relation{}, model.ErrNotFound)
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: "Elemento o usuario no encontrado en la cesta.",
		},
		{
			name:   "existing row",
			target: "/api/usuarios/cesta/7/40",
			mockSetup: func(s *mocks.RelationService) {
				s.On("Delete", mock.Anything, int64(7), int64(40)).Return(model.Relation{UserID: 7, ElementID: 40}, nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:        "non numeric element",
			target:      "/api/usuarios/cesta/7/abc",
			mockSetup:   func(*mocks.RelationService) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "ID de usuario o de elemento inválido.",
		},
		{
			name:   "database failure",
			target: "/api/usuarios/cesta/7/40",
			mockSetup: func(s *mocks.RelationService) {
				s.On("Delete", mock.Anything, int64(7), int64(40)).Return(model.Relation{}, errors.New("timeout"))
			},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Error interno al eliminar el elemento de la cesta.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &mocks.RelationService{}
			tt.mockSetup(svc)

			w := serveJSON(cartRouter(svc), http.MethodDelete, tt.target, "")

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMessage != "" {
				resp := decodeError(t, w)
				assert.Equal(t, tt.wantStatus, resp.Code)
				assert.Equal(t, tt.wantMessage, resp.Message)
				assert.Equal(t, tt.target, resp.Path)
			} else {
				assert.Empty(t, w.Body.String())
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestCart_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		body         string
		mockSetup    func(*mocks.RelationService)
		wantStatus   int
		wantLocation string
	}{
		{
			name: "created",
			body: `{"idusuario":7,"idelemento":40}`,
			mockSetup: func(s *mocks.RelationService) {
				s.On("Create", mock.Anything, int64(7), int64(40)).Return(model.Relation{UserID: 7, ElementID: 40}, nil)
			},
			wantStatus:   http.StatusCreated,
			wantLocation: "/api/usuarios/cesta/7/40",
		},
		{
			name: "duplicate",
			body: `{"idusuario":7,"idelemento":40}`,
			mockSetup: func(s *mocks.RelationService) {
				s.On("Create", mock.Anything, int64(7), int64(40)).Return(model.Relation{}, model.ErrConflict)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "missing element",
			body:       `{"idusuario":7}`,
			mockSetup:  func(*mocks.RelationService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"idusuario":`,
			mockSetup:  func(*mocks.RelationService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &mocks.RelationService{}
			tt.mockSetup(svc)

			w := serveJSON(cartRouter(svc), http.MethodPost, "/api/usuarios/cesta", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
			svc.AssertExpectations(t)
		})
	}
}

func TestCart_Get(t *testing.T) {
	t.Parallel()

	svc := &mocks.RelationService{}
	svc.On("List", mock.Anything, int64(7)).Return([]model.Element{
		{ID: 40, Nombre: "Song", Precio: ptr(1.005)},
		{ID: 41, Nombre: "Album", Precio: ptr(9.99), EsAlbum: ptr(true)},
	}, nil)

	w := serveJSON(cartRouter(svc), http.MethodGet, "/api/usuarios/cesta/7", "")
	require.Equal(t, http.StatusOK, w.Code)

	var cart dto.CartDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 2)
	assert.Equal(t, dto.CartItemTrack, cart.Items[0].Tipo)
	assert.Equal(t, dto.CartItemAlbum, cart.Items[1].Tipo)
	assert.InDelta(t, cart.Items[0].Precio+cart.Items[1].Precio, cart.Total, 0.001)
}

func TestCart_Exists(t *testing.T) {
	t.Parallel()

	svc := &mocks.RelationService{}
	svc.On("Exists", mock.Anything, int64(7), int64(40)).Return(true, nil)

	w := serveJSON(cartRouter(svc), http.MethodGet, "/api/usuarios/cesta/7/40", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "true", w.Body.String())
}

func TestWishlist_ListAndCreate(t *testing.T) {
	t.Parallel()

	svc := &mocks.RelationService{}
	svc.On("List", mock.Anything, int64(7)).Return([]model.Element(nil), nil)
	svc.On("Create", mock.Anything, int64(7), int64(40)).Return(model.Relation{UserID: 7, ElementID: 40}, nil)

	h := NewWishlist(svc)
	r := gin.New()
	r.GET("/api/usuarios/desea/:idusuario", h.List)
	r.POST("/api/usuarios/desea", h.Create)

	w := serveJSON(r, http.MethodGet, "/api/usuarios/desea/7", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = serveJSON(r, http.MethodPost, "/api/usuarios/desea", `{"idusuario":7,"idelemento":40}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/usuarios/desea/7/40", w.Header().Get("Location"))

	w = serveJSON(r, http.MethodPost, "/api/usuarios/desea", `{"idelemento":40}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Solicitud inválida o datos incompletos", decodeError(t, w).Message)
}
