package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gc02/usuario-server/internal/dto"
	"github.com/gc02/usuario-server/internal/model"
)

// RelationService is the cart and wishlist behaviour the handlers need.
type RelationService interface {
	List(ctx context.Context, userID int64) ([]model.Element, error)
	Exists(ctx context.Context, userID, elementID int64) (bool, error)
	Create(ctx context.Context, userID, elementID int64) (model.Relation, error)
	Delete(ctx context.Context, userID, elementID int64) (model.Relation, error)
}

type relationMessages struct {
	list       errorMessages
	exists     errorMessages
	create     errorMessages
	delete     errorMessages
	badRequest string
	badID      string
}

type relationHandler struct {
	service  RelationService
	location string
	msgs     relationMessages
}

func (h *relationHandler) ids(c *gin.Context) (int64, int64, bool) {
	userID, ok := pathID(c, "idusuario", h.msgs.badID)
	if !ok {
		return 0, 0, false
	}
	elementID, ok := pathID(c, "idelemento", h.msgs.badID)
	if !ok {
		return 0, 0, false
	}
	return userID, elementID, true
}

func (h *relationHandler) exists(c *gin.Context) {
	userID, elementID, ok := h.ids(c)
	if !ok {
		return
	}

	exists, err := h.service.Exists(c.Request.Context(), userID, elementID)
	if err != nil {
		handleError(c, err, h.msgs.exists)
		return
	}

	c.JSON(http.StatusOK, exists)
}

func (h *relationHandler) create(c *gin.Context) {
	req, ok := bindRelation(c, h.msgs.badRequest)
	if !ok {
		return
	}

	rel, err := h.service.Create(c.Request.Context(), *req.IDUsuario, *req.IDElemento)
	if err != nil {
		handleError(c, err, h.msgs.create)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/%d/%d", h.location, rel.UserID, rel.ElementID))
	c.JSON(http.StatusCreated, dto.NewRelationDTO(rel))
}

func (h *relationHandler) delete(c *gin.Context) {
	userID, elementID, ok := h.ids(c)
	if !ok {
		return
	}

	if _, err := h.service.Delete(c.Request.Context(), userID, elementID); err != nil {
		handleError(c, err, h.msgs.delete)
		return
	}

	c.Status(http.StatusNoContent)
}

// Cart serves /api/usuarios/cesta.
type Cart struct {
	relationHandler
}

func NewCart(service RelationService) *Cart {
	return &Cart{relationHandler{
		service:  service,
		location: "/api/usuarios/cesta",
		msgs: relationMessages{
			list:   errorMessages{internal: "Error interno al obtener la cesta del usuario."},
			exists: errorMessages{internal: "Error interno al verificar el estado del elemento en la cesta."},
			create: errorMessages{
				notFound: "Usuario no encontrado.",
				conflict: "El elemento ya está presente en la cesta del usuario.",
				internal: "Error interno al crear el elemento de la cesta.",
			},
			delete: errorMessages{
				notFound: "Elemento o usuario no encontrado en la cesta.",
				internal: "Error interno al eliminar el elemento de la cesta.",
			},
			badRequest: msgBadRequest,
			badID:      "ID de usuario o de elemento inválido.",
		},
	}}
}

// Get returns the priced cart.
func (h *Cart) Get(c *gin.Context) {
	userID, ok := pathID(c, "idusuario", h.msgs.badID)
	if !ok {
		return
	}

	elements, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err, h.msgs.list)
		return
	}

	c.JSON(http.StatusOK, dto.NewCart(elements))
}

func (h *Cart) Exists(c *gin.Context) { h.exists(c) }
func (h *Cart) Create(c *gin.Context) { h.create(c) }
func (h *Cart) Delete(c *gin.Context) { h.delete(c) }

// Wishlist serves /api/usuarios/desea.
type Wishlist struct {
	relationHandler
}

func NewWishlist(service RelationService) *Wishlist {
	return &Wishlist{relationHandler{
		service:  service,
		location: "/api/usuarios/desea",
		msgs: relationMessages{
			list:   errorMessages{internal: "Error interno al consultar los elementos deseados del usuario."},
			exists: errorMessages{internal: "Error interno del servidor al verificar el estado del elemento."},
			create: errorMessages{
				notFound: "Usuario no encontrado.",
				conflict: "El elemento ya está en la lista del usuario.",
				internal: "Error interno del servidor al crear el elemento deseado.",
			},
			delete: errorMessages{
				notFound: "Elemento o usuario no encontrado en la lista de deseos.",
				internal: "Error interno del servidor al eliminar el elemento deseado.",
			},
			badRequest: "Solicitud inválida o datos incompletos",
			badID:      "ID de usuario o de elemento inválido.",
		},
	}}
}

func (h *Wishlist) List(c *gin.Context) {
	userID, ok := pathID(c, "idusuario", h.msgs.badID)
	if !ok {
		return
	}

	elements, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err, h.msgs.list)
		return
	}

	c.JSON(http.StatusOK, dto.NewElementDTOs(elements))
}

func (h *Wishlist) Exists(c *gin.Context) { h.exists(c) }
func (h *Wishlist) Create(c *gin.Context) { h.create(c) }
func (h *Wishlist) Delete(c *gin.Context) { h.delete(c) }
