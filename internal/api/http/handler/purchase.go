package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gc02/usuario-server/internal/dto"
	"github.com/gc02/usuario-server/internal/model"
)

type PurchaseService interface {
	List(ctx context.Context, userID int64) ([]model.Element, error)
	Exists(ctx context.Context, userID, elementID int64) (bool, error)
	Checkout(ctx context.Context, userID int64) (int64, error)
}

const msgBadPurchaseID = "ID de usuario o de elemento inválido."

// Purchases serves /api/usuarios/tiene.
type Purchases struct {
	service PurchaseService
}

func NewPurchases(service PurchaseService) *Purchases {
	return &Purchases{service: service}
}

func (h *Purchases) List(c *gin.Context) {
	userID, ok := pathID(c, "idusuario", msgBadPurchaseID)
	if !ok {
		return
	}

	elements, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err, errorMessages{internal: "Error interno al obtener los elementos comprados."})
		return
	}

	c.JSON(http.StatusOK, dto.NewElementDTOs(elements))
}

func (h *Purchases) Exists(c *gin.Context) {
	userID, ok := pathID(c, "idusuario", msgBadPurchaseID)
	if !ok {
		return
	}
	elementID, ok := pathID(c, "idelemento", msgBadPurchaseID)
	if !ok {
		return
	}

	exists, err := h.service.Exists(c.Request.Context(), userID, elementID)
	if err != nil {
		handleError(c, err, errorMessages{internal: "Error interno al verificar si el elemento fue comprado."})
		return
	}

	c.JSON(http.StatusOK, exists)
}

// Checkout buys everything in the cart.
func (h *Purchases) Checkout(c *gin.Context) {
	userID, ok := pathID(c, "idusuario", msgBadPurchaseID)
	if !ok {
		return
	}

	if _, err := h.service.Checkout(c.Request.Context(), userID); err != nil {
		handleError(c, err, errorMessages{
			validation: "No hay elementos en la cesta para procesar.",
			internal:   "Error interno al registrar la compra.",
		})
		return
	}

	c.Header("Location", fmt.Sprintf("/tiene/%d", userID))
	c.JSON(http.StatusCreated, true)
}
