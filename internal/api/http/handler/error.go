package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gc02/usuario-server/internal/dto"
	"github.com/gc02/usuario-server/internal/model"
)

const msgBadRequest = "Solicitud inválida o faltan campos requeridos."

// errorMessages holds the route specific text for each failure class. Empty fields fall back to defaults.
type errorMessages struct {
	validation string
	notFound   string
	conflict   string
	internal   string
}

func handleError(c *gin.Context, err error, msgs errorMessages) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrNothingToPurchase):
		writeError(c, http.StatusBadRequest, fallback(msgs.validation, msgBadRequest))
	case errors.Is(err, model.ErrUnauthenticated):
		writeError(c, http.StatusUnauthorized, "Token inválido o expirado")
	case errors.Is(err, model.ErrForbidden):
		writeError(c, http.StatusForbidden, "Acceso denegado")
	case errors.Is(err, model.ErrNotFound):
		writeError(c, http.StatusNotFound, fallback(msgs.notFound, "Recurso no encontrado."))
	case errors.Is(err, model.ErrConflict):
		writeError(c, http.StatusConflict, fallback(msgs.conflict, "El recurso ya existe."))
	default:
		writeError(c, http.StatusInternalServerError, fallback(msgs.internal, "Error interno del servidor."))
	}
}

func writeError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, dto.ErrorResponse{
		Code:    code,
		Message: message,
		Path:    c.Request.RequestURI,
	})
}

func fallback(msg, def string) string {
	if msg == "" {
		return def
	}
	return msg
}

// pathID parses a numeric path parameter and answers 400 with message when it is not one.
func pathID(c *gin.Context, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, message)
		return 0, false
	}
	return id, true
}

// bindRelation reads a relation body and requires both ids.
func bindRelation(c *gin.Context, message string) (dto.RelationRequest, bool) {
	var req dto.RelationRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.IDUsuario == nil || *req.IDUsuario == 0 ||
		req.IDElemento == nil || *req.IDElemento == 0 {
		writeError(c, http.StatusBadRequest, message)
		return dto.RelationRequest{}, false
	}
	return req, true
}
