package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gc02/usuario-server/internal/dto"
	"github.com/gc02/usuario-server/internal/model"
)

type FavoriteService interface {
	List(ctx context.Context, userID int64) ([]model.FavoriteEntry, error)
	Exists(ctx context.Context, userID, elementID int64, class model.FavoriteClass) (bool, error)
	Create(ctx context.Context, userID, elementID int64, kind model.FavoriteKind) (model.Favorite, error)
	Delete(ctx context.Context, userID, elementID int64, class model.FavoriteClass) (model.Favorite, error)
}

const msgBadFavoriteID = "ID de usuario o de elemento inválido."

// Favorites serves /api/usuarios/favoritos.
type Favorites struct {
	service FavoriteService
}

func NewFavorites(service FavoriteService) *Favorites {
	return &Favorites{service: service}
}

func classSegment(class model.FavoriteClass) string {
	if class == model.ClassArtist {
		return "artista"
	}
	return "contenido"
}

func (h *Favorites) List(c *gin.Context) {
	userID, ok := pathID(c, "idusuario", msgBadFavoriteID)
	if !ok {
		return
	}

	entries, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err, errorMessages{internal: "Error al obtener los elementos favoritos del usuario."})
		return
	}

	c.JSON(http.StatusOK, dto.NewFavoriteEntries(entries))
}

func (h *Favorites) ExistsArtist(c *gin.Context) {
	h.exists(c, model.ClassArtist, errorMessages{internal: "Error al verificar si el artista es favorito."})
}

func (h *Favorites) ExistsContent(c *gin.Context) {
	h.exists(c, model.ClassContent, errorMessages{internal: "Error al verificar si el contenido es favorito."})
}

func (h *Favorites) DeleteArtist(c *gin.Context) {
	h.delete(c, model.ClassArtist, errorMessages{
		notFound: "El artista no estaba en los favoritos del usuario.",
		internal: "Error al eliminar el artista de favoritos.",
	})
}

func (h *Favorites) DeleteContent(c *gin.Context) {
	h.delete(c, model.ClassContent, errorMessages{
		notFound: "El contenido no estaba en los favoritos del usuario.",
		internal: "Error al eliminar el contenido de favoritos.",
	})
}

// Create stores a favorite. tipo is 0 for an artist, 1 for a track and 2 for an album.
func (h *Favorites) Create(c *gin.Context) {
	req, ok := bindRelation(c, msgBadRequest)
	if !ok {
		return
	}
	if req.Tipo == nil {
		writeError(c, http.StatusBadRequest, msgBadRequest)
		return
	}

	fav, err := h.service.Create(c.Request.Context(), *req.IDUsuario, *req.IDElemento, model.FavoriteKind(*req.Tipo))
	if err != nil {
		handleError(c, err, errorMessages{
			notFound: "Usuario no encontrado.",
			conflict: "El elemento ya se encuentra en la lista de favoritos del usuario.",
			internal: "Error al registrar el favorito en la base de datos.",
		})
		return
	}

	c.Header("Location", fmt.Sprintf("/favoritos/%d/%d/%s", fav.UserID, fav.ElementID, classSegment(fav.Kind.Class())))
	c.JSON(http.StatusCreated, dto.NewFavoriteDTO(fav))
}

func (h *Favorites) exists(c *gin.Context, class model.FavoriteClass, msgs errorMessages) {
	userID, ok := pathID(c, "idusuario", msgBadFavoriteID)
	if !ok {
		return
	}
	elementID, ok := pathID(c, "idelemento", msgBadFavoriteID)
	if !ok {
		return
	}

	exists, err := h.service.Exists(c.Request.Context(), userID, elementID, class)
	if err != nil {
		handleError(c, err, msgs)
		return
	}

	c.JSON(http.StatusOK, exists)
}

func (h *Favorites) delete(c *gin.Context, class model.FavoriteClass, msgs errorMessages) {
	userID, ok := pathID(c, "idusuario", msgBadFavoriteID)
	if !ok {
		return
	}
	elementID, ok := pathID(c, "idelemento", msgBadFavoriteID)
	if !ok {
		return
	}

	if _, err := h.service.Delete(c.Request.Context(), userID, elementID, class); err != nil {
		handleError(c, err, msgs)
		return
	}

	c.Status(http.StatusNoContent)
}
