package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gc02/usuario-server/internal/dto"
	"github.com/gc02/usuario-server/internal/model"
)

type ArtistService interface {
	List(ctx context.Context) ([]model.Profile, error)
	Get(ctx context.Context, id int64) (model.Profile, error)
}

// Artists serves the public /api/usuarios/artistas routes.
type Artists struct {
	service ArtistService
}

func NewArtists(service ArtistService) *Artists {
	return &Artists{service: service}
}

func (h *Artists) List(c *gin.Context) {
	profiles, err := h.service.List(c.Request.Context())
	if err != nil {
		handleError(c, err, errorMessages{internal: "Error inesperado al obtener los artistas."})
		return
	}

	c.JSON(http.StatusOK, dto.NewArtistDTOs(profiles))
}

func (h *Artists) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "ID de artista inválido.")
	if !ok {
		return
	}

	profile, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err, errorMessages{
			notFound: "No se encontró ningún artista con el ID proporcionado.",
			internal: "Error inesperado al obtener los datos del artista.",
		})
		return
	}

	c.JSON(http.StatusOK, dto.NewArtistDTO(dto.NewUserDTO(profile.User), profile.User.Artist, profile.Genre))
}
