// Package dto shapes request payloads and response bodies.
package dto

import (
	"time"

	"github.com/gc02/usuario-server/internal/model"
)

// GenreRef is a genre reference inside a user payload.
type GenreRef struct {
	ID     *int64  `json:"id"`
	Nombre *string `json:"nombre"`
}

// UserRequest is the body of POST and PUT /api/usuarios. It carries user and artist columns together.
type UserRequest struct {
	ID            *int64     `json:"id"`
	NombreUsuario *string    `json:"nombreusuario"`
	NombreReal    *string    `json:"nombrereal"`
	Contrasenia   *string    `json:"contrasenia"`
	Correo        *string    `json:"correo"`
	Descripcion   *string    `json:"descripcion"`
	FechaRegistro *time.Time `json:"fecharegistro"`
	RutaFoto      *string    `json:"rutafoto"`
	EsArtista     *bool      `json:"esartista"`

	EsNovedad  *bool     `json:"esnovedad"`
	Oyentes    *int64    `json:"oyentes"`
	Valoracion *float64  `json:"valoracion"`
	IDGenero   *int64    `json:"idgenero"`
	Genero     *GenreRef `json:"genero"`
}

// SplitUserArtist maps a payload onto user columns and, when isArtist is set, artist columns.
// A genero.id in the payload takes precedence over idgenero.
func SplitUserArtist(req UserRequest, isArtist bool) (model.UserFields, *model.ArtistFields) {
	user := model.UserFields{
		Username:     req.NombreUsuario,
		RealName:     req.NombreReal,
		Password:     req.Contrasenia,
		Email:        req.Correo,
		Description:  req.Descripcion,
		RegisteredAt: req.FechaRegistro,
		PhotoPath:    req.RutaFoto,
		IsArtist:     req.EsArtista,
	}

	if !isArtist {
		return user, nil
	}

	artist := &model.ArtistFields{
		IsNew:     req.EsNovedad,
		Listeners: req.Oyentes,
		Rating:    req.Valoracion,
		GenreID:   req.IDGenero,
	}
	if req.Genero != nil && req.Genero.ID != nil {
		artist.GenreID = req.Genero.ID
	}

	return user, artist
}

// UserDTO is the full view of an account. Contrasenia is never populated.
type UserDTO struct {
	ID            int64      `json:"id"`
	NombreUsuario string     `json:"nombreusuario"`
	NombreReal    *string    `json:"nombrereal"`
	Contrasenia   *string    `json:"contrasenia"`
	Correo        string     `json:"correo"`
	Descripcion   *string    `json:"descripcion"`
	FechaRegistro *time.Time `json:"fecharegistro"`
	RutaFoto      *string    `json:"rutafoto"`
	EsArtista     bool       `json:"esartista"`
}

func NewUserDTO(u model.User) UserDTO {
	dto := UserDTO{
		ID:            u.ID,
		NombreUsuario: u.Username,
		NombreReal:    u.RealName,
		Correo:        u.Email,
		Descripcion:   u.Description,
		RutaFoto:      u.PhotoPath,
		EsArtista:     u.IsArtist,
	}
	if !u.RegisteredAt.IsZero() {
		at := u.RegisteredAt
		dto.FechaRegistro = &at
	}
	return dto
}

// GenreDTO is a resolved genre.
type GenreDTO struct {
	ID     int64   `json:"id"`
	Nombre *string `json:"nombre"`
}

func NewGenreDTO(g model.Genre) *GenreDTO {
	dto := &GenreDTO{ID: g.ID}
	if g.Nombre != "" {
		nombre := g.Nombre
		dto.Nombre = &nombre
	}
	return dto
}

// ArtistDTO extends UserDTO with the artist profile. Artist fields are null for non-artists.
type ArtistDTO struct {
	UserDTO
	EsNovedad  *bool     `json:"esnovedad"`
	Oyentes    *int64    `json:"oyentes"`
	Valoracion *float64  `json:"valoracion"`
	Genero     *GenreDTO `json:"genero"`
}

// NewArtistDTO builds the artist view from a base user view. A nil artist takes the column defaults.
func NewArtistDTO(base UserDTO, artist *model.Artist, genre *model.Genre) ArtistDTO {
	dto := ArtistDTO{UserDTO: base}
	if !base.EsArtista {
		return dto
	}

	isNew, listeners, rating := true, int64(0), float64(0)
	if artist != nil {
		isNew, listeners, rating = artist.IsNew, artist.Listeners, artist.Rating
	}
	dto.EsNovedad = &isNew
	dto.Oyentes = &listeners
	dto.Valoracion = &rating

	if genre != nil {
		dto.Genero = NewGenreDTO(*genre)
	}

	return dto
}

// NewProfileDTO returns an ArtistDTO for artists and a UserDTO otherwise.
func NewProfileDTO(p model.Profile) any {
	base := NewUserDTO(p.User)
	if !p.User.IsArtist {
		return base
	}
	return NewArtistDTO(base, p.User.Artist, p.Genre)
}

// PublicUserDTO is the view of an account shown to anyone.
type PublicUserDTO struct {
	ID            int64   `json:"id"`
	NombreUsuario string  `json:"nombreusuario"`
	Descripcion   *string `json:"descripcion"`
	RutaFoto      *string `json:"rutafoto"`
	EsArtista     bool    `json:"esartista"`
}

func NewPublicUserDTO(u model.User) PublicUserDTO {
	return PublicUserDTO{
		ID:            u.ID,
		NombreUsuario: u.Username,
		Descripcion:   u.Description,
		RutaFoto:      u.PhotoPath,
		EsArtista:     u.IsArtist,
	}
}

func NewPublicUserDTOs(users []model.User) []PublicUserDTO {
	out := make([]PublicUserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, NewPublicUserDTO(u))
	}
	return out
}

func NewArtistDTOs(profiles []model.Profile) []ArtistDTO {
	out := make([]ArtistDTO, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, NewArtistDTO(NewUserDTO(p.User), p.User.Artist, p.Genre))
	}
	return out
}
