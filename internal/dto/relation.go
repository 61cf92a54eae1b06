package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gc02/usuario-server/internal/model"
)

// RelationRequest is the body of POST /cesta, /desea and /favoritos.
type RelationRequest struct {
	IDUsuario  *int64 `json:"idusuario"`
	IDElemento *int64 `json:"idelemento"`
	Tipo       *int16 `json:"tipo"`
}

// RelationDTO is a stored user-element relation.
type RelationDTO struct {
	IDUsuario  int64      `json:"idusuario"`
	IDElemento int64      `json:"idelemento"`
	Fecha      *time.Time `json:"fecha"`
}

func NewRelationDTO(r model.Relation) RelationDTO {
	dto := RelationDTO{IDUsuario: r.UserID, IDElemento: r.ElementID}
	if !r.CreatedAt.IsZero() {
		at := r.CreatedAt
		dto.Fecha = &at
	}
	return dto
}

// FavoriteDTO is a stored favorite.
type FavoriteDTO struct {
	RelationDTO
	Tipo int16 `json:"tipo"`
}

func NewFavoriteDTO(f model.Favorite) FavoriteDTO {
	return FavoriteDTO{RelationDTO: NewRelationDTO(f.Relation), Tipo: int16(f.Kind)}
}

// NewElementDTOs copies elements so that an empty result encodes as [].
func NewElementDTOs(elements []model.Element) []model.Element {
	out := make([]model.Element, 0, len(elements))
	return append(out, elements...)
}

// NewFavoriteEntries renders resolved favorites as artists or elements, keeping order.
func NewFavoriteEntries(entries []model.FavoriteEntry) []any {
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.Artist != nil:
			out = append(out, NewArtistDTO(NewUserDTO(e.Artist.User), e.Artist.User.Artist, e.Artist.Genre))
		case e.Element != nil:
			out = append(out, *e.Element)
		}
	}
	return out
}

// Cart item kinds.
const (
	CartItemTrack = 1
	CartItemAlbum = 2
)

// CartItemDTO is one cart line.
type CartItemDTO struct {
	IDElemento int64   `json:"idelemento"`
	Nombre     string  `json:"nombre"`
	Precio     float64 `json:"precio"`
	RutaImagen *string `json:"rutaimagen"`
	Tipo       int     `json:"tipo"`
}

// CartDTO is the cart with its total.
type CartDTO struct {
	Items []CartItemDTO `json:"items"`
	Total float64       `json:"total"`
}

// NewCart prices the cart. Prices and the total are rounded to cents; a missing price counts as zero.
func NewCart(elements []model.Element) CartDTO {
	cart := CartDTO{Items: make([]CartItemDTO, 0, len(elements))}
	total := decimal.Zero

	for _, e := range elements {
		price := decimal.Zero
		if e.Precio != nil {
			price = decimal.NewFromFloat(*e.Precio).Round(2)
		}

		kind := CartItemTrack
		if e.IsAlbum() {
			kind = CartItemAlbum
		}

		cart.Items = append(cart.Items, CartItemDTO{
			IDElemento: e.ID,
			Nombre:     e.Nombre,
			Precio:     price.InexactFloat64(),
			RutaImagen: e.URLFoto,
			Tipo:       kind,
		})
		total = total.Add(price)
	}

	cart.Total = total.Round(2).InexactFloat64()
	return cart
}
