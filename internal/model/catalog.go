package model

import (
	"context"
	"encoding/json"
)

// Genre is a music genre owned by the content service.
type Genre struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// Element is a purchasable track or album owned by the content service.
// Nested references are kept raw since their shape belongs to the content service.
type Element struct {
	ID          int64           `json:"id"`
	Nombre      string          `json:"nombre"`
	FechaCrea   *string         `json:"fechacrea"`
	Descripcion *string         `json:"descripcion"`
	URLFoto     *string         `json:"urlFoto"`
	NumVentas   *int64          `json:"numventas"`
	Valoracion  *float64        `json:"valoracion"`
	Precio      *float64        `json:"precio"`
	EsNovedad   *bool           `json:"esnovedad"`
	EsAlbum     *bool           `json:"esalbum"`
	Genero      json.RawMessage `json:"genero"`
	Subgenero   json.RawMessage `json:"subgenero"`
	Artista     json.RawMessage `json:"artista"`
}

// IsAlbum reports whether the element is an album.
func (e Element) IsAlbum() bool {
	return e.EsAlbum != nil && *e.EsAlbum
}

// ContentGateway reads catalog data from the content service.
type ContentGateway interface {
	GetElement(ctx context.Context, id int64) (Element, error)
	GetGenre(ctx context.Context, id int64) (Genre, error)
}
