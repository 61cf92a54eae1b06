package handler

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gc02/usuario-server/internal/dto"
	"github.com/gc02/usuario-server/internal/model"
)

type UserService interface {
	ListPublic(ctx context.Context) ([]model.User, error)
	GetPublic(ctx context.Context, id int64) (model.User, error)
	Login(ctx context.Context, uid string) (model.Profile, error)
	Logout(ctx context.Context, uid string) error
	Create(ctx context.Context, req dto.UserRequest) (model.Profile, error)
	Update(ctx context.Context, req dto.UserRequest) (model.Profile, error)
	Delete(ctx context.Context, id int64) error
	UploadAvatar(ctx context.Context, id int64, avatar model.Avatar) (model.Profile, error)
}

const (
	msgUserNotFound = "Usuario no encontrado."
	avatarField     = "foto"
)

var avatarExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Users serves /api/usuarios.
type Users struct {
	service        UserService
	contextManager model.ContextManager
	maxAvatarBytes int64
}

func NewUsers(service UserService, contextManager model.ContextManager, maxAvatarBytes int64) *Users {
	return &Users{service: service, contextManager: contextManager, maxAvatarBytes: maxAvatarBytes}
}

func (h *Users) List(c *gin.Context) {
	users, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		handleError(c, err, errorMessages{internal: "Error al obtener usuarios públicos."})
		return
	}

	c.JSON(http.StatusOK, dto.NewPublicUserDTOs(users))
}

func (h *Users) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "ID de usuario inválido.")
	if !ok {
		return
	}

	user, err := h.service.GetPublic(c.Request.Context(), id)
	if err != nil {
		handleError(c, err, errorMessages{notFound: msgUserNotFound, internal: "Error al obtener el usuario público."})
		return
	}

	c.JSON(http.StatusOK, dto.NewPublicUserDTO(user))
}

// Login returns the full profile of the token subject.
func (h *Users) Login(c *gin.Context) {
	uid, _ := h.contextManager.GetUIDFromContext(c.Request.Context())

	profile, err := h.service.Login(c.Request.Context(), uid)
	if err != nil {
		handleError(c, err, errorMessages{
			validation: "UID de token inválido.",
			notFound:   msgUserNotFound,
			internal:   "Error al obtener el usuario autenticado.",
		})
		return
	}

	c.JSON(http.StatusOK, dto.NewProfileDTO(profile))
}

// Logout revokes the refresh tokens of the token subject.
func (h *Users) Logout(c *gin.Context) {
	uid, _ := h.contextManager.GetUIDFromContext(c.Request.Context())

	if err := h.service.Logout(c.Request.Context(), uid); err != nil {
		handleError(c, err, errorMessages{validation: "UID no proporcionado", internal: "Error al eliminar el token."})
		return
	}

	c.JSON(http.StatusOK, true)
}

func (h *Users) Create(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, msgBadRequest)
		return
	}

	profile, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err, errorMessages{
			conflict: "El nombre de usuario o el correo ya está registrado.",
			internal: "Error al crear el usuario.",
		})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/usuarios/%d", profile.User.ID))
	c.JSON(http.StatusCreated, dto.NewProfileDTO(profile))
}

func (h *Users) Update(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Faltan datos del usuario.")
		return
	}

	profile, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		handleError(c, err, errorMessages{
			validation: "Faltan datos del usuario.",
			notFound:   msgUserNotFound,
			conflict:   "El nombre de usuario o el correo ya está registrado.",
			internal:   "Error al actualizar usuario.",
		})
		return
	}

	c.JSON(http.StatusOK, dto.NewProfileDTO(profile))
}

func (h *Users) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "ID inválido.")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err, errorMessages{notFound: msgUserNotFound, internal: "Error al eliminar usuario."})
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadAvatar replaces the profile picture with the multipart file in "foto".
func (h *Users) UploadAvatar(c *gin.Context) {
	const msgBadImage = "Imagen no válida."

	id, ok := pathID(c, "id", "ID inválido.")
	if !ok {
		return
	}

	header, err := c.FormFile(avatarField)
	if err != nil || header.Size == 0 || (h.maxAvatarBytes > 0 && header.Size > h.maxAvatarBytes) {
		writeError(c, http.StatusBadRequest, msgBadImage)
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")
	if !avatarExtensions[ext] || !strings.HasPrefix(contentType, "image/") {
		writeError(c, http.StatusBadRequest, msgBadImage)
		return
	}

	file, err := header.Open()
	if err != nil {
		writeError(c, http.StatusBadRequest, msgBadImage)
		return
	}
	defer file.Close()

	profile, err := h.service.UploadAvatar(c.Request.Context(), id, model.Avatar{
		Reader:      file,
		Size:        header.Size,
		ContentType: contentType,
		Ext:         ext,
	})
	if err != nil {
		handleError(c, err, errorMessages{notFound: msgUserNotFound, internal: "Error al guardar la imagen."})
		return
	}

	c.JSON(http.StatusOK, dto.NewProfileDTO(profile))
}
