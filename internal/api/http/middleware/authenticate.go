package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gc02/usuario-server/internal/dto"
	"github.com/gc02/usuario-server/internal/logger"
	"github.com/gc02/usuario-server/internal/model"
)

const (
	msgMissingToken  = "Token no proporcionado"
	msgInvalidToken  = "Token inválido o expirado"
	msgOwnerMismatch = "Acceso denegado: el ID del parámetro no coincide con el usuario autenticado"
	msgBadBody       = "Solicitud inválida o faltan campos requeridos."

	// maxOwnerBodyBytes caps how much of a gated body is buffered.
	maxOwnerBodyBytes = 1 << 20
)

// ownerParams are path parameters and ownerFields are body fields naming the resource owner.
// Body fields match case-insensitively, the same way handlers bind them.
var (
	ownerParams = []string{"id", "idusuario"}
	ownerFields = []string{"idusuario", "id"}
)

// Authenticate verifies the bearer token and rejects requests whose owner id differs from the token subject.
type Authenticate struct {
	identity       model.IdentityProvider
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(identity model.IdentityProvider, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{identity: identity, contextManager: contextManager, logger: logger}
}

// Handle is the gin middleware.
func (m *Authenticate) Handle(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		abort(c, http.StatusUnauthorized, msgMissingToken)
		return
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	ident, err := m.identity.VerifyIDToken(c.Request.Context(), token)
	if err != nil || ident.UID == "" {
		reason := "empty uid"
		if err != nil {
			reason = err.Error()
		}
		m.logger.Warn("token verification failed", "path", c.Request.URL.Path, "reason", reason)
		abort(c, http.StatusUnauthorized, msgInvalidToken)
		return
	}

	c.Request = c.Request.WithContext(m.contextManager.SetUIDToContext(c.Request.Context(), ident.UID))

	owners, err := resolveOwners(c)
	if err != nil {
		m.logger.Warn("failed to read request body", "path", c.Request.URL.Path, "error", err.Error())
		abort(c, http.StatusBadRequest, msgBadBody)
		return
	}
	for _, owner := range owners {
		if owner != ident.UID {
			m.logger.Warn("owner mismatch", "path", c.Request.URL.Path, "uid", ident.UID, "owner", owner)
			abort(c, http.StatusForbidden, msgOwnerMismatch)
			return
		}
	}

	c.Next()
}

// resolveOwners returns every owner id of the request: the path parameters when present,
// otherwise each owner field of a JSON object body. The body is restored so handlers can bind it.
func resolveOwners(c *gin.Context) ([]string, error) {
	var owners []string
	for _, name := range ownerParams {
		if v := c.Param(name); v != "" {
			owners = append(owners, v)
		}
	}
	if len(owners) > 0 {
		return owners, nil
	}

	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil, nil
	}
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxOwnerBodyBytes))
	_ = c.Request.Body.Close()
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var body map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, nil
	}

	for key, v := range body {
		if v == nil || !isOwnerField(key) {
			continue
		}
		owners = append(owners, fmt.Sprint(v))
	}
	return owners, nil
}

func isOwnerField(key string) bool {
	for _, name := range ownerFields {
		if strings.EqualFold(key, name) {
			return true
		}
	}
	return false
}

func abort(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, dto.ErrorResponse{
		Code:    code,
		Message: message,
		Path:    c.Request.RequestURI,
	})
}
