package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"elderguard-data/internal/domain"
	"elderguard-data/internal/service"
)

// authHandlerFunc 需要登录态的处理函数签名
type authHandlerFunc func(w http.ResponseWriter, r *http.Request, user *domain.User)

// AuthMiddleware Bearer令牌校验中间件
type AuthMiddleware struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthMiddleware(authService service.AuthService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{authService: authService, logger: logger}
}

// RequireUser 解析 Authorization 头并加载当前用户，失败返回401
func (m *AuthMiddleware) RequireUser(next authHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			FailUnauthorized(w, "Could not validate credentials")
			return
		}

		user, err := m.authService.Authenticate(r.Context(), token)
		if err != nil {
			m.logger.Debug("Authentication failed",
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			FailUnauthorized(w, "Could not validate credentials")
			return
		}

		next(w, r, user)
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
