package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"elderguard-data/internal/domain"
	"elderguard-data/internal/service"
)

// ProfileHandler 个人资料接口
type ProfileHandler struct {
	profileService *service.ProfileService
	logger         *zap.Logger
}

func NewProfileHandler(profileService *service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, logger: logger}
}

// Me GET /profile/me
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request, user *domain.User) {
	writeJSON(w, http.StatusOK, newUserView(user))
}

// UpdateMe PUT /profile/me
// email/role 不可修改，请求中出现也会被忽略
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request, user *domain.User) {
	var req service.ProfileUpdateRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.profileService.UpdateProfile(r.Context(), user, req)
	if err != nil {
		h.logger.Error("Profile update failed",
			zap.String("user_id", user.UserID),
			zap.Error(err),
		)
		Fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, newUserView(updated))
}
