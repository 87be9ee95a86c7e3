package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dabi61/opensky/internal/server/storage"
	"github.com/dabi61/opensky/internal/validation"
	"github.com/dabi61/opensky/pkg/api"
)

// ProfileHandler serves /api/v1/me
type ProfileHandler struct {
	responder
	userStorage storage.UserStorage
	now         func() time.Time
}

func NewProfileHandler(logger *slog.Logger, userStorage storage.UserStorage) *ProfileHandler {
	return &ProfileHandler{
		responder:   responder{logger: logger},
		userStorage: userStorage,
		now:         time.Now,
	}
}

// Me обрабатывает GET /api/v1/me
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.sendError(w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, toAPIUser(user), http.StatusOK)
}

// Update обрабатывает PUT /api/v1/me. Пустые поля не меняются.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.UpdateProfileRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := validateProfileUpdate(req); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.sendError(w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if v := strings.TrimSpace(req.FullName); v != "" {
		user.FullName = v
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	user.UpdatedAt = h.now().UTC()

	if err := h.userStorage.UpdateProfile(ctx, user); err != nil {
		h.logger.ErrorContext(ctx, "failed to update profile", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "profile updated", slog.String("user_id", userID))
	h.sendJSON(w, toAPIUser(user), http.StatusOK)
}

func validateProfileUpdate(req api.UpdateProfileRequest) error {
	if req.Email != "" {
		if err := validation.ValidateEmail(req.Email); err != nil {
			return err
		}
	}
	if req.Phone != "" {
		if err := validation.ValidatePhone(req.Phone); err != nil {
			return err
		}
	}
	if req.AvatarURL != "" {
		u, err := url.Parse(req.AvatarURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.New("avatar URL must be an absolute http(s) URL")
		}
	}
	return nil
}
