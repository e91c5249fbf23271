package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/admitpath-backend/internal/http/response"
	"github.com/yungbote/admitpath-backend/internal/pkg/apperrors"
)

// respondServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognized is a 500 with a generic code.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, apperrors.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperrors.ErrMissingBaseline):
		response.RespondError(c, http.StatusConflict, "baseline_required", err)
	case errors.Is(err, apperrors.ErrUnknownRequirement):
		response.RespondError(c, http.StatusNotFound, "unknown_requirement", err)
	case errors.Is(err, apperrors.ErrLockedPhase):
		response.RespondError(c, http.StatusForbidden, "locked_phase", err)
	case errors.Is(err, apperrors.ErrCooldownActive):
		response.RespondError(c, http.StatusTooManyRequests, "cooldown_active", err)
	case errors.Is(err, apperrors.ErrInvalidArgument):
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
