package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/admitpath-backend/internal/http/response"
	"github.com/yungbote/admitpath-backend/internal/pkg/ctxutil"
	"github.com/yungbote/admitpath-backend/internal/pkg/dbctx"
	"github.com/yungbote/admitpath-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /me
func (uh *UserHandler) GetMe(c *gin.Context) {
	userID := requestUserID(c)
	me, err := uh.userService.GetMe(dbctx.New(c.Request.Context()), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"me": me})
}

// PUT /me/baseline
// body: { "target_country": "...", "exams": ["SAT"], "goal": "...", "specific_goal": "..." }
func (uh *UserHandler) UpdateBaseline(c *gin.Context) {
	var req services.UpdateBaselineInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	userID := requestUserID(c)
	u, err := uh.userService.UpdateBaseline(dbctx.New(c.Request.Context()), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"me": u})
}

func requestUserID(c *gin.Context) uuid.UUID {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		return uuid.Nil
	}
	return rd.UserID
}

func requestLocale(c *gin.Context) string {
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil && rd.Locale != "" {
		return rd.Locale
	}
	return c.GetHeader("Accept-Language")
}
