package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/admitpath-backend/internal/domain"
	"github.com/yungbote/admitpath-backend/internal/http/response"
	"github.com/yungbote/admitpath-backend/internal/pkg/apperrors"
	"github.com/yungbote/admitpath-backend/internal/pkg/dbctx"
	"github.com/yungbote/admitpath-backend/internal/services"
)

type ProgressionHandler struct {
	progressionService services.ProgressionService
}

func NewProgressionHandler(progressionService services.ProgressionService) *ProgressionHandler {
	return &ProgressionHandler{progressionService: progressionService}
}

// GET /progression
// Creates the state on first touch (freezing the profile baseline), then
// returns the full phase overview.
func (ph *ProgressionHandler) GetOverview(c *gin.Context) {
	userID := requestUserID(c)
	dbc := dbctx.New(c.Request.Context())

	if _, err := ph.progressionService.GetOrCreateState(dbc, userID, requestLocale(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	overview, err := ph.progressionService.Overview(dbc, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, overview)
}

// GET /progression/catalog
func (ph *ProgressionHandler) GetCatalog(c *gin.Context) {
	defs, err := ph.progressionService.Catalog(dbctx.New(c.Request.Context()), requestUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"phases": defs})
}

// POST /progression/catalog/preview
// body: { "baseline": {...}, "locale": "ru" }
// Stateless: lets the intake flow show the catalog a baseline would produce.
func (ph *ProgressionHandler) PreviewCatalog(c *gin.Context) {
	var req struct {
		Baseline types.Baseline `json:"baseline"`
		Locale   string         `json:"locale"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	locale := req.Locale
	if locale == "" {
		locale = requestLocale(c)
	}
	defs := ph.progressionService.PreviewCatalog(req.Baseline, locale)
	response.RespondOK(c, gin.H{"phases": defs})
}

// GET /progression/:phase/submissions
func (ph *ProgressionHandler) GetSubmissions(c *gin.Context) {
	phase := types.Phase(c.Param("phase"))
	rows, err := ph.progressionService.History(dbctx.New(c.Request.Context()), requestUserID(c), phase)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"submissions": rows})
}

// GET /submissions/:id
func (ph *ProgressionHandler) GetSubmission(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := ph.progressionService.GetSubmission(dbctx.New(c.Request.Context()), requestUserID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"submission": row})
}

// POST /progression/submissions
// body: { "phase": "foundation", "requirement_key": "...", "payload": {...} }
func (ph *ProgressionHandler) Submit(c *gin.Context) {
	var req struct {
		Phase            string         `json:"phase"`
		RequirementKey   string         `json:"requirement_key"`
		Payload          map[string]any `json:"payload"`
		OverrideCooldown bool           `json:"override_cooldown"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := ph.progressionService.Submit(dbctx.New(c.Request.Context()), requestUserID(c), services.SubmitInput{
		Phase:            types.Phase(req.Phase),
		RequirementKey:   req.RequirementKey,
		Payload:          req.Payload,
		OverrideCooldown: req.OverrideCooldown,
	})
	if err != nil {
		// An unreachable oracle leaves the ledger row pending; tell the
		// client which row to poll instead of a bare failure.
		if errors.Is(err, apperrors.ErrOracleUnavailable) && result != nil {
			c.JSON(http.StatusAccepted, gin.H{
				"submission": result.Submission,
				"status":     "pending",
			})
			return
		}
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}
