package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/admitpath-backend/internal/data/repos"
	types "github.com/yungbote/admitpath-backend/internal/domain"
	"github.com/yungbote/admitpath-backend/internal/pkg/apperrors"
	"github.com/yungbote/admitpath-backend/internal/pkg/dbctx"
	"github.com/yungbote/admitpath-backend/internal/pkg/logger"
)

type UpdateBaselineInput struct {
	TargetCountry string   `json:"target_country"`
	Exams         []string `json:"exams"`
	Goal          string   `json:"goal"`
	SpecificGoal  string   `json:"specific_goal"`
}

type UserService interface {
	GetMe(dbc dbctx.Context, userID uuid.UUID) (*types.User, error)

	// UpdateBaseline rewrites the profile baseline fields. A progression
	// state created earlier keeps its frozen snapshot; the new baseline only
	// affects states created after this call.
	UpdateBaseline(dbc dbctx.Context, userID uuid.UUID, input UpdateBaselineInput) (*types.User, error)
}

type userService struct {
	db    *gorm.DB
	log   *logger.Logger
	users repos.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, users repos.UserRepo) UserService {
	return &userService{
		db:    db,
		log:   baseLog.With("service", "UserService"),
		users: users,
	}
}

func (s *userService) GetMe(dbc dbctx.Context, userID uuid.UUID) (*types.User, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	user, err := s.users.GetByID(dbc, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (s *userService) UpdateBaseline(dbc dbctx.Context, userID uuid.UUID, input UpdateBaselineInput) (*types.User, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}

	exams := make([]string, 0, len(input.Exams))
	for _, e := range input.Exams {
		e = strings.TrimSpace(e)
		if e != "" {
			exams = append(exams, e)
		}
	}
	examsJSON, err := json.Marshal(exams)
	if err != nil {
		return nil, fmt.Errorf("marshal exams: %w", err)
	}

	user, err := s.users.UpdateBaseline(dbc, userID,
		strings.TrimSpace(input.TargetCountry),
		datatypes.JSON(examsJSON),
		strings.TrimSpace(input.Goal),
		strings.TrimSpace(input.SpecificGoal),
	)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}
