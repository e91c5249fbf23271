package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/admitpath-backend/internal/data/repos"
	"github.com/yungbote/admitpath-backend/internal/pkg/logger"
)

type Repos struct {
	User repos.UserRepo

	ProgressionState      repos.ProgressionStateRepo
	Submission            repos.SubmissionRepo
	RequirementCompletion repos.RequirementCompletionRepo
	VerificationLog       repos.VerificationLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:                  repos.NewUserRepo(db, log),
		ProgressionState:      repos.NewProgressionStateRepo(db, log),
		Submission:            repos.NewSubmissionRepo(db, log),
		RequirementCompletion: repos.NewRequirementCompletionRepo(db, log),
		VerificationLog:       repos.NewVerificationLogRepo(db, log),
	}
}
