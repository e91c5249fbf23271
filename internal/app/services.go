package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/admitpath-backend/internal/pkg/logger"
	"github.com/yungbote/admitpath-backend/internal/services"
)

type Services struct {
	User        services.UserService
	Verifier    services.Verifier
	Progression services.ProgressionService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	verifier, err := services.NewLLMVerifier(log, clients.OpenAI, cfg.DefaultCooldownHours)
	if err != nil {
		return Services{}, err
	}

	progression := services.NewProgressionService(
		db,
		log,
		reposet.User,
		reposet.ProgressionState,
		reposet.Submission,
		reposet.RequirementCompletion,
		reposet.VerificationLog,
		verifier,
		clients.Bus,
		cfg.OracleTimeout,
	)

	return Services{
		User:        services.NewUserService(db, log, reposet.User),
		Verifier:    verifier,
		Progression: progression,
	}, nil
}
