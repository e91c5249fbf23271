package repos

import (
	"github.com/yungbote/admitpath-backend/internal/data/repos/progression"
	"github.com/yungbote/admitpath-backend/internal/data/repos/user"
)

type UserRepo = user.UserRepo

type ProgressionStateRepo = progression.ProgressionStateRepo
type SubmissionRepo = progression.SubmissionRepo
type RequirementCompletionRepo = progression.RequirementCompletionRepo
type VerificationLogRepo = progression.VerificationLogRepo

var NewUserRepo = user.NewUserRepo

var NewProgressionStateRepo = progression.NewProgressionStateRepo
var NewSubmissionRepo = progression.NewSubmissionRepo
var NewRequirementCompletionRepo = progression.NewRequirementCompletionRepo
var NewVerificationLogRepo = progression.NewVerificationLogRepo
