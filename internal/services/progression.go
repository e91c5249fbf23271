package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/admitpath-backend/internal/catalog"
	"github.com/yungbote/admitpath-backend/internal/data/repos"
	types "github.com/yungbote/admitpath-backend/internal/domain"
	"github.com/yungbote/admitpath-backend/internal/pkg/apperrors"
	"github.com/yungbote/admitpath-backend/internal/pkg/dbctx"
	"github.com/yungbote/admitpath-backend/internal/pkg/logger"
	"github.com/yungbote/admitpath-backend/internal/realtime"
)

type SubmitInput struct {
	Phase          types.Phase
	RequirementKey string
	Payload        map[string]any

	// OverrideCooldown lets a caller bypass an open rejection cooldown.
	// The cooldown is advisory; the handler layer decides who may set this.
	OverrideCooldown bool
}

type SubmitResult struct {
	Submission *types.Submission `json:"submission"`

	// SatisfiedKeys are the requirement keys marked complete by this
	// submission (approvals only).
	SatisfiedKeys []string `json:"satisfied_keys,omitempty"`

	PhaseCompleted bool        `json:"phase_completed"`
	UnlockedPhase  types.Phase `json:"unlocked_phase,omitempty"`

	State *types.ProgressionState `json:"state"`
}

// PhaseOverview pairs a catalog phase with the user's position in it.
// LatestSubmissions holds the most recent ledger row per requirement key,
// so clients can show pending/rejected feedback without extra calls.
type PhaseOverview struct {
	Definition        catalog.PhaseDefinition      `json:"definition"`
	State             types.PhaseState             `json:"state"`
	CompletedKeys     []string                     `json:"completed_keys"`
	TotalCount        int                          `json:"total_count"`
	LatestSubmissions map[string]*types.Submission `json:"latest_submissions,omitempty"`
}

type ProgressionOverview struct {
	State    *types.ProgressionState `json:"state"`
	Baseline types.Baseline          `json:"baseline"`
	Phases   []PhaseOverview         `json:"phases"`
}

type ProgressionService interface {
	// GetOrCreateState returns the user's progression state, creating it on
	// first touch by freezing the baseline from the user's profile.
	GetOrCreateState(dbc dbctx.Context, userID uuid.UUID, requestedLocale string) (*types.ProgressionState, error)

	Overview(dbc dbctx.Context, userID uuid.UUID) (*ProgressionOverview, error)
	Catalog(dbc dbctx.Context, userID uuid.UUID) ([]catalog.PhaseDefinition, error)

	// PreviewCatalog builds the catalog for an arbitrary baseline without
	// touching any state. Used by the intake flow before the user commits.
	PreviewCatalog(baseline types.Baseline, locale string) []catalog.PhaseDefinition

	Submit(dbc dbctx.Context, userID uuid.UUID, input SubmitInput) (*SubmitResult, error)
	History(dbc dbctx.Context, userID uuid.UUID, phase types.Phase) ([]*types.Submission, error)
	GetSubmission(dbc dbctx.Context, userID uuid.UUID, submissionID uuid.UUID) (*types.Submission, error)
}

type progressionService struct {
	db  *gorm.DB
	log *logger.Logger

	users       repos.UserRepo
	states      repos.ProgressionStateRepo
	submissions repos.SubmissionRepo
	completions repos.RequirementCompletionRepo
	verLogs     repos.VerificationLogRepo

	verifier Verifier
	bus      realtime.Bus

	oracleTimeout time.Duration
}

func NewProgressionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	users repos.UserRepo,
	states repos.ProgressionStateRepo,
	submissions repos.SubmissionRepo,
	completions repos.RequirementCompletionRepo,
	verLogs repos.VerificationLogRepo,
	verifier Verifier,
	bus realtime.Bus,
	oracleTimeout time.Duration,
) ProgressionService {
	if oracleTimeout <= 0 {
		oracleTimeout = 60 * time.Second
	}
	return &progressionService{
		db:            db,
		log:           baseLog.With("service", "ProgressionService"),
		users:         users,
		states:        states,
		submissions:   submissions,
		completions:   completions,
		verLogs:       verLogs,
		verifier:      verifier,
		bus:           bus,
		oracleTimeout: oracleTimeout,
	}
}

func (s *progressionService) GetOrCreateState(dbc dbctx.Context, userID uuid.UUID, requestedLocale string) (*types.ProgressionState, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}

	state, err := s.states.GetByUserID(dbc, userID)
	if err != nil {
		return nil, err
	}
	if state != nil {
		return state, nil
	}

	user, err := s.users.GetByID(dbc, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}

	baseline := baselineFromUser(user)
	if baseline.Empty() {
		return nil, apperrors.ErrMissingBaseline
	}
	snapshot, err := json.Marshal(baseline)
	if err != nil {
		return nil, fmt.Errorf("marshal baseline: %w", err)
	}

	locale := catalog.ResolveLocale(requestedLocale)
	if requestedLocale == "" {
		locale = catalog.ResolveLocale(user.PreferredLocale)
	}

	state, created, err := s.states.GetOrCreate(dbc, userID, datatypes.JSON(snapshot), locale)
	if err != nil {
		return nil, err
	}
	if created {
		s.log.Info("Progression state created",
			"userID", userID,
			"locale", locale,
			"targetCountry", baseline.TargetCountry,
		)
	}
	return state, nil
}

func (s *progressionService) Overview(dbc dbctx.Context, userID uuid.UUID) (*ProgressionOverview, error) {
	state, err := s.requireState(dbc, userID)
	if err != nil {
		return nil, err
	}
	baseline, err := decodeBaseline(state.BaselineSnapshot)
	if err != nil {
		return nil, err
	}

	defs := catalog.BuildCatalog(catalog.Classify(baseline), state.Locale)

	// Completion sets and ledger reads for the four phases are independent.
	sets := make([]map[string]bool, len(types.PhaseOrder))
	latest := make([]map[string]*types.Submission, len(types.PhaseOrder))
	g, gctx := errgroup.WithContext(dbc.Ctx)
	if dbc.Tx != nil {
		// A gorm transaction is not safe for concurrent use.
		g.SetLimit(1)
	}
	for i, phase := range types.PhaseOrder {
		g.Go(func() error {
			keys, err := s.completions.CompletedKeys(dbctx.Context{Ctx: gctx, Tx: dbc.Tx}, userID, phase)
			if err != nil {
				return err
			}
			sets[i] = keys
			return nil
		})
		g.Go(func() error {
			rows, err := s.submissions.GetByUserAndPhase(dbctx.Context{Ctx: gctx, Tx: dbc.Tx}, userID, phase)
			if err != nil {
				return err
			}
			// Rows arrive newest first; keep the first row per key.
			byKey := make(map[string]*types.Submission)
			for _, row := range rows {
				if _, seen := byKey[row.RequirementKey]; !seen {
					byKey[row.RequirementKey] = row
				}
			}
			latest[i] = byKey
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	completed := make(map[types.Phase]map[string]bool, len(types.PhaseOrder))
	submissions := make(map[types.Phase]map[string]*types.Submission, len(types.PhaseOrder))
	for i, phase := range types.PhaseOrder {
		completed[phase] = sets[i]
		submissions[phase] = latest[i]
	}

	overview := &ProgressionOverview{State: state, Baseline: baseline}
	for _, def := range defs {
		required := catalog.RequirementKeys(defs, def.Phase)
		done := make([]string, 0, len(required))
		for _, key := range required {
			if completed[def.Phase][key] {
				done = append(done, key)
			}
		}
		var phaseSubs map[string]*types.Submission
		if len(submissions[def.Phase]) > 0 {
			phaseSubs = submissions[def.Phase]
		}
		overview.Phases = append(overview.Phases, PhaseOverview{
			Definition:        def,
			State:             state.StateOf(def.Phase),
			CompletedKeys:     done,
			TotalCount:        len(required),
			LatestSubmissions: phaseSubs,
		})
	}
	return overview, nil
}

func (s *progressionService) Catalog(dbc dbctx.Context, userID uuid.UUID) ([]catalog.PhaseDefinition, error) {
	state, err := s.requireState(dbc, userID)
	if err != nil {
		return nil, err
	}
	baseline, err := decodeBaseline(state.BaselineSnapshot)
	if err != nil {
		return nil, err
	}
	return catalog.BuildCatalog(catalog.Classify(baseline), state.Locale), nil
}

func (s *progressionService) PreviewCatalog(baseline types.Baseline, locale string) []catalog.PhaseDefinition {
	return catalog.BuildCatalog(catalog.Classify(baseline), catalog.ResolveLocale(locale))
}

func (s *progressionService) History(dbc dbctx.Context, userID uuid.UUID, phase types.Phase) ([]*types.Submission, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !types.ValidPhase(phase) {
		return nil, fmt.Errorf("%w: unknown phase %q", apperrors.ErrInvalidArgument, phase)
	}
	return s.submissions.GetByUserAndPhase(dbc, userID, phase)
}

func (s *progressionService) GetSubmission(dbc dbctx.Context, userID uuid.UUID, submissionID uuid.UUID) (*types.Submission, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	if submissionID == uuid.Nil {
		return nil, fmt.Errorf("%w: submission id required", apperrors.ErrInvalidArgument)
	}
	row, err := s.submissions.GetByID(dbc, submissionID)
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	if row == nil || row.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return row, nil
}

// Submit runs the whole pipeline for one proof attempt: eligibility checks,
// ledger insert, oracle verdict, completion upserts and, when the phase's
// requirement set closes, the unlock transition. When the oracle cannot be
// reached the submission row stays pending and ErrOracleUnavailable is
// returned alongside a result carrying that row.
func (s *progressionService) Submit(dbc dbctx.Context, userID uuid.UUID, input SubmitInput) (*SubmitResult, error) {
	state, err := s.requireState(dbc, userID)
	if err != nil {
		return nil, err
	}
	if !types.ValidPhase(input.Phase) {
		return nil, fmt.Errorf("%w: unknown phase %q", apperrors.ErrInvalidArgument, input.Phase)
	}
	if !state.Unlocked(input.Phase) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrLockedPhase, input.Phase)
	}

	baseline, err := decodeBaseline(state.BaselineSnapshot)
	if err != nil {
		return nil, err
	}
	defs := catalog.BuildCatalog(catalog.Classify(baseline), state.Locale)
	requirement := catalog.FindRequirement(defs, input.Phase, input.RequirementKey)
	if requirement == nil {
		return nil, fmt.Errorf("%w: %s/%s", apperrors.ErrUnknownRequirement, input.Phase, input.RequirementKey)
	}

	prior, err := s.submissions.LatestFor(dbc, userID, input.Phase, input.RequirementKey)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if prior != nil && prior.OnCooldown(now) && !input.OverrideCooldown {
		return nil, fmt.Errorf("%w until %s", apperrors.ErrCooldownActive, prior.CooldownUntil.Format(time.RFC3339))
	}

	payloadJSON, err := json.Marshal(input.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload not serializable", apperrors.ErrInvalidArgument)
	}
	submission := &types.Submission{
		UserID:         userID,
		Phase:          input.Phase,
		RequirementKey: input.RequirementKey,
		Payload:        datatypes.JSON(payloadJSON),
		SubmittedAt:    now,
	}
	if err := s.submissions.Create(dbc, submission); err != nil {
		return nil, err
	}

	priorFeedback := ""
	if prior != nil && prior.Status == types.SubmissionRejected {
		priorFeedback = prior.Feedback
	}

	verifyCtx, cancel := context.WithTimeout(dbc.Ctx, s.oracleTimeout)
	defer cancel()
	start := time.Now()
	verdict, verr := s.verifier.Verify(verifyCtx, VerificationRequest{
		UserID:        userID,
		Phase:         input.Phase,
		Requirement:   *requirement,
		Baseline:      baseline,
		Payload:       input.Payload,
		PriorFeedback: priorFeedback,
	})
	s.recordVerification(dbc, submission, verdict, time.Since(start), verr)

	if verr != nil {
		s.log.Warn("Verification oracle failed; submission stays pending",
			"userID", userID,
			"submissionID", submission.ID,
			"error", verr,
		)
		return &SubmitResult{Submission: submission, State: state},
			fmt.Errorf("%w: %v", apperrors.ErrOracleUnavailable, verr)
	}

	reviewed, err := s.submissions.ApplyVerification(dbc, submission.ID, verdict.Approved, verdict.Reason, verdict.CooldownHours)
	if err != nil {
		return nil, err
	}
	result := &SubmitResult{Submission: reviewed, State: state}
	s.publish(dbc.Ctx, userID, realtime.EventSubmissionReviewed, map[string]any{
		"submission_id":   reviewed.ID,
		"phase":           reviewed.Phase,
		"requirement_key": reviewed.RequirementKey,
		"status":          reviewed.Status,
	})

	if !verdict.Approved {
		return result, nil
	}

	result.SatisfiedKeys, err = s.applyCompletions(dbc, userID, input.Phase, input.RequirementKey, defs, reviewed, verdict)
	if err != nil {
		return nil, err
	}

	// A completed phase never transitions again. Resubmitting one of its
	// requirements only refreshes the stored proof.
	if state.Completed(input.Phase) {
		return result, nil
	}

	doneKeys, err := s.completions.CompletedKeys(dbc, userID, input.Phase)
	if err != nil {
		return nil, err
	}
	for _, key := range catalog.RequirementKeys(defs, input.Phase) {
		if !doneKeys[key] {
			return result, nil
		}
	}

	// Every requirement of the phase is complete: run the transition.
	newState, err := s.states.ApplyPhaseCompletion(dbc, userID, input.Phase)
	if err != nil {
		return nil, err
	}
	result.State = newState
	result.PhaseCompleted = true
	s.publish(dbc.Ctx, userID, realtime.EventPhaseCompleted, map[string]any{"phase": input.Phase})

	if next := types.NextPhase(input.Phase); next != "" {
		result.UnlockedPhase = next
		s.publish(dbc.Ctx, userID, realtime.EventPhaseUnlocked, map[string]any{"phase": next})
	}
	return result, nil
}

// applyCompletions upserts a verdict row for every satisfied key. The
// submitted key is always included, whatever the oracle listed; keys the
// oracle invented are logged and skipped.
func (s *progressionService) applyCompletions(
	dbc dbctx.Context,
	userID uuid.UUID,
	phase types.Phase,
	submittedKey string,
	defs []catalog.PhaseDefinition,
	submission *types.Submission,
	verdict *Verdict,
) ([]string, error) {
	keys := append([]string{submittedKey}, verdict.SatisfiedKeys...)

	valid := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true
		if catalog.FindRequirement(defs, phase, key) == nil {
			s.log.Warn("Oracle returned unknown satisfied key; skipping",
				"userID", userID,
				"phase", phase,
				"key", key,
			)
			continue
		}
		valid = append(valid, key)
	}

	for _, key := range valid {
		row := &types.RequirementCompletion{
			UserID:         userID,
			Phase:          phase,
			RequirementKey: key,
			Completed:      true,
			ProofData:      submission.Payload,
		}
		if err := s.completions.Upsert(dbc, row); err != nil {
			return nil, fmt.Errorf("record completion %s/%s: %w", phase, key, err)
		}
	}
	return valid, nil
}

func (s *progressionService) recordVerification(dbc dbctx.Context, submission *types.Submission, verdict *Verdict, latency time.Duration, verr error) {
	row := &types.VerificationLog{
		SubmissionID: submission.ID,
		UserID:       submission.UserID,
		Model:        s.verifier.Model(),
		LatencyMS:    latency.Milliseconds(),
	}
	if verdict != nil {
		approved := verdict.Approved
		row.Approved = &approved
	}
	if verr != nil {
		row.Error = verr.Error()
	}
	if err := s.verLogs.Create(dbc, row); err != nil {
		s.log.Warn("Failed to write verification log", "submissionID", submission.ID, "error", err)
	}
}

func (s *progressionService) publish(ctx context.Context, userID uuid.UUID, event realtime.Event, data map[string]any) {
	if s.bus == nil {
		return
	}
	msg := realtime.Message{Channel: realtime.UserChannel(userID), Event: event, Data: data}
	if err := s.bus.Publish(ctx, msg); err != nil {
		s.log.Warn("Failed to publish progression event", "event", event, "error", err)
	}
}

func (s *progressionService) requireState(dbc dbctx.Context, userID uuid.UUID) (*types.ProgressionState, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	state, err := s.states.GetByUserID(dbc, userID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, apperrors.ErrMissingBaseline
	}
	return state, nil
}

func baselineFromUser(u *types.User) types.Baseline {
	b := types.Baseline{
		TargetCountry: u.TargetCountry,
		Goal:          u.Goal,
		SpecificGoal:  u.SpecificGoal,
	}
	if len(u.Exams) > 0 {
		_ = json.Unmarshal(u.Exams, &b.Exams)
	}
	return b
}

func decodeBaseline(snapshot datatypes.JSON) (types.Baseline, error) {
	var b types.Baseline
	if len(snapshot) == 0 {
		return b, nil
	}
	if err := json.Unmarshal(snapshot, &b); err != nil {
		return b, fmt.Errorf("decode baseline snapshot: %w", err)
	}
	return b, nil
}
