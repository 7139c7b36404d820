// Package admission implements the Admission API's business logic:
// request validation, ownership and state-machine gating, and matchup
// task emission. Transport-independent; the HTTP layer lives in
// package api.
package admission

import (
	"context"

	"pdarena.dev/service/auth"
	"pdarena.dev/service/logx"
	"pdarena.dev/service/queue"
	"pdarena.dev/service/store"
	"pdarena.dev/service/types"
)

// MaxSubmissionCodeLength is submission length bound.
const MaxSubmissionCodeLength = 10000

// MaxMatchSpace is n_rounds * n_matchups bound.
const MaxMatchSpace = 256

// Service implements every Admission API operation.
type Service struct {
	store *store.Store
	auth *auth.Client
	queue *queue.Queue
	logger *logx.Logger
}

// New creates an admission Service.
func New(st *store.Store, authClient *auth.Client, q *queue.Queue, logger *logx.Logger) *Service {
	return &Service{store: st, auth: authClient, queue: q, logger: logger}
}

// authenticate resolves an API key to a user id, returning the auth
// client's error unchanged. It does not log.
func (s *Service) authenticate(ctx context.Context, apiKey string) (int64, error) {
	user, err := s.auth.UserByAPIKey(ctx, apiKey)
	if err != nil {
		return 0, err
	}
	return user.UserID, nil
}

// Authenticate is the exported form of authenticate, used by the
// Stream Handlers (package api) to validate the api_key carried in a
// stream's initial control frame.
func (s *Service) Authenticate(ctx context.Context, apiKey string) (int64, error) {
	return s.authenticate(ctx, apiKey)
}

// enqueue submits a matchup task, logging at Debug severity.
func (s *Service) enqueue(task types.MatchupTask) {
	s.logger.Debug("enqueue matchup task", map[string]any{
			"matchup_num": task.MatchupNum,
			"n_rounds": task.NRounds,
			"submission_id": task.SubmissionID,
			"opponent_submission_id": task.OpponentSubmissionID,
		})
	s.queue.Enqueue(task)
}

// enqueueMatchupPair enqueues a single matchup task for an unordered
// pair of submissions at one matchup index. Matchup tasks are
// symmetric: the Round Executor always runs both submission-vs-
// opponent and opponent-vs-submission within one task,
// so only one task per matchup index per unordered pair is required;
// by convention the lower submission id is the task's primary
// submission_id, so re-emissions of the same pair collapse to the
// same task identity for the Ongoing-Task Registry.
func (s *Service) enqueueMatchupPair(matchupNum, nRounds, aID, bID int64) {
	primary, other := aID, bID
	if other < primary {
		primary, other = other, primary
	}
	s.enqueue(types.MatchupTask{
			MatchupNum: matchupNum,
			NRounds: nRounds,
			SubmissionID: primary,
			OpponentSubmissionID: other,
		})
}

// enqueuePair enqueues one matchup task per matchup index in
// [0, nMatchups) for an unordered pair of submissions.
func (s *Service) enqueuePair(submissionID, opponentID, nRounds, nMatchups int64) {
	for m := int64(0); m < nMatchups; m++ {
		s.enqueueMatchupPair(m, nRounds, submissionID, opponentID)
	}
}
