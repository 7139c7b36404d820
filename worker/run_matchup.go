package worker

import (
	"context"
	"fmt"
	"sync"

	"pdarena.dev/service/apperr"
	"pdarena.dev/service/broadcast"
	"pdarena.dev/service/harness"
	"pdarena.dev/service/logx"
	"pdarena.dev/service/sandbox"
	"pdarena.dev/service/store"
	"pdarena.dev/service/types"
)

// exitCode constants for the sandbox protocol.
const (
	exitDefect    = 100
	exitCooperate = 101
)

// RoundExecutor runs a single MatchupTask to completion, implementing
// the resume-by-current-round algorithm.
type RoundExecutor struct {
	store *store.Store
	sandbox *sandbox.Client
	broadcaster *broadcast.Broadcaster
	logger *logx.Logger
}

// Run executes every remaining round of task, persisting a
// MatchResolution pair per round and publishing each to the
// broadcaster.
func (e *RoundExecutor) Run(ctx context.Context, task types.MatchupTask) error {
	subSubmission, err := e.loadSubmission(task.SubmissionID)
	if err != nil {
		return err
	}
	oppSubmission, err := e.loadSubmission(task.OpponentSubmissionID)
	if err != nil {
		return err
	}

	historyA, err := e.loadCompletedPrefix(task.SubmissionID, task.OpponentSubmissionID, task.MatchupNum)
	if err != nil {
		return err
	}
	historyB, err := e.loadCompletedPrefix(task.OpponentSubmissionID, task.SubmissionID, task.MatchupNum)
	if err != nil {
		return err
	}

	currentRound := min64(int64(len(historyA)), int64(len(historyB)))
	historyA = historyA[:currentRound]
	historyB = historyB[:currentRound]

	for round := currentRound; round < task.NRounds; round++ {
		var subDefected, oppDefected *bool
		var subStdout, subStderr, oppStdout, oppStderr string
		var subErr, oppErr error

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			subDefected, subStdout, subStderr, subErr = e.runHalf(ctx, subSubmission.Code, oppSubmission.Code, historyB)
		}()
		go func() {
			defer wg.Done()
			oppDefected, oppStdout, oppStderr, oppErr = e.runHalf(ctx, oppSubmission.Code, subSubmission.Code, historyA)
		}()
		wg.Wait()

		if subErr != nil {
			e.logger.Error("sandbox half failed", map[string]any{"error": subErr.Error()})
		}
		if oppErr != nil {
			e.logger.Error("sandbox half failed", map[string]any{"error": oppErr.Error()})
		}

		attempt, err := e.nextAttempt(task.SubmissionID, task.OpponentSubmissionID, round, task.MatchupNum)
		if err != nil {
			return err
		}
		if err := e.persistAndPublish(task.SubmissionID, task.OpponentSubmissionID, round, task.MatchupNum, attempt, subDefected, subStdout, subStderr); err != nil {
			return err
		}
		if err := e.persistAndPublish(task.OpponentSubmissionID, task.SubmissionID, round, task.MatchupNum, attempt, oppDefected, oppStdout, oppStderr); err != nil {
			return err
		}

		historyA = append(historyA, subDefected)
		historyB = append(historyB, oppDefected)

		// A null result breaks the contiguous-completed-prefix invariant;
		// a future re-admission will resume from this round. Continuing
		// the loop here still records every round this invocation can
		// reach.
	}

	return nil
}

func (e *RoundExecutor) loadSubmission(submissionID int64) (types.Submission, error) {
	rows, err := e.store.QuerySubmissions(types.SubmissionViewProps{SubmissionID: &submissionID})
	if err != nil {
		return types.Submission{}, err
	}
	if len(rows) == 0 {
		return types.Submission{}, apperr.New(apperr.SubmissionNonexistent)
	}
	return rows[0], nil
}

// loadCompletedPrefix returns the longest contiguous prefix of non-null
// defected values for submissionID's resolutions against opponentID in
// the given matchup, starting at round 0.
func (e *RoundExecutor) loadCompletedPrefix(submissionID, opponentID, matchup int64) ([]*bool, error) {
	var history []*bool
	for round := int64(0); ; round++ {
		mr, ok, err := e.store.LatestMatchResolution(submissionID, opponentID, round, matchup)
		if err != nil {
			return nil, err
		}
		if !ok || mr.Defected == nil {
			break
		}
		history = append(history, mr.Defected)
	}
	return history, nil
}

// nextAttempt returns the attempt counter to use for a fresh
// MatchResolution row at (submissionID, opponentID, round, matchup).
func (e *RoundExecutor) nextAttempt(submissionID, opponentID, round, matchup int64) (int64, error) {
	mr, ok, err := e.store.LatestMatchResolution(submissionID, opponentID, round, matchup)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 1, nil
	}
	return mr.Attempt + 1, nil
}

func (e *RoundExecutor) persistAndPublish(submissionID, opponentID, round, matchup, attempt int64, defected *bool, stdout, stderr string) error {
	mr, err := e.store.AddMatchResolution(submissionID, opponentID, round, matchup, attempt, defected, stdout, stderr)
	if err != nil {
		return err
	}
	e.broadcaster.Publish(mr.Lite())
	return nil
}

// runHalf synthesizes and submits one round half to the Sandbox
// Executor and interprets its exit code: 100 ->
// defected=true, 101 -> defected=false, anything else -> defected=nil.
func (e *RoundExecutor) runHalf(ctx context.Context, subjectCode, opponentCode string, opponentHistory []*bool) (defected *bool, stdout, stderr string, err error) {
	files := harness.Build(subjectCode, opponentCode, opponentHistory)

	resp, err := e.sandbox.Run(ctx, files.Files)
	if err != nil {
		return nil, "", "", fmt.Errorf("worker: sandbox invocation: %w", err)
	}

	if resp.ExitCode == nil {
		return nil, resp.Stdout, resp.Stderr, nil
	}
	switch *resp.ExitCode {
	case exitDefect:
		v := true
		return &v, resp.Stdout, resp.Stderr, nil
	case exitCooperate:
		v := false
		return &v, resp.Stdout, resp.Stderr, nil
	default:
		return nil, resp.Stdout, resp.Stderr, nil
	}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
