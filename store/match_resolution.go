package store

import (
	"pdarena.dev/service/types"
)

// AddMatchResolution appends one attempt at a round, carrying an
// attempt counter alongside the (submission, opponent, round) tuple.
func (s *Store) AddMatchResolution(submissionID, opponentSubmissionID, round, matchup, attempt int64, defected *bool, stdout, stderr string) (types.MatchResolution, error) {
	var mr types.MatchResolution
	row := s.db.QueryRowx(
		`INSERT INTO match_resolution
		(submission_id, opponent_submission_id, round, matchup, attempt, defected, stdout, stderr)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING match_resolution_id, creation_time, submission_id, opponent_submission_id,
		round, matchup, attempt, defected, stdout, stderr`,
		submissionID, opponentSubmissionID, round, matchup, attempt, defected, stdout, stderr,
	)
	if err := row.StructScan(&mr); err != nil {
		return types.MatchResolution{}, wrapQueryErr(err)
	}
	return mr, nil
}

// LatestMatchResolution returns the highest-attempt row for a single
// (submission, opponent, round, matchup) tuple, used by the Round
// Executor to decide whether a round is already resolved or needs a
// fresh attempt.
func (s *Store) LatestMatchResolution(submissionID, opponentSubmissionID, round, matchup int64) (mr types.MatchResolution, ok bool, err error) {
	var out []types.MatchResolution
	selErr := s.db.Select(&out,
		`SELECT match_resolution_id, creation_time, submission_id, opponent_submission_id,
		round, matchup, attempt, defected, stdout, stderr
		FROM match_resolution
		WHERE submission_id = $1 AND opponent_submission_id = $2
		AND round = $3 AND matchup = $4
		ORDER BY attempt DESC
		LIMIT 1`,
		submissionID, opponentSubmissionID, round, matchup,
	)
	if selErr != nil {
		return types.MatchResolution{}, false, wrapQueryErr(selErr)
	}
	if len(out) == 0 {
		return types.MatchResolution{}, false, nil
	}
	return out[0], true, nil
}

// QueryMatchResolutions lists resolutions matching props in ascending
// match_resolution_id order (oldest first). Rows for the same tuple are
// not deduplicated: callers needing only the authoritative attempt should
// filter client-side or use LatestMatchResolution.
func (s *Store) QueryMatchResolutions(props types.MatchResolutionViewProps) ([]types.MatchResolution, error) {
	var out []types.MatchResolution
	err := s.db.Select(&out,
		`SELECT match_resolution_id, creation_time, submission_id, opponent_submission_id,
		round, matchup, attempt, defected, stdout, stderr
		FROM match_resolution
		WHERE ($1::bigint[] IS NULL OR match_resolution_id = ANY($1))
		AND ($2::bigint IS NULL OR match_resolution_id >= $2)
		AND ($3::bigint IS NULL OR match_resolution_id <= $3)
		AND ($4::bigint IS NULL OR creation_time >= $4)
		AND ($5::bigint IS NULL OR creation_time <= $5)
		AND ($6::bigint[] IS NULL OR submission_id = ANY($6))
		AND ($7::bigint[] IS NULL OR opponent_submission_id = ANY($7))
		AND ($8::bigint[] IS NULL OR round = ANY($8))
		AND ($9::bigint[] IS NULL OR matchup = ANY($9))
		ORDER BY match_resolution_id`,
		optionalIDArray(props.MatchResolutionID),
		props.MinID,
		props.MaxID,
		props.MinCreationTime,
		props.MaxCreationTime,
		optionalIDArray(props.SubmissionID),
		optionalIDArray(props.OpponentSubmissionID),
		optionalIDArray(props.Round),
		optionalIDArray(props.Matchup),
	)
	if err != nil {
		return nil, wrapQueryErr(err)
	}
	return out, nil
}

// QueryMatchResolutionsSince returns every match_resolution row with
// match_resolution_id greater than afterID, in id order, at most limit
// rows. The Stream Handlers' replay phase uses QueryMatchResolutions, not
// this method.
func (s *Store) QueryMatchResolutionsSince(afterID int64, limit int) ([]types.MatchResolution, error) {
	var out []types.MatchResolution
	err := s.db.Select(&out,
		`SELECT match_resolution_id, creation_time, submission_id, opponent_submission_id,
		round, matchup, attempt, defected, stdout, stderr
		FROM match_resolution
		WHERE match_resolution_id > $1
		ORDER BY match_resolution_id
		LIMIT $2`,
		afterID, limit,
	)
	if err != nil {
		return nil, wrapQueryErr(err)
	}
	return out, nil
}
