package store

import (
	"github.com/lib/pq"

	"pdarena.dev/service/types"
)

// AddTournamentSubmission appends a new tournament-entry row. Grounded
// on tournament_submission_service.rs::add.
func (s *Store) AddTournamentSubmission(creatorUserID int64, props types.TournamentSubmissionNewProps) (types.TournamentSubmission, error) {
	var ts types.TournamentSubmission
	row := s.db.QueryRowx(
		`INSERT INTO tournament_submission
		   (creator_user_id, tournament_id, submission_id, name, kind)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING tournament_submission_id, creation_time, creator_user_id,
		           tournament_id, submission_id, name, kind`,
		creatorUserID, props.TournamentID, props.SubmissionID, props.Name, props.Kind,
	)
	if err := row.StructScan(&ts); err != nil {
		return types.TournamentSubmission{}, wrapQueryErr(err)
	}
	return ts, nil
}

// LatestTournamentSubmission returns the newest tournament_submission row
// for a (tournament_id, submission_id) pair, or ok=false if none exists.
func (s *Store) LatestTournamentSubmission(tournamentID, submissionID int64) (ts types.TournamentSubmission, ok bool, err error) {
	rows, err := s.QueryTournamentSubmissions(types.TournamentSubmissionViewProps{
		TournamentID: &tournamentID,
		SubmissionID: &submissionID,
		OnlyRecent:   true,
	})
	if err != nil {
		return types.TournamentSubmission{}, false, err
	}
	if len(rows) == 0 {
		return types.TournamentSubmission{}, false, nil
	}
	return rows[0], true, nil
}

// QueryTournamentSubmissions lists entries matching props.
func (s *Store) QueryTournamentSubmissions(props types.TournamentSubmissionViewProps) ([]types.TournamentSubmission, error) {
	table := "tournament_submission"
	if props.OnlyRecent {
		table = "recent_tournament_submission"
	}
	var kindFilter interface{}
	if props.Kind != nil {
		kindFilter = pq.StringArray{string(*props.Kind)}
	}
	var out []types.TournamentSubmission
	err := s.db.Select(&out,
		`SELECT tournament_submission_id, creation_time, creator_user_id,
		        tournament_id, submission_id, name, kind
		 FROM `+table+`
		 WHERE ($1::bigint[] IS NULL OR tournament_submission_id = ANY($1))
		   AND ($2::bigint IS NULL OR tournament_submission_id >= $2)
		   AND ($3::bigint IS NULL OR tournament_submission_id <= $3)
		   AND ($4::bigint IS NULL OR creation_time >= $4)
		   AND ($5::bigint IS NULL OR creation_time <= $5)
		   AND ($6::bigint[] IS NULL OR creator_user_id = ANY($6))
		   AND ($7::bigint[] IS NULL OR tournament_id = ANY($7))
		   AND ($8::bigint[] IS NULL OR submission_id = ANY($8))
		   AND ($9::text[] IS NULL OR kind = ANY($9))
		 ORDER BY tournament_submission_id`,
		optionalIDArray(props.TournamentSubmissionID),
		props.MinID,
		props.MaxID,
		props.MinCreationTime,
		props.MaxCreationTime,
		optionalIDArray(props.CreatorUserID),
		optionalIDArray(props.TournamentID),
		optionalIDArray(props.SubmissionID),
		kindFilter,
	)
	if err != nil {
		return nil, wrapQueryErr(err)
	}
	return out, nil
}
