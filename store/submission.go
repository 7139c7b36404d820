package store

import (
	"github.com/lib/pq"

	"pdarena.dev/service/types"
)

// AddSubmission inserts a new, immutable submission row.
func (s *Store) AddSubmission(creatorUserID int64, code string) (types.Submission, error) {
	var sub types.Submission
	row := s.db.QueryRowx(
		`INSERT INTO submission (creator_user_id, code)
		 VALUES ($1, $2)
		 RETURNING submission_id, creation_time, creator_user_id, code`,
		creatorUserID, code,
	)
	if err := row.StructScan(&sub); err != nil {
		return types.Submission{}, wrapQueryErr(err)
	}
	return sub, nil
}

// QuerySubmissions lists submissions matching props, grounded on
// submission_service.rs::query's filter shape.
func (s *Store) QuerySubmissions(props types.SubmissionViewProps) ([]types.Submission, error) {
	var out []types.Submission
	err := s.db.Select(&out,
		`SELECT submission_id, creation_time, creator_user_id, code
		 FROM submission
		 WHERE ($1::bigint[] IS NULL OR submission_id = ANY($1))
		   AND ($2::bigint IS NULL OR creation_time >= $2)
		   AND ($3::bigint IS NULL OR creation_time <= $3)
		   AND ($4::bigint[] IS NULL OR creator_user_id = ANY($4))
		 ORDER BY submission_id`,
		optionalIDArray(props.SubmissionID),
		props.MinCreationTime,
		props.MaxCreationTime,
		optionalIDArray(props.CreatorUserID),
	)
	if err != nil {
		return nil, wrapQueryErr(err)
	}
	return out, nil
}

// optionalIDArray turns a single optional id filter into the
// pq.Int64Array one-element-or-nil shape the `*::bigint[] IS NULL OR
// col = ANY($n)` query filters expect.
func optionalIDArray(id *int64) interface{} {
	if id == nil {
		return nil
	}
	return pq.Int64Array{*id}
}
