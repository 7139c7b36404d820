package store

import "pdarena.dev/service/types"

// AddTournament inserts a new, immutable tournament row.
func (s *Store) AddTournament(creatorUserID int64) (types.Tournament, error) {
	var t types.Tournament
	row := s.db.QueryRowx(
		`INSERT INTO tournament (creator_user_id)
		 VALUES ($1)
		 RETURNING tournament_id, creation_time, creator_user_id`,
		creatorUserID,
	)
	if err := row.StructScan(&t); err != nil {
		return types.Tournament{}, wrapQueryErr(err)
	}
	return t, nil
}

// QueryTournaments lists tournaments matching props.
func (s *Store) QueryTournaments(props types.TournamentViewProps) ([]types.Tournament, error) {
	var out []types.Tournament
	err := s.db.Select(&out,
		`SELECT tournament_id, creation_time, creator_user_id
		 FROM tournament
		 WHERE ($1::bigint[] IS NULL OR tournament_id = ANY($1))
		   AND ($2::bigint IS NULL OR creation_time >= $2)
		   AND ($3::bigint IS NULL OR creation_time <= $3)
		   AND ($4::bigint[] IS NULL OR creator_user_id = ANY($4))
		 ORDER BY tournament_id`,
		optionalIDArray(props.TournamentID),
		props.MinCreationTime,
		props.MaxCreationTime,
		optionalIDArray(props.CreatorUserID),
	)
	if err != nil {
		return nil, wrapQueryErr(err)
	}
	return out, nil
}
