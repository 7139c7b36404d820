package store

import (
	"github.com/lib/pq"

	"pdarena.dev/service/types"
)

// AddTournamentData appends a new configuration row for a tournament.
// Grounded on tournament_data_service.rs::add.
func (s *Store) AddTournamentData(creatorUserID int64, props types.TournamentDataNewProps) (types.TournamentData, error) {
	var td types.TournamentData
	row := s.db.QueryRowx(
		`INSERT INTO tournament_data
		   (creator_user_id, tournament_id, title, description, n_rounds, n_matchups, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING tournament_data_id, creation_time, creator_user_id, tournament_id,
		           title, description, n_rounds, n_matchups, active`,
		creatorUserID, props.TournamentID, props.Title, props.Description,
		props.NRounds, props.NMatchups, props.Active,
	)
	if err := row.StructScan(&td); err != nil {
		return types.TournamentData{}, wrapQueryErr(err)
	}
	return td, nil
}

// LatestTournamentData returns the newest tournament_data row for a
// tournament, or ok=false if none exists.
func (s *Store) LatestTournamentData(tournamentID int64) (td types.TournamentData, ok bool, err error) {
	rows, err := s.QueryTournamentData(types.TournamentDataViewProps{
		TournamentID: &tournamentID,
		OnlyRecent:   true,
	})
	if err != nil {
		return types.TournamentData{}, false, err
	}
	if len(rows) == 0 {
		return types.TournamentData{}, false, nil
	}
	return rows[0], true, nil
}

// QueryTournamentData lists configuration rows matching props. When
// OnlyRecent is set, only the newest row per tournament_id is
// considered, mirroring the recent_tournament_data view used by the
// original's only_recent toggle.
func (s *Store) QueryTournamentData(props types.TournamentDataViewProps) ([]types.TournamentData, error) {
	table := "tournament_data"
	if props.OnlyRecent {
		table = "recent_tournament_data"
	}
	var out []types.TournamentData
	err := s.db.Select(&out,
		`SELECT tournament_data_id, creation_time, creator_user_id, tournament_id,
		        title, description, n_rounds, n_matchups, active
		 FROM `+table+`
		 WHERE ($1::bigint[] IS NULL OR tournament_data_id = ANY($1))
		   AND ($2::bigint IS NULL OR creation_time >= $2)
		   AND ($3::bigint IS NULL OR creation_time <= $3)
		   AND ($4::bigint[] IS NULL OR creator_user_id = ANY($4))
		   AND ($5::bigint[] IS NULL OR tournament_id = ANY($5))
		   AND ($6::text[] IS NULL OR title = ANY($6))
		   AND ($7::bool IS NULL OR active = $7)
		 ORDER BY tournament_data_id`,
		optionalIDArray(props.TournamentDataID),
		props.MinCreationTime,
		props.MaxCreationTime,
		optionalIDArray(props.CreatorUserID),
		optionalIDArray(props.TournamentID),
		optionalTextArray(props.Title),
		props.Active,
	)
	if err != nil {
		return nil, wrapQueryErr(err)
	}
	return out, nil
}

func optionalTextArray(s *string) interface{} {
	if s == nil {
		return nil
	}
	return pq.StringArray{*s}
}
