package admission

import (
	"context"

	"pdarena.dev/service/apperr"
	"pdarena.dev/service/types"
)

// TournamentView is the combined view returned by NewTournament,
// pairing the immutable Tournament with its freshly created
// TournamentData row.
type TournamentView struct {
	Tournament     types.Tournament     `json:"tournament"`
	TournamentData types.TournamentData `json:"tournamentData"`
}

// NewTournament validates and creates a Tournament plus its initial
// active TournamentData row. Grounded on handlers.rs::tournament_new.
func (s *Service) NewTournament(ctx context.Context, props types.TournamentNewProps) (TournamentView, error) {
	userID, err := s.authenticate(ctx, props.ApiKey)
	if err != nil {
		return TournamentView{}, err
	}

	if props.NRounds <= 0 {
		return TournamentView{}, apperr.New(apperr.TournamentDataNRoundsInvalid)
	}
	if props.NMatchups <= 0 {
		return TournamentView{}, apperr.New(apperr.TournamentDataNMatchupsInvalid)
	}
	if props.NRounds*props.NMatchups > MaxMatchSpace {
		return TournamentView{}, apperr.New(apperr.TournamentDataTooManyMatches)
	}

	tournament, err := s.store.AddTournament(userID)
	if err != nil {
		return TournamentView{}, err
	}

	data, err := s.store.AddTournamentData(userID, types.TournamentDataNewProps{
		TournamentID: tournament.TournamentID,
		Title:        props.Title,
		Description:  props.Description,
		NRounds:      props.NRounds,
		NMatchups:    props.NMatchups,
		Active:       true,
	})
	if err != nil {
		return TournamentView{}, err
	}

	return TournamentView{Tournament: tournament, TournamentData: data}, nil
}

// ViewTournaments is a pure query over the store.
func (s *Service) ViewTournaments(ctx context.Context, props types.TournamentViewProps) ([]types.Tournament, error) {
	if _, err := s.authenticate(ctx, props.ApiKey); err != nil {
		return nil, err
	}
	return s.store.QueryTournaments(props)
}
