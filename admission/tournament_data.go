package admission

import (
	"context"

	"pdarena.dev/service/apperr"
	"pdarena.dev/service/types"
)

// UpdateTournamentData appends a new configuration row for an existing
// tournament and, if the new configuration extends the old one,
// enumerates and enqueues the matchup tasks that extension requires.
func (s *Service) UpdateTournamentData(ctx context.Context, props types.TournamentDataNewProps) (types.TournamentData, error) {
	userID, err := s.authenticate(ctx, props.ApiKey)
	if err != nil {
		return types.TournamentData{}, err
	}

	old, ok, err := s.store.LatestTournamentData(props.TournamentID)
	if err != nil {
		return types.TournamentData{}, err
	}
	if !ok {
		return types.TournamentData{}, apperr.New(apperr.TournamentNonexistent)
	}
	if old.CreatorUserID != userID {
		return types.TournamentData{}, apperr.New(apperr.Unauthorized)
	}

	if props.NRounds <= 0 {
		return types.TournamentData{}, apperr.New(apperr.TournamentDataNRoundsInvalid)
	}
	if props.NMatchups <= 0 {
		return types.TournamentData{}, apperr.New(apperr.TournamentDataNMatchupsInvalid)
	}
	if props.NRounds*props.NMatchups > MaxMatchSpace {
		return types.TournamentData{}, apperr.New(apperr.TournamentDataTooManyMatches)
	}

	updated, err := s.store.AddTournamentData(userID, props)
	if err != nil {
		return types.TournamentData{}, err
	}

	if updated.NRounds > old.NRounds || updated.NMatchups > old.NMatchups {
		if err := s.emitExtension(old, updated); err != nil {
			return types.TournamentData{}, err
		}
	}

	return updated, nil
}

// emitExtension enumerates and enqueues matchup tasks for every
// matchup index meeting the extension condition: more rounds on any
// existing matchup, or a newly added matchup index. Duplicate
// emissions across repeated calls are absorbed by the Ongoing-Task
// Registry and the Round Executor's resume-from-current-round
// behavior, so over-enumeration here is harmless.
func (s *Service) emitExtension(old, updated types.TournamentData) error {
	testcaseIDs, totestIDs, competeIDs, err := s.cohorts(updated.TournamentID)
	if err != nil {
		return err
	}

	for i := int64(0); i < updated.NMatchups; i++ {
		extended := i >= old.NMatchups || updated.NRounds > old.NRounds
		if !extended {
			continue
		}
		s.emitTestcasePairings(i, updated.NRounds, testcaseIDs, totestIDs)
		s.emitCompeteCohort(i, updated.NRounds, competeIDs)
	}
	return nil
}

// cohorts returns the recent-entry submission id sets: testcaseIDs
// (kind Testcase), totestIDs (kind Testcase ∪ Compete — submissions
// that must be run against testcases), and competeIDs (kind Compete).
func (s *Service) cohorts(tournamentID int64) (testcaseIDs, totestIDs, competeIDs []int64, err error) {
	entries, err := s.store.QueryTournamentSubmissions(types.TournamentSubmissionViewProps{
			TournamentID: &tournamentID,
			OnlyRecent: true,
		})
	if err != nil {
		return nil, nil, nil, err
	}
	for _, e := range entries {
		switch e.Kind {
		case types.KindTestcase:
			testcaseIDs = append(testcaseIDs, e.SubmissionID)
			totestIDs = append(totestIDs, e.SubmissionID)
		case types.KindCompete:
			competeIDs = append(competeIDs, e.SubmissionID)
			totestIDs = append(totestIDs, e.SubmissionID)
		}
	}
	return testcaseIDs, totestIDs, competeIDs, nil
}

func (s *Service) emitTestcasePairings(matchupIndex, nRounds int64, testcaseIDs, totestIDs []int64) {
	for _, t := range testcaseIDs {
		for _, u := range totestIDs {
			if t == u {
				continue
			}
			s.enqueueMatchupPair(matchupIndex, nRounds, t, u)
		}
	}
}

func (s *Service) emitCompeteCohort(matchupIndex, nRounds int64, competeIDs []int64) {
	for _, a := range competeIDs {
		s.enqueueMatchupPair(matchupIndex, nRounds, a, a)
		for _, b := range competeIDs {
			if b <= a {
				continue
			}
			s.enqueueMatchupPair(matchupIndex, nRounds, a, b)
		}
	}
}

// ViewTournamentData is a pure query over the store.
func (s *Service) ViewTournamentData(ctx context.Context, props types.TournamentDataViewProps) ([]types.TournamentData, error) {
	if _, err := s.authenticate(ctx, props.ApiKey); err != nil {
		return nil, err
	}
	return s.store.QueryTournamentData(props)
}
