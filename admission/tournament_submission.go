package admission

import (
	"context"

	"pdarena.dev/service/apperr"
	"pdarena.dev/service/types"
)

// NewTournamentSubmission validates and appends a new tournament-entry
// row, then emits the matchup tasks its kind requires, applying each
// kind's gating rules along the way.
func (s *Service) NewTournamentSubmission(ctx context.Context, props types.TournamentSubmissionNewProps) (types.TournamentSubmission, error) {
	userID, err := s.authenticate(ctx, props.ApiKey)
	if err != nil {
		return types.TournamentSubmission{}, err
	}

	tournament, ok, err := s.store.LatestTournamentData(props.TournamentID)
	if err != nil {
		return types.TournamentSubmission{}, err
	}
	if !ok {
		return types.TournamentSubmission{}, apperr.New(apperr.TournamentNonexistent)
	}
	if !tournament.Active {
		return types.TournamentSubmission{}, apperr.New(apperr.TournamentArchived)
	}

	subs, err := s.store.QuerySubmissions(types.SubmissionViewProps{SubmissionID: &props.SubmissionID})
	if err != nil {
		return types.TournamentSubmission{}, err
	}
	if len(subs) == 0 {
		return types.TournamentSubmission{}, apperr.New(apperr.SubmissionNonexistent)
	}
	submission := subs[0]

	// Ownership rule: the acting user must own the submission or the
	// tournament.
	if submission.CreatorUserID != userID && tournament.CreatorUserID != userID {
		return types.TournamentSubmission{}, apperr.New(apperr.NoCapability)
	}

	prior, hasPrior, err := s.store.LatestTournamentSubmission(props.TournamentID, props.SubmissionID)
	if err != nil {
		return types.TournamentSubmission{}, err
	}

	switch props.Kind {
	case types.KindValidate:
		if hasPrior {
			return types.TournamentSubmission{}, apperr.New(apperr.BadRequest)
		}
	case types.KindCompete:
		if !hasPrior || prior.Kind != types.KindValidate {
			return types.TournamentSubmission{}, apperr.New(apperr.TournamentSubmissionNotValidated)
		}
		if err := s.requireTestcasesPassed(props.TournamentID, props.SubmissionID, tournament); err != nil {
			return types.TournamentSubmission{}, err
		}
	case types.KindTestcase:
		if tournament.CreatorUserID != userID {
			return types.TournamentSubmission{}, apperr.New(apperr.NoCapability)
		}
	case types.KindCancel:
		// no additional gating
	}

	entry, err := s.store.AddTournamentSubmission(userID, props)
	if err != nil {
		return types.TournamentSubmission{}, err
	}

	switch props.Kind {
	case types.KindValidate:
		s.onValidate(props.TournamentID, props.SubmissionID, tournament)
	case types.KindCompete:
		s.onCompete(props.TournamentID, props.SubmissionID, tournament)
	case types.KindTestcase:
		s.onTestcase(props.TournamentID, props.SubmissionID, tournament)
	}

	return entry, nil
}

// onValidate enqueues the new submission against every recent Testcase
// entry, n_matchups times each.
func (s *Service) onValidate(tournamentID, submissionID int64, tournament types.TournamentData) {
	_, _, testcaseIDs := s.recentByKindTriple(tournamentID)
	for _, testcaseID := range testcaseIDs {
		s.enqueuePair(submissionID, testcaseID, tournament.NRounds, tournament.NMatchups)
	}
}

// onCompete enqueues the submission against every recent Compete entry
// and against itself.
func (s *Service) onCompete(tournamentID, submissionID int64, tournament types.TournamentData) {
	competeIDs, _, _ := s.recentByKindTriple(tournamentID)
	s.enqueuePair(submissionID, submissionID, tournament.NRounds, tournament.NMatchups)
	for _, other := range competeIDs {
		if other == submissionID {
			continue
		}
		s.enqueuePair(submissionID, other, tournament.NRounds, tournament.NMatchups)
	}
}

// onTestcase enqueues every recent Validate/Compete entry against the
// new testcase.
func (s *Service) onTestcase(tournamentID, testcaseID int64, tournament types.TournamentData) {
	_, toTestIDs, _ := s.recentByKindTriple(tournamentID)
	for _, submissionID := range toTestIDs {
		if submissionID == testcaseID {
			continue
		}
		s.enqueuePair(submissionID, testcaseID, tournament.NRounds, tournament.NMatchups)
	}
}

// recentByKindTriple returns the recent-entry submission id sets keyed
// by kind: competeIDs, toTestIDs (Validate ∪ Compete), testcaseIDs.
func (s *Service) recentByKindTriple(tournamentID int64) (competeIDs, toTestIDs, testcaseIDs []int64) {
	entries, err := s.store.QueryTournamentSubmissions(types.TournamentSubmissionViewProps{
			TournamentID: &tournamentID,
			OnlyRecent: true,
		})
	if err != nil {
		s.logger.Error("recentByKindTriple query failed", map[string]any{"error": err.Error()})
		return nil, nil, nil
	}
	for _, e := range entries {
		switch e.Kind {
		case types.KindCompete:
			competeIDs = append(competeIDs, e.SubmissionID)
			toTestIDs = append(toTestIDs, e.SubmissionID)
		case types.KindValidate:
			toTestIDs = append(toTestIDs, e.SubmissionID)
		case types.KindTestcase:
			testcaseIDs = append(testcaseIDs, e.SubmissionID)
		}
	}
	return competeIDs, toTestIDs, testcaseIDs
}

// requireTestcasesPassed verifies that, for every recent Testcase
// entry, both directional pairings with submissionID have at least
// n_rounds*n_matchups*2 MatchResolutions recorded and none has
// defected = null.
func (s *Service) requireTestcasesPassed(tournamentID, submissionID int64, tournament types.TournamentData) error {
	_, _, testcaseIDs := s.recentByKindTriple(tournamentID)
	required := tournament.NRounds * tournament.NMatchups * 2

	for _, testcaseID := range testcaseIDs {
		forward, err := s.store.QueryMatchResolutions(types.MatchResolutionViewProps{
				SubmissionID: &submissionID,
				OpponentSubmissionID: &testcaseID,
			})
		if err != nil {
			return err
		}
		backward, err := s.store.QueryMatchResolutions(types.MatchResolutionViewProps{
				SubmissionID: &testcaseID,
				OpponentSubmissionID: &submissionID,
			})
		if err != nil {
			return err
		}
		all := append(forward, backward...)
		if int64(len(all)) < required {
			return apperr.New(apperr.TournamentSubmissionTestcaseIncomplete)
		}
		for _, mr := range all {
			if mr.Defected == nil {
				return apperr.New(apperr.TournamentSubmissionTestcaseFails)
			}
		}
	}
	return nil
}

// ViewTournamentSubmissions is a pure query over the store.
func (s *Service) ViewTournamentSubmissions(ctx context.Context, props types.TournamentSubmissionViewProps) ([]types.TournamentSubmission, error) {
	if _, err := s.authenticate(ctx, props.ApiKey); err != nil {
		return nil, err
	}
	return s.store.QueryTournamentSubmissions(props)
}

// ViewMatchResolutions is a pure query over the store.
func (s *Service) ViewMatchResolutions(ctx context.Context, props types.MatchResolutionViewProps) ([]types.MatchResolution, error) {
	if _, err := s.authenticate(ctx, props.ApiKey); err != nil {
		return nil, err
	}
	return s.store.QueryMatchResolutions(props)
}
