package admission

import (
	"context"

	"pdarena.dev/service/apperr"
	"pdarena.dev/service/types"
)

// NewSubmission validates and inserts a new Submission.
func (s *Service) NewSubmission(ctx context.Context, props types.SubmissionNewProps) (types.Submission, error) {
	userID, err := s.authenticate(ctx, props.ApiKey)
	if err != nil {
		return types.Submission{}, err
	}

	if len(props.Code) > MaxSubmissionCodeLength {
		return types.Submission{}, apperr.New(apperr.SubmissionTooLong)
	}

	sub, err := s.store.AddSubmission(userID, props.Code)
	if err != nil {
		return types.Submission{}, err
	}
	return sub, nil
}

// ViewSubmissions is a pure query over the store; it has no scheduling
// effect.
func (s *Service) ViewSubmissions(ctx context.Context, props types.SubmissionViewProps) ([]types.Submission, error) {
	if _, err := s.authenticate(ctx, props.ApiKey); err != nil {
		return nil, err
	}
	return s.store.QuerySubmissions(props)
}
