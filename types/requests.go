package types

// Every NewProps/ViewProps struct below is a camelCase wire shape. ApiKey
// carries bearer-token authentication for every write and every view
// endpoint.

type SubmissionNewProps struct {
	Code string `json:"code"`
	ApiKey string `json:"apiKey"`
}

type SubmissionViewProps struct {
	SubmissionID *int64 `json:"submissionId"`
	MinCreationTime *int64 `json:"minCreationTime"`
	MaxCreationTime *int64 `json:"maxCreationTime"`
	CreatorUserID *int64 `json:"creatorUserId"`
	ApiKey string `json:"apiKey"`
}

// TournamentNewProps opens a tournament and its initial configuration
// in one admission operation (n_rounds > 0, n_matchups > 0; the
// initial TournamentData row is created with active=true).
type TournamentNewProps struct {
	Title string `json:"title"`
	Description string `json:"description"`
	NRounds int64 `json:"nRounds"`
	NMatchups int64 `json:"nMatchups"`
	ApiKey string `json:"apiKey"`
}

type TournamentViewProps struct {
	TournamentID *int64 `json:"tournamentId"`
	MinCreationTime *int64 `json:"minCreationTime"`
	MaxCreationTime *int64 `json:"maxCreationTime"`
	CreatorUserID *int64 `json:"creatorUserId"`
	ApiKey string `json:"apiKey"`
}

type TournamentDataNewProps struct {
	TournamentID int64 `json:"tournamentId"`
	Title string `json:"title"`
	Description string `json:"description"`
	NRounds int64 `json:"nRounds"`
	NMatchups int64 `json:"nMatchups"`
	Active bool `json:"active"`
	ApiKey string `json:"apiKey"`
}

type TournamentDataViewProps struct {
	TournamentDataID *int64 `json:"tournamentDataId"`
	MinCreationTime *int64 `json:"minCreationTime"`
	MaxCreationTime *int64 `json:"maxCreationTime"`
	CreatorUserID *int64 `json:"creatorUserId"`
	TournamentID *int64 `json:"tournamentId"`
	Title *string `json:"title"`
	Active *bool `json:"active"`
	OnlyRecent bool `json:"onlyRecent"`
	ApiKey string `json:"apiKey"`
}

type TournamentSubmissionNewProps struct {
	TournamentID int64 `json:"tournamentId"`
	SubmissionID int64 `json:"submissionId"`
	Name string `json:"name"`
	Kind TournamentSubmissionKind `json:"kind"`
	ApiKey string `json:"apiKey"`
}

// TournamentSubmissionViewProps is also the filter object streamed to
// /public/ws/tournament_submission/stream. MinID and MaxID bound the
// tournament_submission_id range; the REST view endpoint applies them
// too.
type TournamentSubmissionViewProps struct {
	TournamentSubmissionID *int64 `json:"tournamentSubmissionId"`
	MinID *int64 `json:"minId"`
	MaxID *int64 `json:"maxId"`
	MinCreationTime *int64 `json:"minCreationTime"`
	MaxCreationTime *int64 `json:"maxCreationTime"`
	CreatorUserID *int64 `json:"creatorUserId"`
	TournamentID *int64 `json:"tournamentId"`
	SubmissionID *int64 `json:"submissionId"`
	Kind *TournamentSubmissionKind `json:"kind"`
	OnlyRecent bool `json:"onlyRecent"`
	ApiKey string `json:"apiKey"`
}

// Matches reports whether a TournamentSubmission passes every
// predicate props carries, for the Stream Handlers' in-memory
// tail-filtering step.
func (props TournamentSubmissionViewProps) Matches(ts TournamentSubmission) bool {
	if props.TournamentSubmissionID != nil && *props.TournamentSubmissionID != ts.TournamentSubmissionID {
		return false
	}
	if props.MinID != nil && ts.TournamentSubmissionID < *props.MinID {
		return false
	}
	if props.MaxID != nil && ts.TournamentSubmissionID > *props.MaxID {
		return false
	}
	if props.MinCreationTime != nil && ts.CreationTime < *props.MinCreationTime {
		return false
	}
	if props.MaxCreationTime != nil && ts.CreationTime > *props.MaxCreationTime {
		return false
	}
	if props.CreatorUserID != nil && *props.CreatorUserID != ts.CreatorUserID {
		return false
	}
	if props.TournamentID != nil && *props.TournamentID != ts.TournamentID {
		return false
	}
	if props.SubmissionID != nil && *props.SubmissionID != ts.SubmissionID {
		return false
	}
	if props.Kind != nil && *props.Kind != ts.Kind {
		return false
	}
	return true
}

// MatchResolutionViewProps is also the filter object streamed to
// /public/ws/match_resolution_lite/stream. MinID and MaxID bound the
// match_resolution_id range; the REST view endpoint applies them too.
type MatchResolutionViewProps struct {
	MatchResolutionID *int64 `json:"matchResolutionId"`
	MinID *int64 `json:"minId"`
	MaxID *int64 `json:"maxId"`
	MinCreationTime *int64 `json:"minCreationTime"`
	MaxCreationTime *int64 `json:"maxCreationTime"`
	SubmissionID *int64 `json:"submissionId"`
	OpponentSubmissionID *int64 `json:"opponentSubmissionId"`
	Round *int64 `json:"round"`
	Matchup *int64 `json:"matchup"`
	ApiKey string `json:"apiKey"`
}

// Matches reports whether a MatchResolution passes every predicate
// props carries, for the Stream Handlers' in-memory tail-filtering
// step.
func (props MatchResolutionViewProps) Matches(mr MatchResolution) bool {
	if props.MatchResolutionID != nil && *props.MatchResolutionID != mr.MatchResolutionID {
		return false
	}
	if props.MinID != nil && mr.MatchResolutionID < *props.MinID {
		return false
	}
	if props.MaxID != nil && mr.MatchResolutionID > *props.MaxID {
		return false
	}
	if props.MinCreationTime != nil && mr.CreationTime < *props.MinCreationTime {
		return false
	}
	if props.MaxCreationTime != nil && mr.CreationTime > *props.MaxCreationTime {
		return false
	}
	if props.SubmissionID != nil && *props.SubmissionID != mr.SubmissionID {
		return false
	}
	if props.OpponentSubmissionID != nil && *props.OpponentSubmissionID != mr.OpponentSubmissionID {
		return false
	}
	if props.Round != nil && *props.Round != mr.Round {
		return false
	}
	if props.Matchup != nil && *props.Matchup != mr.Matchup {
		return false
	}
	return true
}

// MatchesLite reports whether a MatchResolutionLite view passes every
// predicate props carries.
func (props MatchResolutionViewProps) MatchesLite(mr MatchResolutionLite) bool {
	if props.MatchResolutionID != nil && *props.MatchResolutionID != mr.MatchResolutionID {
		return false
	}
	if props.MinID != nil && mr.MatchResolutionID < *props.MinID {
		return false
	}
	if props.MaxID != nil && mr.MatchResolutionID > *props.MaxID {
		return false
	}
	if props.MinCreationTime != nil && mr.CreationTime < *props.MinCreationTime {
		return false
	}
	if props.MaxCreationTime != nil && mr.CreationTime > *props.MaxCreationTime {
		return false
	}
	if props.SubmissionID != nil && *props.SubmissionID != mr.SubmissionID {
		return false
	}
	if props.OpponentSubmissionID != nil && *props.OpponentSubmissionID != mr.OpponentSubmissionID {
		return false
	}
	if props.Round != nil && *props.Round != mr.Round {
		return false
	}
	if props.Matchup != nil && *props.Matchup != mr.Matchup {
		return false
	}
	return true
}

// MatchupTask is the unit of work enqueued onto the Matchup Queue.
type MatchupTask struct {
	MatchupNum int64
	NRounds int64
	SubmissionID int64
	OpponentSubmissionID int64
}
