// Package types defines the domain entities, wire request/response shapes,
// and the matchup scheduling unit used across the service.
package types

// TournamentSubmissionKind governs eligibility and scheduling of a
// submission's tournament entry.
type TournamentSubmissionKind string

const (
	KindTestcase TournamentSubmissionKind = "Testcase"
	KindValidate TournamentSubmissionKind = "Validate"
	KindCompete TournamentSubmissionKind = "Compete"
	KindCancel TournamentSubmissionKind = "Cancel"
)

// Submission is an uploaded player program. Immutable once created.
type Submission struct {
	SubmissionID int64 `json:"submissionId" db:"submission_id"`
	CreationTime int64 `json:"creationTime" db:"creation_time"`
	CreatorUserID int64 `json:"creatorUserId" db:"creator_user_id"`
	Code string `json:"code" db:"code"`
}

// Tournament is an immutable record of who opened a tournament.
type Tournament struct {
	TournamentID int64 `json:"tournamentId" db:"tournament_id"`
	CreationTime int64 `json:"creationTime" db:"creation_time"`
	CreatorUserID int64 `json:"creatorUserId" db:"creator_user_id"`
}

// TournamentData is the append-only configuration ledger for a tournament;
// the newest row per tournament_id is authoritative.
type TournamentData struct {
	TournamentDataID int64 `json:"tournamentDataId" db:"tournament_data_id"`
	CreationTime int64 `json:"creationTime" db:"creation_time"`
	CreatorUserID int64 `json:"creatorUserId" db:"creator_user_id"`
	TournamentID int64 `json:"tournamentId" db:"tournament_id"`
	Title string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	NRounds int64 `json:"nRounds" db:"n_rounds"`
	NMatchups int64 `json:"nMatchups" db:"n_matchups"`
	Active bool `json:"active" db:"active"`
}

// TournamentSubmission is an append-only entry of a submission into a
// tournament; the newest row per (tournament_id, submission_id) is
// authoritative.
type TournamentSubmission struct {
	TournamentSubmissionID int64 `json:"tournamentSubmissionId" db:"tournament_submission_id"`
	CreationTime int64 `json:"creationTime" db:"creation_time"`
	CreatorUserID int64 `json:"creatorUserId" db:"creator_user_id"`
	TournamentID int64 `json:"tournamentId" db:"tournament_id"`
	SubmissionID int64 `json:"submissionId" db:"submission_id"`
	Name string `json:"name" db:"name"`
	Kind TournamentSubmissionKind `json:"kind" db:"kind"`
}

// MatchResolution is one persisted attempt at a single (submission,
// opponent, round, matchup) game step. Append-only; the latest successful
// row per tuple wins.
type MatchResolution struct {
	MatchResolutionID    int64  `json:"matchResolutionId" db:"match_resolution_id"`
	CreationTime         int64  `json:"creationTime" db:"creation_time"`
	SubmissionID         int64  `json:"submissionId" db:"submission_id"`
	OpponentSubmissionID int64  `json:"opponentSubmissionId" db:"opponent_submission_id"`
	Round                int64  `json:"round" db:"round"`
	Matchup              int64  `json:"matchup" db:"matchup"`
	Attempt              int64  `json:"attempt" db:"attempt"`
	Defected             *bool  `json:"defected" db:"defected"`
	Stdout               string `json:"stdout" db:"stdout"`
	Stderr               string `json:"stderr" db:"stderr"`
}

// MatchResolutionLite is the broadcast-friendly projection of a
// MatchResolution.
type MatchResolutionLite struct {
	MatchResolutionID int64 `json:"matchResolutionId"`
	CreationTime int64 `json:"creationTime"`
	SubmissionID int64 `json:"submissionId"`
	OpponentSubmissionID int64 `json:"opponentSubmissionId"`
	Round int64 `json:"round"`
	Matchup int64 `json:"matchup"`
	Defected *bool `json:"defected"`
}

// Lite projects a full MatchResolution down to its broadcast form.
func (m MatchResolution) Lite() MatchResolutionLite {
	return MatchResolutionLite{
		MatchResolutionID: m.MatchResolutionID,
		CreationTime: m.CreationTime,
		SubmissionID: m.SubmissionID,
		OpponentSubmissionID: m.OpponentSubmissionID,
		Round: m.Round,
		Matchup: m.Matchup,
		Defected: m.Defected,
	}
}

// Info is the static service descriptor returned by /public/info.
type Info struct {
	Service string `json:"service"`
	VersionMajor int64 `json:"versionMajor"`
	VersionMinor int64 `json:"versionMinor"`
	VersionRev int64 `json:"versionRev"`
}
