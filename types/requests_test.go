package types //nolint:revive // types is a valid package name

import "testing"

func TestTournamentSubmissionViewProps_Matches(t *testing.T) {
	ts := TournamentSubmission{
		TournamentSubmissionID: 5,
		TournamentID: 1,
		SubmissionID: 2,
		Kind: KindCompete,
		CreationTime: 100,
	}

	tournamentID := int64(1)
	wrongTournamentID := int64(99)
	kind := KindValidate

	cases := []struct {
		name  string
		props TournamentSubmissionViewProps
		want  bool
	}{
		{"no filters matches", TournamentSubmissionViewProps{}, true},
		{"matching tournament id", TournamentSubmissionViewProps{TournamentID: &tournamentID}, true},
		{"wrong tournament id", TournamentSubmissionViewProps{TournamentID: &wrongTournamentID}, false},
		{"wrong kind", TournamentSubmissionViewProps{Kind: &kind}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.props.Matches(ts); got != c.want {
				t.Errorf("Matches() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestTournamentSubmissionViewProps_MinMaxID(t *testing.T) {
	ts := TournamentSubmission{TournamentSubmissionID: 10}
	belowMin := int64(11)
	aboveMax := int64(9)

	if (TournamentSubmissionViewProps{MinID: &belowMin}).Matches(ts) {
		t.Error("ID below MinID should not match")
	}
	if (TournamentSubmissionViewProps{MaxID: &aboveMax}).Matches(ts) {
		t.Error("ID above MaxID should not match")
	}
}

func TestMatchResolutionViewProps_Matches(t *testing.T) {
	mr := MatchResolution{MatchResolutionID: 1, SubmissionID: 2, OpponentSubmissionID: 3, Round: 4, Matchup: 5}

	round := int64(4)
	wrongRound := int64(99)

	if !(MatchResolutionViewProps{Round: &round}).Matches(mr) {
		t.Error("matching round should match")
	}
	if (MatchResolutionViewProps{Round: &wrongRound}).Matches(mr) {
		t.Error("wrong round should not match")
	}
}

func TestMatchResolutionViewProps_MatchesLite(t *testing.T) {
	lite := MatchResolutionLite{MatchResolutionID: 1, SubmissionID: 2, OpponentSubmissionID: 3, Round: 4, Matchup: 5}

	sub := int64(2)
	wrongSub := int64(999)

	if !(MatchResolutionViewProps{SubmissionID: &sub}).MatchesLite(lite) {
		t.Error("matching submission id should match")
	}
	if (MatchResolutionViewProps{SubmissionID: &wrongSub}).MatchesLite(lite) {
		t.Error("wrong submission id should not match")
	}
}

func TestMatchResolutionViewProps_MinMaxIDBounds(t *testing.T) {
	mr := MatchResolution{MatchResolutionID: 10}
	min := int64(11)
	max := int64(9)

	if (MatchResolutionViewProps{MinID: &min}).Matches(mr) {
		t.Error("ID below MinID should not match")
	}
	if (MatchResolutionViewProps{MaxID: &max}).Matches(mr) {
		t.Error("ID above MaxID should not match")
	}
}
