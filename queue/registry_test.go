package queue

import (
	"testing"

	"pdarena.dev/service/types"
)

func TestRegistry_TryRegisterThenDeregister(t *testing.T) {
	r := NewRegistry()
	task := types.MatchupTask{MatchupNum: 1, NRounds: 10, SubmissionID: 2, OpponentSubmissionID: 3}

	if !r.TryRegister(task) {
		t.Fatal("first TryRegister should succeed")
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}

	r.Deregister(task)
	if r.Len() != 0 {
		t.Fatalf("Len() = %d after Deregister, want 0", r.Len())
	}
}

func TestRegistry_SupersedeRule(t *testing.T) {
	r := NewRegistry()
	lower := types.MatchupTask{MatchupNum: 1, NRounds: 5, SubmissionID: 2, OpponentSubmissionID: 3}
	higher := types.MatchupTask{MatchupNum: 1, NRounds: 10, SubmissionID: 2, OpponentSubmissionID: 3}

	if !r.TryRegister(lower) {
		t.Fatal("registering the first task should succeed")
	}

	// A duplicate identity with NRounds <= the in-flight task's NRounds
	// is superseded and must be rejected.
	if r.TryRegister(types.MatchupTask{MatchupNum: 1, NRounds: 5, SubmissionID: 2, OpponentSubmissionID: 3}) {
		t.Error("an identical-identity task with NRounds <= in-flight should be rejected")
	}

	// A higher NRounds for the same identity is not superseded.
	if !r.TryRegister(higher) {
		t.Error("a higher-NRounds task for the same identity should be allowed to register")
	}
}

func TestRegistry_DifferentIdentitiesIndependent(t *testing.T) {
	r := NewRegistry()
	a := types.MatchupTask{MatchupNum: 1, NRounds: 5, SubmissionID: 2, OpponentSubmissionID: 3}
	b := types.MatchupTask{MatchupNum: 2, NRounds: 5, SubmissionID: 2, OpponentSubmissionID: 3}

	if !r.TryRegister(a) || !r.TryRegister(b) {
		t.Fatal("tasks with distinct matchup_num should register independently")
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistry_DeregisterOnlyRemovesExactTask(t *testing.T) {
	r := NewRegistry()
	lower := types.MatchupTask{MatchupNum: 1, NRounds: 5, SubmissionID: 2, OpponentSubmissionID: 3}
	r.TryRegister(lower)

	// Deregistering a task that never matched the registered entry is a
	// no-op.
	stale := types.MatchupTask{MatchupNum: 1, NRounds: 999, SubmissionID: 2, OpponentSubmissionID: 3}
	r.Deregister(stale)
	if r.Len() != 1 {
		t.Fatalf("Len() = %d after deregistering a stale task, want 1", r.Len())
	}
}
