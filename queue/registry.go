package queue

import (
	"sync"

	"pdarena.dev/service/types"
)

// identity is the dedup key for a matchup task. n_rounds is not part of
// the key; TryRegister compares it separately, so a task with the same
// identity but more rounds than the registered one is not collapsed.
type identity struct {
	matchupNum int64
	submissionID int64
	opponentSubmissionID int64
}

func identityOf(t types.MatchupTask) identity {
	return identity{
		matchupNum: t.MatchupNum,
		submissionID: t.SubmissionID,
		opponentSubmissionID: t.OpponentSubmissionID,
	}
}

// Registry is the Ongoing-Task Registry: a mutual-exclusion-guarded set
// of currently executing tasks, keyed by (matchup_num, submission_id,
// opponent_submission_id). A task is superseded — and the caller should
// discard it — when an entry with the same identity and an n_rounds
// greater than or equal to the candidate's is already registered.
type Registry struct {
	mu sync.Mutex
	ongoing map[identity]types.MatchupTask
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ongoing: make(map[identity]types.MatchupTask)}
}

// TryRegister attempts to register task as in-flight. It returns
// ok=false if an existing in-flight task with the same identity has
// n_rounds >= task.NRounds; the caller must discard the task and
// return to the queue without running it. On ok=true, the task is now
// registered and the caller must call Deregister(task) exactly once,
// on both success and failure.
func (r *Registry) TryRegister(task types.MatchupTask) (ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := identityOf(task)
	if existing, found := r.ongoing[id]; found && existing.NRounds >= task.NRounds {
		return false
	}
	r.ongoing[id] = task
	return true
}

// Deregister removes the exact task previously registered via
// TryRegister. Must be called exactly once per successful TryRegister,
// on both the success and failure path of the matchup run.
func (r *Registry) Deregister(task types.MatchupTask) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := identityOf(task)
	if existing, found := r.ongoing[id]; found && existing == task {
		delete(r.ongoing, id)
	}
}

// Len reports the number of currently registered tasks, for
// diagnostics and tests.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ongoing)
}
