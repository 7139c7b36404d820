// Package archive exports match resolutions to Hive-partitioned cold
// storage, for tournaments too large to serve entirely from Postgres.
//
// Built on github.com/justapithecus/lode with a tournament_id/day
// partition layout and a JSONL codec.
package archive

import (
	"context"
	"time"

	"github.com/justapithecus/lode/lode"

	"pdarena.dev/service/types"
)

// Record is the storage format for one archived match resolution.
type Record struct {
	MatchResolutionID    int64  `json:"match_resolution_id"`
	CreationTime         int64  `json:"creation_time"`
	SubmissionID         int64  `json:"submission_id"`
	OpponentSubmissionID int64  `json:"opponent_submission_id"`
	Round                int64  `json:"round"`
	Matchup              int64  `json:"matchup"`
	Attempt              int64  `json:"attempt"`
	Defected             *bool  `json:"defected"`
	Stdout               string `json:"stdout"`
	Stderr               string `json:"stderr"`

	TournamentID int64  `json:"tournament_id"`
	Day          string `json:"day"`
}

// Archiver writes MatchResolution rows to Hive-partitioned storage.
type Archiver struct {
	dataset lode.Dataset
}

// New opens a dataset rooted at root, partitioned by tournament_id and
// day. root is a filesystem directory; use NewWithFactory with
// lode.NewS3Factory for S3-backed storage instead.
func New(datasetID, root string) (*Archiver, error) {
	return NewWithFactory(datasetID, lode.NewFSFactory(root))
}

// NewWithFactory opens a dataset using a caller-supplied store factory,
// for S3-backed archives (lode.NewS3Factory) or tests
// (lode.NewMemoryFactory).
func NewWithFactory(datasetID string, factory lode.StoreFactory) (*Archiver, error) {
	ds, err := lode.NewDataset(
		lode.DatasetID(datasetID),
		factory,
		lode.WithHiveLayout("tournament_id", "day"),
		lode.WithCodec(lode.NewJSONLCodec()),
	)
	if err != nil {
		return nil, err
	}
	return &Archiver{dataset: ds}, nil
}

// Write appends resolutions for tournamentID to the day partition
// derived from each row's creation time.
func (a *Archiver) Write(ctx context.Context, tournamentID int64, resolutions []types.MatchResolution) error {
	if len(resolutions) == 0 {
		return nil
	}
	records := make([]any, 0, len(resolutions))
	for _, mr := range resolutions {
		records = append(records, Record{
			MatchResolutionID:    mr.MatchResolutionID,
			CreationTime:         mr.CreationTime,
			SubmissionID:         mr.SubmissionID,
			OpponentSubmissionID: mr.OpponentSubmissionID,
			Round:                mr.Round,
			Matchup:              mr.Matchup,
			Attempt:              mr.Attempt,
			Defected:             mr.Defected,
			Stdout:               mr.Stdout,
			Stderr:               mr.Stderr,
			TournamentID:         tournamentID,
			Day:                  dayOf(mr.CreationTime),
		})
	}
	_, err := a.dataset.Write(ctx, records, lode.Metadata{})
	return err
}

// dayOf renders a millisecond epoch timestamp as a YYYY-MM-DD UTC day
// partition key.
func dayOf(creationTimeMillis int64) string {
	return time.UnixMilli(creationTimeMillis).UTC().Format("2006-01-02")
}
