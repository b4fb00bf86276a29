package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/spell-smash/event"
)

// Recorder persists a session result
type Recorder interface {
	Record(ctx context.Context, r Result) (int64, error)
}

// Handler records GameComplete summaries
type Handler[T any] struct {
	Recorder Recorder
	Log      *zap.Logger
}

const recordTimeout = 2 * time.Second

// FromSummary converts a session summary to a row
func FromSummary(p *event.SessionPayload) Result {
	return Result{
		StartedAt:      p.StartedAt,
		FinishedAt:     p.FinishedAt,
		Buildings:      p.Buildings,
		WordsCompleted: p.WordsCompleted,
		PerfectWords:   p.PerfectWords,
		WrongAttempts:  p.TotalWrongAttempts,
		BestStreak:     p.BestStreak,
		Accuracy:       p.Accuracy,
	}
}

func (h *Handler[T]) HandleEvent(_ T, ev event.GameEvent) {
	p, ok := event.PayloadOf[*event.SessionPayload](ev)
	if !ok || h.Recorder == nil {
		return
	}
	log := h.Log
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	id, err := h.Recorder.Record(ctx, FromSummary(p))
	if err != nil {
		// Results are optional, the session carries on
		log.Warn("record session", zap.Error(err))
		return
	}
	log.Info("session recorded", zap.Int64("id", id), zap.Int("accuracy", p.Accuracy))
}

func (h *Handler[T]) EventTypes() []event.EventType {
	return []event.EventType{event.EventGameComplete}
}
