package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bytedance/sonic"
	"github.com/limbo/stepdiary/internal/store"
	"github.com/limbo/stepdiary/pkg/entity"
)

const stepLogKeyPrefix = "steplog/"

func stepLogKey(owner string) string {
	return stepLogKeyPrefix + owner
}

// StepLogRepository persists one document per owner: a JSON array of
// {id, date, steps}. The owner is part of the key, not the document,
// and is filled back in on load.
type StepLogRepository struct {
	store store.Store
}

func NewStepLogRepo(s store.Store) *StepLogRepository {
	return &StepLogRepository{
		store: s,
	}
}

func (lr *StepLogRepository) Load(ctx context.Context, owner string) ([]entity.Entry, error) {
	raw, ok, err := lr.store.Get(ctx, stepLogKey(owner))
	if err != nil {
		return nil, errors.New("reading step log error: " + err.Error())
	}
	if !ok {
		return []entity.Entry{}, nil
	}
	var entries []entity.Entry
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		slog.Warn("step log document is corrupt, treating as empty",
			slog.String("owner", owner),
			slog.String("error", err.Error()),
		)
		return []entity.Entry{}, nil
	}
	for i := range entries {
		entries[i].Owner = owner
	}
	return entries, nil
}

func (lr *StepLogRepository) Save(ctx context.Context, owner string, entries []entity.Entry) error {
	if entries == nil {
		entries = []entity.Entry{}
	}
	raw, err := sonic.Marshal(entries)
	if err != nil {
		return errors.New("encoding step log error: " + err.Error())
	}
	if err := lr.store.Put(ctx, stepLogKey(owner), raw); err != nil {
		return errors.New("writing step log error: " + err.Error())
	}
	return nil
}

func (lr *StepLogRepository) Clear(ctx context.Context, owner string) error {
	if err := lr.store.Delete(ctx, stepLogKey(owner)); err != nil {
		return errors.New("clearing step log error: " + err.Error())
	}
	return nil
}
