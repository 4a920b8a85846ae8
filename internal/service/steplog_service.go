package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/stepdiary/internal/error_values"
	"github.com/limbo/stepdiary/internal/repository"
	"github.com/limbo/stepdiary/pkg/entity"
)

// DateLayout is the calendar-date form every entry date is stored in.
// ISO dates sort chronologically as plain strings.
const DateLayout = "2006-01-02"

type StepLogService struct {
	logs repository.StepLogRepositoryI
}

func NewStepLogService(logsRepo repository.StepLogRepositoryI) *StepLogService {
	return &StepLogService{
		logs: logsRepo,
	}
}

func (serv *StepLogService) Load(ctx context.Context, owner string) ([]entity.Entry, error) {
	entries, err := serv.logs.Load(ctx, owner)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return entries, nil
}

// UpsertForDate keeps at most one entry per date: any existing entry for
// the date is dropped and a fresh entry with a new id takes its place.
// The log is re-sorted ascending by date after the write.
func (serv *StepLogService) UpsertForDate(ctx context.Context, owner, date string, steps int) (*entity.Entry, error) {
	if owner == "" {
		return nil, errorvalues.ErrInvalidInput
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, errors.Join(errorvalues.ErrInvalidInput, errors.New("date must be YYYY-MM-DD"))
	}
	if steps < 0 {
		steps = 0
	}
	entries, err := serv.logs.Load(ctx, owner)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	kept := make([]entity.Entry, 0, len(entries)+1)
	for _, e := range entries {
		if e.Date != date {
			kept = append(kept, e)
		}
	}
	entry := entity.Entry{
		ID:    uuid.NewString(),
		Owner: owner,
		Date:  date,
		Steps: steps,
	}
	kept = append(kept, entry)
	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Date < kept[j].Date
	})
	if err := serv.logs.Save(ctx, owner, kept); err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return &entry, nil
}

// EditSteps changes only the steps of an existing entry. Date and owner
// are fixed once an entry is created; the id stays stable.
func (serv *StepLogService) EditSteps(ctx context.Context, owner, id string, steps int) error {
	if steps < 0 {
		steps = 0
	}
	entries, err := serv.logs.Load(ctx, owner)
	if err != nil {
		return errors.New("repository error: " + err.Error())
	}
	for i := range entries {
		if entries[i].ID == id {
			entries[i].Steps = steps
			if err := serv.logs.Save(ctx, owner, entries); err != nil {
				return errors.New("repository error: " + err.Error())
			}
			return nil
		}
	}
	return errorvalues.ErrEntryNotFound
}

func (serv *StepLogService) Remove(ctx context.Context, owner, id string, confirmed bool) error {
	if !confirmed {
		return errorvalues.ErrNotConfirmed
	}
	entries, err := serv.logs.Load(ctx, owner)
	if err != nil {
		return errors.New("repository error: " + err.Error())
	}
	kept := make([]entity.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return errorvalues.ErrEntryNotFound
	}
	if err := serv.logs.Save(ctx, owner, kept); err != nil {
		return errors.New("repository error: " + err.Error())
	}
	return nil
}

// Clear removes the owner's persisted record entirely, which reads back
// the same as an empty list.
func (serv *StepLogService) Clear(ctx context.Context, owner string, confirmed bool) error {
	if !confirmed {
		return errorvalues.ErrNotConfirmed
	}
	if err := serv.logs.Clear(ctx, owner); err != nil {
		return errors.New("repository error: " + err.Error())
	}
	return nil
}

// ComputeStats derives the read-only figures over one log. An empty log
// averages to zero instead of dividing by zero.
func ComputeStats(entries []entity.Entry) entity.Stats {
	stats := entity.Stats{
		Count: len(entries),
	}
	for _, e := range entries {
		stats.TotalSteps += e.Steps
	}
	if stats.Count > 0 {
		stats.AverageSteps = int(math.Round(float64(stats.TotalSteps) / float64(stats.Count)))
	}
	return stats
}

// CoerceSteps turns raw user input into a step count: non-numeric or
// negative input becomes 0.
func CoerceSteps(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
