package service

import (
	"context"
	"errors"

	"github.com/limbo/stepdiary/internal/repository"
	"github.com/limbo/stepdiary/pkg/entity"
)

// AdminService is the privileged read path: a full rescan of every
// user's log on each call, O(number of users). Nothing it produces is
// ever persisted.
type AdminService struct {
	dir  repository.DirectoryRepositoryI
	logs repository.StepLogRepositoryI
}

func NewAdminService(dirRepo repository.DirectoryRepositoryI, logsRepo repository.StepLogRepositoryI) *AdminService {
	return &AdminService{
		dir:  dirRepo,
		logs: logsRepo,
	}
}

// AggregateAll concatenates every user's log in directory order, each
// entry tagged with its owner. Same-date entries of different users are
// kept side by side, there is no cross-user merging.
func (serv *AdminService) AggregateAll(ctx context.Context) ([]entity.Entry, error) {
	accounts, err := serv.dir.List(ctx)
	if err != nil {
		return nil, errors.New("repository listing error: " + err.Error())
	}
	aggregate := make([]entity.Entry, 0)
	for _, account := range accounts {
		entries, err := serv.logs.Load(ctx, account.Username)
		if err != nil {
			return nil, errors.New("repository error: " + err.Error())
		}
		aggregate = append(aggregate, entries...)
	}
	return aggregate, nil
}

func (serv *AdminService) OverviewStats(ctx context.Context) (entity.Stats, error) {
	aggregate, err := serv.AggregateAll(ctx)
	if err != nil {
		return entity.Stats{}, err
	}
	return ComputeStats(aggregate), nil
}
