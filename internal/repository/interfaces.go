package repository

import (
	"context"

	"github.com/limbo/stepdiary/pkg/entity"
)

type DirectoryRepositoryI interface {
	// Looks up an account by username
	Find(ctx context.Context, username string) (*entity.Account, error)
	// Adds a new account. Fails if the username is taken
	Insert(ctx context.Context, account *entity.Account) error
	// Overwrites an existing account's fields
	Update(ctx context.Context, account *entity.Account) error
	// Removes an account from the directory
	Delete(ctx context.Context, username string) error
	// Lists every account, stable by insertion order
	List(ctx context.Context) ([]entity.Account, error)
}

type StepLogRepositoryI interface {
	// Reads the owner's log. Absent or corrupt data yields an empty log
	Load(ctx context.Context, owner string) ([]entity.Entry, error)
	// Replaces the owner's whole persisted log
	Save(ctx context.Context, owner string, entries []entity.Entry) error
	// Removes the owner's persisted log entirely
	Clear(ctx context.Context, owner string) error
}
