package service

import (
	"context"

	"github.com/limbo/stepdiary/pkg/entity"
)

type RegisterRequest struct {
	// The username becomes part of a storage key, so it is restricted to
	// letters, digits and underscore.
	Username   string `validate:"required,alphanum_underscore,max=100"`
	Credential string `validate:"required"`
	Email      string `validate:"omitempty,email"`
}

type UserServiceI interface {
	// Seeds the protected admin account on first run. Idempotent
	Init(ctx context.Context) error
	// Validates input and creates a new account. When verification is
	// enabled the account starts pending and a code is dispatched
	Register(ctx context.Context, req *RegisterRequest) (*entity.Account, error)
	// Confirms a pending verification code
	Verify(ctx context.Context, username, submittedCode string) error
	// Checks credentials. The returned account is the session identity
	Login(ctx context.Context, username, credential string) (*entity.Account, error)
	// Unconditionally overwrites the stored credential
	ChangePassword(ctx context.Context, username, newCredential string) error
	// Removes the account and cascades to the user's step log
	DeleteUser(ctx context.Context, username string, confirmed bool) error
	// Lists every account, stable by insertion order
	ListAll(ctx context.Context) ([]entity.Account, error)
}

type StepLogServiceI interface {
	// Reads the owner's log, oldest first
	Load(ctx context.Context, owner string) ([]entity.Entry, error)
	// Inserts a fresh entry for the date, replacing any existing one
	UpsertForDate(ctx context.Context, owner, date string, steps int) (*entity.Entry, error)
	// Replaces only the steps of the entry with the given id
	EditSteps(ctx context.Context, owner, id string, steps int) error
	// Deletes one entry
	Remove(ctx context.Context, owner, id string, confirmed bool) error
	// Deletes all entries and the owner's persisted record
	Clear(ctx context.Context, owner string, confirmed bool) error
}

type AdminServiceI interface {
	// Loads every user's log and tags entries with their owner
	AggregateAll(ctx context.Context) ([]entity.Entry, error)
	// Stats over the aggregate of all users
	OverviewStats(ctx context.Context) (entity.Stats, error)
}
