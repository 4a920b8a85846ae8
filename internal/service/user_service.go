package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/limbo/stepdiary/internal/error_values"
	"github.com/limbo/stepdiary/internal/repository"
	"github.com/limbo/stepdiary/pkg/entity"
	"github.com/limbo/stepdiary/pkg/notifier"
)

// AdminUsername is the bootstrap account. It is verified from the start,
// never undergoes verification and is never deletable.
const AdminUsername = "admin"

const notifyTimeout = 10 * time.Second

type UserService struct {
	dir                 repository.DirectoryRepositoryI
	logs                repository.StepLogRepositoryI
	notifier            notifier.Notifier
	requireVerification bool
	adminCredential     string
}

type UserServiceOptions struct {
	DirectoryRepo repository.DirectoryRepositoryI
	StepLogRepo   repository.StepLogRepositoryI
	Notifier      notifier.Notifier
	// RequireVerification makes Register demand an email and issue a code.
	RequireVerification bool
	// AdminCredential is the bootstrap admin password.
	AdminCredential string
}

func NewUserService(opts *UserServiceOptions) *UserService {
	return &UserService{
		dir:                 opts.DirectoryRepo,
		logs:                opts.StepLogRepo,
		notifier:            opts.Notifier,
		requireVerification: opts.RequireVerification,
		adminCredential:     opts.AdminCredential,
	}
}

func (us *UserService) Init(ctx context.Context) error {
	_, err := us.dir.Find(ctx, AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errorvalues.ErrUserNotFound) {
		return errors.New("repository searching error: " + err.Error())
	}
	err = us.dir.Insert(ctx, &entity.Account{
		Username:   AdminUsername,
		Credential: us.adminCredential,
		State:      entity.StateVerified,
		Role:       entity.RoleAdmin,
	})
	if err != nil {
		// Two callers racing Init can both miss the lookup; the loser's
		// insert failing with ErrUserExists still leaves the bootstrap done.
		if errors.Is(err, errorvalues.ErrUserExists) {
			return nil
		}
		return errors.New("seeding admin account error: " + err.Error())
	}
	return nil
}

func (us *UserService) Register(ctx context.Context, req *RegisterRequest) (*entity.Account, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			joined := errorvalues.ErrInvalidInput
			for _, fieldErr := range validationError {
				joined = errors.Join(joined, fieldErr)
			}
			return nil, joined
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	if us.requireVerification && req.Email == "" {
		return nil, errors.Join(errorvalues.ErrInvalidInput, errors.New("email is required for verification"))
	}
	account := &entity.Account{
		Username:   req.Username,
		Credential: req.Credential,
		Email:      req.Email,
		State:      entity.StateVerified,
		Role:       entity.RoleStandard,
	}
	if us.requireVerification {
		account.State = entity.StatePending
		account.PendingCode = generateCode()
	}
	err = us.dir.Insert(ctx, account)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserExists) {
			return nil, err
		}
		return nil, errors.New("repository creating error: " + err.Error())
	}
	if us.requireVerification {
		// The account is already persisted; delivery failure only warns.
		go us.dispatchCode(account.Email, account.Username, account.PendingCode)
	}
	return account, nil
}

func (us *UserService) dispatchCode(email, username, code string) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := us.notifier.Send(ctx, email, username, code); err != nil {
		slog.Warn("verification code delivery failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
	}
}

func (us *UserService) Verify(ctx context.Context, username, submittedCode string) error {
	account, err := us.dir.Find(ctx, username)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return err
		}
		return errors.New("repository searching error: " + err.Error())
	}
	if account.State != entity.StatePending || account.PendingCode == "" {
		return errorvalues.ErrNoPendingCode
	}
	if strings.TrimSpace(submittedCode) != account.PendingCode {
		return errorvalues.ErrCodeMismatch
	}
	account.State = entity.StateVerified
	account.PendingCode = ""
	if err := us.dir.Update(ctx, account); err != nil {
		return errors.New("repository updating error: " + err.Error())
	}
	return nil
}

// Login fails closed in this order: unknown user, not verified, wrong
// credential. The returned account is held by the caller as the session.
func (us *UserService) Login(ctx context.Context, username, credential string) (*entity.Account, error) {
	account, err := us.dir.Find(ctx, username)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	if account.State != entity.StateVerified {
		return nil, errorvalues.ErrUserNotVerified
	}
	if account.Credential != credential {
		return nil, errorvalues.ErrWrongCredentials
	}
	return account, nil
}

func (us *UserService) ChangePassword(ctx context.Context, username, newCredential string) error {
	if newCredential == "" {
		return errorvalues.ErrInvalidInput
	}
	account, err := us.dir.Find(ctx, username)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return err
		}
		return errors.New("repository searching error: " + err.Error())
	}
	account.Credential = newCredential
	if err := us.dir.Update(ctx, account); err != nil {
		return errors.New("repository updating error: " + err.Error())
	}
	return nil
}

// DeleteUser removes the directory entry and then the user's step log.
// Both halves are idempotent deletes, there is no rollback to span them.
func (us *UserService) DeleteUser(ctx context.Context, username string, confirmed bool) error {
	if !confirmed {
		return errorvalues.ErrNotConfirmed
	}
	if username == AdminUsername {
		return errorvalues.ErrProtectedUser
	}
	err := us.dir.Delete(ctx, username)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return err
		}
		return errors.New("repository deletion error: " + err.Error())
	}
	if err := us.logs.Clear(ctx, username); err != nil {
		return errors.New("cascading step log deletion error: " + err.Error())
	}
	return nil
}

func (us *UserService) ListAll(ctx context.Context) ([]entity.Account, error) {
	accounts, err := us.dir.List(ctx)
	if err != nil {
		return nil, errors.New("repository listing error: " + err.Error())
	}
	return accounts, nil
}

// generateCode returns a six-digit numeric verification code. It is a
// shared secret for an email round-trip, not cryptographic material.
func generateCode() string {
	return fmt.Sprintf("%06d", rand.IntN(1000000))
}
