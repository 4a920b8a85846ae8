package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/stepdiary/internal/error_values"
	"github.com/limbo/stepdiary/internal/store"
	"github.com/limbo/stepdiary/pkg/entity"
)

const directoryKey = "directory"

const directorySchema = 1

// directoryDocument is the single persisted representation of the user
// directory. Accounts are kept as an ordered list so List stays stable
// by insertion order.
type directoryDocument struct {
	Schema   int              `json:"schema"`
	Accounts []entity.Account `json:"accounts"`
}

type DirectoryRepository struct {
	store store.Store
}

func NewDirectoryRepo(s store.Store) *DirectoryRepository {
	return &DirectoryRepository{
		store: s,
	}
}

// load reads the whole directory document. A missing key or a blob that
// fails to decode both yield the empty directory: older incompatible
// schema generations are not migrated, they read back as empty.
func (dr *DirectoryRepository) load(ctx context.Context) (*directoryDocument, error) {
	doc := &directoryDocument{Schema: directorySchema}
	raw, ok, err := dr.store.Get(ctx, directoryKey)
	if err != nil {
		return nil, errors.New("reading directory error: " + err.Error())
	}
	if !ok {
		return doc, nil
	}
	if err := sonic.Unmarshal(raw, doc); err != nil {
		slog.Warn("directory document is corrupt, treating as empty", slog.String("error", err.Error()))
		return &directoryDocument{Schema: directorySchema}, nil
	}
	return doc, nil
}

func (dr *DirectoryRepository) save(ctx context.Context, doc *directoryDocument) error {
	doc.Schema = directorySchema
	raw, err := sonic.Marshal(doc)
	if err != nil {
		return errors.New("encoding directory error: " + err.Error())
	}
	if err := dr.store.Put(ctx, directoryKey, raw); err != nil {
		return errors.New("writing directory error: " + err.Error())
	}
	return nil
}

func (dr *DirectoryRepository) Find(ctx context.Context, username string) (*entity.Account, error) {
	doc, err := dr.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doc.Accounts {
		if doc.Accounts[i].Username == username {
			account := doc.Accounts[i]
			return &account, nil
		}
	}
	return nil, errorvalues.ErrUserNotFound
}

func (dr *DirectoryRepository) Insert(ctx context.Context, account *entity.Account) error {
	if account == nil {
		return errors.New("account is nil")
	}
	doc, err := dr.load(ctx)
	if err != nil {
		return err
	}
	for i := range doc.Accounts {
		if doc.Accounts[i].Username == account.Username {
			return errorvalues.ErrUserExists
		}
	}
	doc.Accounts = append(doc.Accounts, *account)
	return dr.save(ctx, doc)
}

func (dr *DirectoryRepository) Update(ctx context.Context, account *entity.Account) error {
	if account == nil {
		return errors.New("account is nil")
	}
	doc, err := dr.load(ctx)
	if err != nil {
		return err
	}
	for i := range doc.Accounts {
		if doc.Accounts[i].Username == account.Username {
			doc.Accounts[i] = *account
			return dr.save(ctx, doc)
		}
	}
	return errorvalues.ErrUserNotFound
}

func (dr *DirectoryRepository) Delete(ctx context.Context, username string) error {
	doc, err := dr.load(ctx)
	if err != nil {
		return err
	}
	for i := range doc.Accounts {
		if doc.Accounts[i].Username == username {
			doc.Accounts = append(doc.Accounts[:i], doc.Accounts[i+1:]...)
			return dr.save(ctx, doc)
		}
	}
	return errorvalues.ErrUserNotFound
}

func (dr *DirectoryRepository) List(ctx context.Context) ([]entity.Account, error) {
	doc, err := dr.load(ctx)
	if err != nil {
		return nil, err
	}
	accounts := make([]entity.Account, len(doc.Accounts))
	copy(accounts, doc.Accounts)
	return accounts, nil
}
