package service

import (
	"context"
	"sync"
	"sync/atomic"

	"devsolutions/internal/modkit/repokit"
	"devsolutions/internal/services/api/contact/domain"
	"devsolutions/internal/services/api/contact/repo"
)

// PGArchive implements domain.Archive over the contact repo.
// The table is created once, on first use, and retried until that succeeds
type PGArchive struct {
	db      repokit.TxRunner
	binder  repokit.Binder[repo.Repo]
	mu      sync.Mutex // serializes schema creation
	ensured atomic.Bool
}

// NewArchive creates a Postgres backed archive
func NewArchive(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *PGArchive {
	if db == nil {
		panic("contact.Archive requires a non nil TxRunner")
	}
	if binder == nil {
		panic("contact.Archive requires a non nil Repo binder")
	}
	return &PGArchive{db: db, binder: binder}
}

// Save implements domain.Archive
func (a *PGArchive) Save(ctx context.Context, rec domain.Record) error {
	if err := a.ensure(ctx); err != nil {
		return err
	}
	return a.db.Tx(ctx, func(q repokit.Queryer) error {
		return repokit.MustBind(a.binder, q).Insert(ctx, rec)
	})
}

// ensure creates the table at most once per archive; concurrent first saves wait
// for the one doing it. Postgres can fail concurrent create table if not exists
func (a *PGArchive) ensure(ctx context.Context) error {
	if a.ensured.Load() {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ensured.Load() {
		return nil
	}
	err := a.db.Tx(ctx, func(q repokit.Queryer) error {
		return repokit.MustBind(a.binder, q).EnsureSchema(ctx)
	})
	if err != nil {
		return err
	}
	a.ensured.Store(true)
	return nil
}
