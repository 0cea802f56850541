// Package repo provides postgres access for archived contact submissions
package repo

import (
	"context"

	"devsolutions/internal/modkit/repokit"
	perr "devsolutions/internal/platform/errors"
	"devsolutions/internal/platform/store"
	str "devsolutions/internal/platform/strings"
	"devsolutions/internal/services/api/contact/domain"
)

// Repo defines the repository contract for the submission archive
type Repo interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, rec domain.Record) error
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const schemaSQL = `
create table if not exists contact_submissions (
	id               uuid primary key,
	client_id        text not null,
	name             text not null,
	email            text not null,
	company          text,
	website          text,
	traffic_tier     text,
	use_case         text,
	message          text not null,
	attachment_name  text,
	attachment_size  bigint,
	attachment_type  text,
	delivery_channel text not null,
	delivered        boolean not null,
	created_at       timestamptz not null default now()
)`

func (r *queries) EnsureSchema(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, schemaSQL); err != nil {
		return perr.FromPostgres(err, "create contact_submissions")
	}
	return nil
}

func (r *queries) Insert(ctx context.Context, rec domain.Record) error {
	const sql = `
insert into contact_submissions (
	id, client_id, name, email, company, website, traffic_tier, use_case, message,
	attachment_name, attachment_size, attachment_type, delivery_channel, delivered, created_at
) values ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`
	s := rec.Submission
	var attName, attType, attSize any
	if a := rec.Attachment; a != nil {
		attName, attSize, attType = a.Name, a.Size, a.Type
	}
	err := store.ExecOne(ctx, r.q, sql,
		rec.ID,
		rec.ClientID,
		s.Name,
		s.Email,
		str.SQLNullPtr(&s.Company),
		str.SQLNullPtr(&s.Website),
		str.SQLNullPtr(&s.TrafficTier),
		str.SQLNullPtr(&s.UseCase),
		s.Message,
		attName,
		attSize,
		attType,
		rec.DeliveryChannel,
		rec.Delivered,
		rec.CreatedAt,
	)
	if err != nil {
		return perr.FromPostgresf(err, "archive submission %s", rec.ID)
	}
	return nil
}
