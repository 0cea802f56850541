// Package repokit binds domain repos to the pool or to a running transaction
package repokit

import "devsolutions/internal/platform/store"

// Queryer is what a repo runs statements against; the pool and a tx both satisfy it
type Queryer = store.RowQuerier

// TxRunner opens a transaction and hands fn a tx bound Queryer
type TxRunner = store.TxRunner

// CommandTag, Rows and Row are re-exported so repos need not import store
type (
	CommandTag = store.CommandTag
	Rows       = store.Rows
	Row        = store.Row
)
