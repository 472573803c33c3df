// Package service contains the business logic layer of the application.
//
//	Handler (HTTP)  → parses requests, writes responses
//	Service         → validates, runs the mutation in a transaction, logs
//	Repository      → reads/writes the database
//
// Every mutating method follows the same three steps:
//
//  1. syntactic validation (validation.ValidateXxx), no I/O
//  2. txn.Executor closure: semantic checks and the write, on one transaction
//  3. a structured log line for the business event
//
// Reads validate the id syntactically and then go straight to the pool-bound
// repositories; they need no transaction.
//
// Errors from validation and from repositories are returned unchanged, so the
// handler can map apperror sentinels to status codes.
package service

import (
	"log/slog"

	"github.com/sakif/habitrack/internal/repository"
	"github.com/sakif/habitrack/internal/txn"
)

// base holds what every entity service needs.
type base struct {
	repos  repository.Repositories
	exec   *txn.Executor
	logger *slog.Logger
}
