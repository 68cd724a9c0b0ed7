package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/moodjournal/internal/dbx"
	"github.com/dmitrijs2005/moodjournal/internal/server/repositories/entries"
	"github.com/dmitrijs2005/moodjournal/internal/server/repositories/students"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Entries(db dbx.DBTX) entries.Repository
	Students(db dbx.DBTX) students.Repository
}
