package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

//Datastore is an interface that is used to inject the database into different services to improve testability
type Datastore interface {
	CreateCommunity(ctx context.Context, c *domain.Community) error
	GetCommunity(ctx context.Context, id uuid.UUID) (*domain.Community, error)
	ListCommunities(ctx context.Context, limit, offset int) ([]domain.Community, error)
	CountCommunities(ctx context.Context) (int, error)
	ListTopCommunities(ctx context.Context, limit, offset int) ([]domain.Community, error)
	CountTopCommunities(ctx context.Context) (int, error)
	ListSubcommunities(ctx context.Context, parent uuid.UUID, limit, offset int) ([]domain.Community, error)
	CountSubcommunities(ctx context.Context, parent uuid.UUID) (int, error)

	CreateCollection(ctx context.Context, c *domain.Collection) error
	UpdateCollection(ctx context.Context, c *domain.Collection) error
	GetCollection(ctx context.Context, id uuid.UUID) (*domain.Collection, error)
	ListCollections(ctx context.Context, limit, offset int) ([]domain.Collection, error)
	CountCollections(ctx context.Context) (int, error)
	ListCollectionsOfCommunity(ctx context.Context, community uuid.UUID, limit, offset int) ([]domain.Collection, error)
	CountCollectionsOfCommunity(ctx context.Context, community uuid.UUID) (int, error)

	CreateItem(ctx context.Context, i *domain.Item) error
	UpdateItem(ctx context.Context, i *domain.Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	ListItems(ctx context.Context, limit, offset int) ([]domain.Item, error)
	CountItems(ctx context.Context) (int, error)
	DeleteItem(ctx context.Context, id uuid.UUID) ([]string, error)

	CreateBundle(ctx context.Context, b *domain.Bundle) error
	GetBundle(ctx context.Context, id uuid.UUID) (*domain.Bundle, error)
	ListBundles(ctx context.Context, limit, offset int) ([]domain.Bundle, error)
	CountBundles(ctx context.Context) (int, error)
	ListBundlesOfItem(ctx context.Context, item uuid.UUID, limit, offset int) ([]domain.Bundle, error)
	CountBundlesOfItem(ctx context.Context, item uuid.UUID) (int, error)

	CreateBitstream(ctx context.Context, b *domain.Bitstream) error
	GetBitstream(ctx context.Context, id uuid.UUID) (*domain.Bitstream, error)
	ListBitstreams(ctx context.Context, limit, offset int) ([]domain.Bitstream, error)
	CountBitstreams(ctx context.Context) (int, error)
	ListBitstreamsOfBundle(ctx context.Context, bundle uuid.UUID, limit, offset int) ([]domain.Bitstream, error)
	CountBitstreamsOfBundle(ctx context.Context, bundle uuid.UUID) (int, error)

	CreateEPerson(ctx context.Context, e *domain.EPerson) error
	UpdateEPerson(ctx context.Context, e *domain.EPerson) error
	GetEPerson(ctx context.Context, id uuid.UUID) (*domain.EPerson, error)
	GetEPersonByEmail(ctx context.Context, email string) (*domain.EPerson, error)
	ListEPersons(ctx context.Context, limit, offset int) ([]domain.EPerson, error)
	CountEPersons(ctx context.Context) (int, error)

	CreateGroup(ctx context.Context, g *domain.Group) error
	GetGroup(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	GetGroupByName(ctx context.Context, name string) (*domain.Group, error)
	ListGroups(ctx context.Context, limit, offset int) ([]domain.Group, error)
	CountGroups(ctx context.Context) (int, error)
	AddGroupMember(ctx context.Context, group, eperson uuid.UUID) error
	IsGroupMember(ctx context.Context, group, eperson uuid.UUID) (bool, error)

	CreateWorkspaceItem(ctx context.Context, w *domain.WorkspaceItem) error
	GetWorkspaceItem(ctx context.Context, id int) (*domain.WorkspaceItem, error)
	ListWorkspaceItems(ctx context.Context, limit, offset int) ([]domain.WorkspaceItem, error)
	CountWorkspaceItems(ctx context.Context) (int, error)
	ListWorkspaceItemsBySubmitter(ctx context.Context, submitter uuid.UUID, limit, offset int) ([]domain.WorkspaceItem, error)
	CountWorkspaceItemsBySubmitter(ctx context.Context, submitter uuid.UUID) (int, error)
	DeleteWorkspaceItem(ctx context.Context, id int) error

	CreateWorkflowItem(ctx context.Context, w *domain.WorkflowItem) error
	GetWorkflowItem(ctx context.Context, id int) (*domain.WorkflowItem, error)
	ListWorkflowItems(ctx context.Context, limit, offset int) ([]domain.WorkflowItem, error)
	CountWorkflowItems(ctx context.Context) (int, error)
	ListWorkflowItemsBySubmitter(ctx context.Context, submitter uuid.UUID, limit, offset int) ([]domain.WorkflowItem, error)
	CountWorkflowItemsBySubmitter(ctx context.Context, submitter uuid.UUID) (int, error)

	// MintHandle assigns the next free handle under prefix to the object.
	MintHandle(ctx context.Context, prefix string, id uuid.UUID) (string, error)
	// ResolveHandle returns the object a handle refers to.
	ResolveHandle(ctx context.Context, handle string) (uuid.UUID, domain.ObjectType, error)
	UpdateMetadata(ctx context.Context, id uuid.UUID, md domain.Metadata) error

	Close() error
}

type myDB struct {
	impl *sql.DB
}

//ConnectorFunc is used to inject a database connection method into NewDatabaseConnection
type ConnectorFunc func() (*sql.DB, error)

//NewSQLiteConnector opens a connection to a sqlite database. An empty path gives a private in-memory database.
func NewSQLiteConnector(path string) ConnectorFunc {
	return func() (*sql.DB, error) {
		dsn := path
		if dsn == "" {
			dsn = ":memory:"
		}

		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}

		// every connection to :memory: is a database of its own
		db.SetMaxOpenConns(1)

		if _, err = db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}

		return db, nil
	}
}

//NewDatabaseConnection initializes a new connection to the database and wraps it in a Datastore
func NewDatabaseConnection(ctx context.Context, connect ConnectorFunc) (Datastore, error) {
	impl, err := connect()
	if err != nil {
		return nil, err
	}

	db := &myDB{impl: impl}

	if err := db.initSchema(ctx); err != nil {
		impl.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log := logging.GetFromContext(ctx)
	log.Debug().Msg("database schema initialized")

	return db, nil
}

func (db *myDB) Close() error {
	return db.impl.Close()
}

func (db *myDB) initSchema(ctx context.Context) error {
	_, err := db.impl.ExecContext(ctx, schema)
	return err
}

const schema string = `
CREATE TABLE IF NOT EXISTS dso (
	uuid TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	handle TEXT UNIQUE
);

CREATE TABLE IF NOT EXISTS handle_sequence (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	dso_id TEXT NOT NULL REFERENCES dso(uuid)
);

CREATE TABLE IF NOT EXISTS metadatavalue (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	dso_id TEXT NOT NULL REFERENCES dso(uuid) ON DELETE CASCADE,
	field TEXT NOT NULL,
	value TEXT NOT NULL,
	language TEXT NOT NULL DEFAULT '',
	authority TEXT NOT NULL DEFAULT '',
	confidence INTEGER NOT NULL DEFAULT -1,
	place INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_metadatavalue_dso ON metadatavalue(dso_id);

CREATE TABLE IF NOT EXISTS eperson (
	uuid TEXT PRIMARY KEY REFERENCES dso(uuid),
	email TEXT NOT NULL UNIQUE,
	netid TEXT NOT NULL DEFAULT '',
	firstname TEXT NOT NULL DEFAULT '',
	lastname TEXT NOT NULL DEFAULT '',
	password TEXT NOT NULL DEFAULT '',
	salt TEXT NOT NULL DEFAULT '',
	can_log_in INTEGER NOT NULL DEFAULT 0,
	self_registered INTEGER NOT NULL DEFAULT 0,
	last_active TEXT
);

CREATE TABLE IF NOT EXISTS epersongroup (
	uuid TEXT PRIMARY KEY REFERENCES dso(uuid),
	name TEXT NOT NULL UNIQUE,
	permanent INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS epersongroup2eperson (
	group_id TEXT NOT NULL REFERENCES epersongroup(uuid),
	eperson_id TEXT NOT NULL REFERENCES eperson(uuid),
	PRIMARY KEY (group_id, eperson_id)
);

CREATE TABLE IF NOT EXISTS community (
	uuid TEXT PRIMARY KEY REFERENCES dso(uuid),
	parent_id TEXT REFERENCES community(uuid)
);

CREATE TABLE IF NOT EXISTS collection (
	uuid TEXT PRIMARY KEY REFERENCES dso(uuid),
	community_id TEXT NOT NULL REFERENCES community(uuid),
	submitters_group TEXT REFERENCES epersongroup(uuid),
	workflow_group TEXT REFERENCES epersongroup(uuid)
);

CREATE TABLE IF NOT EXISTS item (
	uuid TEXT PRIMARY KEY REFERENCES dso(uuid),
	owning_collection TEXT NOT NULL REFERENCES collection(uuid),
	submitter_id TEXT REFERENCES eperson(uuid),
	in_archive INTEGER NOT NULL DEFAULT 0,
	discoverable INTEGER NOT NULL DEFAULT 1,
	withdrawn INTEGER NOT NULL DEFAULT 0,
	last_modified TEXT NOT NULL,
	entity_type TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS bundle (
	uuid TEXT PRIMARY KEY REFERENCES dso(uuid),
	item_id TEXT NOT NULL REFERENCES item(uuid)
);

CREATE TABLE IF NOT EXISTS bitstream (
	uuid TEXT PRIMARY KEY REFERENCES dso(uuid),
	bundle_id TEXT NOT NULL REFERENCES bundle(uuid),
	size_bytes INTEGER NOT NULL DEFAULT 0,
	checksum TEXT NOT NULL DEFAULT '',
	checksum_algorithm TEXT NOT NULL DEFAULT 'MD5',
	format TEXT NOT NULL DEFAULT 'application/octet-stream',
	sequence_id INTEGER NOT NULL DEFAULT 0,
	internal_id TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS workspaceitem (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	item_id TEXT NOT NULL UNIQUE REFERENCES item(uuid),
	collection_id TEXT NOT NULL REFERENCES collection(uuid),
	submitter_id TEXT NOT NULL REFERENCES eperson(uuid),
	multiple_titles INTEGER NOT NULL DEFAULT 0,
	published_before INTEGER NOT NULL DEFAULT 0,
	multiple_files INTEGER NOT NULL DEFAULT 0,
	stage_reached INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS workflowitem (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	item_id TEXT NOT NULL UNIQUE REFERENCES item(uuid),
	collection_id TEXT NOT NULL REFERENCES collection(uuid),
	submitter_id TEXT NOT NULL REFERENCES eperson(uuid),
	state INTEGER NOT NULL
);
`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// inTx runs fn in a transaction that is committed if fn succeeds.
func (db *myDB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.impl.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// queryList reads every row before returning, so that the single connection
// of an in-memory database is free for follow up queries.
func queryList[T any](ctx context.Context, db *sql.DB, scan func(rowScanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		t, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}

	return result, rows.Err()
}

func queryOne[T any](ctx context.Context, db *sql.DB, scan func(rowScanner) (T, error), query string, args ...any) (*T, error) {
	t, err := scan(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (db *myDB) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	err := db.impl.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

func insertDSO(ctx context.Context, tx execer, dso *domain.DSO, t domain.ObjectType) error {
	if dso.ID == uuid.Nil {
		dso.ID = uuid.New()
	}

	var handle any
	if dso.Handle != "" {
		handle = dso.Handle
	}

	_, err := tx.ExecContext(ctx, "INSERT INTO dso (uuid, type, handle) VALUES (?, ?, ?)", dso.ID, string(t), handle)
	if err != nil {
		return fmt.Errorf("failed to insert %s: %w", t, err)
	}

	return writeMetadata(ctx, tx, dso.ID, dso.Metadata)
}

func nullableUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func fromNullUUID(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	result := id.UUID
	return &result
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
