package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/google/uuid"
)

const epersonColumns = "e.uuid, d.handle, e.email, e.netid, e.firstname, e.lastname, e.password, e.salt, e.can_log_in, e.self_registered, e.last_active"

func scanEPerson(r rowScanner) (domain.EPerson, error) {
	e := domain.EPerson{}
	var handle, lastActive sql.NullString

	err := r.Scan(&e.ID, &handle, &e.Email, &e.NetID, &e.FirstName, &e.LastName, &e.PasswordHash, &e.Salt, &e.CanLogIn, &e.SelfRegistered, &lastActive)
	e.Handle = handle.String
	if lastActive.Valid {
		t := parseTime(lastActive.String)
		e.LastActive = &t
	}

	return e, err
}

func epersonDSO(e *domain.EPerson) *domain.DSO { return &e.DSO }

func nullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func (db *myDB) CreateEPerson(ctx context.Context, e *domain.EPerson) error {
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))

	return db.inTx(ctx, func(tx *sql.Tx) error {
		if err := insertDSO(ctx, tx, &e.DSO, domain.TypeEPerson); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO eperson (uuid, email, netid, firstname, lastname, password, salt, can_log_in, self_registered, last_active)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Email, e.NetID, e.FirstName, e.LastName, e.PasswordHash, e.Salt, e.CanLogIn, e.SelfRegistered, nullableTime(e.LastActive))
		return err
	})
}

func (db *myDB) UpdateEPerson(ctx context.Context, e *domain.EPerson) error {
	result, err := db.impl.ExecContext(ctx,
		`UPDATE eperson SET netid = ?, firstname = ?, lastname = ?, password = ?, salt = ?, can_log_in = ?, self_registered = ?, last_active = ?
		 WHERE uuid = ?`,
		e.NetID, e.FirstName, e.LastName, e.PasswordHash, e.Salt, e.CanLogIn, e.SelfRegistered, nullableTime(e.LastActive), e.ID)
	if err != nil {
		return fmt.Errorf("failed to update eperson: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *myDB) GetEPerson(ctx context.Context, id uuid.UUID) (*domain.EPerson, error) {
	e, err := queryOne(ctx, db.impl, scanEPerson,
		"SELECT "+epersonColumns+" FROM eperson e JOIN dso d ON d.uuid = e.uuid WHERE e.uuid = ?", id)
	if err != nil {
		return nil, err
	}
	return e, db.loadMetadata(ctx, &e.DSO)
}

// GetEPersonByEmail matches email case insensitively.
func (db *myDB) GetEPersonByEmail(ctx context.Context, email string) (*domain.EPerson, error) {
	e, err := queryOne(ctx, db.impl, scanEPerson,
		"SELECT "+epersonColumns+" FROM eperson e JOIN dso d ON d.uuid = e.uuid WHERE e.email = ?",
		strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	return e, db.loadMetadata(ctx, &e.DSO)
}

func (db *myDB) ListEPersons(ctx context.Context, limit, offset int) ([]domain.EPerson, error) {
	list, err := queryList(ctx, db.impl, scanEPerson,
		"SELECT "+epersonColumns+" FROM eperson e JOIN dso d ON d.uuid = e.uuid ORDER BY e.email LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list epersons: %w", err)
	}
	return withMetadata(ctx, db, list, epersonDSO)
}

func (db *myDB) CountEPersons(ctx context.Context) (int, error) {
	return db.count(ctx, "SELECT COUNT(*) FROM eperson")
}

func scanGroup(r rowScanner) (domain.Group, error) {
	g := domain.Group{}
	err := r.Scan(&g.ID, &g.Name, &g.Permanent)
	return g, err
}

func (db *myDB) CreateGroup(ctx context.Context, g *domain.Group) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		dso := domain.DSO{ID: g.ID}
		if err := insertDSO(ctx, tx, &dso, domain.TypeGroup); err != nil {
			return err
		}
		g.ID = dso.ID

		_, err := tx.ExecContext(ctx, "INSERT INTO epersongroup (uuid, name, permanent) VALUES (?, ?, ?)", g.ID, g.Name, g.Permanent)
		return err
	})
}

func (db *myDB) GetGroup(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	return queryOne(ctx, db.impl, scanGroup, "SELECT uuid, name, permanent FROM epersongroup WHERE uuid = ?", id)
}

func (db *myDB) GetGroupByName(ctx context.Context, name string) (*domain.Group, error) {
	return queryOne(ctx, db.impl, scanGroup, "SELECT uuid, name, permanent FROM epersongroup WHERE name = ?", name)
}

func (db *myDB) ListGroups(ctx context.Context, limit, offset int) ([]domain.Group, error) {
	list, err := queryList(ctx, db.impl, scanGroup, "SELECT uuid, name, permanent FROM epersongroup ORDER BY name LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return list, nil
}

func (db *myDB) CountGroups(ctx context.Context) (int, error) {
	return db.count(ctx, "SELECT COUNT(*) FROM epersongroup")
}

func (db *myDB) AddGroupMember(ctx context.Context, group, eperson uuid.UUID) error {
	_, err := db.impl.ExecContext(ctx,
		"INSERT OR IGNORE INTO epersongroup2eperson (group_id, eperson_id) VALUES (?, ?)", group, eperson)
	if err != nil {
		return fmt.Errorf("failed to add member to group: %w", err)
	}
	return nil
}

func (db *myDB) IsGroupMember(ctx context.Context, group, eperson uuid.UUID) (bool, error) {
	n, err := db.count(ctx,
		"SELECT COUNT(*) FROM epersongroup2eperson WHERE group_id = ? AND eperson_id = ?", group, eperson)
	return n > 0, err
}
