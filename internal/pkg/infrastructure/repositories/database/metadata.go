package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/google/uuid"
)

func writeMetadata(ctx context.Context, tx execer, id uuid.UUID, md domain.Metadata) error {
	for _, field := range md.Fields() {
		if _, err := domain.ParseMetadataField(field); err != nil {
			return err
		}

		for place, v := range md[field] {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO metadatavalue (dso_id, field, value, language, authority, confidence, place) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				id, field, v.Value, v.Language, v.Authority, v.Confidence, place,
			)
			if err != nil {
				return fmt.Errorf("failed to insert metadata %s: %w", field, err)
			}
		}
	}

	return nil
}

type metadataRow struct {
	field string
	value domain.MetadataValue
}

func (db *myDB) loadMetadata(ctx context.Context, dso *domain.DSO) error {
	values, err := queryList(ctx, db.impl, func(r rowScanner) (metadataRow, error) {
		row := metadataRow{}
		err := r.Scan(&row.field, &row.value.Value, &row.value.Language, &row.value.Authority, &row.value.Confidence, &row.value.Place)
		return row, err
	}, `SELECT field, value, language, authority, confidence, place FROM metadatavalue WHERE dso_id = ? ORDER BY field, place`, dso.ID)

	if err != nil {
		return fmt.Errorf("failed to load metadata of %s: %w", dso.ID, err)
	}

	dso.Metadata = domain.Metadata{}
	for _, v := range values {
		dso.Metadata[v.field] = append(dso.Metadata[v.field], v.value)
	}

	return nil
}

// withMetadata loads the metadata of every object in list.
func withMetadata[T any](ctx context.Context, db *myDB, list []T, dsoOf func(*T) *domain.DSO) ([]T, error) {
	for i := range list {
		if err := db.loadMetadata(ctx, dsoOf(&list[i])); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (db *myDB) UpdateMetadata(ctx context.Context, id uuid.UUID, md domain.Metadata) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM metadatavalue WHERE dso_id = ?", id); err != nil {
			return fmt.Errorf("failed to clear metadata: %w", err)
		}
		return writeMetadata(ctx, tx, id, md)
	})
}

func (db *myDB) MintHandle(ctx context.Context, prefix string, id uuid.UUID) (string, error) {
	var handle string

	err := db.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "INSERT INTO handle_sequence (dso_id) VALUES (?)", id)
		if err != nil {
			return fmt.Errorf("failed to allocate handle: %w", err)
		}

		n, err := result.LastInsertId()
		if err != nil {
			return err
		}

		handle = prefix + "/" + strconv.FormatInt(n, 10)

		result, err = tx.ExecContext(ctx, "UPDATE dso SET handle = ? WHERE uuid = ?", handle, id)
		if err != nil {
			return fmt.Errorf("failed to assign handle: %w", err)
		}

		if affected, _ := result.RowsAffected(); affected == 0 {
			return ErrNotFound
		}

		return nil
	})

	if err != nil {
		return "", err
	}

	return handle, nil
}

func (db *myDB) ResolveHandle(ctx context.Context, handle string) (uuid.UUID, domain.ObjectType, error) {
	var id uuid.UUID
	var t string

	handle = strings.TrimPrefix(strings.TrimSpace(handle), "hdl:")

	err := db.impl.QueryRowContext(ctx, "SELECT uuid, type FROM dso WHERE handle = ?", handle).Scan(&id, &t)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, "", ErrNotFound
	}
	if err != nil {
		return uuid.Nil, "", err
	}

	return id, domain.ObjectType(t), nil
}
