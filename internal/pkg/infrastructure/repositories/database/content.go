package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/google/uuid"
)

const communityColumns = "c.uuid, d.handle, c.parent_id"

func scanCommunity(r rowScanner) (domain.Community, error) {
	c := domain.Community{}
	var handle sql.NullString
	var parent uuid.NullUUID

	err := r.Scan(&c.ID, &handle, &parent)
	c.Handle = handle.String
	c.ParentID = fromNullUUID(parent)

	return c, err
}

func communityDSO(c *domain.Community) *domain.DSO { return &c.DSO }

func (db *myDB) CreateCommunity(ctx context.Context, c *domain.Community) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		if err := insertDSO(ctx, tx, &c.DSO, domain.TypeCommunity); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "INSERT INTO community (uuid, parent_id) VALUES (?, ?)", c.ID, nullableUUID(c.ParentID))
		return err
	})
}

func (db *myDB) GetCommunity(ctx context.Context, id uuid.UUID) (*domain.Community, error) {
	c, err := queryOne(ctx, db.impl, scanCommunity,
		"SELECT "+communityColumns+" FROM community c JOIN dso d ON d.uuid = c.uuid WHERE c.uuid = ?", id)
	if err != nil {
		return nil, err
	}
	return c, db.loadMetadata(ctx, &c.DSO)
}

func (db *myDB) listCommunities(ctx context.Context, where string, args ...any) ([]domain.Community, error) {
	list, err := queryList(ctx, db.impl, scanCommunity,
		"SELECT "+communityColumns+" FROM community c JOIN dso d ON d.uuid = c.uuid "+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list communities: %w", err)
	}
	return withMetadata(ctx, db, list, communityDSO)
}

func (db *myDB) ListCommunities(ctx context.Context, limit, offset int) ([]domain.Community, error) {
	return db.listCommunities(ctx, "ORDER BY d.rowid LIMIT ? OFFSET ?", limit, offset)
}

func (db *myDB) CountCommunities(ctx context.Context) (int, error) {
	return db.count(ctx, "SELECT COUNT(*) FROM community")
}

func (db *myDB) ListTopCommunities(ctx context.Context, limit, offset int) ([]domain.Community, error) {
	return db.listCommunities(ctx, "WHERE c.parent_id IS NULL ORDER BY d.rowid LIMIT ? OFFSET ?", limit, offset)
}

func (db *myDB) CountTopCommunities(ctx context.Context) (int, error) {
	return db.count(ctx, "SELECT COUNT(*) FROM community WHERE parent_id IS NULL")
}

func (db *myDB) ListSubcommunities(ctx context.Context, parent uuid.UUID, limit, offset int) ([]domain.Community, error) {
	return db.listCommunities(ctx, "WHERE c.parent_id = ? ORDER BY d.rowid LIMIT ? OFFSET ?", parent, limit, offset)
}

func (db *myDB) CountSubcommunities(ctx context.Context, parent uuid.UUID) (int, error) {
	return db.count(ctx, "SELECT COUNT(*) FROM community WHERE parent_id = ?", parent)
}

const collectionColumns = "c.uuid, d.handle, c.community_id, c.submitters_group, c.workflow_group"

func scanCollection(r rowScanner) (domain.Collection, error) {
	c := domain.Collection{}
	var handle sql.NullString
	var submitters, workflow uuid.NullUUID

	err := r.Scan(&c.ID, &handle, &c.CommunityID, &submitters, &workflow)
	c.Handle = handle.String
	c.SubmittersGroupID = fromNullUUID(submitters)
	c.WorkflowGroupID = fromNullUUID(workflow)

	return c, err
}

func collectionDSO(c *domain.Collection) *domain.DSO { return &c.DSO }

func (db *myDB) CreateCollection(ctx context.Context, c *domain.Collection) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		if err := insertDSO(ctx, tx, &c.DSO, domain.TypeCollection); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO collection (uuid, community_id, submitters_group, workflow_group) VALUES (?, ?, ?, ?)",
			c.ID, c.CommunityID, nullableUUID(c.SubmittersGroupID), nullableUUID(c.WorkflowGroupID))
		return err
	})
}

func (db *myDB) UpdateCollection(ctx context.Context, c *domain.Collection) error {
	result, err := db.impl.ExecContext(ctx,
		"UPDATE collection SET submitters_group = ?, workflow_group = ? WHERE uuid = ?",
		nullableUUID(c.SubmittersGroupID), nullableUUID(c.WorkflowGroupID), c.ID)
	if err != nil {
		return fmt.Errorf("failed to update collection: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *myDB) GetCollection(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	c, err := queryOne(ctx, db.impl, scanCollection,
		"SELECT "+collectionColumns+" FROM collection c JOIN dso d ON d.uuid = c.uuid WHERE c.uuid = ?", id)
	if err != nil {
		return nil, err
	}
	return c, db.loadMetadata(ctx, &c.DSO)
}

func (db *myDB) listCollections(ctx context.Context, where string, args ...any) ([]domain.Collection, error) {
	list, err := queryList(ctx, db.impl, scanCollection,
		"SELECT "+collectionColumns+" FROM collection c JOIN dso d ON d.uuid = c.uuid "+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return withMetadata(ctx, db, list, collectionDSO)
}

func (db *myDB) ListCollections(ctx context.Context, limit, offset int) ([]domain.Collection, error) {
	return db.listCollections(ctx, "ORDER BY d.rowid LIMIT ? OFFSET ?", limit, offset)
}

func (db *myDB) CountCollections(ctx context.Context) (int, error) {
	return db.count(ctx, "SELECT COUNT(*) FROM collection")
}

func (db *myDB) ListCollectionsOfCommunity(ctx context.Context, community uuid.UUID, limit, offset int) ([]domain.Collection, error) {
	return db.listCollections(ctx, "WHERE c.community_id = ? ORDER BY d.rowid LIMIT ? OFFSET ?", community, limit, offset)
}

func (db *myDB) CountCollectionsOfCommunity(ctx context.Context, community uuid.UUID) (int, error) {
	return db.count(ctx, "SELECT COUNT(*) FROM collection WHERE community_id = ?", community)
}

const itemColumns = "i.uuid, d.handle, i.owning_collection, i.submitter_id, i.in_archive, i.discoverable, i.withdrawn, i.last_modified, i.entity_type"

func scanItem(r rowScanner) (domain.Item, error) {
	i := domain.Item{}
	var handle sql.NullString
	var submitter uuid.NullUUID
	var lastModified string

	err := r.Scan(&i.ID, &handle, &i.OwningCollectionID, &submitter, &i.InArchive, &i.Discoverable, &i.Withdrawn, &lastModified, &i.EntityType)
	i.Handle = handle.String
	i.SubmitterID = fromNullUUID(submitter)
	i.LastModified = parseTime(lastModified)

	return i, err
}

func itemDSO(i *domain.Item) *domain.DSO { return &i.DSO }

func (db *myDB) CreateItem(ctx context.Context, i *domain.Item) error {
	if i.LastModified.IsZero() {
		i.LastModified = time.Now().UTC()
	}

	return db.inTx(ctx, func(tx *sql.Tx) error {
		if err := insertDSO(ctx, tx, &i.DSO, domain.TypeItem); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO item (uuid, owning_collection, submitter_id, in_archive, discoverable, withdrawn, last_modified, entity_type)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			i.ID, i.OwningCollectionID, nullableUUID(i.SubmitterID), i.InArchive, i.Discoverable, i.Withdrawn, formatTime(i.LastModified), i.EntityType)
		return err
	})
}

// UpdateItem stores the item state and replaces its metadata.
func (db *myDB) UpdateItem(ctx context.Context, i *domain.Item) error {
	i.LastModified = time.Now().UTC()

	return db.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE item SET owning_collection = ?, in_archive = ?, discoverable = ?, withdrawn = ?, last_modified = ?, entity_type = ? WHERE uuid = ?`,
			i.OwningCollectionID, i.InArchive, i.Discoverable, i.Withdrawn, formatTime(i.LastModified), i.EntityType, i.ID)
		if err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return ErrNotFound
		}

		if _, err = tx.ExecContext(ctx, "DELETE FROM metadatavalue WHERE dso_id = ?", i.ID); err != nil {
			return err
		}
		return writeMetadata(ctx, tx, i.ID, i.Metadata)
	})
}

func (db *myDB) GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	i, err := queryOne(ctx, db.impl, scanItem,
		"SELECT "+itemColumns+" FROM item i JOIN dso d ON d.uuid = i.uuid WHERE i.uuid = ?", id)
	if err != nil {
		return nil, err
	}
	return i, db.loadMetadata(ctx, &i.DSO)
}

// ListItems lists archived items only. Submissions in progress are reached
// through their workspace or workflow item.
func (db *myDB) ListItems(ctx context.Context, limit, offset int) ([]domain.Item, error) {
	list, err := queryList(ctx, db.impl, scanItem,
		"SELECT "+itemColumns+" FROM item i JOIN dso d ON d.uuid = i.uuid WHERE i.in_archive = 1 ORDER BY d.rowid LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return withMetadata(ctx, db, list, itemDSO)
}

func (db *myDB) CountItems(ctx context.Context) (int, error) {
	return db.count(ctx, "SELECT COUNT(*) FROM item WHERE in_archive = 1")
}

// DeleteItem removes an item with its bundles, bitstreams, submission records
// and handle. It returns the internal ids of the removed bitstreams so that
// their bytes can be removed from the asset store.
func (db *myDB) DeleteItem(ctx context.Context, id uuid.UUID) ([]string, error) {
	internalIDs := []string{}

	err := db.inTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM item WHERE uuid = ?", id).Scan(&exists)
		if err != nil {
			return err
		}
		if exists == 0 {
			return ErrNotFound
		}

		dsos := []uuid.UUID{}

		rows, err := tx.QueryContext(ctx,
			`SELECT b.uuid, b.internal_id FROM bitstream b JOIN bundle u ON u.uuid = b.bundle_id WHERE u.item_id = ?`, id)
		if err != nil {
			return err
		}
		for rows.Next() {
			var bitstream uuid.UUID
			var internalID string
			if err = rows.Scan(&bitstream, &internalID); err != nil {
				rows.Close()
				return err
			}
			dsos = append(dsos, bitstream)
			if internalID != "" {
				internalIDs = append(internalIDs, internalID)
			}
		}
		rows.Close()

		rows, err = tx.QueryContext(ctx, "SELECT uuid FROM bundle WHERE item_id = ?", id)
		if err != nil {
			return err
		}
		for rows.Next() {
			var bundle uuid.UUID
			if err = rows.Scan(&bundle); err != nil {
				rows.Close()
				return err
			}
			dsos = append(dsos, bundle)
		}
		rows.Close()

		dsos = append(dsos, id)

		statements := []string{
			"DELETE FROM bitstream WHERE bundle_id IN (SELECT uuid FROM bundle WHERE item_id = ?)",
			"DELETE FROM bundle WHERE item_id = ?",
			"DELETE FROM workspaceitem WHERE item_id = ?",
			"DELETE FROM workflowitem WHERE item_id = ?",
			"DELETE FROM item WHERE uuid = ?",
		}
		for _, stmt := range statements {
			if _, err = tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("failed to delete item %s: %w", id, err)
			}
		}

		for _, dso := range dsos {
			for _, stmt := range []string{
				"DELETE FROM metadatavalue WHERE dso_id = ?",
				"DELETE FROM handle_sequence WHERE dso_id = ?",
				"DELETE FROM dso WHERE uuid = ?",
			} {
				if _, err = tx.ExecContext(ctx, stmt, dso); err != nil {
					return fmt.Errorf("failed to delete object %s: %w", dso, err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return internalIDs, nil
}

const bundleColumns = "b.uuid, d.handle, b.item_id"

func scanBundle(r rowScanner) (domain.Bundle, error) {
	b := domain.Bundle{}
	var handle sql.NullString
	err := r.Scan(&b.ID, &handle, &b.ItemID)
	b.Handle = handle.String
	return b, err
}

func bundleDSO(b *domain.Bundle) *domain.DSO { return &b.DSO }

func (db *myDB) CreateBundle(ctx context.Context, b *domain.Bundle) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		if err := insertDSO(ctx, tx, &b.DSO, domain.TypeBundle); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "INSERT INTO bundle (uuid, item_id) VALUES (?, ?)", b.ID, b.ItemID)
		return err
	})
}

func (db *myDB) GetBundle(ctx context.Context, id uuid.UUID) (*domain.Bundle, error) {
	b, err := queryOne(ctx, db.impl, scanBundle,
		"SELECT "+bundleColumns+" FROM bundle b JOIN dso d ON d.uuid = b.uuid WHERE b.uuid = ?", id)
	if err != nil {
		return nil, err
	}
	return b, db.loadMetadata(ctx, &b.DSO)
}

func (db *myDB) listBundles(ctx context.Context, where string, args ...any) ([]domain.Bundle, error) {
	list, err := queryList(ctx, db.impl, scanBundle,
		"SELECT "+bundleColumns+" FROM bundle b JOIN dso d ON d.uuid = b.uuid "+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bundles: %w", err)
	}
	return withMetadata(ctx, db, list, bundleDSO)
}

func (db *myDB) ListBundles(ctx context.Context, limit, offset int) ([]domain.Bundle, error) {
	return db.listBundles(ctx, "ORDER BY d.rowid LIMIT ? OFFSET ?", limit, offset)
}

func (db *myDB) CountBundles(ctx context.Context) (int, error) {
	return db.count(ctx, "SELECT COUNT(*) FROM bundle")
}

func (db *myDB) ListBundlesOfItem(ctx context.Context, item uuid.UUID, limit, offset int) ([]domain.Bundle, error) {
	return db.listBundles(ctx, "WHERE b.item_id = ? ORDER BY d.rowid LIMIT ? OFFSET ?", item, limit, offset)
}

func (db *myDB) CountBundlesOfItem(ctx context.Context, item uuid.UUID) (int, error) {
	return db.count(ctx, "SELECT COUNT(*) FROM bundle WHERE item_id = ?", item)
}

const bitstreamColumns = "b.uuid, d.handle, b.bundle_id, b.size_bytes, b.checksum, b.checksum_algorithm, b.format, b.sequence_id, b.internal_id"

func scanBitstream(r rowScanner) (domain.Bitstream, error) {
	b := domain.Bitstream{}
	var handle sql.NullString
	err := r.Scan(&b.ID, &handle, &b.BundleID, &b.SizeBytes, &b.Checksum, &b.ChecksumAlgorithm, &b.Format, &b.SequenceID, &b.InternalID)
	b.Handle = handle.String
	return b, err
}

func bitstreamDSO(b *domain.Bitstream) *domain.DSO { return &b.DSO }

// CreateBitstream assigns the next sequence id of the owning item unless one is set.
func (db *myDB) CreateBitstream(ctx context.Context, b *domain.Bitstream) error {
	if b.ChecksumAlgorithm == "" {
		b.ChecksumAlgorithm = "MD5"
	}
	if b.Format == "" {
		b.Format = "application/octet-stream"
	}

	return db.inTx(ctx, func(tx *sql.Tx) error {
		if b.SequenceID == 0 {
			err := tx.QueryRowContext(ctx,
				`SELECT COALESCE(MAX(bs.sequence_id), 0) + 1 FROM bitstream bs
				 JOIN bundle bu ON bu.uuid = bs.bundle_id
				 WHERE bu.item_id = (SELECT item_id FROM bundle WHERE uuid = ?)`, b.BundleID).Scan(&b.SequenceID)
			if err != nil {
				return fmt.Errorf("failed to allocate sequence id: %w", err)
			}
		}

		if err := insertDSO(ctx, tx, &b.DSO, domain.TypeBitstream); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO bitstream (uuid, bundle_id, size_bytes, checksum, checksum_algorithm, format, sequence_id, internal_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, b.BundleID, b.SizeBytes, b.Checksum, b.ChecksumAlgorithm, b.Format, b.SequenceID, b.InternalID)
		return err
	})
}

func (db *myDB) GetBitstream(ctx context.Context, id uuid.UUID) (*domain.Bitstream, error) {
	b, err := queryOne(ctx, db.impl, scanBitstream,
		"SELECT "+bitstreamColumns+" FROM bitstream b JOIN dso d ON d.uuid = b.uuid WHERE b.uuid = ?", id)
	if err != nil {
		return nil, err
	}
	return b, db.loadMetadata(ctx, &b.DSO)
}

func (db *myDB) listBitstreams(ctx context.Context, where string, args ...any) ([]domain.Bitstream, error) {
	list, err := queryList(ctx, db.impl, scanBitstream,
		"SELECT "+bitstreamColumns+" FROM bitstream b JOIN dso d ON d.uuid = b.uuid "+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bitstreams: %w", err)
	}
	return withMetadata(ctx, db, list, bitstreamDSO)
}

func (db *myDB) ListBitstreams(ctx context.Context, limit, offset int) ([]domain.Bitstream, error) {
	return db.listBitstreams(ctx, "ORDER BY d.rowid LIMIT ? OFFSET ?", limit, offset)
}

func (db *myDB) CountBitstreams(ctx context.Context) (int, error) {
	return db.count(ctx, "SELECT COUNT(*) FROM bitstream")
}

func (db *myDB) ListBitstreamsOfBundle(ctx context.Context, bundle uuid.UUID, limit, offset int) ([]domain.Bitstream, error) {
	return db.listBitstreams(ctx, "WHERE b.bundle_id = ? ORDER BY b.sequence_id LIMIT ? OFFSET ?", bundle, limit, offset)
}

func (db *myDB) CountBitstreamsOfBundle(ctx context.Context, bundle uuid.UUID) (int, error) {
	return db.count(ctx, "SELECT COUNT(*) FROM bitstream WHERE bundle_id = ?", bundle)
}
