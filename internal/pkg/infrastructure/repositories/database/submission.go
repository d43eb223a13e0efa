package database

import (
	"context"
	"fmt"

	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/google/uuid"
)

const workspaceItemColumns = "id, item_id, collection_id, submitter_id, multiple_titles, published_before, multiple_files, stage_reached"

func scanWorkspaceItem(r rowScanner) (domain.WorkspaceItem, error) {
	w := domain.WorkspaceItem{}
	err := r.Scan(&w.ID, &w.ItemID, &w.CollectionID, &w.SubmitterID, &w.MultipleTitles, &w.PublishedBefore, &w.MultipleFiles, &w.StageReached)
	return w, err
}

func (db *myDB) CreateWorkspaceItem(ctx context.Context, w *domain.WorkspaceItem) error {
	result, err := db.impl.ExecContext(ctx,
		`INSERT INTO workspaceitem (item_id, collection_id, submitter_id, multiple_titles, published_before, multiple_files, stage_reached)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.ItemID, w.CollectionID, w.SubmitterID, w.MultipleTitles, w.PublishedBefore, w.MultipleFiles, w.StageReached)
	if err != nil {
		return fmt.Errorf("failed to create workspace item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	w.ID = int(id)

	return nil
}

func (db *myDB) GetWorkspaceItem(ctx context.Context, id int) (*domain.WorkspaceItem, error) {
	return queryOne(ctx, db.impl, scanWorkspaceItem, "SELECT "+workspaceItemColumns+" FROM workspaceitem WHERE id = ?", id)
}

func (db *myDB) ListWorkspaceItems(ctx context.Context, limit, offset int) ([]domain.WorkspaceItem, error) {
	return queryList(ctx, db.impl, scanWorkspaceItem,
		"SELECT "+workspaceItemColumns+" FROM workspaceitem ORDER BY id LIMIT ? OFFSET ?", limit, offset)
}

func (db *myDB) CountWorkspaceItems(ctx context.Context) (int, error) {
	return db.count(ctx, "SELECT COUNT(*) FROM workspaceitem")
}

func (db *myDB) ListWorkspaceItemsBySubmitter(ctx context.Context, submitter uuid.UUID, limit, offset int) ([]domain.WorkspaceItem, error) {
	return queryList(ctx, db.impl, scanWorkspaceItem,
		"SELECT "+workspaceItemColumns+" FROM workspaceitem WHERE submitter_id = ? ORDER BY id LIMIT ? OFFSET ?", submitter, limit, offset)
}

func (db *myDB) CountWorkspaceItemsBySubmitter(ctx context.Context, submitter uuid.UUID) (int, error) {
	return db.count(ctx, "SELECT COUNT(*) FROM workspaceitem WHERE submitter_id = ?", submitter)
}

func (db *myDB) DeleteWorkspaceItem(ctx context.Context, id int) error {
	result, err := db.impl.ExecContext(ctx, "DELETE FROM workspaceitem WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete workspace item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

const workflowItemColumns = "id, item_id, collection_id, submitter_id, state"

func scanWorkflowItem(r rowScanner) (domain.WorkflowItem, error) {
	w := domain.WorkflowItem{}
	err := r.Scan(&w.ID, &w.ItemID, &w.CollectionID, &w.SubmitterID, &w.State)
	return w, err
}

func (db *myDB) CreateWorkflowItem(ctx context.Context, w *domain.WorkflowItem) error {
	if w.State == 0 {
		w.State = domain.WorkflowStepOnePool
	}

	result, err := db.impl.ExecContext(ctx,
		"INSERT INTO workflowitem (item_id, collection_id, submitter_id, state) VALUES (?, ?, ?, ?)",
		w.ItemID, w.CollectionID, w.SubmitterID, int(w.State))
	if err != nil {
		return fmt.Errorf("failed to create workflow item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	w.ID = int(id)

	return nil
}

func (db *myDB) GetWorkflowItem(ctx context.Context, id int) (*domain.WorkflowItem, error) {
	return queryOne(ctx, db.impl, scanWorkflowItem, "SELECT "+workflowItemColumns+" FROM workflowitem WHERE id = ?", id)
}

func (db *myDB) ListWorkflowItems(ctx context.Context, limit, offset int) ([]domain.WorkflowItem, error) {
	return queryList(ctx, db.impl, scanWorkflowItem,
		"SELECT "+workflowItemColumns+" FROM workflowitem ORDER BY id LIMIT ? OFFSET ?", limit, offset)
}

func (db *myDB) CountWorkflowItems(ctx context.Context) (int, error) {
	return db.count(ctx, "SELECT COUNT(*) FROM workflowitem")
}

func (db *myDB) ListWorkflowItemsBySubmitter(ctx context.Context, submitter uuid.UUID, limit, offset int) ([]domain.WorkflowItem, error) {
	return queryList(ctx, db.impl, scanWorkflowItem,
		"SELECT "+workflowItemColumns+" FROM workflowitem WHERE submitter_id = ? ORDER BY id LIMIT ? OFFSET ?", submitter, limit, offset)
}

func (db *myDB) CountWorkflowItemsBySubmitter(ctx context.Context, submitter uuid.UUID) (int, error) {
	return db.count(ctx, "SELECT COUNT(*) FROM workflowitem WHERE submitter_id = ?", submitter)
}
