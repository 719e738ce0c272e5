package db

import (
	"context"
	"fmt"

	"github.com/campushub/campushub-BE/internal/notification"
)

// The directory queries resolve scope IDs to member user IDs. Each one
// verifies the scope row exists before collecting members, so an empty scope
// and an unknown scope stay distinguishable.

func (store *SQLStore) CollegeMemberIDs(ctx context.Context, collegeID string) ([]string, error) {
	return store.scopeMemberIDs(ctx, "colleges", "college_id", collegeID)
}

func (store *SQLStore) BranchMemberIDs(ctx context.Context, branchID string) ([]string, error) {
	return store.scopeMemberIDs(ctx, "branches", "branch_id", branchID)
}

func (store *SQLStore) BatchMemberIDs(ctx context.Context, batchID string) ([]string, error) {
	return store.scopeMemberIDs(ctx, "batches", "batch_id", batchID)
}

func (store *SQLStore) scopeMemberIDs(ctx context.Context, scopeTable, userColumn, scopeID string) ([]string, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, scopeTable)
	if err := store.connPool.QueryRow(ctx, query, scopeID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to look up %s: %w", scopeTable, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s %q: %w", userColumn, scopeID, notification.ErrScopeNotFound)
	}

	query = fmt.Sprintf(`SELECT id FROM users WHERE %s = $1`, userColumn)
	rows, err := store.connPool.Query(ctx, query, scopeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of %s %q: %w", userColumn, scopeID, err)
	}
	defer rows.Close()

	var memberIDs []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		memberIDs = append(memberIDs, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read member rows: %w", err)
	}

	return memberIDs, nil
}
