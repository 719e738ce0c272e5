package notification

import (
	"context"
	"errors"
	"fmt"
)

// TargetResolver converts a target descriptor into a concrete, deduplicated
// recipient set. It has no side effects.
type TargetResolver struct {
	directory Directory
}

func NewTargetResolver(directory Directory) *TargetResolver {
	return &TargetResolver{directory: directory}
}

// Resolve returns the recipient IDs addressed by target. It fails with
// *ResolutionError when the descriptor references an unknown scope or when
// an explicit user list is empty.
func (r *TargetResolver) Resolve(ctx context.Context, target TargetDescriptor) ([]string, error) {
	var (
		ids []string
		err error
	)

	switch t := target.(type) {
	case TargetWhole:
		ids, err = r.directory.CollegeMemberIDs(ctx, t.CollegeID)
	case TargetBranch:
		ids, err = r.directory.BranchMemberIDs(ctx, t.BranchID)
	case TargetBatch:
		ids, err = r.directory.BatchMemberIDs(ctx, t.BatchID)
	case TargetUsers:
		if len(t.UserIDs) == 0 {
			return nil, &ResolutionError{Scope: t.targetScope(), Err: errors.New("explicit user list is empty")}
		}
		ids = t.UserIDs
	default:
		return nil, &ResolutionError{Scope: fmt.Sprintf("%T", target), Err: errors.New("unsupported target descriptor")}
	}
	if err != nil {
		return nil, &ResolutionError{Scope: target.targetScope(), Err: err}
	}

	return dedupe(ids), nil
}

// dedupe drops repeated IDs while preserving first-seen order, so overlapping
// group memberships never produce two records for one recipient.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
