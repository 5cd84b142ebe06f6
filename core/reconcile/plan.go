package reconcile

import (
	"context"
	"fmt"
	"sort"
)

// Uploader executes upload actions for a plan.
type Uploader interface {
	Upload(ctx context.Context, key string) error
}

// BuildPlan compares the local and storage key sets and plans uploads for
// every key that exists only locally. Storage-only keys are counted but no
// action is planned for them.
func BuildPlan(local, storage KeySet) *ReconcilePlan {
	union := buildUnion(local, storage)

	results := make([]ReconcileResult, 0, len(union))
	for key := range union {
		results = append(results, buildResult(key, local, storage))
	}

	// Sort results by key for deterministic output
	sort.Slice(results, func(i, j int) bool {
		return results[i].Key < results[j].Key
	})

	summary, actions := buildPlanFromResults(results)
	return &ReconcilePlan{
		Results: results,
		Actions: actions,
		Summary: summary,
	}
}

// ApplyPlan executes the actions in a plan one at a time.
// Returns the number of actions executed and the first error encountered.
func ApplyPlan(ctx context.Context, plan *ReconcilePlan, uploader Uploader, opts ReconcileOptions) (executed int, err error) {
	if opts.DryRun {
		return 0, nil
	}

	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return executed, err
		}
		switch action.Type {
		case ActionUpload:
			if err := uploader.Upload(ctx, action.Key); err != nil {
				return executed, fmt.Errorf("failed to upload %s: %w", action.Key, err)
			}
			executed++
		default:
			return executed, fmt.Errorf("unknown action type %q for %s", action.Type, action.Key)
		}
	}
	return executed, nil
}

// buildUnion creates a union of all keys from both sides.
func buildUnion(local, storage KeySet) KeySet {
	union := make(KeySet, len(local)+len(storage))
	for key := range local {
		union.Add(key)
	}
	for key := range storage {
		union.Add(key)
	}
	return union
}

// buildResult creates a ReconcileResult for a single key.
func buildResult(key string, local, storage KeySet) ReconcileResult {
	return ReconcileResult{
		Key:            key,
		LocalPresent:   local.Contains(key),
		StoragePresent: storage.Contains(key),
	}
}

// buildPlanFromResults generates a summary and action plan from reconciliation results.
func buildPlanFromResults(results []ReconcileResult) (PlanSummary, []Action) {
	var summary PlanSummary
	var actions []Action

	summary.TotalItems = len(results)

	for _, result := range results {
		if !result.LocalPresent && result.StoragePresent {
			summary.MissingLocal++
			continue
		}
		if result.LocalPresent && !result.StoragePresent {
			summary.MissingStorage++
			actions = append(actions, Action{
				Type:   ActionUpload,
				Key:    result.Key,
				Reason: "missing in: [storage]",
			})
			summary.UploadActions++
		}
	}

	return summary, actions
}
