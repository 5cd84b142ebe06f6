// Package reconcile provides the set primitives and the two-sided reconcile
// plan used across the tool.
//
// # KeySet
//
// KeySet is a plain string set. The sync pipeline builds its expected variant
// keys on top of it and consumes keys as catalog entries match; whatever is
// left at the end is the drift report.
//
// # Plans
//
// BuildPlan compares a local key set against a storage key set (for example
// the cover directory against the published bucket prefix), computes the union
// of keys, records presence on each side and plans an upload for every key
// that exists only locally. Keys that exist only in storage are counted as
// MissingLocal and left alone: published assets are never deleted.
//
// ApplyPlan executes the plan through an Uploader, honouring DryRun.
//
// # Usage Example
//
//	plan := reconcile.BuildPlan(localKeys, storageKeys)
//	executed, err := reconcile.ApplyPlan(ctx, plan, uploader, reconcile.ReconcileOptions{})
package reconcile
