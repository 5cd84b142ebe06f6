package reconcile

import "sort"

// KeySet is an unordered set of string keys.
type KeySet map[string]struct{}

// NewKeySet returns a set holding keys.
func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Add inserts key.
func (s KeySet) Add(key string) {
	s[key] = struct{}{}
}

// Contains reports whether key is in the set.
func (s KeySet) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

// Remove deletes key and reports whether it was present.
func (s KeySet) Remove(key string) bool {
	if _, ok := s[key]; !ok {
		return false
	}
	delete(s, key)
	return true
}

// Len returns the number of keys.
func (s KeySet) Len() int {
	return len(s)
}

// Sorted returns the keys in ascending order.
func (s KeySet) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ReconcileResult represents the reconciliation output for a single key.
type ReconcileResult struct {
	// Key is the object name relative to the compared roots (e.g. "1a2b3c4d.png").
	Key string `json:"key"`

	// LocalPresent indicates whether the key exists on the local side.
	LocalPresent bool `json:"local_present"`

	// StoragePresent indicates whether the key exists in object storage.
	StoragePresent bool `json:"storage_present"`
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionUpload copies a local-only key to storage.
	ActionUpload ActionType = "upload"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the entity identifier.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// ReconcilePlan contains reconciliation results and planned actions.
type ReconcilePlan struct {
	// Results contains per-key reconciliation data, sorted by key.
	Results []ReconcileResult `json:"results"`

	// Actions contains planned mutation operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// TotalItems is the total number of unique keys.
	TotalItems int `json:"total_items"`

	// MissingStorage counts keys present locally but not in storage.
	MissingStorage int `json:"missing_storage"`

	// MissingLocal counts keys present only in storage. They are reported, never deleted.
	MissingLocal int `json:"missing_local"`

	// UploadActions counts planned uploads.
	UploadActions int `json:"upload_actions"`
}

// ReconcileOptions controls apply behavior.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool
}
