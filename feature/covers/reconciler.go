package covers

import (
	"cover-sync/feature/source"

	"go.uber.org/zap"
)

// TitleFixes maps catalog spellings to the canonical titles used by the lookup files.
var TitleFixes = map[string]string{
	"Bad Apple!! feat.nomico": "Bad Apple!! feat nomico",
}

// NormalizeTitle applies TitleFixes.
func NormalizeTitle(title string) string {
	if fixed, ok := TitleFixes[title]; ok {
		return fixed
	}
	return title
}

// Match is the outcome of reconciling one classified entry.
type Match struct {
	Entry    source.Entry
	Title    string
	Category Category
	// Claimed lists the variant keys this entry removed from the space.
	Claimed []string
}

// Matched reports whether the entry claimed at least one variant.
func (m Match) Matched() bool {
	return len(m.Claimed) > 0
}

// InfoKey returns the info record key for the match.
func (m Match) InfoKey() string {
	return InfoKey(m.Category, m.Title)
}

// Reconciler claims variant keys for catalog entries.
type Reconciler struct {
	variants *VariantSpace
	logger   *zap.Logger
}

// NewReconciler creates a reconciler borrowing variants for the run.
func NewReconciler(variants *VariantSpace, logger *zap.Logger) *Reconciler {
	return &Reconciler{variants: variants, logger: logger}
}

// Reconcile claims the standard and deluxe variant keys the entry has charts for.
// title must already be normalized and category classified.
func (r *Reconciler) Reconcile(entry source.Entry, title string, category Category) Match {
	m := Match{Entry: entry, Title: title, Category: category}

	if entry.HasStandard {
		key := VariantKey(category, title, false)
		if r.variants.claim(key) {
			m.Claimed = append(m.Claimed, key)
		}
	}
	if entry.HasDeluxe {
		key := VariantKey(category, title, true)
		if r.variants.claim(key) {
			m.Claimed = append(m.Claimed, key)
		}
	}

	if !m.Matched() {
		r.logger.Info("Skipping entry not in lookup",
			zap.String("title", title),
			zap.Int("category", int(category)),
		)
	}
	return m
}
