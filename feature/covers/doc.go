// Package covers implements the sync pipeline that keeps the local cover
// directory and info file consistent with the song catalog.
//
// # Pipeline
//
// For every run the Service:
//  1. Builds the expected variant keys from the reference lookup file
//     (VariantSpace), either from internal level keys or from version lists.
//  2. Loads the info file into an insertion-ordered InfoStore.
//  3. Reads the catalog from the injected source.Provider and classifies every
//     entry. An unknown category code aborts the run before anything is written.
//  4. Walks the entries in source order. The Reconciler claims the standard
//     ("_f") and deluxe ("_t") variant keys an entry has charts for; the first
//     entry to claim a key wins. Unmatched entries are logged and skipped.
//  5. For a matched entry, upserts its artist and kana under
//     "{category}_{title}", rewrites the info file, and lets the Synchronizer
//     fetch the cover into "{AssetID}.png" unless it already exists.
//  6. Reports the variant keys no entry claimed.
//
// # Idempotence
//
// Covers are named by AssetID, the first 8 hex characters of
// SHA-256("{category}_{title}"). An existing target is never fetched again, and
// the info file is rewritten atomically after each matched entry, so an
// interrupted run can simply be started again.
package covers
