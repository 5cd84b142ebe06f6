package covers

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Report summarises one sync run.
type Report struct {
	RunID string `json:"run_id"`

	// Entries is the number of catalog entries read from the source.
	Entries int `json:"entries"`
	// Excluded counts party-category entries skipped before classification.
	Excluded int `json:"excluded"`
	// Matched counts entries that claimed at least one variant key.
	Matched int `json:"matched"`
	// Unmatched counts entries that claimed nothing.
	Unmatched int `json:"unmatched"`
	// Claimed is the number of variant keys removed from the space.
	Claimed int `json:"claimed"`

	InfoAdded     int `json:"info_added"`
	InfoUpdated   int `json:"info_updated"`
	InfoUnchanged int `json:"info_unchanged"`

	AssetsWritten       int `json:"assets_written"`
	AssetsExisting      int `json:"assets_existing"`
	AssetsMissingSource int `json:"assets_missing_source"`
	AssetsPlanned       int `json:"assets_planned"`

	// Leftover lists variant keys never matched, sorted.
	Leftover []string `json:"leftover"`
	// DroppedLookupKeys lists level-lookup keys too short to carry a variant.
	DroppedLookupKeys []string `json:"dropped_lookup_keys,omitempty"`
	// InfoDiff is the unified diff of the info file (dry runs only).
	InfoDiff string `json:"info_diff,omitempty"`
}

func (r *Report) countInfo(res UpsertResult) {
	switch res {
	case InfoAdded:
		r.InfoAdded++
	case InfoUpdated:
		r.InfoUpdated++
	default:
		r.InfoUnchanged++
	}
}

func (r *Report) countAsset(o AssetOutcome) {
	switch o {
	case AssetWritten:
		r.AssetsWritten++
	case AssetExists:
		r.AssetsExisting++
	case AssetMissingSource:
		r.AssetsMissingSource++
	case AssetPlanned:
		r.AssetsPlanned++
	}
}

// Render writes the summary table followed by every leftover variant, one per line.
func (r *Report) Render(w io.Writer) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Step", "Count"})
	rows := []struct {
		label string
		value int
	}{
		{"Catalog entries", r.Entries},
		{"Excluded (party)", r.Excluded},
		{"Matched", r.Matched},
		{"Unmatched", r.Unmatched},
		{"Variant keys claimed", r.Claimed},
		{"Info added", r.InfoAdded},
		{"Info updated", r.InfoUpdated},
		{"Covers written", r.AssetsWritten},
		{"Covers already present", r.AssetsExisting},
		{"Covers missing at source", r.AssetsMissingSource},
		{"Covers planned (dry run)", r.AssetsPlanned},
		{"Variants left", len(r.Leftover)},
	}
	for _, row := range rows {
		tw.AppendRow(table.Row{row.label, strconv.Itoa(row.value)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	if _, err := fmt.Fprintln(w, tw.Render()); err != nil {
		return err
	}
	if r.InfoDiff != "" {
		if _, err := fmt.Fprint(w, r.InfoDiff); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "Done. Variants left not found in the source:"); err != nil {
		return err
	}
	for _, key := range r.Leftover {
		if _, err := fmt.Fprintln(w, key); err != nil {
			return err
		}
	}
	return nil
}
