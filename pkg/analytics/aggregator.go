// Package analytics derives per-asset view summaries from the view log.
//
// Summarize is deliberately the simple baseline: it materializes the asset's
// entire log and aggregates in memory. The aggregator only depends on
// store.ViewLogStore, so a database-side grouped count can replace this
// implementation later without changing the output contract.
package analytics

import (
	"github.com/Amritansu-Adi/klantroef/models"
	"github.com/Amritansu-Adi/klantroef/store"
)

const dayFormat = "2006-01-02"

type Aggregator struct {
	views store.ViewLogStore
}

func NewAggregator(views store.ViewLogStore) *Aggregator {
	return &Aggregator{views: views}
}

// Summarize is a pure function of the stored log set at call time: repeated
// calls with no new views return identical summaries. Days are UTC calendar
// days; days without views carry no key.
func (a *Aggregator) Summarize(mediaID string) (models.AnalyticsSummary, error) {
	entries, err := a.views.ViewsByAsset(mediaID)
	if err != nil {
		return models.AnalyticsSummary{}, err
	}

	summary := models.AnalyticsSummary{
		TotalViews:  int64(len(entries)),
		ViewsPerDay: map[string]int64{},
	}

	uniqueIPs := map[string]struct{}{}
	for _, entry := range entries {
		uniqueIPs[entry.ViewedByIP] = struct{}{}
		day := entry.Timestamp.UTC().Format(dayFormat)
		summary.ViewsPerDay[day]++
	}
	summary.UniqueIPs = len(uniqueIPs)

	return summary, nil
}
