package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/slotpulse/internal/contract"
	"github.com/huangsam/slotpulse/schema"
)

// currentCacheVersion defines the version of the cached report layout
const currentCacheVersion = 1

// maxCacheAge is how long a cached report stays valid
const maxCacheAge = 7 * 24 * time.Hour

// cachedReport returns the report for cfg, memoized on the filters, the insight rules and
// the dataset version reported by src.
func cachedReport(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) (*schema.Report, error) {
	var results contract.CacheStore
	if mgr != nil {
		results = mgr.GetResultStore()
	}
	if results == nil {
		// Fallback to direct computation
		return computeReport(ctx, cfg, src)
	}

	version, err := src.DatasetVersion(ctx)
	if err != nil {
		// Without a dataset version a cached entry can never be trusted
		contract.LogWarn("Dataset version unavailable, skipping cache", err)
		return computeReport(ctx, cfg, src)
	}
	key := generateCacheKey(cfg, version)

	if result := checkCacheHit(results, key); result != nil {
		return result, nil
	}
	return computeAndStore(ctx, cfg, src, results, key)
}

// checkCacheHit attempts to retrieve and validate a cached report
func checkCacheHit(results contract.CacheStore, key string) *schema.Report {
	data, version, ts, err := results.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	if version == currentCacheVersion && time.Since(time.Unix(ts, 0)) <= maxCacheAge {
		var report schema.Report
		if err := json.Unmarshal(data, &report); err == nil {
			return &report // Cache hit
		}
	}
	return nil // Cache miss (stale or version mismatch)
}

// computeAndStore computes the report and stores it in cache
func computeAndStore(ctx context.Context, cfg *contract.Config, src contract.RecordSource, results contract.CacheStore, key string) (*schema.Report, error) {
	report, err := computeReport(ctx, cfg, src)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(report); err == nil {
		if err := results.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to store report in cache", err)
		}
	}
	return report, nil
}

func computeReport(ctx context.Context, cfg *contract.Config, src contract.RecordSource) (*schema.Report, error) {
	snap, err := LoadSnapshot(ctx, src, cfg.Filter())
	if err != nil {
		return nil, err
	}
	if dropped := snap.Dropped.Total(); dropped > 0 {
		contract.LogWarn("Dropped invalid records", fmt.Errorf(
			"%d total (missing date %d, malformed time %d, duplicate %d)",
			dropped, snap.Dropped.MissingDate, snap.Dropped.MalformedTime, snap.Dropped.Duplicate))
	}
	return BuildReport(snap, cfg.Insight), nil
}

// generateCacheKey creates a content hash of everything a report depends on
func generateCacheKey(cfg *contract.Config, datasetVersion string) string {
	filter, _ := json.Marshal(cfg.Filter())
	rules, _ := json.Marshal(cfg.Insight)
	key := fmt.Sprintf("%d:%s:%s:%s", currentCacheVersion, filter, rules, datasetVersion)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
