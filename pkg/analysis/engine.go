package analysis

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/deepscan"
	"github.com/papercomputeco/duet/pkg/engineerr"
	"github.com/papercomputeco/duet/pkg/metrics/bidresponse"
	"github.com/papercomputeco/duet/pkg/metrics/chronotype"
	"github.com/papercomputeco/duet/pkg/metrics/conflict"
	"github.com/papercomputeco/duet/pkg/metrics/engagement"
	"github.com/papercomputeco/duet/pkg/metrics/heatmap"
	"github.com/papercomputeco/duet/pkg/metrics/integrativecomplexity"
	"github.com/papercomputeco/duet/pkg/metrics/intimacy"
	"github.com/papercomputeco/duet/pkg/metrics/lsm"
	"github.com/papercomputeco/duet/pkg/metrics/narcissism"
	"github.com/papercomputeco/duet/pkg/metrics/pursuit"
	"github.com/papercomputeco/duet/pkg/metrics/ranking"
	"github.com/papercomputeco/duet/pkg/metrics/reciprocity"
	"github.com/papercomputeco/duet/pkg/metrics/repair"
	"github.com/papercomputeco/duet/pkg/metrics/temporalfocus"
	"github.com/papercomputeco/duet/pkg/metrics/timing"
	"github.com/papercomputeco/duet/pkg/metrics/volume"
	"github.com/papercomputeco/duet/pkg/sampler"
)

// maxConcurrency bounds how many metric modules run at once, mirroring the
// teacher's facet worker.
const maxConcurrency = 4

// Run computes every metric module against conv and returns the combined
// result. Volume runs first and synchronously, since engagement and ranking
// both depend on its per-person maps; every other module then runs
// concurrently over a bounded worker pool. logger receives a warning for
// every module that declines to produce a result, never an error — only an
// empty or nil corpus fails the whole run.
func Run(ctx context.Context, conv *chatmodel.ParsedConversation, logger *slog.Logger) (*QuantitativeAnalysis, error) {
	if conv == nil || len(conv.Messages) == 0 {
		return nil, engineerr.ErrEmptyCorpus
	}
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.New().String()
	logger = logger.With("run_id", runID)

	result := &QuantitativeAnalysis{Metadata: conv.Metadata, RunID: runID}

	vol := volume.Compute(conv)
	result.Volume = vol

	volumePerPerson := map[string]int{}
	reactionsGiven := map[string]int{}
	reactionsReceived := map[string]int{}
	vol.PerPerson.Range(func(name string, p volume.Person) bool {
		volumePerPerson[name] = p.MessageCount
		reactionsGiven[name] = p.ReactionsGiven
		reactionsReceived[name] = p.ReactionsReceived
		return true
	})

	jobs := []func(){
		func() { result.Timing = timing.Compute(conv) },
		func() { result.Engagement = engagement.Compute(conv, volumePerPerson, reactionsGiven, reactionsReceived) },
		func() { result.Heatmap = heatmap.Compute(conv) },
		func() { result.Reciprocity = reciprocity.Compute(conv) },
		func() {
			if r, ok := lsm.Compute(conv); ok {
				result.LSM = &r
			} else {
				logger.Warn("lsm: insufficient data")
			}
		},
		func() {
			if r, ok := narcissism.Compute(conv); ok {
				result.Narcissism = &r
			} else {
				logger.Warn("narcissism: insufficient data")
			}
		},
		func() {
			if r, ok := bidresponse.Compute(conv); ok {
				result.BidResponse = &r
			} else {
				logger.Warn("bidresponse: insufficient data")
			}
		},
		func() {
			if r, ok := pursuit.Compute(conv); ok {
				result.Pursuit = &r
			} else {
				logger.Warn("pursuit: insufficient data")
			}
		},
		func() {
			if r, ok := conflict.Compute(conv); ok {
				result.Conflict = &r
			} else {
				logger.Warn("conflict: insufficient data")
			}
		},
		func() {
			if r, ok := repair.Compute(conv); ok {
				result.Repair = &r
			} else {
				logger.Warn("repair: insufficient data")
			}
		},
		func() {
			if r, ok := integrativecomplexity.Compute(conv); ok {
				result.IntegrativeComplexity = &r
			} else {
				logger.Warn("integrativecomplexity: insufficient data")
			}
		},
		func() {
			if r, ok := temporalfocus.Compute(conv); ok {
				result.TemporalFocus = &r
			} else {
				logger.Warn("temporalfocus: insufficient data")
			}
		},
		func() {
			if r, ok := chronotype.Compute(conv); ok {
				result.Chronotype = &r
			} else {
				logger.Warn("chronotype: insufficient data")
			}
		},
		func() {
			if r, ok := intimacy.Compute(conv); ok {
				result.Intimacy = &r
			} else {
				logger.Warn("intimacy: insufficient data")
			}
		},
		func() {
			if r, ok := deepscan.Compute(conv); ok {
				result.DeepScan = &r
			} else {
				logger.Warn("deepscan: insufficient data")
			}
		},
		func() {
			if r, ok := sampler.Compute(conv); ok {
				result.Sampler = &r
			} else {
				logger.Warn("sampler: insufficient data")
			}
		},
	}

	sem := make(chan struct{}, maxConcurrency)
	var wg sync.WaitGroup
	for _, job := range jobs {
		job := job
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if ctx.Err() != nil {
				return
			}
			job()
		}()
	}
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	result.Ranking = ranking.Compute(
		result.Volume.TotalMessages,
		fastestMedianSeconds(result.Timing),
		float64(result.Timing.Longest.Millis)/3600000.0,
		100-result.Reciprocity.Overall,
	)

	return result, nil
}

// fastestMedianSeconds is the quickest median response time among all
// participants, in seconds, used as the ranking module's response-speed
// input.
func fastestMedianSeconds(t timing.Result) float64 {
	best := math.Inf(1)
	t.PerPerson.Range(func(_ string, p timing.Person) bool {
		if p.SampleCount > 0 && p.Median > 0 && p.Median < best {
			best = p.Median
		}
		return true
	})
	if math.IsInf(best, 1) {
		return 0
	}
	return best / 1000.0
}
