package engine

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"emailguess/internal/apperrors"
	"emailguess/internal/domainresolver"
	"emailguess/internal/features"
	"emailguess/internal/investorfeatures"
	"emailguess/internal/localpart"
	"emailguess/internal/metadata"
	"emailguess/internal/namedecomp"
	"emailguess/internal/normalize"
	"emailguess/internal/predictor"
	"emailguess/internal/verify"
)

// EmailPredictionResult is one ranked candidate email, as returned by
// Predict.
type EmailPredictionResult struct {
	Email      string
	Score      float64
	TemplateID int32

	Verification *verify.Result
	Enrichment   *verify.Result
}

// Stats is a point-in-time snapshot of engine counters, for
// observability.
type Stats struct {
	QueriesServed        int64
	FuzzyCacheSize       int64
	FuzzyCacheHits       int64
	FuzzyCacheMisses     int64
	PredictionsDropped   int64
	VerificationFailures int64
	EnrichmentFailures   int64
}

// Engine is the assembled, re-entrant prediction pipeline. Its component
// fields are not reassigned after New; the mutable state is the atomic
// counters below, the domain resolver's internal cache and the store's
// reloadable firm directory.
type Engine struct {
	store     *metadata.Store
	resolver  *domainresolver.Resolver
	pred      predictor.Predictor
	verifier  verify.Hook
	enricher  verify.Hook
	defaultTopK int

	queriesServed        atomic.Int64
	predictionsDropped   atomic.Int64
	verificationFailures atomic.Int64
	enrichmentFailures   atomic.Int64
}

// New assembles an Engine from already-constructed components. Engine
// construction from raw Config (file paths) lives in internal/container,
// which is the wiring layer; New itself performs no I/O.
func New(
	store *metadata.Store,
	resolver *domainresolver.Resolver,
	pred predictor.Predictor,
	verifier verify.Hook,
	enricher verify.Hook,
	defaultTopK int,
) *Engine {
	return &Engine{
		store:       store,
		resolver:    resolver,
		pred:        pred,
		verifier:    verifier,
		enricher:    enricher,
		defaultTopK: defaultTopK,
	}
}

// Predict runs the full pipeline for one (name, firm, domain?) query and
// returns up to topK ranked EmailPredictionResult rows. topK <= 0 uses the
// engine's configured default.
func (e *Engine) Predict(ctx context.Context, investorName, firmName string, topK int, domain string) ([]EmailPredictionResult, error) {
	e.queriesServed.Add(1)

	if topK <= 0 {
		topK = e.defaultTopK
	}

	resolvedDomain, err := e.resolveDomain(firmName, domain)
	if err != nil {
		return nil, err
	}

	name := namedecomp.Decompose(investorName)
	flags := investorfeatures.Extract(investorName)

	class := selectClass(name, flags)
	templates := e.store.Templates(class)

	firmKey := firmKeyOf(firmName)
	matrix := features.Build(firmKey, e.store, name, flags, templates)

	predictions, err := e.pred.PredictTopTemplates(matrix, templates, topK)
	if err != nil {
		return nil, err
	}

	results := e.renderResults(ctx, templates, predictions, name, resolvedDomain)

	logrus.WithFields(logrus.Fields{
		"firm":        firmName,
		"class":       class,
		"candidates":  len(templates),
		"returned":    len(results),
	}).Debug("prediction served")

	e.attachPostHooks(ctx, results)

	return results, nil
}

func (e *Engine) resolveDomain(firmName, explicitDomain string) (string, error) {
	if explicitDomain != "" {
		return explicitDomain, nil
	}
	if e.resolver == nil {
		return "", apperrors.MissingDomain(firmName)
	}
	match := e.resolver.Resolve(firmName)
	if match.Domain == "" {
		return "", apperrors.MissingDomain(firmName)
	}
	return match.Domain, nil
}

// selectClass implements the standard/complex branch of the engine's
// design: complex is chosen iff the name has a middle name, multiple
// first names, multiple last names, a Germanic character, or needed NFKD
// normalisation.
func selectClass(name namedecomp.DecomposedName, flags investorfeatures.Flags) metadata.TemplateClass {
	if name.HasMiddle() || name.HasMultipleFirsts() || name.HasMultipleLasts() ||
		flags.HasGermanChar || flags.HasNFKDNormalized {
		return metadata.Complex
	}
	return metadata.Standard
}

func (e *Engine) renderResults(
	_ context.Context,
	templates []metadata.CandidateTemplate,
	predictions []predictor.TemplatePrediction,
	name namedecomp.DecomposedName,
	domain string,
) []EmailPredictionResult {
	results := make([]EmailPredictionResult, 0, len(predictions))

	for _, p := range predictions {
		tpl := templates[p.Index]
		local, ok := localpart.Render(tpl.Tokens, name)
		if !ok {
			e.predictionsDropped.Add(1)
			continue
		}
		results = append(results, EmailPredictionResult{
			Email:      fmt.Sprintf("%s@%s", local, domain),
			Score:      p.Score,
			TemplateID: tpl.TemplateID,
		})
	}

	return results
}

// attachPostHooks runs the optional verification/enrichment post-ranking
// step described by the engine's design: verification is attempted once
// per surviving email and enrichment once for the single best-scoring
// one. Failures never fail the call; they simply leave the corresponding
// field empty.
func (e *Engine) attachPostHooks(ctx context.Context, results []EmailPredictionResult) {
	if len(results) == 0 {
		return
	}

	if e.verifier != nil {
		for i := range results {
			res, err := e.verifier.Call(ctx, results[i].Email)
			if err != nil {
				e.verificationFailures.Add(1)
				continue
			}
			results[i].Verification = res
		}
	}

	if e.enricher != nil {
		best := bestScoring(results)
		res, err := e.enricher.Call(ctx, results[best].Email)
		if err != nil {
			e.enrichmentFailures.Add(1)
			return
		}
		results[best].Enrichment = res
	}
}

func bestScoring(results []EmailPredictionResult) int {
	bestIdx := 0
	for i, r := range results {
		if r.Score > results[bestIdx].Score {
			bestIdx = i
		}
	}
	return bestIdx
}

// firmKeyOf normalises a raw firm name into the lowercased key used
// throughout the metadata store.
func firmKeyOf(firmName string) string {
	return normalize.ToLower(firmName)
}

// ReloadFirmDirectory refreshes the firm->domain directory from a new
// canonical-firms blob without reloading template metadata or the
// predictor model.
func (e *Engine) ReloadFirmDirectory(path string) error {
	return e.store.ReloadFirmDirectory(path)
}

// Stats returns a point-in-time snapshot of engine counters.
func (e *Engine) Stats() Stats {
	var cacheSize int
	var cacheHits, cacheMisses int64
	if e.resolver != nil {
		cacheSize = e.resolver.CacheSize()
		cacheHits = e.resolver.CacheHits()
		cacheMisses = e.resolver.CacheMisses()
	}
	return Stats{
		QueriesServed:        e.queriesServed.Load(),
		FuzzyCacheSize:       int64(cacheSize),
		FuzzyCacheHits:       cacheHits,
		FuzzyCacheMisses:     cacheMisses,
		PredictionsDropped:   e.predictionsDropped.Load(),
		VerificationFailures: e.verificationFailures.Load(),
		EnrichmentFailures:   e.enrichmentFailures.Load(),
	}
}
