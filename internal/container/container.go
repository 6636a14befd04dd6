// Package container wires an engine.Engine from an engine.Config using
// go.uber.org/dig, the same dependency-injection container the rest of
// the codebase's lineage uses for its application object graph.
package container

import (
	"go.uber.org/dig"

	"emailguess/internal/domainresolver"
	"emailguess/internal/engine"
	"emailguess/internal/metadata"
	"emailguess/internal/predictor"
	"emailguess/internal/verify"
)

// BuildContainer assembles a *dig.Container that can resolve a fully wired
// *engine.Engine for cfg: it loads the metadata store, builds the domain
// resolver over it, constructs the configured predictor backend, and
// attaches the optional verification/enrichment hooks.
func BuildContainer(cfg engine.Config) (*dig.Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := dig.New()

	if err := c.Provide(func() engine.Config { return cfg }); err != nil {
		return nil, err
	}

	if err := c.Provide(provideStore); err != nil {
		return nil, err
	}
	if err := c.Provide(provideResolver); err != nil {
		return nil, err
	}
	if err := c.Provide(providePredictor); err != nil {
		return nil, err
	}
	if err := c.Provide(provideEngine); err != nil {
		return nil, err
	}

	return c, nil
}

func provideStore(cfg engine.Config) (*metadata.Store, error) {
	return metadata.Load(metadata.LoadOptions{
		StandardTemplatesPath: cfg.StandardTemplatesPath,
		ComplexTemplatesPath:  cfg.ComplexTemplatesPath,
		FirmTemplateMapPath:   cfg.FirmTemplateMapPath,
		CanonicalFirmsPath:    cfg.CanonicalFirmsPath,
		FirmMatchCachePath:    cfg.FirmMatchCachePath,
	})
}

func provideResolver(store *metadata.Store) *domainresolver.Resolver {
	return domainresolver.New(store)
}

func providePredictor(cfg engine.Config) (predictor.Predictor, error) {
	return predictor.New(cfg.PredictorBackend, cfg.ModelPath)
}

type engineParams struct {
	dig.In

	Store     *metadata.Store
	Resolver  *domainresolver.Resolver
	Predictor predictor.Predictor
	Config    engine.Config
}

// provideEngine builds the verification/enrichment hooks directly from
// cfg rather than through dig: both hooks share the verify.Hook interface
// type, and dig rejects two unnamed providers of the same type.
func provideEngine(p engineParams) (*engine.Engine, error) {
	var verifier, enricher verify.Hook
	if p.Config.VerificationAPIKey != "" && p.Config.VerificationBaseURL != "" {
		verifier = verify.NewHTTPHook("verification", p.Config.VerificationBaseURL, p.Config.VerificationAPIKey)
	}
	if p.Config.EnrichmentAPIKey != "" && p.Config.EnrichmentBaseURL != "" {
		enricher = verify.NewHTTPHook("enrichment", p.Config.EnrichmentBaseURL, p.Config.EnrichmentAPIKey)
	}

	return engine.New(p.Store, p.Resolver, p.Predictor, verifier, enricher, p.Config.DefaultTopK), nil
}
