// Command predictcli runs one ad-hoc email-address prediction against a
// configured metadata/model set, for local experimentation against a
// trainer's exported artifacts without wiring up a full service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"emailguess"
	"emailguess/internal/predictor"
)

func main() {
	_ = godotenv.Load()

	var (
		investorName = flag.String("name", "", "investor full name (required)")
		firmName     = flag.String("firm", "", "firm name (required)")
		domain       = flag.String("domain", "", "explicit domain override, skips firm resolution")
		topK         = flag.Int("top", 5, "number of ranked candidates to return")
		backend      = flag.String("backend", envOr("PREDICTCLI_BACKEND", "lightgbm"), "predictor backend: lightgbm or catboost")
		modelPath    = flag.String("model", os.Getenv("PREDICTCLI_MODEL_PATH"), "path to the model file")
		standardPath = flag.String("standard-templates", os.Getenv("PREDICTCLI_STANDARD_TEMPLATES"), "path to the standard candidate-template blob")
		complexPath  = flag.String("complex-templates", os.Getenv("PREDICTCLI_COMPLEX_TEMPLATES"), "path to the complex candidate-template blob")
		firmMapPath  = flag.String("firm-template-map", os.Getenv("PREDICTCLI_FIRM_TEMPLATE_MAP"), "path to the firm->template usage blob")
		canonical    = flag.String("canonical-firms", os.Getenv("PREDICTCLI_CANONICAL_FIRMS"), "path to the canonical firm->domain blob")
		matchCache   = flag.String("firm-match-cache", os.Getenv("PREDICTCLI_FIRM_MATCH_CACHE"), "path to the optional firm fuzzy-match cache blob")
	)
	flag.Parse()

	if *investorName == "" || *firmName == "" {
		fmt.Fprintln(os.Stderr, "usage: predictcli -name \"Jane Doe\" -firm \"Acme Capital\" [-domain acme.com] [-top 5]")
		os.Exit(1)
	}

	cfg := emailguess.Config{
		StandardTemplatesPath: *standardPath,
		ComplexTemplatesPath:  *complexPath,
		FirmTemplateMapPath:   *firmMapPath,
		CanonicalFirmsPath:    *canonical,
		FirmMatchCachePath:    *matchCache,
		PredictorBackend:      predictor.Kind(*backend),
		ModelPath:             *modelPath,
		DefaultTopK:           *topK,
	}

	eng, err := emailguess.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to construct prediction engine")
	}

	results, err := eng.Predict(context.Background(), *investorName, *firmName, *topK, *domain)
	if err != nil {
		logrus.WithError(err).Fatal("prediction failed")
	}

	for i, r := range results {
		fmt.Printf("%d. %s (score=%.4f, template=%d)\n", i+1, r.Email, r.Score, r.TemplateID)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
