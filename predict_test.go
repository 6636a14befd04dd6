package emailguess

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"emailguess/internal/domainresolver"
	"emailguess/internal/engine"
	"emailguess/internal/metadata"
	"emailguess/internal/predictor"
)

type templateBlobEntry struct {
	TemplateID   int32    `msgpack:"template_id"`
	Template     []string `msgpack:"template"`
	SupportCount int32    `msgpack:"support_count"`
	CoveragePct  float32  `msgpack:"coverage_pct"`
}

type canonicalFirmBlobEntry struct {
	Domain string `msgpack:"domain"`
}

func writeBlob(t *testing.T, dir, name string, v any) string {
	t.Helper()
	raw, err := msgpack.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

// stubPredictor always returns the first template, ranked alone, so batch
// tests can assert on which investor/firm produced which email without a
// real model artifact.
type stubPredictor struct{}

func (stubPredictor) PredictTopTemplates(flatMatrix []float32, templates []metadata.CandidateTemplate, topK int) ([]predictor.TemplatePrediction, error) {
	if len(templates) == 0 {
		return nil, nil
	}
	return []predictor.TemplatePrediction{{Index: 0, Score: 1, TemplateID: templates[0].TemplateID}}, nil
}

func (stubPredictor) Close() error { return nil }

func testEngine(t *testing.T) *Engine {
	t.Helper()
	dir := t.TempDir()

	standard := []templateBlobEntry{
		{TemplateID: 1, Template: []string{"first_0", ".", "last_0"}, SupportCount: 1, CoveragePct: 1},
	}
	canonical := map[string]canonicalFirmBlobEntry{
		"acme capital": {Domain: "acme.com"},
		"beta partners": {Domain: "beta.com"},
	}

	opts := metadata.LoadOptions{
		StandardTemplatesPath: writeBlob(t, dir, "standard.msgpack", standard),
		ComplexTemplatesPath:  writeBlob(t, dir, "complex.msgpack", []templateBlobEntry{}),
		FirmTemplateMapPath:   writeBlob(t, dir, "firmmap.msgpack", map[string]any{}),
		CanonicalFirmsPath:    writeBlob(t, dir, "canonical.msgpack", canonical),
	}
	store, err := metadata.Load(opts)
	require.NoError(t, err)

	resolver := domainresolver.New(store)
	inner := engine.New(store, resolver, stubPredictor{}, nil, nil, 5)
	return &Engine{inner: inner}
}

func TestPredictBatch_PreservesOrder(t *testing.T) {
	e := testEngine(t)

	queries := []Query{
		{InvestorName: "John Smith", FirmName: "Acme Capital"},
		{InvestorName: "Jane Doe", FirmName: "Beta Partners"},
		{InvestorName: "Bob Lee", FirmName: "Acme Capital"},
	}

	results := e.PredictBatch(context.Background(), queries)
	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	require.Len(t, results[0].Predictions, 1)
	assert.Equal(t, "john.smith@acme.com", results[0].Predictions[0].Email)

	require.NoError(t, results[1].Err)
	require.Len(t, results[1].Predictions, 1)
	assert.Equal(t, "jane.doe@beta.com", results[1].Predictions[0].Email)

	require.NoError(t, results[2].Err)
	require.Len(t, results[2].Predictions, 1)
	assert.Equal(t, "bob.lee@acme.com", results[2].Predictions[0].Email)
}

func TestPredictBatch_IsolatesPerQueryErrors(t *testing.T) {
	dir := t.TempDir()
	standard := []templateBlobEntry{
		{TemplateID: 1, Template: []string{"first_0", ".", "last_0"}, SupportCount: 1, CoveragePct: 1},
	}
	opts := metadata.LoadOptions{
		StandardTemplatesPath: writeBlob(t, dir, "standard.msgpack", standard),
		ComplexTemplatesPath:  writeBlob(t, dir, "complex.msgpack", []templateBlobEntry{}),
		FirmTemplateMapPath:   writeBlob(t, dir, "firmmap.msgpack", map[string]any{}),
	}
	store, err := metadata.Load(opts)
	require.NoError(t, err)

	// No domain resolver configured: a query without an explicit domain
	// must fail while one that supplies its own domain still succeeds,
	// proving one query's error never aborts the rest of the batch.
	e := &Engine{inner: engine.New(store, nil, stubPredictor{}, nil, nil, 5)}

	queries := []Query{
		{InvestorName: "John Smith", FirmName: "Acme Capital", Domain: "acme.com"},
		{InvestorName: "Jane Doe", FirmName: "Unknown Firm"},
	}

	results := e.PredictBatch(context.Background(), queries)
	require.Len(t, results, 2)

	assert.NoError(t, results[0].Err)
	require.Len(t, results[0].Predictions, 1)
	assert.Equal(t, "john.smith@acme.com", results[0].Predictions[0].Email)

	assert.Error(t, results[1].Err)
}

func TestPredictBatch_EmptyInput(t *testing.T) {
	e := testEngine(t)

	results := e.PredictBatch(context.Background(), nil)
	assert.Empty(t, results)
}
