// Package metadata loads and exposes the immutable, in-memory view of
// candidate templates, firm statistics, firm→template usage and the firm
// directory from the five MessagePack metadata blobs. Everything is built
// once at engine construction and never mutated afterward, except the firm
// directory, which supports an explicit, opt-in reload.
package metadata

import (
	"bytes"
	"io"
	"os"
	"sort"
	"sync/atomic"

	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"

	"emailguess/internal/apperrors"
)

// templateBlobEntry mirrors one element of the standard/complex candidate
// template blobs.
type templateBlobEntry struct {
	TemplateID          int32    `msgpack:"template_id"`
	Template            []string `msgpack:"template"`
	SupportCount        int32    `msgpack:"support_count"`
	CoveragePct         float32  `msgpack:"coverage_pct"`
	InMinedRules        bool     `msgpack:"in_mined_rules"`
	MaxRuleConfidence   float32  `msgpack:"max_rule_confidence"`
	AvgRuleConfidence   float32  `msgpack:"avg_rule_confidence"`
	UsesMiddleName      bool     `msgpack:"uses_middle_name"`
	UsesMultipleFirsts  bool     `msgpack:"uses_multiple_firsts"`
	UsesMultipleMiddles bool     `msgpack:"uses_multiple_middles"`
	UsesMultipleLasts   bool     `msgpack:"uses_multiple_lasts"`
}

// firmTemplateBlobEntry mirrors one value of the firm→template map. Each
// entry of TemplateIDs records one investor's assigned template id; the
// per-template FirmTemplateUsage is derived by counting occurrences.
type firmTemplateBlobEntry struct {
	TemplateIDs       []int32 `msgpack:"template_ids"`
	NumTemplates      int32   `msgpack:"num_templates"`
	NumInvestors      int32   `msgpack:"num_investors"`
	DiversityRatio    float32 `msgpack:"diversity_ratio"`
	IsSingleTemplate  bool    `msgpack:"is_single_template"`
	IsSharedInfra     bool    `msgpack:"is_shared_infra"`
	FirmIsMultiDomain bool    `msgpack:"firm_is_multi_domain"`
}

type canonicalFirmBlobEntry struct {
	Domain string `msgpack:"domain"`
}

// FuzzyCacheEntry is the persisted shape of one fuzzy-match cache record,
// as loaded from the optional firm-match-cache blob and as produced at
// query time by the domain resolver.
type FuzzyCacheEntry struct {
	Domain      string  `msgpack:"domain"`
	MatchedFirm string  `msgpack:"canonical_firm"`
	Score       float64 `msgpack:"match_score"`
}

// Store is the immutable, loaded-once view of all template metadata.
type Store struct {
	StandardTemplates []CandidateTemplate
	ComplexTemplates  []CandidateTemplate

	firmStats    map[string]FirmStats
	firmUsage    map[string]map[int32]FirmTemplateUsage
	firmDomains  atomic.Pointer[map[string]string]
	initialCache map[string]FuzzyCacheEntry
}

// Templates returns the ordered candidate-template slice for the given
// class. The returned slice must never be mutated by callers; ordering is
// load-bearing (it is the feature-matrix row order).
func (s *Store) Templates(class TemplateClass) []CandidateTemplate {
	if class == Complex {
		return s.ComplexTemplates
	}
	return s.StandardTemplates
}

// FirmStats looks up firm-level statistics by firm key (lowercased, with
// punctuation preserved). The zero value and false are returned when the
// firm is unknown.
func (s *Store) FirmStats(firmKey string) (FirmStats, bool) {
	st, ok := s.firmStats[firmKey]
	return st, ok
}

// FirmTemplateUsage looks up the (firm, template) usage record. The zero
// value and false are returned when either the firm or the template is
// unknown to it.
func (s *Store) FirmTemplateUsage(firmKey string, templateID int32) (FirmTemplateUsage, bool) {
	byTemplate, ok := s.firmUsage[firmKey]
	if !ok {
		return FirmTemplateUsage{}, false
	}
	usage, ok := byTemplate[templateID]
	return usage, ok
}

// FirmDomain looks up the canonical domain for a firm key, returning
// ("", false) if the firm directory has no entry for it.
func (s *Store) FirmDomain(firmKey string) (string, bool) {
	d, ok := (*s.firmDomains.Load())[firmKey]
	return d, ok
}

// HasFirmDirectoryEntry reports whether firmKey is an exact key of the
// firm directory.
func (s *Store) HasFirmDirectoryEntry(firmKey string) bool {
	_, ok := (*s.firmDomains.Load())[firmKey]
	return ok
}

// FirmDirectoryKeys returns every key of the firm directory, for the
// domain resolver's fuzzy-match fallback. The returned slice is a fresh
// copy, safe to use even if ReloadFirmDirectory swaps the directory
// concurrently.
func (s *Store) FirmDirectoryKeys() []string {
	current := *s.firmDomains.Load()
	keys := make([]string, 0, len(current))
	for k := range current {
		keys = append(keys, k)
	}
	return keys
}

// ReloadFirmDirectory reads and decodes a canonical-firms blob from path
// and atomically replaces the in-memory firm→domain directory with it.
// Candidate templates, firm statistics and per-firm template usage are
// untouched: this lets an operator refresh the frequently-changing firm
// directory without paying the cost of re-loading the model artifacts or
// template metadata.
func (s *Store) ReloadFirmDirectory(path string) error {
	raw, err := readBlob(path)
	if err != nil {
		return apperrors.Configuration("CANONICAL_FIRMS_UNREADABLE", "failed to read canonical firms", err)
	}

	var canonical map[string]canonicalFirmBlobEntry
	if err := msgpack.Unmarshal(raw, &canonical); err != nil {
		return apperrors.Configuration("CANONICAL_FIRMS_MALFORMED", "failed to decode canonical firms", err)
	}

	domains := make(map[string]string, len(canonical))
	for firmKey, v := range canonical {
		domains[firmKey] = v.Domain
	}
	s.firmDomains.Store(&domains)

	logrus.WithField("canonical_firms", len(domains)).Info("firm directory reloaded")
	return nil
}

// InitialFuzzyCache returns the cache entries loaded from the optional
// firm-match-cache blob, to seed the domain resolver's in-memory cache.
func (s *Store) InitialFuzzyCache() map[string]FuzzyCacheEntry {
	return s.initialCache
}

// LoadOptions names the five metadata blob paths. The first three are
// required; CanonicalFirmsPath and FirmMatchCachePath may be empty.
type LoadOptions struct {
	StandardTemplatesPath string
	ComplexTemplatesPath  string
	FirmTemplateMapPath   string
	CanonicalFirmsPath    string
	FirmMatchCachePath    string
}

// Load reads and parses the five metadata blobs, building an immutable
// Store. Any parse error or missing required field aborts loading with a
// *apperrors.Error of KindConfiguration.
func Load(opts LoadOptions) (*Store, error) {
	standardRaw, err := readBlob(opts.StandardTemplatesPath)
	if err != nil {
		return nil, apperrors.Configuration("STANDARD_TEMPLATES_UNREADABLE", "failed to read standard candidate templates", err)
	}
	complexRaw, err := readBlob(opts.ComplexTemplatesPath)
	if err != nil {
		return nil, apperrors.Configuration("COMPLEX_TEMPLATES_UNREADABLE", "failed to read complex candidate templates", err)
	}
	firmMapRaw, err := readBlob(opts.FirmTemplateMapPath)
	if err != nil {
		return nil, apperrors.Configuration("FIRM_TEMPLATE_MAP_UNREADABLE", "failed to read firm template map", err)
	}

	standard, err := decodeTemplateBlob(standardRaw)
	if err != nil {
		return nil, apperrors.Configuration("STANDARD_TEMPLATES_MALFORMED", "failed to decode standard candidate templates", err)
	}
	complexTpl, err := decodeTemplateBlob(complexRaw)
	if err != nil {
		return nil, apperrors.Configuration("COMPLEX_TEMPLATES_MALFORMED", "failed to decode complex candidate templates", err)
	}

	var firmMap map[string]firmTemplateBlobEntry
	if err := msgpack.Unmarshal(firmMapRaw, &firmMap); err != nil {
		return nil, apperrors.Configuration("FIRM_TEMPLATE_MAP_MALFORMED", "failed to decode firm template map", err)
	}

	s := &Store{
		StandardTemplates: standard,
		ComplexTemplates:  complexTpl,
		firmStats:         make(map[string]FirmStats, len(firmMap)),
		firmUsage:         make(map[string]map[int32]FirmTemplateUsage, len(firmMap)),
		initialCache:      make(map[string]FuzzyCacheEntry),
	}
	emptyDomains := make(map[string]string)
	s.firmDomains.Store(&emptyDomains)

	for firmKey, entry := range firmMap {
		s.firmStats[firmKey] = FirmStats{
			NumTemplates:      entry.NumTemplates,
			NumInvestors:      entry.NumInvestors,
			DiversityRatio:    entry.DiversityRatio,
			IsSingleTemplate:  entry.IsSingleTemplate,
			IsSharedInfra:     entry.IsSharedInfra,
			FirmIsMultiDomain: entry.FirmIsMultiDomain,
		}
		s.firmUsage[firmKey] = deriveFirmTemplateUsage(entry.TemplateIDs)
	}

	if opts.CanonicalFirmsPath != "" {
		raw, err := readBlob(opts.CanonicalFirmsPath)
		if err != nil {
			return nil, apperrors.Configuration("CANONICAL_FIRMS_UNREADABLE", "failed to read canonical firms", err)
		}
		var canonical map[string]canonicalFirmBlobEntry
		if err := msgpack.Unmarshal(raw, &canonical); err != nil {
			return nil, apperrors.Configuration("CANONICAL_FIRMS_MALFORMED", "failed to decode canonical firms", err)
		}
		domains := make(map[string]string, len(canonical))
		for firmKey, v := range canonical {
			domains[firmKey] = v.Domain
		}
		s.firmDomains.Store(&domains)
	}

	if opts.FirmMatchCachePath != "" {
		raw, err := readBlob(opts.FirmMatchCachePath)
		if err != nil {
			return nil, apperrors.Configuration("FIRM_MATCH_CACHE_UNREADABLE", "failed to read firm match cache", err)
		}
		var cache map[string]FuzzyCacheEntry
		if err := msgpack.Unmarshal(raw, &cache); err != nil {
			return nil, apperrors.Configuration("FIRM_MATCH_CACHE_MALFORMED", "failed to decode firm match cache", err)
		}
		s.initialCache = cache
	}

	logrus.WithFields(logrus.Fields{
		"standard_templates": len(s.StandardTemplates),
		"complex_templates":  len(s.ComplexTemplates),
		"firms":              len(s.firmStats),
		"canonical_firms":    len(*s.firmDomains.Load()),
		"cached_matches":     len(s.initialCache),
	}).Info("metadata store loaded")

	return s, nil
}

// deriveFirmTemplateUsage counts occurrences of each template id within a
// firm's per-investor assignment list, deriving support_count,
// coverage_pct and is_top_template in one pass, per the store's loading
// contract.
func deriveFirmTemplateUsage(templateIDs []int32) map[int32]FirmTemplateUsage {
	counts := make(map[int32]int32, len(templateIDs))
	var total int32
	var max int32
	for _, id := range templateIDs {
		counts[id]++
		total++
		if counts[id] > max {
			max = counts[id]
		}
	}

	usage := make(map[int32]FirmTemplateUsage, len(counts))
	for id, count := range counts {
		var coverage float32
		if total > 0 {
			coverage = float32(count) / float32(total)
		}
		usage[id] = FirmTemplateUsage{
			SupportCount:  count,
			CoveragePct:   coverage,
			IsTopTemplate: count == max,
		}
	}
	return usage
}

func decodeTemplateBlob(raw []byte) ([]CandidateTemplate, error) {
	var entries []templateBlobEntry
	if err := msgpack.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}

	out := make([]CandidateTemplate, 0, len(entries))
	for _, e := range entries {
		tokens, err := ParseTokenSequence(e.Template)
		if err != nil {
			return nil, err
		}
		out = append(out, CandidateTemplate{
			TemplateID:          e.TemplateID,
			Tokens:              tokens,
			SupportCount:        e.SupportCount,
			CoveragePct:         e.CoveragePct,
			InMinedRules:        e.InMinedRules,
			MaxRuleConfidence:   e.MaxRuleConfidence,
			AvgRuleConfidence:   e.AvgRuleConfidence,
			UsesMiddleName:      e.UsesMiddleName,
			UsesMultipleFirsts:  e.UsesMultipleFirsts,
			UsesMultipleMiddles: e.UsesMultipleMiddles,
			UsesMultipleLasts:   e.UsesMultipleLasts,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].TemplateID < out[j].TemplateID })
	return out, nil
}

// readBlob reads path and transparently gzip-decompresses it if it starts
// with the gzip magic header, so operators can ship compressed metadata
// blobs without a separate format flag.
func readBlob(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) >= 2 && raw[0] == 0x1f && raw[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	}
	return raw, nil
}
