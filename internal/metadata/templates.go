package metadata

// TemplateClass distinguishes the two disjoint candidate-template
// populations.
type TemplateClass string

const (
	Standard TemplateClass = "standard"
	Complex  TemplateClass = "complex"
)

// CandidateTemplate is a parameterised recipe that, applied to a
// decomposed name, produces an email local-part.
type CandidateTemplate struct {
	TemplateID int32
	Tokens     []TemplateToken

	SupportCount int32
	CoveragePct  float32

	InMinedRules       bool
	MaxRuleConfidence  float32
	AvgRuleConfidence  float32
	UsesMiddleName     bool
	UsesMultipleFirsts bool
	UsesMultipleMiddles bool
	UsesMultipleLasts  bool
}

// FirmStats carries the firm-level aggregate statistics recorded at
// training time. DiversityRatio is not recomputed at load time; it is
// taken as-is from the blob.
type FirmStats struct {
	NumTemplates     int32
	NumInvestors     int32
	DiversityRatio   float32
	IsSingleTemplate bool
	IsSharedInfra    bool
	FirmIsMultiDomain bool
}

// FirmTemplateUsage records, per firm and per template, how often that
// template was observed and whether it is (one of) the firm's dominant
// template(s).
type FirmTemplateUsage struct {
	SupportCount int32
	CoveragePct  float32
	IsTopTemplate bool
}
