// Package features builds the fixed-width float32 feature matrix fed to
// the template predictor. The 27-column schema is shared implicitly with
// the offline trainer; ColumnCount and the column order below are the
// single source of truth and must never be reordered.
package features

import (
	"emailguess/internal/investorfeatures"
	"emailguess/internal/metadata"
	"emailguess/internal/namedecomp"
)

// ColumnCount is the fixed width of one feature-matrix row.
const ColumnCount = 27

// Column names, in the exact order the model was trained on.
const (
	ColInFirmTemplates = iota
	ColFirmIsSharedInfra
	ColFirmIsMultiDomain
	ColHasGermanChar
	ColHasNFKDNormalized
	ColHasNickname
	ColNameHasMultipleFirsts
	ColNameHasMiddle
	ColNameHasMultipleMiddles
	ColNameHasMultipleLasts
	ColTemplateSupportCount
	ColTemplateCoveragePct
	ColTemplateInMinedRules
	ColTemplateMaxRuleConfidence
	ColTemplateAvgRuleConfidence
	ColTemplateUsesMiddleName
	ColTemplateUsesMultipleFirsts
	ColTemplateUsesMultipleMiddles
	ColTemplateUsesMultipleLasts
	ColFirmSupportCount
	ColFirmCoveragePct
	ColFirmIsTopTemplate
	ColTemplateNameCharacteristicClash
	ColFirmNumTemplates
	ColFirmNumInvestors
	ColFirmDiversityRatio
	ColFirmIsSingleTemplate
)

func boolToF32(b bool) float32 {
	if b {
		return 1.0
	}
	return 0.0
}

// Build produces one float32 row per template in templates, in the same
// order, for the given decomposed name, name-level flags, and firm name.
// Missing firm stats or missing per-firm template usage yield zeros for
// every field that would have come from them — absence is represented by
// zero, never by an error.
func Build(
	firmKey string,
	store *metadata.Store,
	name namedecomp.DecomposedName,
	flags investorfeatures.Flags,
	templates []metadata.CandidateTemplate,
) []float32 {
	firmStats, haveFirmStats := store.FirmStats(firmKey)

	nameHasMultipleFirsts := boolToF32(name.HasMultipleFirsts())
	nameHasMiddle := boolToF32(name.HasMiddle())
	nameHasMultipleMiddles := boolToF32(name.HasMultipleMiddles())
	nameHasMultipleLasts := boolToF32(name.HasMultipleLasts())

	out := make([]float32, len(templates)*ColumnCount)

	for i, tpl := range templates {
		row := out[i*ColumnCount : (i+1)*ColumnCount]

		usage, haveUsage := store.FirmTemplateUsage(firmKey, tpl.TemplateID)

		row[ColInFirmTemplates] = boolToF32(haveUsage)
		row[ColFirmIsSharedInfra] = boolToF32(haveFirmStats && firmStats.IsSharedInfra)
		row[ColFirmIsMultiDomain] = boolToF32(haveFirmStats && firmStats.FirmIsMultiDomain)
		row[ColHasGermanChar] = boolToF32(flags.HasGermanChar)
		row[ColHasNFKDNormalized] = boolToF32(flags.HasNFKDNormalized)
		row[ColHasNickname] = boolToF32(flags.HasNickname)
		row[ColNameHasMultipleFirsts] = nameHasMultipleFirsts
		row[ColNameHasMiddle] = nameHasMiddle
		row[ColNameHasMultipleMiddles] = nameHasMultipleMiddles
		row[ColNameHasMultipleLasts] = nameHasMultipleLasts
		row[ColTemplateSupportCount] = float32(tpl.SupportCount)
		row[ColTemplateCoveragePct] = tpl.CoveragePct
		row[ColTemplateInMinedRules] = boolToF32(tpl.InMinedRules)
		row[ColTemplateMaxRuleConfidence] = tpl.MaxRuleConfidence
		row[ColTemplateAvgRuleConfidence] = tpl.AvgRuleConfidence
		row[ColTemplateUsesMiddleName] = boolToF32(tpl.UsesMiddleName)
		row[ColTemplateUsesMultipleFirsts] = boolToF32(tpl.UsesMultipleFirsts)
		row[ColTemplateUsesMultipleMiddles] = boolToF32(tpl.UsesMultipleMiddles)
		row[ColTemplateUsesMultipleLasts] = boolToF32(tpl.UsesMultipleLasts)

		if haveUsage {
			row[ColFirmSupportCount] = float32(usage.SupportCount)
			row[ColFirmCoveragePct] = usage.CoveragePct
			row[ColFirmIsTopTemplate] = boolToF32(usage.IsTopTemplate)
		}

		row[ColTemplateNameCharacteristicClash] = boolToF32(clash(tpl, name))

		if haveFirmStats {
			row[ColFirmNumTemplates] = float32(firmStats.NumTemplates)
			row[ColFirmNumInvestors] = float32(firmStats.NumInvestors)
			row[ColFirmDiversityRatio] = firmStats.DiversityRatio
			row[ColFirmIsSingleTemplate] = boolToF32(firmStats.IsSingleTemplate)
		}
	}

	return out
}

// clash reports whether any of the four (template.uses_X, name.has_X)
// pairs are both true.
func clash(tpl metadata.CandidateTemplate, name namedecomp.DecomposedName) bool {
	return (tpl.UsesMiddleName && name.HasMiddle()) ||
		(tpl.UsesMultipleFirsts && name.HasMultipleFirsts()) ||
		(tpl.UsesMultipleMiddles && name.HasMultipleMiddles()) ||
		(tpl.UsesMultipleLasts && name.HasMultipleLasts())
}
