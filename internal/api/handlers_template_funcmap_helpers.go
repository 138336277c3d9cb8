package api

import (
	"html/template"
	"strings"
)

func newTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"formatFloat":    formatTemplateFloat,
		"formatPercent":  formatTemplatePercent,
		"formatKg":       formatTemplateKilograms,
		"formatDuration": formatTemplateDuration,
		"t":              templateTranslate,
		"activityLabel":  templateActivityLabel,
		"activityHint":   templateActivityHint,
		"genderLabel":    templateGenderLabel,
		"awardLabel":     templateAwardLabel,
		"awardHint":      templateAwardHint,
		"isActiveRoute":  isActiveTemplateRoute,
		"dict":           templateDict,
		"upper":          strings.ToUpper,
	}
}
