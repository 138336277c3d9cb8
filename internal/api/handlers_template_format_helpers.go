package api

import (
	"fmt"
	"math"
	"time"

	"github.com/terraincognita07/titanlift/internal/services"
)

func formatTemplateFloat(value float64) string {
	rounded := math.Round(value*10) / 10
	if math.Abs(rounded-math.Round(rounded)) < 1e-9 {
		return fmt.Sprintf("%.0f", rounded)
	}
	return fmt.Sprintf("%.1f", rounded)
}

// formatTemplatePercent is meant for inline style widths and heights.
func formatTemplatePercent(value float64) string {
	return fmt.Sprintf("%.0f", math.Max(0, math.Min(value, 100)))
}

func formatTemplateKilograms(value float64) string {
	return services.FormatKilograms(value)
}

func formatTemplateDuration(value time.Duration) string {
	if value <= 0 {
		return ""
	}
	minutes := int(value.Round(time.Minute) / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
