package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/tailor-agent/internal/config"
	"github.com/jonathan/tailor-agent/internal/types"
)

func newTestValidator() *Validator {
	return NewValidator(config.DefaultTaxonomy())
}

func TestValidate_KeywordAppendPasses(t *testing.T) {
	original := "Eliminated stock-outs across 60+ products ... achieving an 80% improvement ... using Python"
	tailored := "Eliminated stock-outs across 60+ products ... achieving an 80% improvement ... using Python, Pandas, and NumPy"

	result := newTestValidator().Validate(original, tailored, "Brandl Nutrition")

	assert.True(t, result.Valid)
	assert.Empty(t, result.Reason)
	assert.Equal(t, 0.0, result.RemovedRatio)
}

func TestValidate_MissingPercentageFails(t *testing.T) {
	result := newTestValidator().Validate("Reduced latency by 50%", "Reduced latency significantly", "Latency")

	assert.False(t, result.Valid)
	assert.Equal(t, types.RuleNumbers, result.Rule)
	assert.Equal(t, []string{"50%"}, result.Missing)
	assert.Contains(t, result.Reason, "50%")
	assert.Contains(t, result.Reason, "Latency")
}

func TestValidate_ChangedMetricFails(t *testing.T) {
	result := newTestValidator().Validate("Managed 5-person team", "Managed 10-person team", "Team")

	assert.False(t, result.Valid)
	assert.Equal(t, []string{"5"}, result.Missing)
}

func TestValidate_MissingOrganizationFails(t *testing.T) {
	result := newTestValidator().Validate(
		"Worked at Brandl Nutrition on inventory",
		"Worked at a mid-size startup on inventory",
		"Inventory")

	assert.False(t, result.Valid)
	assert.Equal(t, types.RuleOrganizations, result.Rule)
	assert.Contains(t, result.Missing, "Brandl Nutrition")
	assert.Contains(t, result.Missing, "Nutrition")
	assert.Contains(t, result.Reason, "Brandl Nutrition")
}

func TestValidate_NumbersCheckedBeforeOrganizations(t *testing.T) {
	result := newTestValidator().Validate("Saved 2+ hours at Brandl", "Saved hours", "x")

	assert.Equal(t, types.RuleNumbers, result.Rule)
}

func TestValidate_SurgicalRewordingWithinLimit(t *testing.T) {
	original := "Built general-purpose image enhancement pipeline combining KBNets denoising with Real-ESRGAN 4K upscaling using PyTorch and OpenCV"
	tailored := "Engineered production-ready image enhancement ML pipeline combining KBNets denoising with Real-ESRGAN 4K upscaling using PyTorch, OpenCV, and numpy, for scalable computer vision application"

	result := newTestValidator().Validate(original, tailored, "Image Enhancement")

	assert.True(t, result.Valid, result.Reason)
	assert.InDelta(t, 3.0/16.0, result.RemovedRatio, 1e-9)
}

func TestValidate_ExcessiveRemovalFails(t *testing.T) {
	original := "Developed full-stack web application enabling scientists to screen papers and extract tables"
	tailored := "Developed web application for papers"

	result := newTestValidator().Validate(original, tailored, "SciBiome")

	assert.False(t, result.Valid)
	assert.Equal(t, types.RuleRemovalRatio, result.Rule)
	assert.Greater(t, result.RemovedRatio, 0.25)
	assert.Contains(t, result.Missing, "scientists")
	assert.Contains(t, result.Reason, "limit 25%")
}

func TestValidate_RatioAtLimitPasses(t *testing.T) {
	// four significant words, one removed
	result := newTestValidator().Validate("alpha bravo charlie delta", "alpha bravo charlie echo", "x")

	assert.True(t, result.Valid)
	assert.InDelta(t, 0.25, result.RemovedRatio, 1e-9)
}

func TestValidate_LaTeXEscapedOriginal(t *testing.T) {
	original := `achieving an 80\% improvement in \textbf{purchase} decision quality`
	tailored := "achieving an 80% improvement in purchase decision quality using Prophet"

	result := newTestValidator().Validate(original, tailored, "Forecasting")

	assert.True(t, result.Valid, result.Reason)
}

func TestValidate_Deterministic(t *testing.T) {
	v := newTestValidator()
	first := v.Validate("Handled 12-20 daily tickets at SciBiome", "Handled tickets", "x")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, v.Validate("Handled 12-20 daily tickets at SciBiome", "Handled tickets", "x"))
	}
}

func TestValidate_CustomAllowList(t *testing.T) {
	tax := config.DefaultTaxonomy()
	tax.Organizations = []string{"Initech"}
	v := NewValidator(tax)

	assert.True(t, v.Validate("Worked at Brandl", "Worked at Brandl GmbH", "x").Valid)
	assert.False(t, v.Validate("Consulted for Initech", "Consulted for a client", "x").Valid)
}

func TestValidate_Property(t *testing.T) {
	tests := []struct {
		name     string
		original string
		tailored string
		rule     types.PreservationRule
	}{
		{"decimal", "Cut cost 1.5x", "Cut cost", types.RuleNumbers},
		{"comma grouping", "Processed 111,000 records", "Processed 111000 records", types.RuleNumbers},
		{"plus suffix", "Across 10+ sources", "Across 10 sources", types.RuleNumbers},
		{"institution", "Research at TU Braunschweig", "Research at university", types.RuleOrganizations},
		{"identical", "Built it at TECHR in 2023", "Built it at TECHR in 2023", ""},
		{"append only", "Built forecasting system", "Built production-grade forecasting system using Prophet", ""},
	}
	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.original, tt.tailored, tt.name)
			assert.Equal(t, tt.rule == "", result.Valid, result.Reason)
			assert.Equal(t, tt.rule, result.Rule)
		})
	}
}

func TestChangeRatio(t *testing.T) {
	v := newTestValidator()

	assert.Equal(t, 0.0, v.ChangeRatio("same words here", "same words here"))
	assert.Equal(t, 0.0, v.ChangeRatio("", ""))
	assert.Equal(t, 1.0, v.ChangeRatio("alpha bravo", "charlie delta"))

	ratio := v.ChangeRatio("Built forecasting system", "Built production grade forecasting system using Prophet")
	assert.Greater(t, ratio, 0.3)
	assert.Less(t, ratio, 1.0)
}

func TestNumberTokens(t *testing.T) {
	assert.Equal(t, []string{"1.5", "12", "20", "60+", "80%"}, NumberTokens("60+ items, 80% better, 1.5 faster, 12-20 tickets, 12 again"))
	assert.Empty(t, NumberTokens("no digits"))
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`80\% of \$1M \& more`, "80% of $1M & more"},
		{`\textbf{Bold} and \emph{italic}`, "Bold and italic"},
		{`path\textbackslash{}file`, `path\file`},
		{`snake\_case \#1`, "snake_case #1"},
		{"plain text", "plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.in))
		})
	}
}

func TestPlainText_NFC(t *testing.T) {
	decomposed := "Universita\u0308t"
	assert.Equal(t, "Universität", PlainText(decomposed))
}

func TestAggregateValidationError(t *testing.T) {
	v := newTestValidator()
	bullet := types.BulletPoint{OriginalText: "Reduced latency by 50%", TailoredText: "Reduced latency significantly"}
	err := error(&AggregateValidationError{Failures: []types.BulletFailure{
		{Section: "Backend", Bullet: bullet, Result: v.Validate(bullet.OriginalText, bullet.TailoredText, "Backend")},
	}})

	var aggErr *AggregateValidationError
	require.True(t, errors.As(err, &aggErr))
	msg := err.Error()
	assert.Contains(t, msg, "1 tailored bullet(s) failed")
	assert.Contains(t, msg, "original: Reduced latency by 50%")
	assert.Contains(t, msg, "tailored: Reduced latency significantly")
	assert.Contains(t, msg, "missing numbers/metrics: 50%")
	assert.Contains(t, msg, "only add keywords")
}
