package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidationResultCreation tests creating a new result
func TestValidationResultCreation(t *testing.T) {
	result := NewResult()

	assert.NotNil(t, result)
	assert.Empty(t, result.Messages)
	assert.True(t, result.IsValid())
	assert.True(t, result.CanProceed())
}

// TestAddError tests adding error messages
func TestAddError(t *testing.T) {
	result := NewResult()

	result.AddError(CodeUnknownArrivalFunction, `defaultArrivalFunction "night_peak" is not present in patientArrivalFunctions`)

	assert.Len(t, result.Messages, 1)
	assert.False(t, result.IsValid())
	assert.False(t, result.CanProceed())
	assert.Equal(t, 1, result.ErrorCount())
}

// TestAddWarning tests adding warning messages
func TestAddWarning(t *testing.T) {
	result := NewResult()

	result.AddWarning(CodeMissingOffShift, "shift catalog has no off-shift entry for role class RESIDENT")

	assert.Len(t, result.Messages, 1)
	assert.True(t, result.IsValid())      // Warnings don't make it invalid
	assert.False(t, result.CanProceed())  // Cannot proceed cleanly with warnings
	assert.Equal(t, 1, result.WarningCount())
}

// TestAddInfo tests adding info messages
func TestAddInfo(t *testing.T) {
	result := NewResult()

	result.AddInfo("INFO_CODE", "This is informational")

	assert.Len(t, result.Messages, 1)
	assert.True(t, result.IsValid())
	assert.True(t, result.CanProceed())
	assert.Equal(t, 1, result.InfoCount())
}

// TestMultipleMessages tests collecting multiple messages
func TestMultipleMessages(t *testing.T) {
	result := NewResult()

	result.
		AddError(CodeSolverInfeasible, "no feasible roster found for role class NURSE").
		AddWarning(CodeMissingOffShift, "shift catalog has no off-shift entry").
		AddInfo("INFO_CODE", "Processing completed with warnings")

	assert.Len(t, result.Messages, 3)
	assert.Equal(t, 1, result.ErrorCount())
	assert.Equal(t, 1, result.WarningCount())
	assert.Equal(t, 1, result.InfoCount())
	assert.False(t, result.IsValid())
	assert.False(t, result.CanProceed())
}

// TestMessagesByCode tests filtering messages by code
func TestMessagesByCode(t *testing.T) {
	result := NewResult()

	result.
		AddError(CodeUnknownDiagnosis, "diagnosis code 23 is outside the classifier's known range").
		AddError(CodeUnknownDiagnosis, "diagnosis code -1 is outside the classifier's known range")

	messages := result.MessagesByCode(CodeUnknownDiagnosis)

	assert.Len(t, messages, 2)
	for _, msg := range messages {
		assert.Equal(t, CodeUnknownDiagnosis, msg.Code)
	}
}

// TestMessagesBySeverity tests filtering messages by severity
func TestMessagesBySeverity(t *testing.T) {
	result := NewResult()

	result.
		AddError(CodeUnparseableExpression, "Error 1").
		AddError(CodeUnparseableExpression, "Error 2").
		AddWarning(CodeMissingOffShift, "Warning 1").
		AddInfo("CODE", "Info 1")

	errors := result.MessagesBySeverity(SeverityError)
	warnings := result.MessagesBySeverity(SeverityWarning)
	infos := result.MessagesBySeverity(SeverityInfo)

	assert.Len(t, errors, 2)
	assert.Len(t, warnings, 1)
	assert.Len(t, infos, 1)
}

// TestHasErrorsAndWarnings tests flag methods
func TestHasErrorsAndWarnings(t *testing.T) {
	resultClean := NewResult()
	assert.False(t, resultClean.HasErrors())
	assert.False(t, resultClean.HasWarnings())

	resultWithError := NewResult().AddError("CODE", "Error")
	assert.True(t, resultWithError.HasErrors())
	assert.False(t, resultWithError.HasWarnings())

	resultWithWarning := NewResult().AddWarning("CODE", "Warning")
	assert.False(t, resultWithWarning.HasErrors())
	assert.True(t, resultWithWarning.HasWarnings())

	resultWithBoth := NewResult().
		AddError("ERR", "Error").
		AddWarning("WARN", "Warning")
	assert.True(t, resultWithBoth.HasErrors())
	assert.True(t, resultWithBoth.HasWarnings())
}

// TestWithContext tests messages with additional context
func TestWithContext(t *testing.T) {
	result := NewResult()

	context := map[string]interface{}{
		"expression": "3 + cos(t",
		"hour":       12.0,
	}

	result.AddErrorWithContext(CodeUnparseableExpression, "arrival rate expression failed to parse", context)

	assert.Len(t, result.Messages, 1)
	msg := result.Messages[0]
	assert.Equal(t, context, msg.Context)
	assert.Equal(t, "3 + cos(t", msg.Context["expression"])
}

// TestToJSON tests JSON serialization
func TestToJSON(t *testing.T) {
	result := NewResult()

	result.
		AddError(CodeUnknownDiagnosis, "unknown diagnosis code").
		AddWarning(CodeMissingOffShift, "missing off-shift entry")

	json, err := result.ToJSON()

	assert.NoError(t, err)
	assert.NotEmpty(t, json)
	assert.Contains(t, json, "UNKNOWN_DIAGNOSIS")
	assert.Contains(t, json, "MISSING_OFF_SHIFT")
	assert.Contains(t, json, "ERROR")
	assert.Contains(t, json, "WARNING")
}

// TestFromJSON tests JSON deserialization
func TestFromJSON(t *testing.T) {
	original := NewResult()
	original.
		AddError(CodeUnknownDiagnosis, "unknown diagnosis code").
		AddWarning(CodeMissingOffShift, "missing off-shift entry")

	jsonStr, err := original.ToJSON()
	require.NoError(t, err)

	restored, err := FromJSON(jsonStr)
	require.NoError(t, err)

	assert.Len(t, restored.Messages, 2)
	assert.Equal(t, original.ErrorCount(), restored.ErrorCount())
	assert.Equal(t, original.WarningCount(), restored.WarningCount())
}

// TestSummary tests human-readable summary
func TestSummary(t *testing.T) {
	result := NewResult()
	result.
		AddError(CodeUnknownDiagnosis, "unknown diagnosis code").
		AddWarning(CodeMissingOffShift, "missing off-shift entry").
		AddInfo("INFO", "Done")

	summary := result.Summary()

	assert.Contains(t, summary, "1 errors")
	assert.Contains(t, summary, "1 warnings")
	assert.Contains(t, summary, "1 info")
	assert.Contains(t, summary, "UNKNOWN_DIAGNOSIS")
	assert.Contains(t, summary, "MISSING_OFF_SHIFT")
}

// TestChaining tests method chaining
func TestChaining(t *testing.T) {
	result := NewResult().
		AddError("CODE1", "Error 1").
		AddWarning("CODE2", "Warning 1").
		AddInfo("CODE3", "Info 1")

	assert.Len(t, result.Messages, 3)
	assert.Equal(t, 1, result.ErrorCount())
	assert.Equal(t, 1, result.WarningCount())
	assert.Equal(t, 1, result.InfoCount())
}

// TestRealWorldExample tests a realistic cycle-run scenario: a bad arrival
// function, a solver that went infeasible for one role class, and a missing
// off-shift warning, all collected together rather than failing on the
// first problem.
func TestRealWorldExample(t *testing.T) {
	result := NewResult()

	result.AddErrorWithContext(
		CodeUnparseableExpression,
		"arrival rate expression failed to parse",
		map[string]interface{}{
			"function": "night_peak",
			"body":     "3 + cos(t",
		},
	)

	result.AddErrorWithContext(
		CodeSolverInfeasible,
		"no feasible roster found",
		map[string]interface{}{
			"roleClass": "RESIDENT",
			"numDays":   28,
		},
	)

	result.AddWarning(
		CodeMissingOffShift,
		"shift catalog has no off-shift entry for role class ADMIN",
	)

	result.AddInfo(
		"CYCLES_COMPLETED",
		"Completed 4 cycles of the 28-day scheduling period",
	)

	assert.False(t, result.CanProceed())
	assert.True(t, result.HasErrors())
	assert.True(t, result.HasWarnings())
}
