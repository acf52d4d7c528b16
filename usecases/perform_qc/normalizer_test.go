package perform_qc

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/pure_utils"
)

func listOf(tests ...models.TestDefinition) models.TestListDefinition {
	items := make([]models.TestListItem, len(tests))
	for i := range tests {
		items[i] = models.TestListItem{Order: i, Test: &tests[i]}
	}
	return models.TestListDefinition{Id: "tl1", Name: "daily", Slug: "daily", Items: items}
}

func simpleTest(slug string) models.TestDefinition {
	return models.TestDefinition{Id: slug, Name: slug, Slug: slug, Type: models.TestTypeSimple}
}

func TestNormalizeSubmissionPassesValuesThrough(t *testing.T) {
	testList := listOf(
		simpleTest("temp"),
		models.TestDefinition{Slug: "operator", Type: models.TestTypeString},
		models.TestDefinition{Slug: "warmed_up", Type: models.TestTypeBoolean},
		models.TestDefinition{Slug: "measured_on", Type: models.TestTypeDate},
	)
	submission := models.Submission{
		WorkStarted: time.Now(),
		Tests: map[string]any{
			"temp":        map[string]any{"value": 21.5, "comment": "steady"},
			"operator":    map[string]any{"value": "jdoe"},
			"warmed_up":   map[string]any{"value": true},
			"measured_on": map[string]any{"value": "2026-08-30"},
		},
	}

	normalized, err := NormalizeSubmission(testList, submission)
	require.NoError(t, err)

	require.NotNil(t, normalized["temp"].Value)
	assert.Equal(t, 21.5, *normalized["temp"].Value)
	assert.Equal(t, "steady", normalized["temp"].Comment)

	require.NotNil(t, normalized["operator"].StringValue)
	assert.Equal(t, "jdoe", *normalized["operator"].StringValue)
	assert.Nil(t, normalized["operator"].Value)

	require.NotNil(t, normalized["warmed_up"].Value)
	assert.Equal(t, 1.0, *normalized["warmed_up"].Value)

	require.NotNil(t, normalized["measured_on"].DateValue)
	assert.Equal(t, 2026, normalized["measured_on"].DateValue.Year())
}

func TestNormalizeSubmissionTemporalOrder(t *testing.T) {
	started := time.Now()
	completed := started.Add(-time.Hour)

	_, err := NormalizeSubmission(listOf(simpleTest("temp")), models.Submission{
		WorkStarted:   started,
		WorkCompleted: &completed,
		Tests:         map[string]any{"temp": map[string]any{"value": 1.0}},
	})
	assert.ErrorIs(t, err, models.ErrTemporalOrder)
}

func TestNormalizeSubmissionMalformedEntry(t *testing.T) {
	_, err := NormalizeSubmission(listOf(simpleTest("temp")), models.Submission{
		WorkStarted: time.Now(),
		Tests:       map[string]any{"temp": 21.5},
	})

	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ErrorIs(t, err, models.BadParameterError)
	assert.Contains(t, validationErr.Error(), "temp")
}

func TestNormalizeSubmissionMissingAndWrongType(t *testing.T) {
	testList := listOf(simpleTest("temp"), simpleTest("pressure"), simpleTest("humidity"))
	_, err := NormalizeSubmission(testList, models.Submission{
		WorkStarted: time.Now(),
		Tests: map[string]any{
			"temp": map[string]any{"value": "not a number"},
			// pressure and humidity absent
		},
	})

	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	message := validationErr.Error()
	assert.Contains(t, message, "missing value for tests: humidity, pressure")
	assert.Contains(t, message, "wrong value kind for tests: temp")
}

func TestNormalizeSubmissionWrongKindIsNotMissing(t *testing.T) {
	testList := listOf(
		models.TestDefinition{Slug: "measured_on", Type: models.TestTypeDate},
		models.TestDefinition{Slug: "readings_file", Type: models.TestTypeUpload},
	)
	// both values are present but of the wrong kind
	_, err := NormalizeSubmission(testList, models.Submission{
		WorkStarted: time.Now(),
		Tests: map[string]any{
			"measured_on":   map[string]any{"value": 20260830.0},
			"readings_file": map[string]any{"value": 42.0},
		},
	})

	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	message := validationErr.Error()
	assert.Contains(t, message, "wrong value kind for tests: measured_on, readings_file")
	assert.NotContains(t, message, "missing value")
}

func TestNormalizeSubmissionSkippedBypassesTypeCheck(t *testing.T) {
	normalized, err := NormalizeSubmission(listOf(simpleTest("temp")), models.Submission{
		WorkStarted: time.Now(),
		Tests:       map[string]any{"temp": map[string]any{"skipped": true}},
	})
	require.NoError(t, err)
	assert.True(t, normalized["temp"].Skipped)
	assert.Nil(t, normalized["temp"].Value)
}

func TestNormalizeSubmissionConstant(t *testing.T) {
	testList := listOf(models.TestDefinition{
		Slug:          "calibration_factor",
		Type:          models.TestTypeConstant,
		ConstantValue: pure_utils.Ptr(1.013),
	})

	t.Run("omitted, the constant is substituted", func(t *testing.T) {
		normalized, err := NormalizeSubmission(testList, models.Submission{
			WorkStarted: time.Now(),
			Tests:       map[string]any{},
		})
		require.NoError(t, err)
		require.NotNil(t, normalized["calibration_factor"].Value)
		assert.Equal(t, 1.013, *normalized["calibration_factor"].Value)
	})

	t.Run("matching value accepted", func(t *testing.T) {
		normalized, err := NormalizeSubmission(testList, models.Submission{
			WorkStarted: time.Now(),
			Tests:       map[string]any{"calibration_factor": map[string]any{"value": 1.013}},
		})
		require.NoError(t, err)
		assert.Equal(t, 1.013, *normalized["calibration_factor"].Value)
	})

	t.Run("mismatched value rejected", func(t *testing.T) {
		_, err := NormalizeSubmission(testList, models.Submission{
			WorkStarted: time.Now(),
			Tests:       map[string]any{"calibration_factor": map[string]any{"value": 2.0}},
		})
		var validationErr models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Error(), models.ErrConstantMismatch.Error())
	})
}

func TestNormalizeSubmissionCompositePlaceholder(t *testing.T) {
	testList := listOf(
		simpleTest("test1"),
		models.TestDefinition{Slug: "testc", Type: models.TestTypeComposite, Procedure: "result = test1"},
	)
	normalized, err := NormalizeSubmission(testList, models.Submission{
		WorkStarted: time.Now(),
		Tests:       map[string]any{"test1": map[string]any{"value": 1.0}},
	})
	require.NoError(t, err)

	placeholder, ok := normalized["testc"]
	require.True(t, ok)
	assert.True(t, placeholder.IsBlank())
}

func TestNormalizeSubmissionUpload(t *testing.T) {
	testList := listOf(models.TestDefinition{Slug: "readings_file", Type: models.TestTypeUpload})

	t.Run("base64 payload decoded", func(t *testing.T) {
		payload := base64.StdEncoding.EncodeToString([]byte(`{"a": 1}`))
		normalized, err := NormalizeSubmission(testList, models.Submission{
			WorkStarted: time.Now(),
			Tests: map[string]any{
				"readings_file": map[string]any{
					"value":    payload,
					"encoding": "base64",
					"filename": "readings.json",
				},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"a": 1}`), normalized["readings_file"].FileData)
		assert.Equal(t, "readings.json", normalized["readings_file"].Filename)
	})

	t.Run("invalid base64 rejected", func(t *testing.T) {
		_, err := NormalizeSubmission(testList, models.Submission{
			WorkStarted: time.Now(),
			Tests: map[string]any{
				"readings_file": map[string]any{"value": "!!not base64!!", "encoding": "base64"},
			},
		})
		var validationErr models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Error(), models.ErrInvalidEncoding.Error())
	})

	t.Run("plain text kept as bytes", func(t *testing.T) {
		normalized, err := NormalizeSubmission(testList, models.Submission{
			WorkStarted: time.Now(),
			Tests: map[string]any{
				"readings_file": map[string]any{"value": "1,2,3", "encoding": "text"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []byte("1,2,3"), normalized["readings_file"].FileData)
	})
}

func TestNormalizeSubmissionMultipleChoice(t *testing.T) {
	testList := listOf(models.TestDefinition{
		Slug:    "mode",
		Type:    models.TestTypeMultipleChoice,
		Choices: []string{"clinical", "service"},
	})

	normalized, err := NormalizeSubmission(testList, models.Submission{
		WorkStarted: time.Now(),
		Tests:       map[string]any{"mode": map[string]any{"value": "clinical"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "clinical", *normalized["mode"].StringValue)

	_, err = NormalizeSubmission(testList, models.Submission{
		WorkStarted: time.Now(),
		Tests:       map[string]any{"mode": map[string]any{"value": "maintenance"}},
	})
	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "allowed choices")
}

func TestNormalizeSubmissionUnknownSlug(t *testing.T) {
	_, err := NormalizeSubmission(listOf(simpleTest("temp")), models.Submission{
		WorkStarted: time.Now(),
		Tests: map[string]any{
			"temp":  map[string]any{"value": 1.0},
			"bogus": map[string]any{"value": 2.0},
		},
	})
	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "bogus")
}

func TestNormalizeSubmissionInvalidDate(t *testing.T) {
	testList := listOf(models.TestDefinition{Slug: "measured_on", Type: models.TestTypeDate})
	_, err := NormalizeSubmission(testList, models.Submission{
		WorkStarted: time.Now(),
		Tests:       map[string]any{"measured_on": map[string]any{"value": "not-a-date"}},
	})
	var validationErr models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), models.ErrInvalidDate.Error())
}
