package perform_qc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/pure_utils"
)

func compositeTest(slug, procedure string) models.TestDefinition {
	return models.TestDefinition{Id: slug, Name: slug, Slug: slug,
		Type: models.TestTypeComposite, Procedure: procedure}
}

func submittedNumber(slug string, value float64) models.SubmittedValue {
	return models.SubmittedValue{Slug: slug, Value: pure_utils.Ptr(value)}
}

func TestResolveCompositesSum(t *testing.T) {
	testList := listOf(
		simpleTest("test1"),
		simpleTest("test2"),
		compositeTest("testc", "result = test1 + test2"),
	)
	submitted := map[string]models.SubmittedValue{
		"test1": submittedNumber("test1", 1),
		"test2": submittedNumber("test2", 2),
		"testc": {Slug: "testc"},
	}

	output := ResolveComposites(testList, submitted)
	require.True(t, output.Success)
	require.Len(t, output.Results, 3)

	result := output.Results["testc"]
	assert.Empty(t, result.Error)
	require.NotNil(t, result.Value)
	assert.InDelta(t, 3.0, *result.Value, 1e-9)
}

func TestResolveCompositesNoDerivedTestsPassThrough(t *testing.T) {
	testList := listOf(simpleTest("test1"), simpleTest("test2"))
	submitted := map[string]models.SubmittedValue{
		"test1": submittedNumber("test1", 1),
		"test2": submittedNumber("test2", 2),
	}

	output := ResolveComposites(testList, submitted)
	require.True(t, output.Success)
	assert.Equal(t, 1.0, *output.Results["test1"].Value)
	assert.Equal(t, 2.0, *output.Results["test2"].Value)
}

func TestResolveCompositesTransitive(t *testing.T) {
	// declaration order does not matter: c2 references c1 but is listed first
	testList := listOf(
		simpleTest("base"),
		compositeTest("c2", "result = c1 * 10"),
		compositeTest("c1", "result = base + 1"),
	)
	submitted := map[string]models.SubmittedValue{
		"base": submittedNumber("base", 4),
		"c1":   {Slug: "c1"},
		"c2":   {Slug: "c2"},
	}

	output := ResolveComposites(testList, submitted)
	require.True(t, output.Success)
	assert.InDelta(t, 5.0, *output.Results["c1"].Value, 1e-9)
	assert.InDelta(t, 50.0, *output.Results["c2"].Value, 1e-9)
}

func TestResolveCompositesCycle(t *testing.T) {
	testList := listOf(
		simpleTest("test1"),
		simpleTest("test2"),
		compositeTest("cyclic1", "result = cyclic2 + test2"),
		compositeTest("cyclic2", "result = cyclic1 + test1"),
		compositeTest("testc", "result = test1 + test2"),
	)
	submitted := map[string]models.SubmittedValue{
		"test1":   submittedNumber("test1", 1),
		"test2":   submittedNumber("test2", 2),
		"cyclic1": {Slug: "cyclic1"},
		"cyclic2": {Slug: "cyclic2"},
		"testc":   {Slug: "testc"},
	}

	output := ResolveComposites(testList, submitted)
	require.True(t, output.Success)

	assert.Equal(t, "Cyclic test dependency", output.Results["cyclic1"].Error)
	assert.Nil(t, output.Results["cyclic1"].Value)
	assert.Equal(t, "Cyclic test dependency", output.Results["cyclic2"].Error)
	assert.Nil(t, output.Results["cyclic2"].Value)

	// the unrelated composite still resolves
	require.NotNil(t, output.Results["testc"].Value)
	assert.InDelta(t, 3.0, *output.Results["testc"].Value, 1e-9)
}

func TestResolveCompositesProcedureErrorIsPerTest(t *testing.T) {
	testList := listOf(
		simpleTest("test1"),
		compositeTest("bad", "result = test1 / 0"),
		compositeTest("good", "result = test1 * 2"),
	)
	submitted := map[string]models.SubmittedValue{
		"test1": submittedNumber("test1", 3),
		"bad":   {Slug: "bad"},
		"good":  {Slug: "good"},
	}

	output := ResolveComposites(testList, submitted)
	require.True(t, output.Success)

	assert.Contains(t, output.Results["bad"].Error, "Invalid Test Procedure: bad,")
	assert.Contains(t, output.Results["bad"].Error, "line 1: ZeroDivisionError: division by zero")
	assert.Empty(t, output.Results["good"].Error)
	assert.InDelta(t, 6.0, *output.Results["good"].Value, 1e-9)
}

func TestResolveCompositesSubmittedValueCrossCheck(t *testing.T) {
	testList := listOf(
		simpleTest("test1"),
		simpleTest("test2"),
		compositeTest("testc", "result = test1 + test2"),
	)

	t.Run("matching submitted value accepted", func(t *testing.T) {
		submitted := map[string]models.SubmittedValue{
			"test1": submittedNumber("test1", 1),
			"test2": submittedNumber("test2", 2),
			"testc": submittedNumber("testc", 3.0000000001),
		}
		output := ResolveComposites(testList, submitted)
		assert.Empty(t, output.Results["testc"].Error)
	})

	t.Run("mismatched submitted value rejected", func(t *testing.T) {
		submitted := map[string]models.SubmittedValue{
			"test1": submittedNumber("test1", 1),
			"test2": submittedNumber("test2", 2),
			"testc": submittedNumber("testc", 999),
		}
		output := ResolveComposites(testList, submitted)
		assert.Contains(t, output.Results["testc"].Error, "does not match")
	})
}

func TestResolveCompositesIdempotent(t *testing.T) {
	testList := listOf(
		simpleTest("test1"),
		compositeTest("testc", "result = test1 * 2"),
	)
	submitted := map[string]models.SubmittedValue{
		"test1": submittedNumber("test1", 21),
		"testc": {Slug: "testc"},
	}

	first := ResolveComposites(testList, submitted)
	second := ResolveComposites(testList, submitted)
	assert.Equal(t, first, second)
}

func TestResolveCompositesUploadChain(t *testing.T) {
	testList := listOf(
		models.TestDefinition{
			Slug:      "file_upload",
			Type:      models.TestTypeUpload,
			Procedure: "result = json.load(FILE)",
		},
		models.TestDefinition{
			Slug:      "greeting",
			Type:      models.TestTypeStringComposite,
			Procedure: "result = 'hello %s' % file_upload['baz']['baz1']",
		},
	)
	submitted := map[string]models.SubmittedValue{
		"file_upload": {
			Slug:     "file_upload",
			Filename: "data.json",
			FileData: []byte(`{"baz": {"baz1": "world"}}`),
		},
		"greeting": {Slug: "greeting"},
	}

	output := ResolveComposites(testList, submitted)
	require.True(t, output.Success)

	upload := output.Results["file_upload"]
	assert.Empty(t, upload.Error)
	require.Len(t, upload.Attachments, 1)
	assert.Equal(t, "data.json", upload.Attachments[0].Filename)
	assert.False(t, upload.Attachments[0].SystemGenerated)

	greeting := output.Results["greeting"]
	assert.Empty(t, greeting.Error)
	require.NotNil(t, greeting.StringValue)
	assert.Equal(t, "hello world", *greeting.StringValue)
}

func TestResolveCompositesUtilsAttachment(t *testing.T) {
	testList := listOf(
		simpleTest("test1"),
		compositeTest("testc", `
written = UTILS.write_file('summary.txt', 'value doubled')
result = test1 * 2
`),
	)
	submitted := map[string]models.SubmittedValue{
		"test1": submittedNumber("test1", 5),
		"testc": {Slug: "testc"},
	}

	output := ResolveComposites(testList, submitted)
	result := output.Results["testc"]
	require.Empty(t, result.Error)
	require.Len(t, result.Attachments, 1)
	assert.Equal(t, "summary.txt", result.Attachments[0].Filename)
	assert.True(t, result.Attachments[0].SystemGenerated)
	assert.Equal(t, []byte("value doubled"), result.Attachments[0].Data)
}

func TestResolveCompositesCommentsMerge(t *testing.T) {
	testList := listOf(
		simpleTest("test1"),
		compositeTest("testc", `
result = test1 * 2
comment = 'computed from test1'
`),
	)
	submitted := map[string]models.SubmittedValue{
		"test1": submittedNumber("test1", 5),
		"testc": {Slug: "testc", Comment: "looks fine"},
	}

	output := ResolveComposites(testList, submitted)
	assert.Equal(t, "looks fine\ncomputed from test1", output.Results["testc"].Comment)
}

func TestResolveCompositesSkippedComposite(t *testing.T) {
	testList := listOf(
		simpleTest("test1"),
		compositeTest("testc", "result = test1 * 2"),
	)
	submitted := map[string]models.SubmittedValue{
		"test1": submittedNumber("test1", 5),
		"testc": {Slug: "testc", Skipped: true},
	}

	output := ResolveComposites(testList, submitted)
	result := output.Results["testc"]
	assert.True(t, result.Skipped)
	assert.Nil(t, result.Value)
	assert.Empty(t, result.Error)
}

func TestResolveCompositesEmptyList(t *testing.T) {
	output := ResolveComposites(models.TestListDefinition{}, nil)
	assert.False(t, output.Success)
	assert.NotEmpty(t, output.Errors)
}
