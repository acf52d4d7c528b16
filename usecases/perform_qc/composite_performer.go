package perform_qc

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/models/calc"
	"github.com/qatrackplus/qatrack-backend/pure_utils"
	"github.com/qatrackplus/qatrack-backend/usecases/calc_eval"
)

type resolutionState int

const (
	statePending resolutionState = iota
	stateResolving
	stateDone
)

// ResolveComposites produces a ResolvedResult for every test in the list.
// Non-derived tests pass through from the normalized submission; constants
// resolve to their declared value; composites and upload calculations are
// evaluated on demand, recursing into referenced tests as needed. A cycle, or
// a procedure failure, becomes that test's error without aborting the rest of
// the batch.
func ResolveComposites(
	testList models.TestListDefinition,
	submitted map[string]models.SubmittedValue,
) models.ResolveOutput {
	tests := testList.FlattenedTests()
	if len(tests) == 0 {
		return models.ResolveOutput{
			Success: false,
			Errors:  []string{"test list has no tests to resolve"},
		}
	}

	r := &resolver{
		testsBySlug: pure_utils.MapSliceToMap(tests, func(t models.TestDefinition) (string, models.TestDefinition) {
			return t.Slug, t
		}),
		submitted: submitted,
		context:   make(map[string]any, len(tests)),
		state:     make(map[string]resolutionState, len(tests)),
		failures:  make(map[string]error),
		results:   make(map[string]models.ResolvedResult, len(tests)),
	}

	var derived []models.TestDefinition
	for _, test := range tests {
		if test.IsDerived() {
			derived = append(derived, test)
			continue
		}
		r.resolveLeaf(test)
	}

	for _, test := range derived {
		// errors are recorded per result, the batch keeps going
		_ = r.resolveDerived(test.Slug)
	}

	return models.ResolveOutput{Success: true, Results: r.results}
}

type resolver struct {
	testsBySlug map[string]models.TestDefinition
	submitted   map[string]models.SubmittedValue
	context     map[string]any
	state       map[string]resolutionState
	failures    map[string]error
	results     map[string]models.ResolvedResult
}

// resolveLeaf passes a non-derived test's normalized value through to the
// result map and seeds the evaluation context with it.
func (r *resolver) resolveLeaf(test models.TestDefinition) {
	value := r.submitted[test.Slug]

	result := models.ResolvedResult{
		Slug:        test.Slug,
		Value:       value.Value,
		StringValue: value.StringValue,
		Date:        value.DateValue,
		Datetime:    value.DatetimeValue,
		Skipped:     value.Skipped,
		Comment:     value.Comment,
	}
	r.results[test.Slug] = result
	r.state[test.Slug] = stateDone
	r.context[test.Slug] = contextValue(result, value)
}

// contextValue is the shape under which a resolved test is visible to
// calculation procedures.
func contextValue(result models.ResolvedResult, submitted models.SubmittedValue) any {
	switch {
	case result.Skipped:
		return nil
	case result.Value != nil:
		return *result.Value
	case result.StringValue != nil:
		return *result.StringValue
	case result.Date != nil:
		return *result.Date
	case result.Datetime != nil:
		return *result.Datetime
	case len(submitted.FileData) > 0:
		return calc.FileHandle{Filename: submitted.Filename, Data: submitted.FileData}
	}
	return nil
}

func (r *resolver) resolveDerived(slug string) error {
	switch r.state[slug] {
	case stateDone:
		return r.failures[slug]
	case stateResolving:
		return errors.Wrapf(calc.ErrCyclicDependency, "'%s'", slug)
	}

	r.state[slug] = stateResolving
	err := r.perform(slug)
	r.state[slug] = stateDone

	if err != nil {
		r.failures[slug] = err
		r.results[slug] = models.ResolvedResult{
			Slug:    slug,
			Error:   formatProcedureError(slug, err),
			Comment: r.submitted[slug].Comment,
		}
	}
	return err
}

func formatProcedureError(slug string, err error) string {
	if errors.Is(err, calc.ErrCyclicDependency) {
		return models.ErrMsgCyclicTestDependency
	}
	return fmt.Sprintf("Invalid Test Procedure: %s, %s", slug, err.Error())
}

func (r *resolver) perform(slug string) error {
	test := r.testsBySlug[slug]
	value := r.submitted[slug]

	if value.Skipped {
		r.results[slug] = models.ResolvedResult{Slug: slug, Skipped: true, Comment: value.Comment}
		r.context[slug] = nil
		return nil
	}

	procedure, err := calc.ParseProcedure(test.Procedure)
	if err != nil {
		return err
	}

	bindings := make(map[string]any)
	var attachments []models.AttachmentPayload

	if test.Type == models.TestTypeUpload {
		if len(value.FileData) == 0 {
			return errors.New("no file was uploaded")
		}
		bindings["FILE"] = calc.FileHandle{Filename: value.Filename, Data: value.FileData}
		attachments = append(attachments, models.AttachmentPayload{
			Filename: value.Filename,
			Data:     value.FileData,
		})
	}

	writer := &attachmentCollector{attachments: &attachments}
	run, err := calc_eval.RunProcedure(procedure, contextReader{r}, writer, bindings)
	if err != nil {
		return err
	}

	result := models.ResolvedResult{
		Slug:        slug,
		Comment:     mergeComments(value.Comment, run.Comment),
		Attachments: attachments,
	}

	switch test.Type {
	case models.TestTypeStringComposite:
		str, err := renderString(run.Value)
		if err != nil {
			return err
		}
		result.StringValue = &str
		r.context[slug] = str

	case models.TestTypeComposite:
		number, err := toNumber(run.Value)
		if err != nil {
			return err
		}
		if value.Value != nil &&
			!pure_utils.AlmostEqual(*value.Value, number, pure_utils.DefaultSignificantFigures) {
			return errors.Newf("submitted value %v does not match the calculated value %v",
				*value.Value, number)
		}
		result.Value = &number
		r.context[slug] = number

	default: // upload with a calculation procedure
		r.context[slug] = run.Value
		if number, err := toNumber(run.Value); err == nil {
			result.Value = &number
		} else if str, err := renderString(run.Value); err == nil {
			result.StringValue = &str
		}
	}

	r.results[slug] = result
	return nil
}

func mergeComments(submitted, computed string) string {
	switch {
	case submitted == "":
		return computed
	case computed == "":
		return submitted
	}
	return submitted + "\n" + computed
}

func toNumber(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case nil:
		return 0, errors.New("procedure did not produce a numeric result")
	}
	return 0, errors.Newf("procedure produced %T, expected a number", value)
}

// renderString renders a procedure result for a string-valued test; structured
// values are stored as their JSON encoding.
func renderString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case float64:
		return pure_utils.FormatToPrecision(v, pure_utils.DefaultSignificantFigures), nil
	case map[string]any, []any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(encoded), nil
	}
	return "", errors.Newf("procedure produced %T, expected a string", value)
}

// contextReader exposes resolved test values to procedures, resolving derived
// dependencies on the fly.
type contextReader struct {
	r *resolver
}

func (c contextReader) ReadVariable(name string) (any, error) {
	if c.r.state[name] == stateDone {
		if err := c.r.failures[name]; err != nil {
			return nil, err
		}
		return c.r.context[name], nil
	}

	test, known := c.r.testsBySlug[name]
	if !known || !test.IsDerived() {
		return nil, errors.Wrapf(calc.ErrUndefinedVariable, "'%s'", name)
	}

	if err := c.r.resolveDerived(name); err != nil {
		return nil, err
	}
	return c.r.context[name], nil
}

// attachmentCollector implements the UTILS binding: files written by a
// procedure become system-generated attachments of the owning test.
type attachmentCollector struct {
	attachments *[]models.AttachmentPayload
}

func (c *attachmentCollector) WriteFile(filename string, content any) error {
	data, err := encodeAttachment(content)
	if err != nil {
		return err
	}
	*c.attachments = append(*c.attachments, models.AttachmentPayload{
		Filename:        filename,
		Data:            data,
		SystemGenerated: true,
	})
	return nil
}

func encodeAttachment(content any) ([]byte, error) {
	switch v := content.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case calc.FileHandle:
		return v.Data, nil
	}
	return json.Marshal(content)
}
