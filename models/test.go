package models

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
)

type TestType string

const (
	TestTypeSimple          TestType = "simple"
	TestTypeString          TestType = "string"
	TestTypeBoolean         TestType = "boolean"
	TestTypeMultipleChoice  TestType = "multchoice"
	TestTypeDate            TestType = "date"
	TestTypeDatetime        TestType = "datetime"
	TestTypeUpload          TestType = "upload"
	TestTypeConstant        TestType = "constant"
	TestTypeComposite       TestType = "composite"
	TestTypeStringComposite TestType = "string_composite"
	TestTypeUnknown         TestType = "unknown"
)

func TestTypeFromString(s string) TestType {
	switch TestType(s) {
	case TestTypeSimple, TestTypeString, TestTypeBoolean, TestTypeMultipleChoice,
		TestTypeDate, TestTypeDatetime, TestTypeUpload, TestTypeConstant,
		TestTypeComposite, TestTypeStringComposite:
		return TestType(s)
	}
	return TestTypeUnknown
}

// IsComposite reports whether the test's value is computed from a calculation
// procedure rather than submitted directly.
func (t TestType) IsComposite() bool {
	return t == TestTypeComposite || t == TestTypeStringComposite
}

// IsStringType reports whether the test's value lives in string_value.
func (t TestType) IsStringType() bool {
	return t == TestTypeString || t == TestTypeMultipleChoice || t == TestTypeStringComposite
}

func (t TestType) IsDateType() bool {
	return t == TestTypeDate || t == TestTypeDatetime
}

// TestDefinition describes one test of a test list. The slug doubles as the
// variable name under which the test's value is visible to calculation
// procedures, so it must be a valid identifier.
type TestDefinition struct {
	Id            string
	Name          string
	Slug          string
	Description   string
	Type          TestType
	Procedure     string
	ConstantValue *float64
	Choices       []string
	FormatString  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsDerived reports whether the test's value must go through the composite
// performer: composites always, uploads when they carry a procedure.
func (t TestDefinition) IsDerived() bool {
	if t.Type.IsComposite() {
		return true
	}
	return t.Type == TestTypeUpload && strings.TrimSpace(t.Procedure) != ""
}

var slugPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func ValidateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}

// ValidateFormatString checks that a printf-style numeric format produces
// sensible output for a float argument.
func ValidateFormatString(format string) error {
	if format == "" {
		return nil
	}
	if strings.Contains(fmt.Sprintf(format, 1.2345), "%!") {
		return ErrInvalidFormat
	}
	return nil
}

// Validate enforces definition-time invariants. Evaluation assumes these hold
// and does not re-check them.
func (t TestDefinition) Validate() error {
	if err := ValidateSlug(t.Slug); err != nil {
		return err
	}
	if err := ValidateFormatString(t.FormatString); err != nil {
		return err
	}
	switch t.Type {
	case TestTypeConstant:
		if t.ConstantValue == nil {
			return ErrConstantRequired
		}
	case TestTypeComposite, TestTypeStringComposite:
		if strings.TrimSpace(t.Procedure) == "" {
			return ErrProcedureRequired
		}
	case TestTypeMultipleChoice:
		if len(t.Choices) < 2 {
			return ErrChoicesRequired
		}
	}
	return nil
}

func (t TestDefinition) IsValidChoice(value string) bool {
	return slices.Contains(t.Choices, value)
}
