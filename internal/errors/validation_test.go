package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-balance/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationErrorListsFieldsInOrder() {
	ve := errors.NewValidationError()
	ve.AddFieldError("seed", "is invalid")
	ve.AddFieldError("archetype", "is required")
	ve.AddFieldErrorf("enemies_per_wave", "must be at least %d", 1)

	s.Assert().True(ve.HasErrors())
	s.Assert().Equal(
		"validation failed: archetype: is required; enemies_per_wave: must be at least 1; seed: is invalid",
		ve.Error(),
	)

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("player.name", "is required").
		Fieldf("battle.max_rounds", "must be between %d and %d", 1, 100).
		RequiredField("Roller").
		InvalidField("reports.backend", "unknown backend")

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	s.Assert().Nil(vb.Build())
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "Mitochondria", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("archetype", tc.value, vb)
			err := vb.Build()
			if tc.shouldErr {
				s.Assert().NotNil(err)
			} else {
				s.Assert().Nil(err)
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateRangeAndEnum() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("critical_chance", 120, 0, 100, vb)
	errors.ValidateRange("agility", 10, 0, 100, vb)
	errors.ValidateEnum("backend", "postgres", []string{"memory", "redis"}, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	validationErrors := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["critical_chance"][0], "must be between 0 and 100")
	s.Assert().Contains(validationErrors["backend"][0], "must be one of: memory, redis")
	s.Assert().NotContains(validationErrors, "agility")
}
