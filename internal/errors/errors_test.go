package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-balance/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestErrorString() {
	err := errors.NotFound("item not in catalog")
	s.Equal("NOT_FOUND: item not in catalog", err.Error())

	wrapped := errors.Wrap(err, "failed to acquire item")
	s.Equal("NOT_FOUND: failed to acquire item: NOT_FOUND: item not in catalog", wrapped.Error())
}

func (s *ErrorsTestSuite) TestWithMeta() {
	err := errors.FailedPrecondition("nothing equipped").
		WithMeta("slot", "weapon").
		WithMeta("character_id", "char-1")

	s.Equal("weapon", err.Meta["slot"])
	s.Equal("char-1", errors.GetMeta(err)["character_id"])
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	base := errors.FailedPrecondition("player has been defeated")
	wrapped := errors.Wrapf(base, "battle %d", 3)

	s.True(errors.IsFailedPrecondition(wrapped))
	s.Equal("battle 3", errors.GetMessage(wrapped))
}

func (s *ErrorsTestSuite) TestWrapPlainErrorIsInternal() {
	wrapped := errors.Wrap(fmt.Errorf("connection refused"), "failed to store report")

	s.True(errors.IsInternal(wrapped))
	s.ErrorContains(wrapped, "connection refused")
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	wrapped := errors.WrapWithCode(fmt.Errorf("yaml: line 3"), errors.CodeInvalidArgument, "bad catalog")

	s.True(errors.IsInvalidArgument(wrapped))
	s.Equal("bad catalog", errors.GetMessage(wrapped))
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "nothing"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeInternal, "nothing"))
}

func (s *ErrorsTestSuite) TestErrorIsComparesCodes() {
	err := errors.NotFoundf("archetype %s", "Golgi")

	s.True(errors.Is(err, errors.NotFound("other")))
	s.False(errors.Is(err, errors.Internal("other")))
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.Equal(errors.CodeAlreadyExists, errors.GetCode(errors.AlreadyExistsf("item %s", "Sword")))
}

func (s *ErrorsTestSuite) TestExitCode() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 0},
		{errors.CodeInvalidArgument, 2},
		{errors.CodeNotFound, 3},
		{errors.CodeAlreadyExists, 4},
		{errors.CodeFailedPrecondition, 5},
		{errors.CodeInternal, 1},
	}

	for _, tc := range testCases {
		s.Run(tc.code.String(), func() {
			s.Equal(tc.expected, tc.code.ExitCode())
		})
	}
}
