package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorUtilsSuite struct {
	suite.Suite
}

func TestErrorUtilsSuite(t *testing.T) {
	suite.Run(t, new(ErrorUtilsSuite))
}

func (s *ErrorUtilsSuite) TestWrapIfNotNilNil() {
	s.NoError(WrapIfNotNil(nil, "ignored"))
}

func (s *ErrorUtilsSuite) TestWrapIfNotNilAddsCallerAndContext() {
	base := errors.New("boom")

	err := WrapIfNotNil(base, "transcripts")

	s.Require().Error(err)
	s.ErrorIs(err, base)
	s.Contains(err.Error(), "utils.(*ErrorUtilsSuite).TestWrapIfNotNilAddsCallerAndContext")
	s.Contains(err.Error(), "transcripts: boom")
}

func (s *ErrorUtilsSuite) TestWrapUsesStaticPrefix() {
	base := errors.New("access denied")

	err := Wrap(base, "failed to upload file")

	s.Equal("failed to upload file: access denied", err.Error())
	s.ErrorIs(err, base)
	s.NoError(Wrap(nil, "failed to upload file"))
}
