package auth

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/leelawheel/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	token   string
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.token = "open-sesame"
	hash, err := bcrypt.GenerateFromPassword([]byte(s.token), bcrypt.MinCost)
	s.Require().NoError(err)
	s.service = New(Config{TokenHash: string(hash)}, testutil.NopLogger())
}

func (s *ServiceSuite) TestVerifyAcceptsToken() {
	s.True(s.service.Enabled())
	s.NoError(s.service.Verify(s.token))
}

func (s *ServiceSuite) TestVerifyRejectsWrongToken() {
	s.ErrorIs(s.service.Verify("open-sesame!"), ErrInvalidCredentials)
	s.ErrorIs(s.service.Verify(""), ErrInvalidCredentials)
}

func (s *ServiceSuite) TestVerifyDisabledWithoutHash() {
	service := New(Config{}, testutil.NopLogger())
	s.False(service.Enabled())
	s.ErrorIs(service.Verify(s.token), ErrAdminDisabled)
}

func (s *ServiceSuite) TestVerifyRejectsGarbageHash() {
	service := New(Config{TokenHash: "not-a-hash"}, testutil.NopLogger())
	s.ErrorIs(service.Verify(s.token), ErrInvalidCredentials)
}

func (s *ServiceSuite) TestHashTokenRoundTrip() {
	token, err := GenerateToken()
	s.Require().NoError(err)
	s.Len(token, 32)

	hash, err := HashToken(token)
	s.Require().NoError(err)

	service := New(Config{TokenHash: hash}, testutil.NopLogger())
	s.NoError(service.Verify(token))
}

func (s *ServiceSuite) TestHashTokenRejectsEmpty() {
	_, err := HashToken("")
	s.ErrorIs(err, ErrInvalidCredentials)
}
