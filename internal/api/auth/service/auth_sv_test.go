package authService

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/net/context"

	"TravelLedger/internal/api/auth"
	authRepository "TravelLedger/internal/api/auth/repository"
	"TravelLedger/internal/testkit"
	"TravelLedger/pkg/bcrypt"
	jwtPkg "TravelLedger/pkg/jwt"
	"TravelLedger/pkg/utils"
)

type AuthServiceSuite struct {
	suite.Suite
	svc AuthService
	ctx context.Context
}

func (s *AuthServiceSuite) SetupTest() {
	s.T().Setenv(jwtPkg.AccessTokenSecret, "test-secret")

	db := testkit.DB(s.T())
	log := testkit.Logger()
	s.svc = New(log, authRepository.New(db, log), bcrypt.NewWithCost(4), utils.New(), time.Hour)
	s.ctx = context.Background()
}

func (s *AuthServiceSuite) register(email string) {
	_, err := s.svc.User().RegisterUser(s.ctx, auth.CreateUserRequest{
		Email:     email,
		FirstName: " Ana ",
		LastName:  "Diaz",
		Password:  "correct-horse",
	})
	s.Require().NoError(err)
}

func (s *AuthServiceSuite) TestRegisterNormalizesAndHashes() {
	user, err := s.svc.User().RegisterUser(s.ctx, auth.CreateUserRequest{
		Email:     "  Ana@Example.COM ",
		FirstName: " Ana ",
		LastName:  "Diaz",
		Password:  "correct-horse",
	})
	s.Require().NoError(err)

	s.Equal("ana@example.com", user.Email)
	s.Equal("Ana", user.FirstName)
	s.NotEqual("correct-horse", user.Password)
	s.NoError(bcrypt.New().ComparePassword(user.Password, "correct-horse"))
}

func (s *AuthServiceSuite) TestRegisterDuplicateEmailConflicts() {
	s.register("ana@example.com")

	_, err := s.svc.User().RegisterUser(s.ctx, auth.CreateUserRequest{
		Email:     "ANA@example.com",
		FirstName: "Other",
		LastName:  "Person",
		Password:  "another-secret",
	})
	s.ErrorIs(err, auth.ErrEmailAlreadyExists)
}

func (s *AuthServiceSuite) TestLoginIssuesToken() {
	s.register("ana@example.com")

	res, err := s.svc.Auth().Login(s.ctx, auth.LoginUserRequest{Email: "ana@example.com", Password: "correct-horse"})
	s.Require().NoError(err)

	s.NotEmpty(res.AccessToken)
	s.Equal("ana@example.com", res.User.Email)
	s.WithinDuration(time.Now().Add(time.Hour), res.ExpiresAt, time.Minute)

	token, err := jwtPkg.Parse(res.AccessToken, jwtPkg.AccessTokenSecret)
	s.Require().NoError(err)
	data, err := jwtPkg.UserFromToken(token)
	s.Require().NoError(err)
	s.Equal(res.User.ID, data.ID)
}

func (s *AuthServiceSuite) TestLoginRejectsBadCredentials() {
	s.register("ana@example.com")

	_, err := s.svc.Auth().Login(s.ctx, auth.LoginUserRequest{Email: "ana@example.com", Password: "wrong-password"})
	s.ErrorIs(err, auth.ErrInvalidEmailOrPassword)

	_, err = s.svc.Auth().Login(s.ctx, auth.LoginUserRequest{Email: "nobody@example.com", Password: "correct-horse"})
	s.ErrorIs(err, auth.ErrInvalidEmailOrPassword)
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}
