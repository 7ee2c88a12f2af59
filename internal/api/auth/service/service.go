package authService

import (
	"TravelLedger/internal/api/auth"
	authRepository "TravelLedger/internal/api/auth/repository"
	"TravelLedger/internal/entity"
	"TravelLedger/pkg/bcrypt"
	"TravelLedger/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

type AuthService interface {
	User() UserDomain
	Auth() AuthDomain
	GetRepository() authRepository.Repository
}

type UserDomain interface {
	RegisterUser(c context.Context, req auth.CreateUserRequest) (entity.User, error)
	GetByID(c context.Context, id string) (entity.User, error)
	GetByEmail(c context.Context, email string) (entity.User, error)
}

type AuthDomain interface {
	Login(c context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error)
}

type authService struct {
	log            *logrus.Logger
	authRepository authRepository.Repository

	userDomain UserDomain
	authDomain AuthDomain
}

func (a *authService) User() UserDomain {
	return a.userDomain
}

func (a *authService) Auth() AuthDomain {
	return a.authDomain
}

func (a *authService) GetRepository() authRepository.Repository {
	return a.authRepository
}

type userDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	bcryptUtils bcrypt.IBcrypt
	utils       utils.IUtils
}

type authDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	bcryptUtils bcrypt.IBcrypt
	tokenTTL    time.Duration
}

func New(log *logrus.Logger,
	authRepo authRepository.Repository,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
	tokenTTL time.Duration,
) AuthService {
	return &authService{
		log:            log,
		authRepository: authRepo,

		userDomain: &userDomainImpl{log: log, repo: authRepo, bcryptUtils: bcryptUtils, utils: utils},
		authDomain: &authDomainImpl{log: log, repo: authRepo, bcryptUtils: bcryptUtils, tokenTTL: tokenTTL},
	}
}
