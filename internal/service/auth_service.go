package service

import (
	"context"
	"os"
	"time"

	"docvault-rag-be/internal/apperror"
	"docvault-rag-be/internal/authz"
	"docvault-rag-be/internal/dto"
	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/repository/specification"
	"docvault-rag-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 24 * time.Hour

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	auditService IAuditService
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, auditService IAuditService) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		auditService: auditService,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		s.publishLogin(entity.Identity{}, entity.OutcomeDenied, map[string]interface{}{"email": req.Email, "cause": "unknown_user"})
		return nil, apperror.AuthenticationFailed()
	}

	identity := user.Identity()

	if user.Status != entity.UserStatusActive {
		s.publishLogin(identity, entity.OutcomeDenied, map[string]interface{}{"cause": "blocked"})
		return nil, apperror.AuthenticationFailed()
	}
	if user.PasswordHash == nil {
		s.publishLogin(identity, entity.OutcomeDenied, map[string]interface{}{"cause": "no_password"})
		return nil, apperror.AuthenticationFailed()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		s.publishLogin(identity, entity.OutcomeDenied, map[string]interface{}{"cause": "bad_password"})
		return nil, apperror.AuthenticationFailed()
	}

	claims := jwt.MapClaims{
		"sub":        user.Id.String(),
		"role":       user.Role.String(),
		"department": user.Department,
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return nil, err
	}

	_ = uow.UserRepository().TouchLastLogin(ctx, user.Id)

	s.publishLogin(identity, entity.OutcomeAllowed, nil)

	return &dto.LoginResponse{
		AccessToken: signed,
		User: dto.UserDTO{
			Id:         user.Id,
			Email:      user.Email,
			FullName:   user.FullName,
			Role:       user.Role.String(),
			Department: user.Department,
		},
	}, nil
}

// publishLogin emits the login decision on the async path. Login is not a
// mutating document action, so a degraded audit sink does not lock users out.
func (s *authService) publishLogin(identity entity.Identity, outcome entity.Outcome, details map[string]interface{}) {
	decision := authz.Allow()
	if outcome == entity.OutcomeDenied {
		decision = authz.Deny(authz.ReasonUnauthenticated)
	}
	record := NewAccessDecision(identity, entity.ActionLogin, nil, decision, details)
	s.auditService.Publish(record, false)
}
