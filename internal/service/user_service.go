package service

import (
	"context"
	"fmt"
	"time"

	"docvault-rag-be/internal/apperror"
	"docvault-rag-be/internal/authz"
	"docvault-rag-be/internal/dto"
	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/pkg/mailer"
	"docvault-rag-be/internal/repository/specification"
	"docvault-rag-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IUserService interface {
	Create(ctx context.Context, identity entity.Identity, req *dto.CreateUserRequest) (*dto.CreateUserResponse, error)
	List(ctx context.Context, identity entity.Identity) ([]dto.UserDTO, error)
	Me(ctx context.Context, identity entity.Identity) (*dto.UserDTO, error)
}

type userService struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	auditService IAuditService
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, emailService mailer.IEmailService, auditService IAuditService) IUserService {
	return &userService{
		uowFactory:   uowFactory,
		emailService: emailService,
		auditService: auditService,
	}
}

func (s *userService) Create(ctx context.Context, identity entity.Identity, req *dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	decision := authz.Decide(identity, entity.ActionManageUsers, nil)
	if !decision.Allowed {
		record := NewAccessDecision(identity, entity.ActionManageUsers, nil, decision, map[string]interface{}{"email": req.Email})
		if err := s.auditService.RecordNow(ctx, record); err != nil {
			return nil, err
		}
		s.auditService.Publish(record, true)
		return nil, apperror.PermissionDenied(string(decision.Reason))
	}

	role, err := entity.ParseRole(req.Role)
	if err != nil {
		return nil, apperror.ValidationError("role")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, _ := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if existing != nil {
		return nil, apperror.ValidationError("email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: &hashStr,
		Role:         role,
		Department:   req.Department,
		Status:       entity.UserStatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	record := NewAccessDecision(identity, entity.ActionManageUsers, &user.Id, decision, map[string]interface{}{
		"email":      user.Email,
		"role":       user.Role.String(),
		"department": user.Department,
	})

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.auditService.Record(ctx, uow, record); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.auditService.Publish(record, true)

	// Credentials mail is best effort.
	go func() {
		if mailErr := s.emailService.SendCredentials(user.Email, user.FullName, req.Password); mailErr != nil {
			fmt.Printf("Error sending credentials email: %v\n", mailErr)
		}
	}()

	return &dto.CreateUserResponse{User: userDTO(user)}, nil
}

func (s *userService) List(ctx context.Context, identity entity.Identity) ([]dto.UserDTO, error) {
	decision := authz.Decide(identity, entity.ActionManageUsers, nil)
	record := NewAccessDecision(identity, entity.ActionManageUsers, nil, decision, map[string]interface{}{"op": "list"})
	if !decision.Allowed {
		if err := s.auditService.RecordNow(ctx, record); err != nil {
			return nil, err
		}
		s.auditService.Publish(record, true)
		return nil, apperror.PermissionDenied(string(decision.Reason))
	}
	s.auditService.Publish(record, false)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, userDTO(u))
	}
	return out, nil
}

func (s *userService) Me(ctx context.Context, identity entity.Identity) (*dto.UserDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: identity.SubjectId})
	if err != nil || user == nil {
		return nil, apperror.AuthenticationFailed()
	}
	d := userDTO(user)
	return &d, nil
}

func userDTO(u *entity.User) dto.UserDTO {
	return dto.UserDTO{
		Id:         u.Id,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       u.Role.String(),
		Department: u.Department,
	}
}
