package auth

import (
	"context"
	"errors"
	"time"

	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"golang.org/x/crypto/bcrypt"

	"github.com/winco-group/attendance-backend-go/internal/domain/auth"
	"github.com/winco-group/attendance-backend-go/internal/domain/employee"
	"github.com/winco-group/attendance-backend-go/internal/pkg/jwt"
	"github.com/winco-group/attendance-backend-go/internal/pkg/oauth"
)

type authService struct {
	employeeRepo  employee.EmployeeRepository
	jwtService    jwt.Service
	googleService oauth.GoogleService
}

func NewAuthService(
	employeeRepo employee.EmployeeRepository,
	jwtService jwt.Service,
	googleService oauth.GoogleService,
) auth.AuthService {
	return &authService{
		employeeRepo:  employeeRepo,
		jwtService:    jwtService,
		googleService: googleService,
	}
}

func (s *authService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := s.employeeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}
	if !emp.IsActive() {
		return auth.TokenResponse{}, employee.ErrEmployeeInactive
	}
	if emp.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(emp)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrTokenRevoked
	}

	employeeID, err := s.decodeRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, err
	}
	if !emp.IsActive() {
		return auth.TokenResponse{}, employee.ErrEmployeeInactive
	}

	// Rotate: the presented refresh token becomes single-use.
	s.jwtService.RevokeToken(refreshToken)

	return s.issueTokens(emp)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if _, err := s.decodeRefreshToken(refreshToken); err != nil {
		return err
	}
	s.jwtService.RevokeToken(refreshToken)
	return nil
}

func (s *authService) LoginWithGoogle(ctx context.Context, userAgent string) (string, error) {
	state := s.googleService.GenerateState(userAgent)
	return s.googleService.RedirectURL(state), nil
}

func (s *authService) OAuthCallbackGoogle(ctx context.Context, code string) (auth.TokenResponse, error) {
	token, err := s.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	info, err := s.googleService.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	if !info.VerifiedEmail {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	emp, err := s.employeeRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, employee.ErrNoLinkedEmployee
		}
		return auth.TokenResponse{}, err
	}
	if !emp.IsActive() {
		return auth.TokenResponse{}, employee.ErrEmployeeInactive
	}

	return s.issueTokens(emp)
}

func (s *authService) issueTokens(emp employee.Employee) (auth.TokenResponse, error) {
	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(emp.ID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresIn:  accessExpiresAt,
		RefreshTokenExpiresIn: refreshExpiresAt,
	}, nil
}

func (s *authService) decodeRefreshToken(tokenString string) (string, error) {
	token, err := s.jwtService.JWTAuth().Decode(tokenString)
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	if err := jwxjwt.Validate(token, jwxjwt.WithAcceptableSkew(30*time.Second)); err != nil {
		return "", auth.ErrInvalidToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return "", auth.ErrInvalidToken
	}
	employeeID, ok := token.Get("employee_id")
	if !ok {
		return "", auth.ErrInvalidToken
	}
	id, ok := employeeID.(string)
	if !ok || id == "" {
		return "", auth.ErrInvalidToken
	}
	return id, nil
}
