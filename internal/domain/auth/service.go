package auth

import "context"

type AuthService interface {
	// Login authenticates an employee by email and password
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Refresh exchanges a valid refresh token for a new token pair
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)

	// Logout revokes the refresh token
	Logout(ctx context.Context, refreshToken string) error

	// LoginWithGoogle returns the Google consent redirect URL
	LoginWithGoogle(ctx context.Context, userAgent string) (string, error)

	// OAuthCallbackGoogle completes the Google sign-in and issues tokens
	// for the linked employee
	OAuthCallbackGoogle(ctx context.Context, code string) (TokenResponse, error)
}
