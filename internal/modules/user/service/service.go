package user

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/meet-community/meet-backend/internal/config"
	"github.com/meet-community/meet-backend/internal/entity"
	"github.com/meet-community/meet-backend/internal/modules/user/dto"
	"github.com/meet-community/meet-backend/internal/modules/user/repository"
	"github.com/meet-community/meet-backend/pkg/apperror"
)

const defaultRole = "USER"

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	GoogleLogin() string
	GoogleCallback(ctx context.Context, code string) (*dto.LoginResponse, error)
}

type authService struct {
	repo         repository.UserRepository
	secret       string
	tokenTTL     time.Duration
	googleConfig *oauth2.Config
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config) AuthService {
	googleConfig := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &authService{
		repo:         repo,
		secret:       cfg.JWTSecret,
		tokenTTL:     cfg.JWTTTL,
		googleConfig: googleConfig,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) error {
	taken, err := s.repo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return err
	}
	if taken {
		return apperror.Wrap(apperror.ErrConflict, "Username or email address already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &entity.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
	}

	role, err := s.repo.FindRoleByName(ctx, defaultRole)
	if err != nil {
		return err
	}
	user.Roles = []entity.Role{*role}

	return s.repo.Create(ctx, user)
}

// Login accepts a username or an email address; an email is resolved to its
// username before the credential check so the token subject is always the
// username.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	account := req.Account

	usernameExists, err := s.repo.ExistsByUsername(ctx, account)
	if err != nil {
		return nil, err
	}
	if !usernameExists {
		byEmail, err := s.repo.FindByEmail(ctx, account)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.Wrap(apperror.ErrBadRequest, "Username or email address does not exist")
			}
			return nil, err
		}
		account = byEmail.Username
	}

	user, err := s.repo.FindByUsername(ctx, account)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "Invalid credentials")
	}

	return s.buildLoginResponse(user)
}

func (s *authService) GoogleLogin() string {
	return s.googleConfig.AuthCodeURL(uuid.NewString(), oauth2.AccessTypeOffline)
}

func (s *authService) GoogleCallback(ctx context.Context, code string) (*dto.LoginResponse, error) {
	token, err := s.googleConfig.Exchange(ctx, code)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "failed to exchange token")
	}

	client := s.googleConfig.Client(ctx, token)
	userInfoResp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "failed to get user info")
	}
	defer userInfoResp.Body.Close()

	var googleUser struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(userInfoResp.Body).Decode(&googleUser); err != nil {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "failed to decode user info")
	}

	user, err := s.repo.FindByEmail(ctx, googleUser.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user, err = s.registerOAuthUser(ctx, googleUser.Email)
		if err != nil {
			return nil, err
		}
	}

	return s.buildLoginResponse(user)
}

// registerOAuthUser provisions an account for a first-time OAuth login. The
// password is a throwaway random value; such accounts authenticate through
// the provider.
func (s *authService) registerOAuthUser(ctx context.Context, email string) (*entity.User, error) {
	username := strings.Split(email, "@")[0]

	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role, err := s.repo.FindRoleByName(ctx, defaultRole)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Roles:    []entity.Role{*role},
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) buildLoginResponse(user *entity.User) (*dto.LoginResponse, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(s.secret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer ",
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Avatar:    user.AvatarDataURI(),
	}, nil
}
