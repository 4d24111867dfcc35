package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/apierr"
	redisclient "github.com/rhcore/rhcore-backend/internal/clients/redis"
	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/permissions"
	"github.com/rhcore/rhcore-backend/internal/repos"
	"github.com/rhcore/rhcore-backend/internal/requestdata"
	"github.com/rhcore/rhcore-backend/internal/types"
	"github.com/rhcore/rhcore-backend/internal/validation"
)

const CodeInvalidCredentials = "INVALID_CREDENTIALS"

type LoginResult struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	Login        string             `json:"login"`
	Name         string             `json:"name"`
	Permissions  permissions.Claims `json:"permissions"`
}

type AuthService interface {
	Login(ctx context.Context, login, password string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*LoginResult, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(tokenString string) (*requestdata.RequestData, error)
	AccessTTL() time.Duration
}

type authService struct {
	db         *gorm.DB
	log        *logger.Logger
	users      repos.UserRepo
	tokens     redisclient.TokenStore
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	users repos.UserRepo,
	tokens redisclient.TokenStore,
	secretKey string,
	accessTTL, refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:         db,
		log:        baseLog.With("service", "AuthService"),
		users:      users,
		tokens:     tokens,
		secretKey:  []byte(secretKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *authService) AccessTTL() time.Duration { return s.accessTTL }

func (s *authService) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	errs := validation.Collect(
		validation.Required("login", login),
		validation.Required("password", password),
	)
	if !errs.Empty() {
		return nil, apierr.Validation(errs)
	}

	user, err := s.users.GetByLogin(ctx, nil, login)
	if err != nil {
		return nil, apierr.Save(err)
	}
	if user == nil || !user.Active {
		return nil, apierr.New(http.StatusUnauthorized, CodeInvalidCredentials, fmt.Errorf("invalid login or password"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apierr.New(http.StatusUnauthorized, CodeInvalidCredentials, fmt.Errorf("invalid login or password"))
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	if refreshToken == "" {
		return nil, apierr.New(http.StatusUnauthorized, CodeInvalidCredentials, fmt.Errorf("missing refresh token"))
	}

	userID, err := s.tokens.GetRefresh(ctx, refreshToken)
	if err != nil {
		return nil, apierr.New(http.StatusUnauthorized, CodeInvalidCredentials, fmt.Errorf("invalid refresh token"))
	}

	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Save(err)
	}
	if user == nil || !user.Active {
		return nil, apierr.New(http.StatusUnauthorized, CodeInvalidCredentials, fmt.Errorf("invalid refresh token"))
	}

	// Rotate: the presented token is single-use.
	if err := s.tokens.DeleteRefresh(ctx, refreshToken); err != nil {
		s.log.Warn("Failed to delete rotated refresh token", "error", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.tokens.DeleteRefresh(ctx, refreshToken); err != nil {
		s.log.Warn("Failed to delete refresh token on logout", "error", err)
	}
	return nil
}

func (s *authService) issueTokens(ctx context.Context, user *types.User) (*LoginResult, error) {
	perms, err := s.users.ListPermissions(ctx, nil, user.ID)
	if err != nil {
		return nil, apierr.Save(err)
	}
	claims := permissions.Claims{}
	for _, p := range perms {
		claims[p.FunctionCode] = p.Actions
	}

	accessToken, err := s.signAccessToken(user, claims)
	if err != nil {
		return nil, apierr.Save(err)
	}

	refreshToken := uuid.New().String()
	if err := s.tokens.SaveRefresh(ctx, refreshToken, user.ID, s.refreshTTL); err != nil {
		return nil, apierr.Save(err)
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Login:        user.Login,
		Name:         user.Name,
		Permissions:  claims,
	}, nil
}

func (s *authService) signAccessToken(user *types.User, claims permissions.Claims) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"login": user.Login,
		"name":  user.Name,
		"perm":  map[string]string(claims),
		"iat":   now.Unix(),
		"exp":   now.Add(s.accessTTL).Unix(),
	})
	return token.SignedString(s.secretKey)
}

func (s *authService) ParseToken(tokenString string) (*requestdata.RequestData, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid token subject")
	}

	rd := &requestdata.RequestData{UserID: userID, Claims: permissions.Claims{}}
	rd.Login, _ = mapClaims["login"].(string)
	if perm, ok := mapClaims["perm"].(map[string]interface{}); ok {
		for fn, actions := range perm {
			if str, ok := actions.(string); ok {
				rd.Claims[fn] = str
			}
		}
	}
	return rd, nil
}
