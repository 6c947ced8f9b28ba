package lib

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/devanshm/bunkmate/config"
	"github.com/devanshm/bunkmate/lib/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type accounts struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

func (svc *accounts) Register(ctx context.Context, firstName, lastName, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  string(hash),
	}
	tx := svc.db.WithContext(ctx).Create(user)
	if err := tx.Error; errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrEmailTaken
	} else if err != nil {
		return nil, err
	}

	svc.log.Sugar().Infof("Registered user %v (%s)", user.ID, email)
	return user, nil
}

// Login verifies the credential pair and issues a bearer token. A missing
// account and a wrong password are indistinguishable to the caller.
func (svc *accounts) Login(ctx context.Context, email, password string) (string, error) {
	user := models.User{}
	tx := svc.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if err := tx.Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrInvalidCredentials
	} else if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(svc.cfg.TokenTTL)),
		ID:        uuid.NewString(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(svc.cfg.JWTSecret))
	if err != nil {
		return "", err
	}

	svc.log.Sugar().Infow("Issued token", "user_id", user.ID, "expires_at", claims.ExpiresAt)
	return token, nil
}

func (svc *accounts) UserByID(ctx context.Context, userID uint) (*models.User, error) {
	user := &models.User{}
	tx := svc.db.WithContext(ctx).First(user, userID)
	if err := tx.Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}
