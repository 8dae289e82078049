// Package userdir is the user directory: account registration, credential
// checks, bearer token issuance and the password reset flow. The rest of
// the system only consumes the user ids it hands out.
package userdir

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mediamux/mediamux/model"
	"github.com/mediamux/mediamux/utils"
)

const (
	accessTokenTTL  = 30 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	minPasswordLength = 8
)

type Directory struct {
	db        *gorm.DB
	tokens    *utils.ResetTokenStore
	jwtSecret []byte
}

func NewDirectory(db *gorm.DB, tokens *utils.ResetTokenStore, jwtSecret []byte) *Directory {
	return &Directory{db: db, tokens: tokens, jwtSecret: jwtSecret}
}

// TokenPair is the bearer access + refresh pair handed to clients.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Register creates an account and its profile. Username and email are
// unique, collisions are conflicts.
func (d *Directory) Register(username string, email string, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.Wrap(model.ErrValidation, "username must not be empty")
	}
	if !strings.Contains(email, "@") {
		return nil, errors.Wrap(model.ErrValidation, "invalid email address")
	}
	if len(password) < minPasswordLength {
		return nil, errors.Wrap(model.ErrValidation, "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "fail to hash password")
	}

	user := model.User{
		Id:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	err = d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&model.Profile{
			Id:     uuid.New().String(),
			UserID: user.Id,
		}).Error
	})
	if err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, errors.Wrap(model.ErrConflict, "username or email already taken")
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate checks credentials and issues a token pair. The identifier
// may be a username or an email. Unknown accounts and wrong passwords are
// indistinguishable to the caller.
func (d *Directory) Authenticate(identifier string, password string) (*TokenPair, error) {
	user, err := d.findByIdentifier(identifier)
	if err != nil {
		return nil, errors.Wrap(model.ErrUnauthorized, "invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errors.Wrap(model.ErrUnauthorized, "invalid credentials")
	}
	return d.issueTokenPair(user.Id)
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (d *Directory) Refresh(refreshToken string) (*TokenPair, error) {
	userId, err := d.parseToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	// The account may have been removed since the token was issued.
	var count int64
	if err := d.db.Model(&model.User{}).Where("id = ?", userId).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errors.Wrap(model.ErrUnauthorized, "account no longer exists")
	}
	return d.issueTokenPair(userId)
}

// ParseAccessToken validates a bearer access token and returns the user id
// it was issued for.
func (d *Directory) ParseAccessToken(token string) (string, error) {
	return d.parseToken(token, tokenTypeAccess)
}

// Me returns the account for an authenticated user id.
func (d *Directory) Me(userId string) (*model.User, error) {
	var user model.User
	if err := d.db.Where("id = ?", userId).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(model.ErrNotFound, "unknown user "+userId)
		}
		return nil, err
	}
	return &user, nil
}

// RequestPasswordReset issues a single-use reset token valid for 24 hours.
// For unknown identifiers it returns an empty token and no error so the
// HTTP layer can answer the same way regardless, avoiding account
// enumeration.
func (d *Directory) RequestPasswordReset(identifier string) (string, error) {
	user, err := d.findByIdentifier(identifier)
	if err != nil {
		return "", nil
	}
	token, err := generateResetToken()
	if err != nil {
		return "", err
	}
	if err := d.tokens.Save(token, user.Id); err != nil {
		return "", errors.Wrap(err, "fail to store reset token")
	}
	return token, nil
}

// ConfirmPasswordReset consumes the token and sets the new password. A
// token works exactly once and only within its 24 hour window.
func (d *Directory) ConfirmPasswordReset(token string, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return errors.Wrap(model.ErrValidation, "password must be at least 8 characters")
	}
	userId, err := d.tokens.Consume(token)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "fail to hash password")
	}
	return d.db.Model(&model.User{}).Where("id = ?", userId).
		Update("password_hash", string(hash)).Error
}

func (d *Directory) findByIdentifier(identifier string) (*model.User, error) {
	var user model.User
	err := d.db.Where("LOWER(email) = LOWER(?)", identifier).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := d.db.Where("LOWER(username) = LOWER(?)", identifier).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Directory) issueTokenPair(userId string) (*TokenPair, error) {
	access, err := d.signToken(userId, tokenTypeAccess, accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := d.signToken(userId, tokenTypeRefresh, refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (d *Directory) signToken(userId string, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userId,
		"typ": tokenType,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString(d.jwtSecret)
	if err != nil {
		return "", errors.Wrap(err, "fail to sign token")
	}
	return signed, nil
}

func (d *Directory) parseToken(tokenString string, expectedType string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return d.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.Wrap(model.ErrUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.Wrap(model.ErrUnauthorized, "invalid token claims")
	}
	if typ, _ := claims["typ"].(string); typ != expectedType {
		return "", errors.Wrap(model.ErrUnauthorized, "wrong token type")
	}
	userId, _ := claims["sub"].(string)
	if userId == "" {
		return "", errors.Wrap(model.ErrUnauthorized, "token has no subject")
	}
	return userId, nil
}

// generateResetToken mirrors a 32 byte url-safe random token.
func generateResetToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", errors.Wrap(err, "fail to generate reset token")
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
