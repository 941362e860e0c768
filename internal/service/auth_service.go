package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/config"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/model"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/repository"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
	"github.com/priya-tenac/Ai-Study-Buddy/pkg/logger"
)

const otpTTL = 5 * time.Minute

type AuthService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
	Mail     *MailService
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, rdb *redis.Client, mail *MailService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Redis:    rdb,
		Mail:     mail,
		Cfg:      cfg,
	}
}

// Register creates the account and sends the first verification code.
func (s *AuthService) Register(ctx context.Context, user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)

	if err := s.UserRepo.Create(user); err != nil {
		return err
	}
	return s.SendOTP(ctx, user.Email)
}

// Login checks credentials and issues a signed token.
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := s.UserRepo.TouchLastLogin(user.ID, time.Now()); err != nil {
		logger.Log.Warn("failed to record login time", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// SendOTP generates a fresh 6-digit code, stores it with a short TTL and
// emails it. Requesting a new code replaces any outstanding one.
func (s *AuthService) SendOTP(ctx context.Context, email string) error {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	if err := s.Redis.Set(ctx, otpKey(user.Email), code, otpTTL).Err(); err != nil {
		return err
	}

	if err := s.Mail.SendOTP(user.Email, code, otpTTL); err != nil {
		return err
	}

	logger.Log.Info("otp issued", zap.String("email", user.Email))
	return nil
}

// VerifyOTP consumes the stored code, marks the account verified and
// issues a token.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrUserNotFound
	}

	stored, err := s.Redis.Get(ctx, otpKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil, util.ErrExpiredOTP
	} else if err != nil {
		return "", nil, err
	}

	if stored != code {
		return "", nil, util.ErrInvalidOTP
	}

	// One-shot: a code never verifies twice.
	s.Redis.Del(ctx, otpKey(email))

	if !user.Verified {
		if err := s.UserRepo.MarkVerified(user.ID); err != nil {
			return "", nil, err
		}
		user.Verified = true
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetUser(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func otpKey(email string) string {
	return "otp:" + email
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
