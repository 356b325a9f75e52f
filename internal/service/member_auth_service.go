package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/siisjewelry/siis-api/internal/cache"
	"github.com/siisjewelry/siis-api/internal/cart"
	"github.com/siisjewelry/siis-api/internal/config"
	"github.com/siisjewelry/siis-api/internal/constants"
	"github.com/siisjewelry/siis-api/internal/logger"
	"github.com/siisjewelry/siis-api/internal/models"
	"github.com/siisjewelry/siis-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// MemberAuthService 会员认证服务
type MemberAuthService struct {
	cfg        *config.Config
	memberRepo repository.MemberRepository
	cartStore  *cart.Store
}

// NewMemberAuthService 创建会员认证服务
func NewMemberAuthService(cfg *config.Config, memberRepo repository.MemberRepository, cartStore *cart.Store) *MemberAuthService {
	return &MemberAuthService{
		cfg:        cfg,
		memberRepo: memberRepo,
		cartStore:  cartStore,
	}
}

// MemberJWTClaims 会员 JWT 声明
type MemberJWTClaims struct {
	MemberID     uint   `json:"member_id"`
	Email        string `json:"email"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput 注册输入
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Phone       string
}

// Register 注册会员，初始为铜卡零消费
func (s *MemberAuthService) Register(input RegisterInput) (*models.Member, error) {
	email := normalizeMemberEmail(input.Email)
	if email == "" {
		return nil, ErrEmailInvalid
	}
	if err := s.validatePassword(input.Password); err != nil {
		return nil, err
	}

	exist, err := s.memberRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	member := &models.Member{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Phone:        strings.TrimSpace(input.Phone),
		MemberLevel:  constants.MemberLevelBronze,
		TotalSpent:   models.NewMoneyFromFloat(0),
		OrderCount:   0,
		Points:       0,
		Status:       constants.MemberStatusActive,
	}
	if err := s.memberRepo.Create(member); err != nil {
		return nil, err
	}

	logger.Infow("member_registered", "member_id", member.ID, "email", member.Email)
	return member, nil
}

// Login 会员登录
func (s *MemberAuthService) Login(email, password string) (*models.Member, string, time.Time, error) {
	member, err := s.memberRepo.GetByEmail(normalizeMemberEmail(email))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if member == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if member.Status != constants.MemberStatusActive {
		return nil, "", time.Time{}, ErrMemberDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(member)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	member.LastLoginAt = &now
	if err := s.memberRepo.Update(member); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetMemberAuthState(context.Background(), cache.BuildMemberAuthState(member))

	return member, token, expiresAt, nil
}

// Logout 会员登出：清空会话购物车与结算暂存，旧 token 全部失效
func (s *MemberAuthService) Logout(ctx context.Context, memberID uint, session string) error {
	if session != "" {
		if err := s.cartStore.Clear(ctx, session); err != nil {
			logger.Warnw("logout_cart_clear_failed", "session", session, "error", err.Error())
		}
		if err := cache.ClearCheckoutStaging(ctx, session); err != nil {
			logger.Warnw("logout_staging_clear_failed", "session", session, "error", err.Error())
		}
	}

	member, err := s.memberRepo.GetByID(memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return nil
	}
	now := time.Now()
	member.TokenVersion++
	member.TokenInvalidBefore = &now
	if err := s.memberRepo.Update(member); err != nil {
		return err
	}
	_ = cache.SetMemberAuthState(ctx, cache.BuildMemberAuthState(member))
	return nil
}

// GetProfile 获取会员资料
func (s *MemberAuthService) GetProfile(memberID uint) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}
	return member, nil
}

// ProfileUpdateInput 会员自助更新资料输入
type ProfileUpdateInput struct {
	DisplayName *string
	Phone       *string
	Address     *string
	Birthday    *time.Time
}

// UpdateProfile 会员更新本人资料
func (s *MemberAuthService) UpdateProfile(memberID uint, input ProfileUpdateInput) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}
	if input.DisplayName != nil {
		member.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.Phone != nil {
		member.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Address != nil {
		member.Address = strings.TrimSpace(*input.Address)
	}
	if input.Birthday != nil {
		member.Birthday = input.Birthday
	}
	if err := s.memberRepo.Update(member); err != nil {
		return nil, err
	}
	return member, nil
}

// ChangePassword 会员修改密码，旧 token 全部失效
func (s *MemberAuthService) ChangePassword(memberID uint, oldPassword, newPassword string) error {
	member, err := s.memberRepo.GetByID(memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidPassword
	}
	if err := s.validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	member.PasswordHash = string(hash)
	now := time.Now()
	member.TokenVersion++
	member.TokenInvalidBefore = &now
	if err := s.memberRepo.Update(member); err != nil {
		return err
	}
	_ = cache.SetMemberAuthState(context.Background(), cache.BuildMemberAuthState(member))
	return nil
}

// GenerateJWT 生成会员 JWT Token
func (s *MemberAuthService) GenerateJWT(member *models.Member) (string, time.Time, error) {
	expireHours := s.cfg.MemberJWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 168
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)
	claims := MemberJWTClaims{
		MemberID:     member.ID,
		Email:        member.Email,
		TokenVersion: member.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.MemberJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析会员 JWT Token
func (s *MemberAuthService) ParseJWT(tokenString string) (*MemberJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &MemberJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.MemberJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*MemberJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}

func (s *MemberAuthService) validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooWeak
	}
	return nil
}

func normalizeMemberEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(email) {
		return ""
	}
	return email
}
