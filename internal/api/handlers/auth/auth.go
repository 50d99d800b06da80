package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipe-pantry/internal/api/handlers/respond"
	coreauth "recipe-pantry/internal/core/auth"
	"recipe-pantry/internal/core/model"
	"recipe-pantry/internal/infrastructure/config"
	"recipe-pantry/internal/pkg/common"
)

// RegisterRequest 註冊請求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest 登入請求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse 對外的使用者資訊（不含密碼雜湊）
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// TokenResponse 帶 access token 的回應
// refresh token 只走 httpOnly cookie，不出現在 body
type TokenResponse struct {
	AccessToken string        `json:"accessToken"`
	User        *UserResponse `json:"user,omitempty"`
}

// Handler 認證處理程序
// 註冊、登入、換發、登出集中在這一個組件
type Handler struct {
	db     *gorm.DB
	tokens *coreauth.TokenService
	cfg    *config.AuthConfig
	debug  bool
}

// NewHandler 創建認證處理程序
func NewHandler(db *gorm.DB, tokens *coreauth.TokenService, cfg *config.Config) *Handler {
	return &Handler{
		db:     db,
		tokens: tokens,
		cfg:    &cfg.Auth,
		debug:  cfg.App.Debug,
	}
}

// HandleRegister 註冊新使用者
func (h *Handler) HandleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "電子郵件或密碼格式無效")
		return
	}

	hash, err := coreauth.HashPassword(req.Password)
	if err != nil {
		respond.Error(c, err, h.debug)
		return
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(user).Error; err != nil {
		// email 上的唯一索引擋掉重複註冊
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respond.Error(c, common.ErrEmailInUse, h.debug)
			return
		}
		common.LogError("使用者建立失敗", zap.Error(err))
		respond.Error(c, err, h.debug)
		return
	}

	pair, err := h.tokens.GenerateTokens(user.ID.String())
	if err != nil {
		respond.Error(c, err, h.debug)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)

	common.LogInfo("使用者註冊成功", zap.String("user_id", user.ID.String()))
	c.JSON(http.StatusCreated, TokenResponse{
		AccessToken: pair.AccessToken,
		User:        &UserResponse{ID: user.ID.String(), Email: user.Email},
	})
}

// HandleLogin 登入
// 帳號不存在與密碼錯誤回同一個錯誤，不洩漏帳號是否存在
func (h *Handler) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "電子郵件或密碼格式無效")
		return
	}

	var user model.User
	err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, common.ErrInvalidCredentials, h.debug)
			return
		}
		respond.Error(c, err, h.debug)
		return
	}

	if !coreauth.CheckPassword(user.PasswordHash, req.Password) {
		respond.Error(c, common.ErrInvalidCredentials, h.debug)
		return
	}

	pair, err := h.tokens.GenerateTokens(user.ID.String())
	if err != nil {
		respond.Error(c, err, h.debug)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)

	common.LogInfo("使用者登入成功", zap.String("user_id", user.ID.String()))
	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: pair.AccessToken,
		User:        &UserResponse{ID: user.ID.String(), Email: user.Email},
	})
}

// HandleRefresh 以 cookie 中的 refresh token 換發新的一組令牌
// 換發同時輪替 refresh token
func (h *Handler) HandleRefresh(c *gin.Context) {
	token, err := c.Cookie(h.cfg.CookieName)
	if err != nil || token == "" {
		respond.Error(c, common.ErrInvalidToken, h.debug)
		return
	}

	userID, err := h.tokens.VerifyRefresh(token)
	if err != nil {
		respond.Error(c, err, h.debug)
		return
	}

	// 確認使用者仍存在
	var user model.User
	if err := h.db.WithContext(c.Request.Context()).
		First(&user, "id = ?", userID).Error; err != nil {
		respond.Error(c, common.ErrInvalidToken, h.debug)
		return
	}

	pair, err := h.tokens.GenerateTokens(userID)
	if err != nil {
		respond.Error(c, err, h.debug)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, TokenResponse{AccessToken: pair.AccessToken})
}

// HandleLogout 登出，清除 refresh cookie
func (h *Handler) HandleLogout(c *gin.Context) {
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) setRefreshCookie(c *gin.Context, token string) {
	c.SetCookie(
		h.cfg.CookieName,
		token,
		int(h.cfg.RefreshTTL.Seconds()),
		"/",
		"",
		h.cfg.CookieSecure,
		true, // httpOnly
	)
}
