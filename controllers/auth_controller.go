package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"event_booking_go/models"
	"event_booking_go/store"
	"event_booking_go/utils"
	"event_booking_go/validations"
)

type UserController struct {
	Users   store.UserStore
	Tokens  *utils.TokenIssuer
	Timeout time.Duration
}

func NewUserController(users store.UserStore, tokens *utils.TokenIssuer, timeout time.Duration) *UserController {
	return &UserController{Users: users, Tokens: tokens, Timeout: timeout}
}

// ========== HANDLERS ==========

// Register creates an account from email and password.
func (uc *UserController) Register(c *gin.Context) {
	var req validations.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), uc.Timeout)
	defer cancel()

	now := time.Now()
	newUser := models.User{
		Email:     req.Email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.Users.CreateUser(ctx, &newUser); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already in use"})
			return
		}
		log.Error().Err(err).Msg("create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	// never echo the password hash
	c.JSON(http.StatusCreated, gin.H{
		"message": "user registered successfully",
		"userId":  newUser.ID.Hex(),
	})
}

// Login checks the credentials and hands out a bearer token.
func (uc *UserController) Login(c *gin.Context) {
	var req validations.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), uc.Timeout)
	defer cancel()

	user, err := uc.Users.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		log.Error().Err(err).Msg("find user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user"})
		return
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := uc.Tokens.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		log.Error().Err(err).Msg("generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, models.AuthData{
		UserID:          user.ID.Hex(),
		Token:           token,
		TokenExpiration: uc.Tokens.TTLHours(),
	})
}
