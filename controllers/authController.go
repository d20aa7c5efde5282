package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/popaya/grocery-api/middlewares"
	"github.com/popaya/grocery-api/models"
	"github.com/popaya/grocery-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgEmailInUse            = "email already in use"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "invalid email or password"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgRefreshTokenMissing   = "refresh token missing"
	msgInvalidRefreshToken   = "invalid refresh token"
	msgOtpSent               = "If this email exists, a reset code has been sent"
	msgInvalidOtp            = "Invalid or expired OTP"
	msgPasswordResetSuccess  = "Password reset successful"
	msgUserNotFound          = "user not found"
)

type AuthController struct {
	db *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// Register handles user registration
func (c *AuthController) Register(ctx *gin.Context) {
	var input models.RegisterInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var existing models.User
	result := c.db.Where("email = ?", input.Email).Find(&existing)
	if result.Error != nil {
		log.Println("Database error during user check:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgEmailInUse)
		return
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user := models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  hashedPassword,
	}
	if err := c.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			sendErrorResponse(ctx, http.StatusBadRequest, msgEmailInUse)
			return
		}
		log.Println("User creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	// New accounts start as customers.
	var customerRole models.Role
	if err := c.db.Where("name = ?", "customer").First(&customerRole).Error; err == nil {
		if err := c.db.Model(&user).Association("Roles").Append(&customerRole); err != nil {
			log.Println("Failed to assign customer role:", err)
		}
	}

	sendJSONResponse(ctx, http.StatusCreated, user)
}

// Login handles user authentication
func (c *AuthController) Login(ctx *gin.Context) {
	var input models.LoginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	if err := c.db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.Password, input.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	// Persist before handing out cookies so the client never holds a
	// refresh token the server does not know about.
	if err := c.db.Model(&user).Update("refresh_token", refreshToken).Error; err != nil {
		log.Println("Failed to persist refresh token:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	utils.AttachTokenCookies(ctx, accessToken, refreshToken)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"id":        user.ID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"avatar":    user.Avatar,
	})
}

// Logout invalidates the stored refresh token and clears both cookies.
func (c *AuthController) Logout(ctx *gin.Context) {
	if refreshToken, err := ctx.Cookie("refreshToken"); err == nil && refreshToken != "" {
		if claims, err := utils.VerifyRefreshToken(refreshToken); err == nil {
			if err := c.db.Model(&models.User{}).Where("id = ?", claims.UserID).
				Update("refresh_token", nil).Error; err != nil {
				log.Println("Failed to clear refresh token:", err)
			}
		}
	}

	utils.ClearTokenCookies(ctx)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// RefreshToken rotates the access/refresh pair when the presented refresh
// token matches the stored one.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	refreshToken, err := ctx.Cookie("refreshToken")
	if err != nil || refreshToken == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msgRefreshTokenMissing)
		return
	}

	claims, err := utils.VerifyRefreshToken(refreshToken)
	if err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidRefreshToken)
		return
	}

	var user models.User
	if err := c.db.First(&user, claims.UserID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidRefreshToken)
		return
	}
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidRefreshToken)
		return
	}

	accessToken, newRefreshToken, err := utils.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	if err := c.db.Model(&user).Update("refresh_token", newRefreshToken).Error; err != nil {
		log.Println("Failed to persist refresh token:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	utils.AttachTokenCookies(ctx, accessToken, newRefreshToken)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": newRefreshToken,
	})
}

// RequestPasswordReset generates a short-lived OTP and emails it. The
// response is the same whether or not the account exists.
func (c *AuthController) RequestPasswordReset(ctx *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	if err := c.db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgOtpSent})
		return
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		log.Println("OTP generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	expiry := time.Now().Add(models.OTPValidity)
	if err := c.db.Model(&user).Updates(map[string]any{
		"reset_password_otp":        otp,
		"reset_password_otp_expiry": expiry,
	}).Error; err != nil {
		log.Println("Failed to save OTP:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	emailData := utils.OTPEmailData{
		Name:     user.FirstName,
		OTP:      otp,
		ValidFor: "10 minutes",
	}
	if err := utils.SendPasswordResetOTP(user.Email, emailData); err != nil {
		log.Println("Error sending password reset email:", err)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgOtpSent})
}

// ResetPassword validates the OTP, sets the new password and clears the code
// so it can't be replayed. The refresh token is revoked as well.
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var input struct {
		Email       string `json:"email" binding:"required,email"`
		Otp         string `json:"otp" binding:"required,len=6"`
		NewPassword string `json:"newPassword" binding:"required,min=8"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	if err := c.db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidOtp)
		return
	}

	if !user.ValidateOTP(input.Otp, time.Now()) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidOtp)
		return
	}

	hashedPassword, err := hashPassword(input.NewPassword)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	if err := c.db.Model(&user).Updates(map[string]any{
		"password":                  hashedPassword,
		"reset_password_otp":        nil,
		"reset_password_otp_expiry": nil,
		"refresh_token":             nil,
	}).Error; err != nil {
		log.Println("Error resetting password:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgPasswordResetSuccess})
}

// GetUsers lists users (permission gated).
func (c *AuthController) GetUsers(ctx *gin.Context) {
	var users []models.User
	if err := c.db.Preload("Roles").Find(&users).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"users": users})
}

// GetUserByID returns a single user (permission gated).
func (c *AuthController) GetUserByID(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid user id")
		return
	}

	var user models.User
	if err := c.db.Preload("Roles").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}
	sendJSONResponse(ctx, http.StatusOK, user)
}

// Me returns the authenticated user's profile.
func (c *AuthController) Me(ctx *gin.Context) {
	user, exists := ctx.Get(middlewares.ContextUser)
	if !exists {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, user)
}
