package models

import (
	"crypto/subtle"
	"time"

	"gorm.io/gorm"
)

// OTPValidity is how long a password reset code stays usable.
const OTPValidity = 10 * time.Minute

type User struct {
	gorm.Model
	FirstName              string     `json:"firstName"`
	LastName               string     `json:"lastName"`
	Email                  string     `json:"email" gorm:"uniqueIndex;size:255"`
	Password               string     `json:"-"`
	Avatar                 string     `json:"avatar"`
	RefreshToken           *string    `json:"-"`
	ResetPasswordOtp       *string    `json:"-" gorm:"size:6"`
	ResetPasswordOtpExpiry *time.Time `json:"-"`
	Roles                  []Role     `json:"roles,omitempty" gorm:"many2many:user_roles"`
}

type RegisterInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ValidateOTP reports whether the supplied reset code matches the one stored
// on the user and has not expired at the given instant.
func (u *User) ValidateOTP(otp string, now time.Time) bool {
	if u.ResetPasswordOtp == nil || u.ResetPasswordOtpExpiry == nil {
		return false
	}
	if now.After(*u.ResetPasswordOtpExpiry) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*u.ResetPasswordOtp), []byte(otp)) == 1
}
