package models

import (
	"testing"
	"time"
)

func TestValidateOTP(t *testing.T) {
	now := time.Now()
	otp := "482913"
	expiry := now.Add(OTPValidity)

	t.Run("matching code inside the validity window", func(t *testing.T) {
		user := User{ResetPasswordOtp: &otp, ResetPasswordOtpExpiry: &expiry}
		if !user.ValidateOTP("482913", now) {
			t.Error("expected a valid code to pass")
		}
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		user := User{ResetPasswordOtp: &otp, ResetPasswordOtpExpiry: &expiry}
		if user.ValidateOTP("000000", now) {
			t.Error("expected a mismatched code to fail")
		}
	})

	t.Run("expired code is rejected", func(t *testing.T) {
		user := User{ResetPasswordOtp: &otp, ResetPasswordOtpExpiry: &expiry}
		if user.ValidateOTP("482913", expiry.Add(time.Second)) {
			t.Error("expected an expired code to fail")
		}
	})

	t.Run("code valid exactly at expiry", func(t *testing.T) {
		user := User{ResetPasswordOtp: &otp, ResetPasswordOtpExpiry: &expiry}
		if !user.ValidateOTP("482913", expiry) {
			t.Error("expected the code to still be valid at the expiry instant")
		}
	})

	t.Run("user without a pending reset", func(t *testing.T) {
		user := User{}
		if user.ValidateOTP("482913", now) {
			t.Error("expected validation to fail when no code is stored")
		}
	})
}
