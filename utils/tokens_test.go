package utils

import (
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGenerateOTP(t *testing.T) {
	sixDigits := regexp.MustCompile(`^\d{6}$`)

	for i := 0; i < 50; i++ {
		otp, err := GenerateOTP()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sixDigits.MatchString(otp) {
			t.Fatalf("expected a six digit code, got %q", otp)
		}
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "test-access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "test-refresh-secret")

	t.Run("verifies a token it issued", func(t *testing.T) {
		token, err := GenerateAccessToken(42, "jane@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		claims, err := VerifyAccessToken(token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.UserID != 42 {
			t.Errorf("expected user id 42, got %d", claims.UserID)
		}
		if claims.Email != "jane@example.com" {
			t.Errorf("expected email claim, got %q", claims.Email)
		}
	})

	t.Run("rejects a refresh token presented as an access token", func(t *testing.T) {
		token, err := GenerateRefreshToken(42, "jane@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := VerifyAccessToken(token); err == nil {
			t.Error("expected verification to fail across secrets")
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := VerifyAccessToken("not-a-jwt"); err == nil {
			t.Error("expected an error for a malformed token")
		}
	})
}

func TestTokenPairCookies(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "test-access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "test-refresh-secret")
	gin.SetMode(gin.TestMode)

	accessToken, refreshToken, err := GenerateTokenPair(7, "sam@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := VerifyAccessToken(accessToken); err != nil {
		t.Errorf("access token does not verify: %v", err)
	}
	if _, err := VerifyRefreshToken(refreshToken); err != nil {
		t.Errorf("refresh token does not verify: %v", err)
	}

	// Issuing tokens must not touch the response; cookies appear only once
	// the caller attaches the pair.
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	// w.Result() memoizes the response, so read the header directly here to
	// avoid freezing the recorder before the cookies are attached.
	if len(w.Header().Values("Set-Cookie")) != 0 {
		t.Fatal("no cookies expected before the pair is attached")
	}

	AttachTokenCookies(ctx, accessToken, refreshToken)

	byName := map[string]bool{}
	for _, cookie := range w.Result().Cookies() {
		byName[cookie.Name] = true
		if !cookie.HttpOnly {
			t.Errorf("cookie %s must be httpOnly", cookie.Name)
		}
	}
	if !byName["accessToken"] || !byName["refreshToken"] {
		t.Errorf("expected both token cookies, got %v", byName)
	}
}
