package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/api/response"
)

// timeTokenWindow is how long a generated time token stays valid.
const timeTokenWindow = 5 * time.Minute

// GenerateTimeToken produces a short-lived token bound to the API key.
// The token embeds the issue time so the server can reject replays.
func GenerateTimeToken(apiKey string) string {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	return ts + "." + signTimestamp(apiKey, ts)
}

func signTimestamp(apiKey, ts string) string {
	mac := hmac.New(sha256.New, []byte(apiKey))
	mac.Write([]byte(ts))
	return hex.EncodeToString(mac.Sum(nil))
}

func validateTimeToken(apiKey, token string) error {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return fmt.Errorf("malformed time token")
	}

	ts, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return fmt.Errorf("malformed time token timestamp")
	}

	expected := signTimestamp(apiKey, parts[0])
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return fmt.Errorf("time token signature mismatch")
	}

	issued := time.Unix(ts, 0)
	age := time.Since(issued)
	if age < -time.Minute || age > timeTokenWindow {
		return fmt.Errorf("time token outside validity window")
	}
	return nil
}

// APIKeyMiddleware guards internal endpoints with a shared API key and a
// short-lived time token. The key is read from INTERNAL_API_KEY on each
// request so tests can swap it without restarting.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expectedKey := os.Getenv("INTERNAL_API_KEY")
		if expectedKey == "" {
			response.RespondError(w, http.StatusInternalServerError, "authentication failure", "Authentication not loaded")
			return
		}

		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			response.RespondError(w, http.StatusUnauthorized, "authentication failure", "Missing API key")
			return
		}
		if !hmac.Equal([]byte(apiKey), []byte(expectedKey)) {
			response.RespondError(w, http.StatusUnauthorized, "authentication failure", "Invalid API key")
			return
		}

		timeToken := r.Header.Get("X-Time-Token")
		if timeToken == "" {
			response.RespondError(w, http.StatusUnauthorized, "authentication failure", "Missing Time token")
			return
		}
		if err := validateTimeToken(expectedKey, timeToken); err != nil {
			response.RespondError(w, http.StatusUnauthorized, "authentication failure", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}
