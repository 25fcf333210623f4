package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"bincycle-backend/internal/middleware"
	"bincycle-backend/internal/models"
	"bincycle-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// RegisterFcmToken stores or refreshes a device push token for the
// authenticated user.
func RegisterFcmToken(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req models.RegisterFcmTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if strings.TrimSpace(req.Token) == "" {
			utils.RespondError(w, http.StatusBadRequest, "token is required")
			return
		}

		platform := req.Platform
		validPlatforms := map[string]bool{"web": true, "ios": true, "android": true}
		if !validPlatforms[platform] {
			platform = "web"
		}

		now := time.Now().Unix()
		_, err := db.Exec(`
			INSERT INTO fcm_tokens (user_id, token, platform, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			ON CONFLICT (token)
			DO UPDATE SET user_id = EXCLUDED.user_id, platform = EXCLUDED.platform,
			              updated_at = EXCLUDED.updated_at
		`, userClaims.UserID, req.Token, platform, now)
		if err != nil {
			log.Printf("❌ Failed to register FCM token: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to register token")
			return
		}

		log.Printf("📲 FCM token registered for %s (%s)", userClaims.Email, platform)
		utils.Success(w, map[string]bool{"ok": true})
	}
}
