package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/gin-gonic/gin"
)

const flashConsumedKey = "flash_consumed"

// addFlash queues msg for the next rendered page. Messages survive one redirect.
func (m *SessionManager) addFlash(c *gin.Context, msg string) {
	messages := readFlashes(c)
	messages = append(messages, msg)

	raw, err := json.Marshal(messages)
	if err != nil {
		return
	}
	c.Set(flashConsumedKey, true)
	m.setFlashCookie(c, base64.RawURLEncoding.EncodeToString(raw), 0)
}

// popFlashes returns the queued messages and clears them.
func (m *SessionManager) popFlashes(c *gin.Context) []string {
	messages := readFlashes(c)
	if len(messages) > 0 {
		c.Set(flashConsumedKey, true)
		m.setFlashCookie(c, "", -1)
	}
	return messages
}

func readFlashes(c *gin.Context) []string {
	if c.GetBool(flashConsumedKey) {
		return nil
	}
	value, err := c.Cookie(common.FlashCookieName)
	if err != nil || value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var messages []string
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil
	}
	return messages
}

// setFlashCookie follows the session cookie's Secure flag.
func (m *SessionManager) setFlashCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.FlashCookieName, value, maxAge, "/", "", m.secure, true)
}
