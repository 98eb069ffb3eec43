package web

import (
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlash_SurvivesOneRedirect(t *testing.T) {
	sm := NewSessionManager("k", time.Hour, false)

	c, w := newTestContext(t)
	sm.addFlash(c, "first")
	ck := responseCookie(t, w, common.FlashCookieName)
	require.NotNil(t, ck)
	assert.True(t, ck.HttpOnly)
	assert.False(t, ck.Secure)

	c, w = newTestContext(t, &http.Cookie{Name: common.FlashCookieName, Value: ck.Value})
	sm.addFlash(c, "second")
	ck = responseCookie(t, w, common.FlashCookieName)
	require.NotNil(t, ck)

	c, w = newTestContext(t, &http.Cookie{Name: common.FlashCookieName, Value: ck.Value})
	assert.Equal(t, []string{"first", "second"}, sm.popFlashes(c))
	assert.Empty(t, sm.popFlashes(c), "messages are consumed")

	cleared := responseCookie(t, w, common.FlashCookieName)
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)
}

func TestFlash_FollowsSessionSecureFlag(t *testing.T) {
	sm := NewSessionManager("k", time.Hour, true)

	c, w := newTestContext(t)
	sm.addFlash(c, "hello")
	ck := responseCookie(t, w, common.FlashCookieName)
	require.NotNil(t, ck)
	assert.True(t, ck.Secure)

	c, w = newTestContext(t, &http.Cookie{Name: common.FlashCookieName, Value: ck.Value})
	assert.Equal(t, []string{"hello"}, sm.popFlashes(c))
	cleared := responseCookie(t, w, common.FlashCookieName)
	require.NotNil(t, cleared)
	assert.True(t, cleared.Secure)
}

func TestFlash_IgnoresBrokenCookie(t *testing.T) {
	sm := NewSessionManager("k", time.Hour, false)
	for _, value := range []string{"%%%", "bm90LWpzb24"} {
		c, _ := newTestContext(t, &http.Cookie{Name: common.FlashCookieName, Value: value})
		assert.Empty(t, sm.popFlashes(c))
	}
}
