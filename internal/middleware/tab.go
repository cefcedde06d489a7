package middleware

import (
	"github.com/gin-gonic/gin"

	"go-registry-console/internal/session"
)

const tabContextKey = "console_tab_state"

// TabMiddleware resolves the per-tab state from the tab cookie, creating
// a fresh tab on first contact, and writes the cookie back when a new id
// was issued.
func TabMiddleware(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookieID, _ := c.Cookie(session.CookieName)
		tab := manager.Acquire(cookieID)
		if tab.ID != cookieID {
			c.SetCookie(session.CookieName, tab.ID, 0, "/", "", false, true)
		}
		c.Set(tabContextKey, tab)
		c.Set("tab_id", tab.ID)
		c.Next()
	}
}

// TabFrom returns the tab state installed by TabMiddleware.
func TabFrom(c *gin.Context) *session.Tab {
	if v, ok := c.Get(tabContextKey); ok {
		if tab, ok := v.(*session.Tab); ok {
			return tab
		}
	}
	return nil
}
