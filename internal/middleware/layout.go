package middleware

import "github.com/gin-gonic/gin"

const (
	currentPathKey = "layout_current_path"
	hideChromeKey  = "layout_hide_chrome"
)

// LoginPath is rendered without the navigation chrome.
const LoginPath = "/login"

// Layout records what the page shell needs: the current path for the active navigation entry and
// whether the chrome is hidden.
func Layout() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		c.Set(currentPathKey, path)
		c.Set(hideChromeKey, path == LoginPath)
		c.Next()
	}
}

// CurrentPath returns the request path recorded by Layout.
func CurrentPath(c *gin.Context) string {
	if path := c.GetString(currentPathKey); path != "" {
		return path
	}
	return c.Request.URL.Path
}

// HideChrome reports whether the side panel and header are suppressed.
func HideChrome(c *gin.Context) bool {
	return c.GetBool(hideChromeKey)
}
