// Package web provides small helpers for the cookie-driven web surface.
package web

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// noticeCookie carries flash notices across a redirect. It is read and
// cleared by the next page load.
const noticeCookie = "tt_notice"

// noticeSeparator joins multiple notices inside the cookie value.
const noticeSeparator = "|"

// noticeContextKey holds the notices already set during this request, since
// the request cookie never reflects this response's Set-Cookie headers.
const noticeContextKey = "web.pendingNotices"

// SetNotice appends a flash notice to be shown on the next page.
// Notices set earlier in the same request and notices carried over from the
// request cookie are both kept.
func SetNotice(c *gin.Context, message string) {
	encoded := base64.RawURLEncoding.EncodeToString([]byte(message))
	if pending := c.GetString(noticeContextKey); pending != "" {
		encoded = pending + noticeSeparator + encoded
	} else if existing, err := c.Cookie(noticeCookie); err == nil && existing != "" {
		encoded = existing + noticeSeparator + encoded
	}
	c.Set(noticeContextKey, encoded)
	c.SetCookie(noticeCookie, encoded, 300, "/", "", false, true)
}

// TakeNotices returns pending flash notices and clears the cookie.
func TakeNotices(c *gin.Context) []string {
	raw, err := c.Cookie(noticeCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(noticeCookie, "", -1, "/", "", false, true)

	var notices []string
	for _, part := range strings.Split(raw, noticeSeparator) {
		decoded, err := base64.RawURLEncoding.DecodeString(part)
		if err != nil {
			continue
		}
		notices = append(notices, string(decoded))
	}
	return notices
}

// Redirect issues the 303 redirect used after every web form post so the
// browser re-requests the target with GET.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
