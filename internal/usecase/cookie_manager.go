package usecase

import (
	"net/http"
	"time"

	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
)

// DefaultCookieName is the attribution cookie name
const DefaultCookieName = "mt_ref_code"

// DefaultCookieMaxAge is the attribution validity window (90 days)
const DefaultCookieMaxAge = 90 * 24 * time.Hour

// AttributionCookies issues and reads the attribution cookie
type AttributionCookies interface {
	Issue(code string) *http.Cookie
	Read(cookies []*http.Cookie) (string, bool)
	Has(cookies []*http.Cookie) bool
	Clear() *http.Cookie
}

// CookieConfig configures the attribution cookie
type CookieConfig struct {
	Name          string
	MaxAge        time.Duration
	Secure        bool
	Domain        string
	MinCodeLength int
}

// CookieManager builds the attribution cookie. The value is the normalized code
// itself; integrity relies on HttpOnly, Secure and SameSite rather than a MAC.
type CookieManager struct {
	cfg CookieConfig
}

// NewCookieManager creates a cookie manager, filling zero values with defaults
func NewCookieManager(cfg CookieConfig) *CookieManager {
	if cfg.Name == "" {
		cfg.Name = DefaultCookieName
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultCookieMaxAge
	}
	if cfg.MinCodeLength < 1 {
		cfg.MinCodeLength = entity.DefaultMinCodeLength
	}
	return &CookieManager{cfg: cfg}
}

// Name returns the cookie name
func (m *CookieManager) Name() string {
	return m.cfg.Name
}

// Issue returns the attribution cookie for a resolved code
func (m *CookieManager) Issue(code string) *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.Name,
		Value:    entity.NormalizeCode(code),
		Path:     "/",
		Domain:   m.cfg.Domain,
		MaxAge:   int(m.cfg.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Read returns the normalized code from the request cookies when present and well formed
func (m *CookieManager) Read(cookies []*http.Cookie) (string, bool) {
	for _, c := range cookies {
		if c == nil || c.Name != m.cfg.Name {
			continue
		}
		code := entity.NormalizeCode(c.Value)
		if entity.IsWellFormedCode(code, m.cfg.MinCodeLength) {
			return code, true
		}
	}
	return "", false
}

// Has reports whether the attribution cookie is present with any non-empty value
func (m *CookieManager) Has(cookies []*http.Cookie) bool {
	for _, c := range cookies {
		if c != nil && c.Name == m.cfg.Name && c.Value != "" {
			return true
		}
	}
	return false
}

// Clear returns a cookie that deletes the attribution cookie.
// net/http writes MaxAge < 0 as "Max-Age=0".
func (m *CookieManager) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.Name,
		Value:    "",
		Path:     "/",
		Domain:   m.cfg.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
