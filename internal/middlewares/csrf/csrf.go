package csrf

import (
	"crypto/rand"
	"encoding/gob"
	"encoding/hex"
	"path"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/quangdm/stmail/internal/middlewares/sessions"
	"github.com/quangdm/stmail/params"
)

const (
	csrfSessionKey = "_csrf"
	csrfFormField  = "_csrf"
)

type CSRF struct {
	Token     string
	ExpiresAt time.Time
}

func init() {
	gob.Register(CSRF{})
}

// Token returns the session's current CSRF token, generating one when needed.
// Templates embed it as a hidden form field.
func Token(ctx *fiber.Ctx) string {
	session := sessions.Get(ctx)
	csrf, ok := session.Get(csrfSessionKey).(CSRF)
	if !ok || time.Now().After(csrf.ExpiresAt) {
		csrf = generateCSRF()
		session.Set(csrfSessionKey, csrf)
	}
	return csrf.Token
}

// Verify checks the submitted token against the session's. POST forms carry
// it in the _csrf field, falling back to the X-CSRF-Token header.
func Verify(ctx *fiber.Ctx) bool {
	token := ctx.FormValue(csrfFormField)
	if token == "" {
		token = ctx.Get("X-CSRF-Token")
	}
	if token == "" {
		return false
	}

	session := sessions.Get(ctx)
	csrf, ok := session.Get(csrfSessionKey).(CSRF)
	if !ok || time.Now().After(csrf.ExpiresAt) {
		return false
	}
	return csrf.Token == token
}

func randomToken() string {
	const tokenLength = 32
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate CSRF token: " + err.Error())
	}
	return hex.EncodeToString(b)
}

func generateCSRF() CSRF {
	return CSRF{
		Token:     randomToken(),
		ExpiresAt: time.Now().Add(params.CSRFTokenExpiration),
	}
}

type Config struct {
	ExcludePaths []string
}

// New rotates expired tokens so every rendered page carries a valid one.
func New(config Config) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		for _, p := range config.ExcludePaths {
			if ok, _ := path.Match(p, ctx.Path()); ok {
				return ctx.Next()
			}
		}
		session := sessions.Get(ctx)
		data, ok := session.Get(csrfSessionKey).(CSRF)
		if !ok || time.Now().After(data.ExpiresAt) {
			session.Set(csrfSessionKey, generateCSRF())
		}
		return ctx.Next()
	}
}
