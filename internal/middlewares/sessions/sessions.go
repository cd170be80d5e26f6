package sessions

import (
	"crypto/rand"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/quangdm/stmail/internal/attach"
)

const (
	sessionContextKey = "session"
	sessionDataKey    = "data"
)

func init() {
	gob.Register(SessionData{})
}

// SessionData is what one operator session remembers. Default attachment
// content exists only here; the document store keeps name and size. Once the
// session expires, later sends include no default attachments.
type SessionData struct {
	LastSeen     time.Time             // last request time
	DefaultFiles []attach.UploadedFile // default attachment content uploaded this session
}

func (s *SessionData) HasDefaultFiles() bool {
	return len(s.DefaultFiles) > 0
}

type Session struct {
	*session.Session
	SessionData
}

// Save stores the session data, to be persisted at the end of the request.
func (s *Session) Save(data ...SessionData) {
	if len(data) > 0 {
		s.SessionData = data[0]
	}
	s.SessionData.LastSeen = time.Now()
	s.Set(sessionDataKey, s.SessionData)
}

func (s *Session) Destroy() error {
	s.SessionData = SessionData{}
	return s.Session.Destroy()
}

func newSession(sess *session.Session) *Session {
	data, _ := sess.Get(sessionDataKey).(SessionData)
	return &Session{
		Session:     sess,
		SessionData: data,
	}
}

func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		slog.Error("Could not generate session id", "error", err)
		return ""
	}
	return hex.EncodeToString(b)
}

func Get(ctx *fiber.Ctx) *Session {
	return ctx.Locals(sessionContextKey).(*Session)
}

type Config struct {
	Storage        fiber.Storage
	SessionMaxAge  time.Duration
	CookieSecure   bool
	CookieHttpOnly bool
	CookieName     string
}

func New(config Config) fiber.Handler {
	store := session.New(session.Config{
		Storage:        config.Storage,
		Expiration:     config.SessionMaxAge,
		CookieSecure:   config.CookieSecure,
		CookieHTTPOnly: config.CookieHttpOnly,
		KeyLookup:      fmt.Sprintf("cookie:%s", config.CookieName),
		KeyGenerator:   generateSessionID,
	})

	return func(ctx *fiber.Ctx) error {
		sess, err := store.Get(ctx)
		if err != nil {
			return err
		}

		session := newSession(sess)
		ctx.Locals(sessionContextKey, session)
		if err := ctx.Next(); err != nil {
			return err
		}

		if len(session.Keys()) > 0 {
			return sess.Save()
		}
		return nil
	}
}
