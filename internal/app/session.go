package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

// SessionService moves the client's session cookies in and out of a store.
type SessionService struct {
	api   domain.Gateway
	jar   domain.CookieJar
	store domain.SessionStore
}

func NewSessionService(api domain.Gateway, jar domain.CookieJar, store domain.SessionStore) *SessionService {
	return &SessionService{api: api, jar: jar, store: store}
}

// Restore loads saved cookies into the jar. A store failure is logged and
// leaves the client signed out.
func (s *SessionService) Restore(ctx context.Context) {
	cookies, err := s.store.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("session restore failed")
		return
	}
	s.jar.RestoreCookies(cookies)
}

// Persist saves the jar's current cookies.
func (s *SessionService) Persist(ctx context.Context) error {
	if err := s.store.Save(ctx, s.jar.Cookies()); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// SignOut ends the remote session and forgets the saved one. The saved
// session is cleared even when the remote call fails.
func (s *SessionService) SignOut(ctx context.Context) error {
	remoteErr := s.api.SignOut(ctx)
	if err := s.store.Clear(ctx); err != nil {
		log.Warn().Err(err).Msg("session clear failed")
	}
	return remoteErr
}
