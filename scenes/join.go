package scenes

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/automoto/splashed/config"
	"github.com/automoto/splashed/logging"
	"github.com/automoto/splashed/network"
	"github.com/automoto/splashed/shared/messages"
	"github.com/automoto/splashed/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// JoinScene shows the join form and enters the arena once the room service
// hands out a session.
type JoinScene struct {
	sceneChanger SceneChanger
	services     *Services
	form         *ui.JoinUI
	status       string
	once         sync.Once
	log          zerolog.Logger

	mu       sync.Mutex
	joined   *network.Session
	joinErr  error
	joinDone bool
}

// NewJoinScene creates the form. status is shown under the form, e.g. why
// the previous session ended.
func NewJoinScene(sc SceneChanger, services *Services, status string) *JoinScene {
	return &JoinScene{
		sceneChanger: sc,
		services:     services,
		status:       status,
		log:          logging.For("join"),
	}
}

func (s *JoinScene) Update() {
	s.once.Do(s.configure)

	// Apply join results on the main goroutine
	s.mu.Lock()
	done, session, err := s.joinDone, s.joined, s.joinErr
	s.joinDone, s.joined, s.joinErr = false, nil, nil
	s.mu.Unlock()

	if done {
		if err != nil {
			s.log.Warn().Err(err).Msg("join failed")
			s.form.SetJoining(false)
			s.form.SetStatus(joinMessage(err))
		} else {
			s.sceneChanger.ChangeScene(NewArenaScene(s.sceneChanger, s.services, *session))
			return
		}
	}

	if s.form != nil {
		s.form.Update()
	}
}

func (s *JoinScene) Draw(screen *ebiten.Image) {
	screen.Fill(config.Background)

	if s.form == nil {
		return
	}
	s.form.UI.Draw(screen)
}

func (s *JoinScene) configure() {
	form, err := ui.NewJoinUI(s.onJoin)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to build join form")
		return
	}
	s.form = form
	s.form.SetStatus(s.status)

	if s.services.Resume {
		s.resume()
	}
}

// resume enters the arena with the stored token if it still parses.
func (s *JoinScene) resume() {
	token, err := s.services.Tokens.LoadToken()
	if err != nil || token == "" {
		return
	}
	session, err := network.ParseSession(token)
	if err != nil {
		s.log.Info().Err(err).Msg("discarding stored token")
		_ = s.services.Tokens.ClearToken()
		return
	}
	s.log.Info().Str("room", session.RoomID).Msg("resuming session")
	s.finish(&session, nil)
}

func (s *JoinScene) onJoin(username, roomID string) {
	username = strings.TrimSpace(username)
	if username == "" {
		s.form.SetStatus("Enter a username")
		return
	}
	s.form.SetJoining(true)
	s.form.SetStatus("Joining...")

	req := messages.JoinRequest{Username: username, RoomID: strings.TrimSpace(roomID)}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.Network.RequestTimeout)
		defer cancel()

		resp, err := s.services.API.Join(ctx, req)
		if err != nil {
			s.finish(nil, err)
			return
		}
		session, err := network.ParseSession(resp.Token)
		if err != nil {
			// The token is opaque to some servers; the response body
			// still names the client.
			session = network.Session{
				ClientID: resp.ClientID,
				Username: req.Username,
				RoomID:   req.RoomID,
				Token:    resp.Token,
			}
		}
		s.finish(&session, nil)
	}()
}

func (s *JoinScene) finish(session *network.Session, err error) {
	s.mu.Lock()
	s.joined = session
	s.joinErr = err
	s.joinDone = true
	s.mu.Unlock()
}

func joinMessage(err error) string {
	var status *network.StatusError
	switch {
	case errors.As(err, &status):
		return status.Message
	case errors.Is(err, context.DeadlineExceeded):
		return "Room service timed out"
	default:
		return "Could not reach the room service"
	}
}
