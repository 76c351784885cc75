package governor

import (
	"context"
	"maps"
	"sync"

	"github.com/Gthulhu/cpupower/domain"
	"github.com/Gthulhu/cpupower/pkg/logger"
	"github.com/rs/xid"
)

// SessionManager hands out at most one open Session at a time.
type SessionManager struct {
	catalog *Catalog
	backend domain.GovernorBackend
	limits  domain.DeviceLimits

	mu     sync.Mutex
	active *Session
}

func NewSessionManager(catalog *Catalog, backend domain.GovernorBackend, limits domain.DeviceLimits) *SessionManager {
	return &SessionManager{
		catalog: catalog,
		backend: backend,
		limits:  limits,
	}
}

// Open starts an edit session for kind. It fails with domain.ErrSessionBusy, leaving the
// open session untouched, when another session has not been closed yet.
func (m *SessionManager) Open(ctx context.Context, kind domain.GovernorKind) (*Session, error) {
	if !m.catalog.Tunable(kind) {
		return nil, domain.ErrNotTunable
	}

	m.mu.Lock()
	if m.active != nil {
		m.mu.Unlock()
		return nil, domain.ErrSessionBusy
	}
	s := &Session{
		id:      xid.New().String(),
		kind:    kind,
		specs:   m.catalog.SpecsFor(kind),
		manager: m,
		values:  make(map[string]string),
		state:   domain.SessionLoaded,
		done:    make(chan struct{}, 1),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m.active = s
	m.mu.Unlock()

	s.load(ctx)
	s.validateLocked(ctx)
	logger.Logger(ctx).Info().Str("session_id", s.id).Str("governor", kind.String()).Msg("governor session opened")
	return s, nil
}

// Active returns the open session, if any.
func (m *SessionManager) Active() (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, m.active != nil
}

// Describe resolves the parameters of kind against the values currently set on the device.
func (m *SessionManager) Describe(ctx context.Context, kind domain.GovernorKind) []domain.ParameterView {
	values := make(map[string]string)
	for _, spec := range m.catalog.SpecsFor(kind) {
		if v, err := m.backend.GetParameter(ctx, kind, spec.Name); err == nil {
			values[spec.Name] = v
		}
	}
	return m.catalog.Describe(ctx, kind, m.backend, m.limits, values)
}

func (m *SessionManager) release(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == s {
		m.active = nil
	}
}

// Session holds the edited values of one governor until commit or cancel.
type Session struct {
	id      string
	kind    domain.GovernorKind
	specs   []ParameterSpec
	manager *SessionManager

	mu      sync.Mutex
	values  map[string]string
	state   domain.SessionState
	message string

	closeOnce sync.Once
	done      chan struct{}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Kind() domain.GovernorKind {
	return s.kind
}

func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Done receives one value when the session closes.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Values returns a copy of the current field values.
func (s *Session) Values() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.values)
}

func (s *Session) load(ctx context.Context) {
	for _, spec := range s.specs {
		v, err := s.manager.backend.GetParameter(ctx, s.kind, spec.Name)
		if err != nil {
			logger.Logger(ctx).Warn().Err(err).Str("governor", s.kind.String()).Str("parameter", spec.Name).Msg("failed to load governor parameter")
			s.values[spec.Name] = ""
			continue
		}
		s.values[spec.Name] = v
	}
}

// Set edits one field and re-validates the session. It returns the resulting message.
func (s *Session) Set(ctx context.Context, name, value string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.SessionClosed {
		return "", domain.ErrSessionClosed
	}
	if _, ok := s.manager.catalog.spec(s.kind, name); !ok {
		return "", domain.ErrUnknownParameter
	}
	s.values[name] = value
	return s.validateLocked(ctx), nil
}

// Validate re-checks every field and returns the first failing message, or "".
func (s *Session) Validate(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.SessionClosed {
		return s.message
	}
	return s.validateLocked(ctx)
}

func (s *Session) validateLocked(ctx context.Context) string {
	m := s.manager
	s.message = m.catalog.Validate(ctx, s.kind, m.backend, m.limits, s.values)
	if s.message == "" {
		s.state = domain.SessionValid
	} else {
		s.state = domain.SessionInvalid
	}
	return s.message
}

// Commit validates once more and writes every field to the backend. A failed write is
// recorded in the report and does not stop the remaining writes. The session closes
// after the writes.
func (s *Session) Commit(ctx context.Context) (domain.CommitReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report := domain.CommitReport{Written: []string{}}
	if s.state == domain.SessionClosed {
		return report, domain.ErrSessionClosed
	}
	if msg := s.validateLocked(ctx); msg != "" {
		return report, &domain.ValidationError{Message: msg}
	}

	log := logger.Logger(ctx).With().Str("session_id", s.id).Str("governor", s.kind.String()).Logger()
	for _, spec := range s.specs {
		value := normalize(spec, s.values[spec.Name])
		if err := s.manager.backend.SetParameter(ctx, s.kind, spec.Name, value); err != nil {
			log.Error().Err(err).Str("parameter", spec.Name).Msg("failed to write governor parameter")
			if report.Failed == nil {
				report.Failed = make(map[string]string)
			}
			report.Failed[spec.Name] = err.Error()
			continue
		}
		report.Written = append(report.Written, spec.Name)
	}
	log.Info().Int("written", len(report.Written)).Int("failed", len(report.Failed)).Msg("governor session committed")
	s.closeLocked()
	return report, nil
}

// Cancel closes the session without writing. Closing an already closed session does nothing.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Session) closeLocked() {
	s.closeOnce.Do(func() {
		s.state = domain.SessionClosed
		s.manager.release(s)
		s.done <- struct{}{}
	})
}

// View returns a read-only copy of the session.
func (s *Session) View() domain.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := domain.SessionView{
		ID:       s.id,
		Governor: s.kind,
		State:    s.state,
		Message:  s.message,
		Fields:   make([]domain.SessionField, 0, len(s.specs)),
	}
	for _, spec := range s.specs {
		view.Fields = append(view.Fields, domain.SessionField{
			Name:  spec.Name,
			Label: spec.Label,
			Type:  spec.Type,
			Value: s.values[spec.Name],
		})
	}
	return view
}
