package service

import (
	"context"

	"github.com/Gthulhu/cpupower/domain"
	"github.com/Gthulhu/cpupower/governor"
	"github.com/Gthulhu/cpupower/pkg/logger"
)

// GovernorSpecs lists the parameters of kind with bounds resolved against the device.
// Governors without parameters yield an empty list.
func (svc *Service) GovernorSpecs(ctx context.Context, kind domain.GovernorKind) ([]domain.ParameterView, error) {
	if kind == domain.GovernorUnknown {
		return nil, domain.ErrGovernorUnavailable
	}
	views := svc.sessions.Describe(ctx, kind)
	if views == nil {
		views = []domain.ParameterView{}
	}
	return views, nil
}

// OpenGovernorSession opens the single edit session. A second open fails with
// domain.ErrSessionBusy and leaves the open session as it is.
func (svc *Service) OpenGovernorSession(ctx context.Context, kind domain.GovernorKind) (*domain.SessionView, error) {
	s, err := svc.sessions.Open(withClientLogger(ctx), kind)
	if err != nil {
		return nil, err
	}
	view := s.View()
	return &view, nil
}

func (svc *Service) activeSession() (*governor.Session, error) {
	s, ok := svc.sessions.Active()
	if !ok {
		return nil, domain.ErrNoSession
	}
	return s, nil
}

func (svc *Service) GetGovernorSession(ctx context.Context) (*domain.SessionView, error) {
	s, err := svc.activeSession()
	if err != nil {
		return nil, err
	}
	view := s.View()
	return &view, nil
}

// SetGovernorSessionField edits one field; the returned view carries the validation message.
func (svc *Service) SetGovernorSessionField(ctx context.Context, name, value string) (*domain.SessionView, error) {
	s, err := svc.activeSession()
	if err != nil {
		return nil, err
	}
	if _, err := s.Set(ctx, name, value); err != nil {
		return nil, err
	}
	view := s.View()
	return &view, nil
}

// CommitGovernorSession writes the session to the device. An invalid session returns a
// *domain.ValidationError and stays open.
func (svc *Service) CommitGovernorSession(ctx context.Context) (*domain.CommitReport, error) {
	s, err := svc.activeSession()
	if err != nil {
		return nil, err
	}
	report, err := s.Commit(withClientLogger(ctx))
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (svc *Service) CancelGovernorSession(ctx context.Context) error {
	s, err := svc.activeSession()
	if err != nil {
		return err
	}
	s.Cancel()
	logger.Logger(ctx).Info().Str("client_id", clientID(ctx)).Str("session_id", s.View().ID).Msg("governor session canceled")
	return nil
}
