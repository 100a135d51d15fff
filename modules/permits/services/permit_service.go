package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/fieldware/sitecheck/modules/permits/domain/permit"
	"github.com/fieldware/sitecheck/pkg/eventbus"
	"github.com/fieldware/sitecheck/pkg/metrics"
	"github.com/fieldware/sitecheck/pkg/session"
	"github.com/fieldware/sitecheck/pkg/siteapi"
)

var (
	ErrRemarkRequired    = errors.New("a rejection remark is required")
	ErrSignatureRequired = errors.New("a signature image is required")
	ErrNotAnImage        = errors.New("signature upload is not an image")
)

// Upload is a signature image received from the dashboard shell.
type Upload struct {
	Filename string
	Data     []byte
}

func (u Upload) validate() error {
	if len(u.Data) == 0 {
		return ErrSignatureRequired
	}
	if !strings.HasPrefix(mimetype.Detect(u.Data).String(), "image/") {
		return ErrNotAnImage
	}
	return nil
}

// SiteAPI is the slice of the backend client permit actions need.
type SiteAPI interface {
	GetJSON(ctx context.Context, sess session.Session, pathOrURL string, out any) error
	Put(ctx context.Context, sess session.Session, pathOrURL string, body any) error
	PutMultipart(ctx context.Context, sess session.Session, pathOrURL string, fields map[string]string, files []siteapi.FilePart) error
}

// ActionEvent is published after the backend accepted a state transition.
type ActionEvent struct {
	PermitID int64
	Action   string
}

type PermitService struct {
	api       SiteAPI
	publisher eventbus.EventBus
}

func NewPermitService(api SiteAPI, publisher eventbus.EventBus) *PermitService {
	return &PermitService{api: api, publisher: publisher}
}

func (s *PermitService) Get(ctx context.Context, sess session.Session, id int64) (*permit.Permit, error) {
	var p permit.Permit
	if err := s.api.GetJSON(ctx, sess, fmt.Sprintf("/permits/%d", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// descriptor enforces that the transition was actually offered by the
// server for this viewer; the dashboard holds no transition table of its
// own.
func descriptor(p *permit.Permit, name string) (permit.ActionDescriptor, error) {
	action, ok := p.Action(name)
	if !ok {
		return permit.ActionDescriptor{}, fmt.Errorf("%w: %s", permit.ErrActionNotAvailable, name)
	}
	return action, nil
}

func (s *PermitService) finish(p *permit.Permit, name string, err error) error {
	if err != nil {
		metrics.PermitActions.WithLabelValues(name, "backend_error").Inc()
		return err
	}
	metrics.PermitActions.WithLabelValues(name, "ok").Inc()
	s.publisher.Publish(ActionEvent{PermitID: p.ID, Action: name})
	return nil
}

// Verify submits the verifier's signature image.
func (s *PermitService) Verify(ctx context.Context, sess session.Session, p *permit.Permit, sig Upload) error {
	action, err := descriptor(p, permit.ActionVerify)
	if err != nil {
		metrics.PermitActions.WithLabelValues(permit.ActionVerify, "unavailable").Inc()
		return err
	}
	if err := sig.validate(); err != nil {
		return err
	}
	return s.finish(p, permit.ActionVerify, s.api.PutMultipart(ctx, sess, action.URL, nil, []siteapi.FilePart{
		{Field: "verifier_signature", Filename: sig.Filename, Data: sig.Data},
	}))
}

// ClientApprove submits the client representative's signature image.
func (s *PermitService) ClientApprove(ctx context.Context, sess session.Session, p *permit.Permit, sig Upload) error {
	action, err := descriptor(p, permit.ActionClientApprove)
	if err != nil {
		metrics.PermitActions.WithLabelValues(permit.ActionClientApprove, "unavailable").Inc()
		return err
	}
	if err := sig.validate(); err != nil {
		return err
	}
	return s.finish(p, permit.ActionClientApprove, s.api.PutMultipart(ctx, sess, action.URL, nil, []siteapi.FilePart{
		{Field: "client_signature", Filename: sig.Filename, Data: sig.Data},
	}))
}

// ClientReject records a rejection with a mandatory remark.
func (s *PermitService) ClientReject(ctx context.Context, sess session.Session, p *permit.Permit, remark string) error {
	action, err := descriptor(p, permit.ActionClientReject)
	if err != nil {
		metrics.PermitActions.WithLabelValues(permit.ActionClientReject, "unavailable").Inc()
		return err
	}
	if strings.TrimSpace(remark) == "" {
		return ErrRemarkRequired
	}
	return s.finish(p, permit.ActionClientReject, s.api.Put(ctx, sess, action.URL, map[string]string{
		"rejected_remark": remark,
	}))
}

// RequestClosure asks for the permit to be closed; bodyless PUT.
func (s *PermitService) RequestClosure(ctx context.Context, sess session.Session, p *permit.Permit) error {
	return s.bodyless(ctx, sess, p, permit.ActionClosureRequest)
}

// Close closes the permit; bodyless PUT.
func (s *PermitService) Close(ctx context.Context, sess session.Session, p *permit.Permit) error {
	return s.bodyless(ctx, sess, p, permit.ActionClose)
}

func (s *PermitService) bodyless(ctx context.Context, sess session.Session, p *permit.Permit, name string) error {
	action, err := descriptor(p, name)
	if err != nil {
		metrics.PermitActions.WithLabelValues(name, "unavailable").Inc()
		return err
	}
	return s.finish(p, name, s.api.Put(ctx, sess, action.URL, nil))
}
