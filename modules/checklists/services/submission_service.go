package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"

	"github.com/fieldware/sitecheck/modules/checklists/domain/checklist"
	"github.com/fieldware/sitecheck/modules/checklists/domain/form"
	"github.com/fieldware/sitecheck/pkg/eventbus"
	"github.com/fieldware/sitecheck/pkg/metrics"
	"github.com/fieldware/sitecheck/pkg/session"
)

// ErrDuplicateWitness blocks submission when any two of the witness ids
// match. Two unset witnesses count as a match: three distinct people must
// be selected before the form can leave the site office.
var ErrDuplicateWitness = fmt.Errorf("witnesses must be three distinct users")

// ValidationError carries the labels of unanswered required items, in
// schema declaration order.
type ValidationError struct {
	Labels []string
}

func (e *ValidationError) Error() string {
	return "unanswered required items: " + strings.Join(e.Labels, ", ")
}

// FieldError reports a typed-field schema violation.
type FieldError struct {
	Field string
	Tag   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s failed %q validation", e.Field, e.Tag)
}

// Fields are the typed top-level fields shared by the checklist forms,
// validated by a strict schema kept separate from the checklist answers.
type Fields struct {
	InspectionDate string `json:"inspection_date" validate:"required"`
	Location       string `json:"location" validate:"required"`
	DrawingNumber  string `json:"drawing_number,omitempty"`
	Remarks        string `json:"remarks,omitempty"`
	Witness1ID     string `json:"witness1_id,omitempty"`
	Witness2ID     string `json:"witness2_id,omitempty"`
	Witness3ID     string `json:"witness3_id,omitempty"`
}

func (f Fields) witnesses() [3]string {
	return [3]string{f.Witness1ID, f.Witness2ID, f.Witness3ID}
}

// SiteAPI is the slice of the backend client the workflow needs.
type SiteAPI interface {
	SubmitChecklist(ctx context.Context, sess session.Session, endpoint string, body any) error
}

// SubmittedEvent is published after the backend acknowledged a submission.
type SubmittedEvent struct {
	FormCode   string
	WorkSiteID string
}

type SubmissionService struct {
	api       SiteAPI
	publisher eventbus.EventBus
	validate  *validator.Validate
}

func NewSubmissionService(api SiteAPI, publisher eventbus.EventBus) *SubmissionService {
	return &SubmissionService{
		api:       api,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// Submit runs the generic checklist workflow: typed-field schema, witness
// distinctness, required-item validation, then exactly one POST. The first
// failing guard stops everything; no network call is made before all three
// pass.
func (s *SubmissionService) Submit(ctx context.Context, sess session.Session, def form.Definition, fields Fields, resp *checklist.Response) error {
	if err := s.validate.Struct(fields); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			metrics.ChecklistSubmissions.WithLabelValues(def.Code, "validation_failed").Inc()
			return &FieldError{Field: fieldErrs[0].Field(), Tag: fieldErrs[0].Tag()}
		}
		return errors.Wrap(err, "typed field validation")
	}

	if def.WitnessCount == 3 && hasDuplicateWitness(fields.witnesses()) {
		metrics.ChecklistSubmissions.WithLabelValues(def.Code, "duplicate_witness").Inc()
		return ErrDuplicateWitness
	}

	if missing := resp.Validate(); len(missing) > 0 {
		metrics.ChecklistSubmissions.WithLabelValues(def.Code, "validation_failed").Inc()
		return &ValidationError{Labels: missing}
	}

	body, err := assembleBody(fields, resp)
	if err != nil {
		return errors.Wrap(err, "assemble submission body")
	}

	if err := s.api.SubmitChecklist(ctx, sess, def.Endpoint, body); err != nil {
		metrics.ChecklistSubmissions.WithLabelValues(def.Code, "backend_error").Inc()
		return err
	}

	metrics.ChecklistSubmissions.WithLabelValues(def.Code, "accepted").Inc()
	s.publisher.Publish(SubmittedEvent{FormCode: def.Code, WorkSiteID: sess.WorkSiteID})
	return nil
}

func hasDuplicateWitness(w [3]string) bool {
	for i := 0; i < len(w); i++ {
		for j := i + 1; j < len(w); j++ {
			if w[i] == w[j] {
				return true
			}
		}
	}
	return false
}

// assembleBody merges the typed fields (already snake_case via their json
// tags) with the nested checklist answers under the "checklists" key.
func assembleBody(fields Fields, resp *checklist.Response) (map[string]any, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	body := make(map[string]any)
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	body["checklists"] = resp.Payload()
	return body, nil
}
