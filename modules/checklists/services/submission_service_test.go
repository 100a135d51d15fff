package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/fieldware/sitecheck/modules/checklists/domain/checklist"
	"github.com/fieldware/sitecheck/modules/checklists/forms"
	"github.com/fieldware/sitecheck/pkg/eventbus"
	"github.com/fieldware/sitecheck/pkg/session"
)

type mockSiteAPI struct {
	calls    int
	endpoint string
	body     map[string]any
	err      error
}

func (m *mockSiteAPI) SubmitChecklist(ctx context.Context, sess session.Session, endpoint string, body any) error {
	m.calls++
	m.endpoint = endpoint
	m.body, _ = body.(map[string]any)
	return m.err
}

var testSession = session.Session{Token: "tok", WorkSiteID: "ws-1", Role: session.RoleSiteManager}

func validFields() Fields {
	return Fields{
		InspectionDate: "2026-08-29",
		Location:       "Block C, grid 4-7",
		Witness1ID:     "10",
		Witness2ID:     "20",
		Witness3ID:     "30",
	}
}

func completedResponse(t *testing.T, code string) *checklist.Response {
	t.Helper()
	def, ok := forms.ByCode(code)
	require.True(t, ok)
	resp := checklist.NewResponse(def.Schema)
	for _, cat := range def.Schema {
		for _, item := range cat.Items {
			require.NoError(t, resp.SetChoice(cat.Key, item.Key, item.Schema.Choices[0]))
		}
	}
	return resp
}

func TestSubmit_Success(t *testing.T) {
	api := &mockSiteAPI{}
	bus := eventbus.NewEventPublisher(logrus.New())
	var events []SubmittedEvent
	bus.Subscribe(func(e SubmittedEvent) { events = append(events, e) })

	svc := NewSubmissionService(api, bus)
	def, _ := forms.ByCode("concrete_pour")

	err := svc.Submit(context.Background(), testSession, def, validFields(), completedResponse(t, "concrete_pour"))
	require.NoError(t, err)
	require.Equal(t, 1, api.calls)
	require.Equal(t, "/inspections/concrete-pours", api.endpoint)
	require.Equal(t, "2026-08-29", api.body["inspection_date"])
	require.Equal(t, "10", api.body["witness1_id"])
	require.Contains(t, api.body, "checklists")
	require.Equal(t, []SubmittedEvent{{FormCode: "concrete_pour", WorkSiteID: "ws-1"}}, events)
}

func TestSubmit_DuplicateWitnessBlocksBeforeNetwork(t *testing.T) {
	api := &mockSiteAPI{}
	svc := NewSubmissionService(api, eventbus.NewEventPublisher(logrus.New()))
	def, _ := forms.ByCode("concrete_pour")

	fields := validFields()
	fields.Witness2ID = fields.Witness1ID

	// blocked regardless of checklist completeness
	err := svc.Submit(context.Background(), testSession, def, fields, completedResponse(t, "concrete_pour"))
	require.ErrorIs(t, err, ErrDuplicateWitness)
	require.Zero(t, api.calls)
}

func TestSubmit_TwoUnsetWitnessesAreDuplicates(t *testing.T) {
	api := &mockSiteAPI{}
	svc := NewSubmissionService(api, eventbus.NewEventPublisher(logrus.New()))
	def, _ := forms.ByCode("concrete_pour")

	fields := validFields()
	fields.Witness2ID = ""
	fields.Witness3ID = ""

	err := svc.Submit(context.Background(), testSession, def, fields, completedResponse(t, "concrete_pour"))
	require.ErrorIs(t, err, ErrDuplicateWitness)
	require.Zero(t, api.calls)
}

func TestSubmit_WitnessGuardSkippedForWitnessLessForms(t *testing.T) {
	api := &mockSiteAPI{}
	svc := NewSubmissionService(api, eventbus.NewEventPublisher(logrus.New()))
	def, _ := forms.ByCode("earthing")

	fields := validFields()
	fields.Witness1ID, fields.Witness2ID, fields.Witness3ID = "", "", ""

	err := svc.Submit(context.Background(), testSession, def, fields, completedResponse(t, "earthing"))
	require.NoError(t, err)
	require.Equal(t, 1, api.calls)
}

func TestSubmit_MissingRequiredAnswers(t *testing.T) {
	api := &mockSiteAPI{}
	svc := NewSubmissionService(api, eventbus.NewEventPublisher(logrus.New()))
	def, _ := forms.ByCode("earthing")

	resp := checklist.NewResponse(def.Schema)
	require.NoError(t, resp.SetChoice("installation", "pit_depth", "Yes"))

	err := svc.Submit(context.Background(), testSession, def, validFields(), resp)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, []string{
		"Earthing strip continuous and clamped",
		"Joints welded and bitumen coated",
		"Earth resistance measured and recorded",
	}, vErr.Labels)
	require.Zero(t, api.calls)
}

func TestSubmit_TypedFieldSchemaEnforced(t *testing.T) {
	api := &mockSiteAPI{}
	svc := NewSubmissionService(api, eventbus.NewEventPublisher(logrus.New()))
	def, _ := forms.ByCode("earthing")

	fields := validFields()
	fields.InspectionDate = ""

	err := svc.Submit(context.Background(), testSession, def, fields, completedResponse(t, "earthing"))
	var fErr *FieldError
	require.ErrorAs(t, err, &fErr)
	require.Equal(t, "InspectionDate", fErr.Field)
	require.Zero(t, api.calls)
}

func TestSubmit_BackendFailureSurfacedOnce(t *testing.T) {
	api := &mockSiteAPI{err: context.DeadlineExceeded}
	svc := NewSubmissionService(api, eventbus.NewEventPublisher(logrus.New()))
	def, _ := forms.ByCode("earthing")

	err := svc.Submit(context.Background(), testSession, def, validFields(), completedResponse(t, "earthing"))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, 1, api.calls, "no retry")
}

func TestSubmit_PayloadShape(t *testing.T) {
	// §8 end-to-end scenario: prep.a answered Yes must travel as
	// checklists.prep.a with choice and verbose_name.
	api := &mockSiteAPI{}
	svc := NewSubmissionService(api, eventbus.NewEventPublisher(logrus.New()))
	def, _ := forms.ByCode("concrete_pour")

	err := svc.Submit(context.Background(), testSession, def, validFields(), completedResponse(t, "concrete_pour"))
	require.NoError(t, err)

	checklists, ok := api.body["checklists"].(map[string]map[string]checklist.AnswerPayload)
	require.True(t, ok)
	answer := checklists["prep"]["formwork_clean"]
	require.Equal(t, "Yes", answer.Choice)
	require.Equal(t, "Formwork cleaned and oiled", answer.VerboseName)
}
