package controllers

import (
	"net/http"
	"sync"

	"github.com/go-faster/errors"
	formdecoder "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/fieldware/sitecheck/modules/checklists/domain/checklist"
	"github.com/fieldware/sitecheck/modules/checklists/forms"
	"github.com/fieldware/sitecheck/modules/checklists/presentation/viewmodels"
	"github.com/fieldware/sitecheck/modules/checklists/services"
	"github.com/fieldware/sitecheck/pkg/application"
	"github.com/fieldware/sitecheck/pkg/composables"
	"github.com/fieldware/sitecheck/pkg/httpapi"
	"github.com/fieldware/sitecheck/pkg/middleware"
	"github.com/fieldware/sitecheck/pkg/siteapi"
)

type ChecklistController struct {
	app               application.Application
	submissionService *services.SubmissionService
	basePath          string
	decoder           *formdecoder.Decoder

	// one submit at a time per rendered form instance
	inflight sync.Map
}

func NewChecklistController(app application.Application) application.Controller {
	return &ChecklistController{
		app:               app,
		submissionService: app.Service(services.SubmissionService{}).(*services.SubmissionService),
		basePath:          "/checklists",
		decoder:           formdecoder.NewDecoder(),
	}
}

func (c *ChecklistController) Key() string {
	return c.basePath
}

func (c *ChecklistController) Register(r *mux.Router) {
	getRouter := r.PathPrefix(c.basePath).Subrouter()
	getRouter.HandleFunc("", c.List).Methods(http.MethodGet)
	getRouter.HandleFunc("/{code}", c.GetForm).Methods(http.MethodGet)

	setRouter := r.PathPrefix(c.basePath).Subrouter()
	setRouter.Use(middleware.RequireSession())
	setRouter.HandleFunc("/{code}", c.Submit).Methods(http.MethodPost)
}

func (c *ChecklistController) List(w http.ResponseWriter, r *http.Request) {
	all := forms.All()
	items := make([]viewmodels.FormListItem, 0, len(all))
	for _, def := range all {
		items = append(items, viewmodels.FormToListItem(def))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, items)
}

func (c *ChecklistController) GetForm(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	def, ok := forms.ByCode(code)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusNotFound, "FORM_NOT_FOUND", "no such checklist form", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.FormToDetail(def))
}

type answerDTO struct {
	Choice string `form:"choice"`
	Remark string `form:"remark"`
}

type submitDTO struct {
	SubmissionToken string `form:"submission_token"`
	InspectionDate  string `form:"inspection_date"`
	Location        string `form:"location"`
	DrawingNumber   string `form:"drawing_number"`
	Remarks         string `form:"remarks"`
	Witness1ID      string `form:"witness1_id"`
	Witness2ID      string `form:"witness2_id"`
	Witness3ID      string `form:"witness3_id"`
	// encoded as answers[category][item].choice / .remark
	Answers map[string]map[string]answerDTO `form:"answers"`
}

type validationResponse struct {
	Code             string   `json:"code"`
	Message          string   `json:"message"`
	ValidationErrors []string `json:"validation_errors"`
}

func (c *ChecklistController) Submit(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())
	code := mux.Vars(r)["code"]
	def, ok := forms.ByCode(code)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusNotFound, "FORM_NOT_FOUND", "no such checklist form", nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_FORM", "malformed form body", nil)
		return
	}
	var dto submitDTO
	if err := c.decoder.Decode(&dto, r.PostForm); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_FORM", errors.Wrap(err, "decoding form").Error(), nil)
		return
	}

	if dto.SubmissionToken != "" {
		if _, loaded := c.inflight.LoadOrStore(dto.SubmissionToken, struct{}{}); loaded {
			_ = httpapi.WriteError(w, http.StatusConflict, "SUBMISSION_IN_FLIGHT", "a submission for this form is already in flight", nil)
			return
		}
		defer c.inflight.Delete(dto.SubmissionToken)
	}

	resp := checklist.NewResponse(def.Schema)
	for catKey, items := range dto.Answers {
		for itemKey, answer := range items {
			if answer.Choice != "" {
				if err := resp.SetChoice(catKey, itemKey, answer.Choice); err != nil {
					_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_ANSWER", err.Error(), nil)
					return
				}
			}
			if answer.Remark != "" {
				if err := resp.SetRemark(catKey, itemKey, answer.Remark); err != nil {
					_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_ANSWER", err.Error(), nil)
					return
				}
			}
		}
	}

	sess, err := composables.UseSession(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing session", nil)
		return
	}

	fields := services.Fields{
		InspectionDate: dto.InspectionDate,
		Location:       dto.Location,
		DrawingNumber:  dto.DrawingNumber,
		Remarks:        dto.Remarks,
		Witness1ID:     dto.Witness1ID,
		Witness2ID:     dto.Witness2ID,
		Witness3ID:     dto.Witness3ID,
	}

	err = c.submissionService.Submit(r.Context(), sess, def, fields, resp)
	switch {
	case err == nil:
		_ = httpapi.WriteJSON(w, http.StatusCreated, map[string]string{"redirect": def.ListPath})
	case errors.Is(err, services.ErrDuplicateWitness):
		_ = httpapi.WriteError(w, http.StatusConflict, "DUPLICATE_WITNESS", "witnesses must be three distinct users", nil)
	default:
		c.writeSubmitError(w, logger, err)
	}
}

func (c *ChecklistController) writeSubmitError(w http.ResponseWriter, logger *logrus.Entry, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		_ = httpapi.WriteJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Code:             "CHECKLIST_INCOMPLETE",
			Message:          "required check items are unanswered",
			ValidationErrors: vErr.Labels,
		})
		return
	}
	var fErr *services.FieldError
	if errors.As(err, &fErr) {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "FIELD_VALIDATION", fErr.Error(), map[string]string{
			"field": fErr.Field,
			"tag":   fErr.Tag,
		})
		return
	}
	var apiErr *siteapi.APIError
	if errors.As(err, &apiErr) {
		logger.Errorf("backend rejected submission: %v", apiErr)
		_ = httpapi.WriteError(w, http.StatusBadGateway, "BACKEND_ERROR", apiErr.Message, nil)
		return
	}
	logger.Errorf("submission failed: %v", err)
	_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "submission failed", nil)
}
