package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/fieldware/sitecheck/modules/permits/domain/permit"
	"github.com/fieldware/sitecheck/modules/permits/presentation/viewmodels"
	"github.com/fieldware/sitecheck/modules/permits/services"
	"github.com/fieldware/sitecheck/pkg/application"
	"github.com/fieldware/sitecheck/pkg/composables"
	"github.com/fieldware/sitecheck/pkg/configuration"
	"github.com/fieldware/sitecheck/pkg/httpapi"
	"github.com/fieldware/sitecheck/pkg/middleware"
	"github.com/fieldware/sitecheck/pkg/session"
	"github.com/fieldware/sitecheck/pkg/siteapi"
)

type PermitController struct {
	app           application.Application
	permitService *services.PermitService
	basePath      string

	// one transition at a time per permit+action, file-bearing or not
	inflight sync.Map
}

func NewPermitController(app application.Application) application.Controller {
	return &PermitController{
		app:           app,
		permitService: app.Service(services.PermitService{}).(*services.PermitService),
		basePath:      "/permits",
	}
}

func (c *PermitController) Key() string {
	return c.basePath
}

func (c *PermitController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireSession())
	router.HandleFunc("/{id:[0-9]+}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}/actions/{name}", c.Dispatch).Methods(http.MethodPut)
}

func (c *PermitController) fetch(w http.ResponseWriter, r *http.Request) (*permit.Permit, session.Session, bool) {
	logger := composables.UseLogger(r.Context())
	sess, err := composables.UseSession(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing session", nil)
		return nil, session.Session{}, false
	}
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_ID", "invalid permit id", nil)
		return nil, session.Session{}, false
	}
	p, err := c.permitService.Get(r.Context(), sess, id)
	if err != nil {
		logger.Errorf("fetching permit %d: %v", id, err)
		c.writeBackendError(w, err)
		return nil, session.Session{}, false
	}
	return p, sess, true
}

func (c *PermitController) Get(w http.ResponseWriter, r *http.Request) {
	p, _, ok := c.fetch(w, r)
	if !ok {
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.PermitToDetail(p))
}

func (c *PermitController) Dispatch(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())
	name := mux.Vars(r)["name"]
	if !permit.KnownAction(name) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "UNKNOWN_ACTION", "unrecognized permit action", nil)
		return
	}

	p, sess, ok := c.fetch(w, r)
	if !ok {
		return
	}

	latch := fmt.Sprintf("%d:%s", p.ID, name)
	if _, loaded := c.inflight.LoadOrStore(latch, struct{}{}); loaded {
		_ = httpapi.WriteError(w, http.StatusConflict, "ACTION_IN_FLIGHT", "this action is already in flight", nil)
		return
	}
	defer c.inflight.Delete(latch)

	var err error
	switch name {
	case permit.ActionVerify:
		var sig services.Upload
		sig, err = c.signatureUpload(r)
		if err == nil {
			err = c.permitService.Verify(r.Context(), sess, p, sig)
		}
	case permit.ActionClientApprove:
		var sig services.Upload
		sig, err = c.signatureUpload(r)
		if err == nil {
			err = c.permitService.ClientApprove(r.Context(), sess, p, sig)
		}
	case permit.ActionClientReject:
		_ = r.ParseForm()
		err = c.permitService.ClientReject(r.Context(), sess, p, r.PostFormValue("remark"))
	case permit.ActionClosureRequest:
		err = c.permitService.RequestClosure(r.Context(), sess, p)
	case permit.ActionClose:
		err = c.permitService.Close(r.Context(), sess, p)
	}

	if err != nil {
		c.writeActionError(w, logger, name, err)
		return
	}
	// the shell reloads and re-derives the actions list from the server
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]bool{"reload": true})
}

func (c *PermitController) signatureUpload(r *http.Request) (services.Upload, error) {
	conf := configuration.Use()
	if err := r.ParseMultipartForm(conf.MaxUploadMemory); err != nil {
		return services.Upload{}, services.ErrSignatureRequired
	}
	file, header, err := r.FormFile("signature")
	if err != nil {
		return services.Upload{}, services.ErrSignatureRequired
	}
	defer func() { _ = file.Close() }()
	data, err := io.ReadAll(io.LimitReader(file, conf.MaxUploadSize))
	if err != nil {
		return services.Upload{}, errors.Wrap(err, "reading signature upload")
	}
	return services.Upload{Filename: header.Filename, Data: data}, nil
}

func (c *PermitController) writeActionError(w http.ResponseWriter, logger *logrus.Entry, name string, err error) {
	switch {
	case errors.Is(err, permit.ErrActionNotAvailable):
		_ = httpapi.WriteError(w, http.StatusConflict, "ACTION_NOT_AVAILABLE", "the server no longer offers this action", nil)
	case errors.Is(err, services.ErrRemarkRequired):
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "REMARK_REQUIRED", "a rejection remark is required", nil)
	case errors.Is(err, services.ErrSignatureRequired):
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "SIGNATURE_REQUIRED", "a signature image is required", nil)
	case errors.Is(err, services.ErrNotAnImage):
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "SIGNATURE_NOT_IMAGE", "the signature upload is not an image", nil)
	default:
		logger.Errorf("permit action %s failed: %v", name, err)
		c.writeBackendError(w, err)
	}
}

func (c *PermitController) writeBackendError(w http.ResponseWriter, err error) {
	var apiErr *siteapi.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusNotFound {
			_ = httpapi.WriteError(w, http.StatusNotFound, "PERMIT_NOT_FOUND", "no such permit", nil)
			return
		}
		_ = httpapi.WriteError(w, http.StatusBadGateway, "BACKEND_ERROR", apiErr.Message, nil)
		return
	}
	_ = httpapi.WriteError(w, http.StatusBadGateway, "BACKEND_ERROR", "the inspection backend is unavailable", nil)
}
