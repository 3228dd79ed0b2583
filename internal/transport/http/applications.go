package http

import (
	"context"
	"net/http"

	"github.com/Natili254/Eveflow/internal/app"
	"github.com/Natili254/Eveflow/internal/domain"
)

// ApplicationService is the minimal interface needed for application
// endpoints.
type ApplicationService interface {
	ListApplications(ctx context.Context, actor domain.Actor) ([]domain.Application, error)
	Submit(ctx context.Context, actor domain.Actor, in app.SubmitApplicationInput) (domain.Application, error)
	Update(ctx context.Context, actor domain.Actor, applicationID int64, in app.UpdateApplicationInput) (domain.Application, error)
	Withdraw(ctx context.Context, actor domain.Actor, applicationID int64) (domain.Application, error)
}

type submitApplicationRequest struct {
	EventID           int64  `json:"event_id"`
	ProductService    string `json:"product_service"`
	BoothRequirements string `json:"booth_requirements"`
	AdditionalNotes   string `json:"additional_notes"`
}

type updateApplicationRequest struct {
	ProductService    *string `json:"product_service"`
	BoothRequirements *string `json:"booth_requirements"`
	AdditionalNotes   *string `json:"additional_notes"`
}

type applicationEnvelope struct {
	Message     string              `json:"message"`
	Application applicationResponse `json:"application"`
}

func HandleListApplications(svc ApplicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		apps, err := svc.ListApplications(r.Context(), actor)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		resp := make([]applicationResponse, 0, len(apps))
		for _, a := range apps {
			resp = append(resp, toApplicationResponse(a))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func HandleSubmitApplication(svc ApplicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		var req submitApplicationRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		application, err := svc.Submit(r.Context(), actor, app.SubmitApplicationInput{
			EventID:           req.EventID,
			ProductService:    req.ProductService,
			BoothRequirements: req.BoothRequirements,
			AdditionalNotes:   req.AdditionalNotes,
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, applicationEnvelope{
			Message:     "Application submitted successfully",
			Application: toApplicationResponse(application),
		})
	}
}

func HandleUpdateApplication(svc ApplicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req updateApplicationRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		application, err := svc.Update(r.Context(), actor, id, app.UpdateApplicationInput{
			ProductService:    req.ProductService,
			BoothRequirements: req.BoothRequirements,
			AdditionalNotes:   req.AdditionalNotes,
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, applicationEnvelope{
			Message:     "Application updated successfully",
			Application: toApplicationResponse(application),
		})
	}
}

func HandleWithdrawApplication(svc ApplicationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		application, err := svc.Withdraw(r.Context(), actor, id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, applicationEnvelope{
			Message:     "Application withdrawn successfully",
			Application: toApplicationResponse(application),
		})
	}
}
