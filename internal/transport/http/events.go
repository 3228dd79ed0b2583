package http

import (
	"context"
	"net/http"

	"github.com/Natili254/Eveflow/internal/domain"
)

// EventLister is the minimal interface needed to browse open events.
type EventLister interface {
	ListAvailableEvents(ctx context.Context, actor domain.Actor) ([]domain.AvailableEvent, error)
}

// HandleListEvents returns an HTTP handler listing events open to vendors.
func HandleListEvents(svc EventLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		events, err := svc.ListAvailableEvents(r.Context(), actor)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		resp := make([]eventResponse, 0, len(events))
		for _, e := range events {
			resp = append(resp, toEventResponse(e))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
