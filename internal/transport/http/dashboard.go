package http

import (
	"context"
	"net/http"

	"github.com/Natili254/Eveflow/internal/app"
	"github.com/Natili254/Eveflow/internal/domain"
)

type DashboardService interface {
	Dashboard(ctx context.Context, actor domain.Actor) (app.Dashboard, error)
}

func HandleDashboard(svc DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		stats, err := svc.Dashboard(r.Context(), actor)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toDashboardResponse(stats))
	}
}
