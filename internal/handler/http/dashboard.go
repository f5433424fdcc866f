package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/webwhiz/hrms-backend/internal/domain/dashboard"
	"github.com/webwhiz/hrms-backend/internal/handler/http/response"
)

type DashboardHandler interface {
	GetAllData(w http.ResponseWriter, r *http.Request)
	MonthlyCalendar(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	now              func() time.Time
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{
		dashboardService: dashboardService,
		now:              time.Now,
	}
}

// GetAllData implements DashboardHandler.
func (d *DashboardHandlerImpl) GetAllData(w http.ResponseWriter, r *http.Request) {
	data, err := d.dashboardService.GetAllData(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, data)
}

// MonthlyCalendar implements DashboardHandler. The month comes from an
// optional month=YYYY-MM query and defaults to the current one.
func (d *DashboardHandlerImpl) MonthlyCalendar(w http.ResponseWriter, r *http.Request) {
	at := d.now()
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			response.BadRequest(w, "month must be YYYY-MM", map[string]string{"month": raw})
			return
		}
		// Mid-month noon stays inside the month in every timezone.
		at = parsed.Add(14*24*time.Hour + 12*time.Hour)
	}

	calendar, err := d.dashboardService.MonthlyCalendar(r.Context(), chi.URLParam(r, "userId"), at)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, calendar)
}
