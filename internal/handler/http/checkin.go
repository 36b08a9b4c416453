package http

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/winco-group/attendance-backend-go/internal/domain/punch"
	"github.com/winco-group/attendance-backend-go/internal/handler/http/middleware"
	"github.com/winco-group/attendance-backend-go/internal/handler/http/response"
	"github.com/winco-group/attendance-backend-go/internal/service/checkin"
)

type CheckinHandler interface {
	Checkin(w http.ResponseWriter, r *http.Request)
}

type CheckinHandlerImpl struct {
	checkinService checkin.CheckinService
}

func NewCheckinHandler(checkinService checkin.CheckinService) CheckinHandler {
	return &CheckinHandlerImpl{checkinService: checkinService}
}

// Checkin implements CheckinHandler. The client supplies direction and
// coordinates; identity, user agent and source IP come from the request
// itself.
func (c *CheckinHandlerImpl) Checkin(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var checkinReq punch.MobileCheckinRequest
	if err := json.NewDecoder(r.Body).Decode(&checkinReq); err != nil {
		slog.Error("Checkin decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	checkinReq.UserAgent = r.UserAgent()
	checkinReq.SourceIP = clientIP(r)

	resp, err := c.checkinService.Checkin(r.Context(), employeeID, checkinReq)
	if err != nil {
		slog.Error("Checkin service error", "employee_id", employeeID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded", resp)
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
