package gate

import (
	"net/http"
	"time"

	"github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi31"

	"github.com/grantsy/licensegate/internal/httptools"
	oa "github.com/grantsy/licensegate/internal/openapi"
)

// StatusResponse is the admin view of the most recent Result.
type StatusResponse struct {
	Outcome              Outcome   `json:"outcome" description:"Final state of the check" enum:"skipped,continued,confirmed,terminated" required:"true"`
	Reason               Reason    `json:"reason" description:"Why the check ended this way" required:"true"`
	StatusCode           int       `json:"status_code,omitempty" description:"HTTP status returned by the license server"`
	Notified             bool      `json:"notified" description:"Whether a violation notification was submitted" required:"true"`
	TerminationRequested bool      `json:"termination_requested" description:"Whether the host must terminate" required:"true"`
	Error                string    `json:"error,omitempty" description:"Error absorbed by the check"`
	CheckedAt            time.Time `json:"checked_at" description:"When the check completed" required:"true"`
}

func ToStatusResponse(res Result) StatusResponse {
	resp := StatusResponse{
		Outcome:              res.Outcome,
		Reason:               res.Reason,
		StatusCode:           res.StatusCode,
		Notified:             res.Notified,
		TerminationRequested: res.TerminationRequested(),
		CheckedAt:            res.CheckedAt.UTC(),
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	return resp
}

type RouteStatus struct {
	gate *Gate
}

func NewRouteStatus(gate *Gate) *RouteStatus {
	return &RouteStatus{gate: gate}
}

func (route *RouteStatus) Register(mux *http.ServeMux, r *openapi31.Reflector) {
	mux.Handle("GET /v1/status", route.Handler())
	RegisterStatusSchema(r)
}

func RegisterStatusSchema(r *openapi31.Reflector) {
	op, _ := r.NewOperationContext(http.MethodGet, "/v1/status")
	op.AddRespStructure(struct {
		Data StatusResponse `json:"data"`
		Meta httptools.Meta `json:"meta"`
		_    struct{}       `title:"StatusEnvelope"`
	}{}, func(cu *openapi.ContentUnit) {
		cu.HTTPStatus = http.StatusOK
		cu.Description = "Most recent license check result"
	})
	oa.AddErrorResponses(op, http.StatusUnauthorized, http.StatusNotFound)
	op.SetSummary("Get license check status")
	op.SetDescription("Result of the most recent license check; 404 until one completes")
	op.SetTags("Status")
	op.AddSecurity(oa.SecurityName)
	_ = r.AddOperation(op)
}

func (route *RouteStatus) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, ok := route.gate.Last()
		if !ok {
			httptools.NotFound(w, r, "No license check has completed yet")
			return
		}
		httptools.JSON(w, r, http.StatusOK, ToStatusResponse(res))
	})
}
