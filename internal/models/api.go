package models

import "net/url"

// Route paths served by the ticket server
const (
	RouteBoard   = "/api/tickets/kanban"
	RouteReorder = "/api/tickets/kanban/reorder"
	RouteTickets = "/api/tickets"
	RouteMetrics = "/api/metrics"
	RouteHealth  = "/healthz"
)

// TicketPath is the route of one ticket, addressed by id or "#number"
func TicketPath(ref string) string {
	return RouteTickets + "/" + url.PathEscape(ref)
}

// NewTicket is the body of a ticket create request
type NewTicket struct {
	Subject  string   `json:"subject"`
	Status   Status   `json:"status,omitempty"`
	Priority Priority `json:"priority,omitempty"`
	Assignee string   `json:"assignee,omitempty"`
	Company  string   `json:"company,omitempty"`
}

// Error codes carried in APIError.Code
const (
	CodeValidation = "validation"
	CodeNotFound   = "not_found"
	CodeConflict   = "conflict"
	CodeInternal   = "internal"
)

// APIError is the body of every non-2xx response
type APIError struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Details []string `json:"details,omitempty"`
}
