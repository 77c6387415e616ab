package models

import "errors"

var (
	// ErrUnknownStatus indicates a status string that is not a ticket status
	ErrUnknownStatus = errors.New("unknown ticket status")

	// ErrTicketNotOnBoard indicates the ticket is not in any board column
	ErrTicketNotOnBoard = errors.New("ticket is not on the board")

	// ErrTiedOrder indicates two tickets in one column share an order value
	ErrTiedOrder = errors.New("tickets in the same column share an order value")

	// ErrStatusMismatch indicates a ticket sits in a column other than its status
	ErrStatusMismatch = errors.New("ticket status does not match its column")
)
