package request

// ReservationURI addresses one reservation of one kind
type ReservationURI struct {
	Kind string `uri:"kind" binding:"required"`
	ID   int64  `uri:"id" binding:"required,min=1"`
}

// ReservationKindURI addresses the reservations of one kind
type ReservationKindURI struct {
	Kind string `uri:"kind" binding:"required"`
}

// ListReservationsRequest represents reservation list parameters
type ListReservationsRequest struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=100"`
}
