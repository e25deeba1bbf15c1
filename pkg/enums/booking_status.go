package enums

// BookingStatus tracks the lifecycle of a booking transaction.
//
//	0 prebooked: created at prebook time
//	1 confirmed: payment collaborator confirmed the booking
//	2 cancelled: terminal
type BookingStatus int

const (
	BookingStatusPrebooked BookingStatus = 0
	BookingStatusConfirmed BookingStatus = 1
	BookingStatusCancelled BookingStatus = 2
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPrebooked, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}
