package documents

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tripbazaar/travel-backend/pkg/db/models"
)

// Generator produces the booking documents served as binary bodies.
type Generator interface {
	Invoice(transaction *models.Transaction) ([]byte, error)
	Voucher(transaction *models.Transaction) ([]byte, error)
}

type generator struct {
	companyName string
}

// NewGenerator builds the PDF document generator.
func NewGenerator() Generator {
	return &generator{companyName: "TripBazaar"}
}

// Invoice renders the payment invoice for a confirmed transaction.
func (g *generator) Invoice(transaction *models.Transaction) ([]byte, error) {
	m := newDocument()

	m.AddRow(14,
		text.NewCol(12, "Invoice", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Booking id: "+transaction.ID.String(), props.Text{Top: 0}),
			text.New("Date of issue: "+transaction.CreatedAt.Format("2006-01-02"), props.Text{Top: 4}),
			text.New("Conversation id: "+transaction.TransactionIdentifier, props.Text{Top: 8}),
		),
		col.New(6).Add(
			text.New(g.companyName, props.Text{Style: fontstyle.Bold}),
		),
	)

	m.AddRow(30,
		col.New(6).Add(
			text.New("Billed to", props.Text{Style: fontstyle.Bold}),
			text.New(fmt.Sprintf("%s %s", transaction.ContactDetail.Name, transaction.ContactDetail.LastName), props.Text{Top: 5}),
			text.New(transaction.ContactDetail.Email, props.Text{Top: 9}),
			text.New(transaction.ContactDetail.Mobile, props.Text{Top: 13}),
		),
		col.New(6).Add(
			text.New("Hotel", props.Text{Style: fontstyle.Bold}),
			text.New(transaction.Hotel.Name, props.Text{Top: 5}),
			text.New(fmt.Sprintf("Check-in: %s", transaction.Search.CheckInDate), props.Text{Top: 9}),
			text.New(fmt.Sprintf("Check-out: %s", transaction.Search.CheckOutDate), props.Text{Top: 13}),
		),
	)

	m.AddRow(10,
		text.NewCol(8, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	pricing := transaction.Pricing
	rows := []struct {
		label  string
		amount string
	}{
		{"Room charges", formatAmount(float64(pricing.BaseAmountDiscountIncluded), pricing.Currency)},
		{"Guest discount", formatAmount(float64(-pricing.ClientDiscount), pricing.Currency)},
		{"Coupon discount", formatAmount(float64(-pricing.CouponDiscount), pricing.Currency)},
		{"Service charges", formatAmount(pricing.ServiceCharges, pricing.Currency)},
		{"Processing fee", formatAmount(pricing.ProcessingFee, pricing.Currency)},
		{"GST", formatAmount(pricing.GST, pricing.Currency)},
	}
	for _, row := range rows {
		m.AddRow(8,
			text.NewCol(8, row.label, props.Text{Size: 9}),
			text.NewCol(4, row.amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(12,
		text.NewCol(8, "Total charged", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(4, formatAmount(float64(pricing.TotalChargeableAmount), pricing.Currency), props.Text{
			Style: fontstyle.Bold,
			Size:  10,
			Align: align.Right,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("rendering invoice: %w", err)
	}
	return doc.GetBytes(), nil
}

// Voucher renders the check-in voucher presented at the hotel desk.
func (g *generator) Voucher(transaction *models.Transaction) ([]byte, error) {
	m := newDocument()

	m.AddRow(14,
		text.NewCol(12, "Booking Voucher", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	bookingID := ""
	if transaction.PrebookResponse != nil {
		bookingID = transaction.PrebookResponse.BookingID
	}

	m.AddRow(24,
		col.New(12).Add(
			text.New("Supplier booking id: "+bookingID, props.Text{Top: 0}),
			text.New("Reference: "+transaction.ID.String(), props.Text{Top: 4}),
			text.New("Issued by "+g.companyName, props.Text{Top: 8}),
		),
	)

	m.AddRow(36,
		col.New(6).Add(
			text.New("Guest", props.Text{Style: fontstyle.Bold}),
			text.New(fmt.Sprintf("%s %s", transaction.ContactDetail.Name, transaction.ContactDetail.LastName), props.Text{Top: 5}),
			text.New(transaction.ContactDetail.Mobile, props.Text{Top: 9}),
		),
		col.New(6).Add(
			text.New(transaction.Hotel.Name, props.Text{Style: fontstyle.Bold}),
			text.New("Check-in: "+transaction.Search.CheckInDate, props.Text{Top: 5}),
			text.New("Check-out: "+transaction.Search.CheckOutDate, props.Text{Top: 9}),
			text.New("Rooms: "+transaction.Search.TotalRoomCount, props.Text{Top: 13}),
		),
	)

	room := transaction.HotelPackage.RoomDetails
	m.AddRow(20,
		col.New(12).Add(
			text.New("Room: "+room.RoomType, props.Text{Top: 0}),
			text.New("Meal plan: "+room.Food, props.Text{Top: 4}),
		),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("rendering voucher: %w", err)
	}
	return doc.GetBytes(), nil
}

func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()
	return maroto.New(cfg)
}

func formatAmount(value float64, currency string) string {
	if currency == "" {
		currency = "INR"
	}
	return fmt.Sprintf("%s %.2f", currency, value)
}
