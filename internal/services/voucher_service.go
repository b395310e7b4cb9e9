package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"tripplanner/internal/models/db_models"
	"tripplanner/pkg/utils"
)

type VoucherServiceInterface interface {
	HotelVoucher(b *db_models.HotelBooking) ([]byte, error)
	RideVoucher(b *db_models.RideBooking) ([]byte, error)
}

// VoucherService renders PDF vouchers carrying a signed QR code of the
// booking id.
type VoucherService struct {
	appName string
	secret  []byte
}

func NewVoucherService(appName, signingSecret string) VoucherServiceInterface {
	return &VoucherService{appName: appName, secret: []byte(signingSecret)}
}

// QRPayload is kind|bookingID|signature.
func (v *VoucherService) QRPayload(kind, bookingID string) string {
	data := fmt.Sprintf("%s|%s", kind, bookingID)
	h := hmac.New(sha256.New, v.secret)
	h.Write([]byte(data))
	return fmt.Sprintf("%s|%s", data, base64.RawURLEncoding.EncodeToString(h.Sum(nil)))
}

func (v *VoucherService) HotelVoucher(b *db_models.HotelBooking) ([]byte, error) {
	return v.render("Hotel Booking Voucher", v.QRPayload("hotel", b.ID), [][2]string{
		{"Booking ID", b.ID},
		{"Hotel", b.HotelName},
		{"Address", b.HotelAddress},
		{"Guest", b.Contact.Name},
		{"Email", b.Contact.Email},
		{"Phone", b.Contact.Phone},
		{"Check-in", b.CheckIn},
		{"Check-out", b.CheckOut},
		{"Nights", fmt.Sprintf("%d", b.Nights)},
		{"Guests", fmt.Sprintf("%d", b.Guests)},
		{"Price per night", utils.FormatPKR(b.PricePerNight)},
		{"Total paid", utils.FormatPKR(b.TotalPrice)},
	})
}

func (v *VoucherService) RideVoucher(b *db_models.RideBooking) ([]byte, error) {
	return v.render("Ride Booking Voucher", v.QRPayload("ride", b.ID), [][2]string{
		{"Booking ID", b.ID},
		{"Company", b.Company},
		{"Vehicle", fmt.Sprintf("%s - %s", b.VehicleType, b.VehicleModel)},
		{"From", b.Departure},
		{"To", b.Destination},
		{"Pickup", b.PickupTime},
		{"Passengers", fmt.Sprintf("%d", b.Passengers)},
		{"Passenger name", b.Contact.Name},
		{"Phone", b.Contact.Phone},
		{"Total paid", utils.FormatPKR(b.TotalPrice)},
	})
}

func (v *VoucherService) render(title, qrPayload string, rows [][2]string) ([]byte, error) {
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, tr(v.appName))
	pdf.Ln(10)
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(45, 8, tr(row[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(95, 8, tr(row[1]), "", 1, "L", false, 0, "")
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 45, 45, false, imageOpts, 0, "")

	pdf.SetY(-30)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 8, tr("Present this voucher and QR code at check-in or pickup."))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
