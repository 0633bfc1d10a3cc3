package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"nhtransport/ledger"
	"nhtransport/models"
)

var exportHeaders = []string{
	"Booking No", "Date", "Party", "Vehicle", "From", "To",
	"Deal Amount", "Advance Paid", "Total Deductions", "Sub Total", "Party Due",
	"Vehicle Cost", "Vehicle Advance", "Vehicle Due",
	"Delivery Status", "Party Payment", "Vehicle Payment",
}

// exportRecord reads every figure from the calculator; dues are clamped at zero.
func exportRecord(b *models.Booking) []any {
	res := ledger.Calculate(b.LedgerInput())
	date := ""
	if !b.BookingDate.IsZero() {
		date = b.BookingDate.Format("2006-01-02")
	}
	return []any{
		b.BookingNo,
		date,
		b.Party.Name,
		b.Vehicle.VehicleNumber,
		b.Journey.FromLocation,
		b.Journey.ToLocation,
		res.DealAmount,
		res.AdvancePaid,
		res.TotalDeductions,
		res.SubTotal,
		ledger.AmountDue(res.FinalPendingAmount),
		res.VehicleCost,
		res.VehicleAdvancePaid,
		ledger.AmountDue(res.VehicleBalance),
		string(b.Delivery.Status),
		string(b.PaymentStatus.PartyPaymentStatus),
		string(b.PaymentStatus.VehiclePaymentStatus),
	}
}

// WriteBookingsCSV writes the booking register as CSV.
func WriteBookingsCSV(w io.Writer, bookings []*models.Booking) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(exportHeaders); err != nil {
		return err
	}
	for _, b := range bookings {
		rec := exportRecord(b)
		row := make([]string, len(rec))
		for i, v := range rec {
			switch v := v.(type) {
			case float64:
				row[i] = formatFloat(v)
			default:
				row[i] = fmt.Sprint(v)
			}
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteBookingsXLSX writes the booking register as a single-sheet workbook.
func WriteBookingsXLSX(w io.Writer, bookings []*models.Booking) error {
	const sheet = "Bookings"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(exportHeaders))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return err
	}

	for i, b := range bookings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := exportRecord(b)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
