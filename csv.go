package stripehelper

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// csvHeader is the fixed export schema. Column order and casing are part of
// the file format contract; downstream consumers index by position.
var csvHeader = []string{
	"planName",
	"orderDate",
	"userId",
	"parseId",
	"email",
	"stripeSubscriptionId",
	"invoiceId",
	"product",
	"quantity",
	"customerName",
	"country",
	"shippingAddress",
	"city",
	"state",
	"zipcode",
}

// FormatCSV flattens merged records into CSV text with CRLF line endings.
// The header row is always present, even with zero records. Records missing
// their embedded customer snapshot abort formatting with a
// *DataIntegrityError; enrichment fields are simply left empty when absent.
func FormatCSV(planName string, records []MergedRecord) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.UseCRLF = true

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("format: write header: %w", err)
	}

	for i := range records {
		row, err := csvRow(planName, &records[i])
		if err != nil {
			return "", err
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("format: write row for %s: %w", records[i].ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("format: flush: %w", err)
	}
	return sb.String(), nil
}

func csvRow(planName string, rec *MergedRecord) ([]string, error) {
	if rec.Customer == nil {
		return nil, &DataIntegrityError{SubscriptionID: rec.ID, Field: "customer"}
	}
	if rec.Customer.Shipping == nil {
		return nil, &DataIntegrityError{SubscriptionID: rec.ID, Field: "customer.shipping"}
	}
	shipping := rec.Customer.Shipping

	var orderDate, userID, parseID string
	if e := rec.Enrichment; e != nil {
		orderDate = e.OrderDate.UTC().Format(time.RFC3339)
		userID = strconv.FormatInt(e.UserID, 10)
		parseID = e.ParseID
	}

	return []string{
		planName,
		orderDate,
		userID,
		parseID,
		rec.Customer.Email,
		rec.ID,
		rec.LatestInvoiceID,
		ProductLabel,
		strconv.Itoa(ProductQuantity),
		shipping.Name,
		shipping.Country,
		joinAddressLines(shipping.Line1, shipping.Line2),
		shipping.City,
		shipping.State,
		shipping.PostalCode,
	}, nil
}

// joinAddressLines concatenates the two address lines with a single space
// and trims the result, so an empty line2 leaves no trailing space.
func joinAddressLines(line1, line2 string) string {
	return strings.TrimSpace(line1 + " " + line2)
}
