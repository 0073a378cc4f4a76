package product

import (
	"strconv"
	"strings"
)

// ExportFilename is the name given to exported product lists.
const ExportFilename = "products.csv"

// ExportContentType is the MIME type of exported product lists.
const ExportContentType = "text/csv;charset=utf-8"

var csvHeader = []string{"Name", "Category", "Price"}

// ExportCSV serialises products as CSV text with a Name,Category,Price header.
//
// Fields are joined with commas and rows with "\n"; values are not quoted,
// so a name containing a comma produces an extra column. The second return
// value is false when products is empty, in which case no file should be
// produced.
func ExportCSV(products []Product) ([]byte, bool) {
	if len(products) == 0 {
		return nil, false
	}

	rows := make([]string, 0, len(products)+1)
	rows = append(rows, strings.Join(csvHeader, ","))
	for _, p := range products {
		rows = append(rows, strings.Join([]string{p.Name, p.Category, FormatPrice(p.Price)}, ","))
	}
	return []byte(strings.Join(rows, "\n")), true
}

// FormatPrice renders a price in its shortest exact decimal form ("10", "10.5").
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
