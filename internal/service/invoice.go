package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/aqabadeal-png/canroad/internal/domain"
)

// InvoiceService renders estimates and final invoices for display and
// export. Label values are emitted as-is; translation-key resolution
// belongs to the consuming client.
type InvoiceService struct{}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService() *InvoiceService {
	return &InvoiceService{}
}

// FormatAmount renders a signed currency amount: sign, dollar sign, then
// the absolute value with two decimals (discounts render as "-$10.00").
func FormatAmount(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s$%.2f", sign, math.Abs(amount))
}

// FormatTotalRange renders the estimate's total range with the currency
// suffix, e.g. "$60-$70 CAD".
func FormatTotalRange(e *domain.PricingEstimate) string {
	return fmt.Sprintf("$%d-$%d CAD", e.TotalMin, e.TotalMax)
}

// FormatInvoice formats a completed job's invoice as text (for email or
// print).
func (s *InvoiceService) FormatInvoice(job *domain.Job) string {
	estimate := job.FinalInvoice
	header := "FINAL INVOICE"
	if estimate == nil {
		estimate = &job.InitialEstimate
		header = "ESTIMATE"
	}

	var b strings.Builder
	b.WriteString("=====================================\n")
	fmt.Fprintf(&b, "          %s\n", header)
	b.WriteString("=====================================\n")
	fmt.Fprintf(&b, "Job ID:   %s\n", job.ID)
	fmt.Fprintf(&b, "Customer: %s\n", job.CustomerName)
	fmt.Fprintf(&b, "Service:  %s\n", job.ServiceType)
	fmt.Fprintf(&b, "Vehicle:  %s", job.VehicleType)
	if job.VehicleMake != "" || job.VehicleModel != "" {
		fmt.Fprintf(&b, " (%s %s)", job.VehicleMake, job.VehicleModel)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Location: %s\n", job.CustomerLocation.Address)
	fmt.Fprintf(&b, "Date:     %s\n", job.CreatedAt.Format("Jan 02, 2006 3:04 PM"))
	b.WriteString("\nBREAKDOWN\n")
	b.WriteString("-------------------------------------\n")
	for _, item := range estimate.Breakdown {
		line := item.Label.Value
		if item.Note != "" {
			line += " (" + item.Note + ")"
		}
		fmt.Fprintf(&b, "%-28s %8s\n", line, FormatAmount(item.Amount))
	}
	b.WriteString("-------------------------------------\n")
	fmt.Fprintf(&b, "TOTAL:  %s\n", FormatTotalRange(estimate))
	b.WriteString("=====================================\n")

	return b.String()
}
