package output

import (
	"fmt"
	"io"

	"github.com/example/gtmscan/internal/model"
)

// WriteReport renders summary counts plus per-result detail for every
// GTM-found record, the same information the interactive surface shows.
func WriteReport(w io.Writer, rs model.ResultSet) error {
	sum := rs.Summary()
	if _, err := fmt.Fprintf(w, "Total Scanned: %d\nGTM Found: %d\nSuccess Rate: %.1f%%\n",
		sum.Total, sum.GTMFound, sum.SuccessRate()); err != nil {
		return err
	}

	for _, res := range rs.GTMFound() {
		if _, err := fmt.Fprintf(w, "\nURL: %s\nStatus: %s\n", res.URL, res.Status); err != nil {
			return err
		}
		writeList(w, "Emails", res.Emails)
		writeList(w, "Phones", res.Phones)
		writeList(w, "Contact pages", res.ContactLinks)
	}
	return nil
}

func writeList(w io.Writer, label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", label)
	for _, v := range values {
		fmt.Fprintf(w, "  - %s\n", v)
	}
}
