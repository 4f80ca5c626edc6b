package shell

import (
	"fmt"
	"io"
	"text/tabwriter"

	"catalog/internal/models"
	"catalog/pkg/query"
)

// RenderPage prints one page as a table followed by a "page x/y" footer.
func RenderPage(w io.Writer, res query.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tIMAGE")
	for _, p := range res.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Price.String(), imageText(p.Image))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "page %d/%d (%d products)\n", res.Page, res.TotalPages, res.Total)
	return err
}

// RenderProduct prints every field of p, one per line.
func RenderProduct(w io.Writer, p *models.Product) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "id\t%s\n", p.ID)
	fmt.Fprintf(tw, "name\t%s\n", p.Name)
	fmt.Fprintf(tw, "description\t%s\n", p.Description)
	fmt.Fprintf(tw, "price\t%s\n", p.Price.String())
	fmt.Fprintf(tw, "image\t%s\n", imageText(p.Image))
	return tw.Flush()
}

func imageText(image *string) string {
	if image == nil {
		return "-"
	}
	return *image
}
