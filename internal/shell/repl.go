package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"catalog/internal/models"
	"catalog/pkg/query"

	"github.com/shopspring/decimal"
)

const helpText = `commands:
  q TEXT           filter by name or description (empty clears)
  min N | max N    price bounds (empty clears)
  sort MODE        default, price-asc or price-desc
  page N | next | prev
  size N           page size
  reset            clear price bounds and sort
  reload           fetch the list again
  show ID          print one product
  add              create a product
  edit ID          change a product (empty answer keeps the value)
  rm ID            delete a product
  quit`

// Shell is a line-oriented browser over a Session.
type Shell struct {
	session *Session
	in      *bufio.Scanner
	out     io.Writer
}

func New(session *Session, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		session: session,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run loads the list and executes commands until quit or end of input.
func (sh *Shell) Run(ctx context.Context) error {
	if err := sh.session.Reload(ctx); err != nil {
		sh.notify(err)
	}
	sh.render()

	for {
		line, ok := sh.prompt("> ")
		if !ok {
			return sh.in.Err()
		}
		if sh.Exec(ctx, line) {
			return nil
		}
	}
}

// Exec runs one command line and reports whether the shell should stop.
func (sh *Shell) Exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	view := sh.session.View()

	switch strings.ToLower(cmd) {
	case "quit", "exit":
		return true
	case "help", "?":
		fmt.Fprintln(sh.out, helpText)
		return false
	case "q":
		view.SetQuery(arg)
	case "min":
		view.SetMinPrice(arg)
	case "max":
		view.SetMaxPrice(arg)
	case "sort":
		view.SetSort(query.ParseSort(arg))
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(sh.out, "page: %q is not a number\n", arg)
			return false
		}
		view.SetPage(n)
	case "next":
		view.NextPage()
	case "prev":
		view.PrevPage()
	case "size":
		n, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(sh.out, "size: %q is not a number\n", arg)
			return false
		}
		view.SetPageSize(n)
	case "reset":
		view.ResetFilters()
	case "reload":
		if err := sh.session.Reload(ctx); err != nil {
			sh.notify(err)
		}
	case "show":
		sh.show(ctx, arg)
		return false
	case "add":
		sh.add(ctx)
	case "edit":
		sh.edit(ctx, arg)
	case "rm":
		sh.remove(ctx, arg)
	default:
		fmt.Fprintf(sh.out, "unknown command %q, type help\n", cmd)
		return false
	}

	sh.render()
	return false
}

func (sh *Shell) show(ctx context.Context, id string) {
	p, err := sh.session.Get(ctx, id)
	if err != nil {
		sh.notify(err)
		return
	}
	_ = RenderProduct(sh.out, p)
}

func (sh *Shell) add(ctx context.Context) {
	var input models.CreateProductInput
	var ok bool

	if input.Name, ok = sh.prompt("name: "); !ok {
		return
	}
	if input.Description, ok = sh.prompt("description: "); !ok {
		return
	}
	price, ok := sh.prompt("price: ")
	if !ok {
		return
	}
	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		fmt.Fprintf(sh.out, "price: %q is not a number\n", price)
		return
	}
	input.Price = d
	image, ok := sh.prompt("image (optional): ")
	if !ok {
		return
	}
	if image = strings.TrimSpace(image); image != "" {
		input.Image = &image
	}

	p, err := sh.session.Create(ctx, input)
	sh.reportWrite("created", p, err)
}

func (sh *Shell) edit(ctx context.Context, id string) {
	current, err := sh.session.Get(ctx, id)
	if err != nil {
		sh.notify(err)
		return
	}

	var input models.UpdateProductInput
	name, ok := sh.prompt(fmt.Sprintf("name [%s]: ", current.Name))
	if !ok {
		return
	}
	if name != "" {
		input.Name = &name
	}
	desc, ok := sh.prompt(fmt.Sprintf("description [%s]: ", current.Description))
	if !ok {
		return
	}
	if desc != "" {
		input.Description = &desc
	}
	price, ok := sh.prompt(fmt.Sprintf("price [%s]: ", current.Price.String()))
	if !ok {
		return
	}
	if price = strings.TrimSpace(price); price != "" {
		d, err := decimal.NewFromString(price)
		if err != nil {
			fmt.Fprintf(sh.out, "price: %q is not a number\n", price)
			return
		}
		input.Price = &d
	}
	image, ok := sh.prompt(fmt.Sprintf("image [%s] (- clears): ", imageText(current.Image)))
	if !ok {
		return
	}
	switch image = strings.TrimSpace(image); image {
	case "":
	case "-":
		input.Image = models.NullString()
	default:
		input.Image = models.SomeString(image)
	}

	if input.IsEmpty() {
		fmt.Fprintln(sh.out, "nothing to change")
		return
	}
	p, err := sh.session.Update(ctx, current.ID, input)
	sh.reportWrite("updated", p, err)
}

func (sh *Shell) remove(ctx context.Context, id string) {
	answer, ok := sh.prompt(fmt.Sprintf("delete %s? [y/N] ", id))
	if !ok {
		return
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
	default:
		return
	}
	if err := sh.session.Delete(ctx, id); err != nil {
		sh.notify(err)
		return
	}
	fmt.Fprintf(sh.out, "deleted %s\n", id)
}

// reportWrite handles the (product, error) pair of a write followed by a reload.
func (sh *Shell) reportWrite(verb string, p *models.Product, err error) {
	if p != nil {
		fmt.Fprintf(sh.out, "%s %s\n", verb, p.ID)
	}
	if err != nil {
		sh.notify(err)
	}
}

func (sh *Shell) render() {
	_ = RenderPage(sh.out, sh.session.Result())
}

func (sh *Shell) notify(err error) {
	fmt.Fprintf(sh.out, "error: %v\n", err)
}

func (sh *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(sh.out, label)
	if !sh.in.Scan() {
		return "", false
	}
	return sh.in.Text(), true
}
