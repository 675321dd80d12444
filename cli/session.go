package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"stockroom/catalog"
	"stockroom/domain"
	"stockroom/form"
	"stockroom/notify"
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(os.Stdin, os.Stdout)
			return s.run(context.Background())
		},
	}
}

// session is one interactive run. The view-state machine decides what gets
// rendered before each prompt; the notification center echoes transient
// action outcomes.
type session struct {
	view   *catalog.ViewState
	center *notify.Center
	in     *bufio.Scanner
	out    io.Writer
}

func newSession(in io.Reader, out io.Writer) *session {
	return &session{
		view:   catalog.NewViewState(),
		center: notify.NewCenter(),
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

func (s *session) run(ctx context.Context) error {
	if err := store.Load(ctx); err != nil {
		s.center.Error("Failed to load products")
	}
	categoryCache.Fetch(ctx)
	if categoryCache.Err() != nil {
		s.center.Warning("Categories unavailable, using fallback list")
	}

	for {
		s.flushNotifications()
		s.render(ctx)

		mode, _ := s.view.Current()
		fmt.Fprintf(s.out, "stockroom[%s]> ", mode)
		if !s.in.Scan() {
			return s.in.Err()
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		s.dispatch(ctx, line)
	}
}

func (s *session) flushNotifications() {
	for _, m := range s.center.Active() {
		fmt.Fprintf(s.out, "[%s] %s\n", m.Level, m.Text)
	}
	s.center.Clear()
}

func (s *session) render(ctx context.Context) {
	mode, subject := s.view.Current()
	switch mode {
	case catalog.ModeList:
		s.renderList()
	case catalog.ModeDetails:
		s.renderDetails(ctx, subject)
	}
}

func (s *session) renderList() {
	products := store.Products()
	filtered := catalog.Filter(products, criteria.Snapshot())
	sum := catalog.Summarize(products)

	fmt.Fprintf(s.out, "%d products (%d in stock, %d low, %d out) | value %s\n",
		sum.TotalCount,
		sum.Counts[domain.StatusInStock],
		sum.Counts[domain.StatusLowStock],
		sum.Counts[domain.StatusOutOfStock],
		sum.TotalInventoryValue.StringFixed(2),
	)
	v := criteria.Snapshot()
	if v.Search != "" || v.Category != catalog.AllCategories || v.Status != catalog.AllStatuses {
		fmt.Fprintf(s.out, "filter: search=%q category=%q status=%q (%d shown)\n",
			v.Search, v.Category, v.Status, len(filtered))
	}
	for _, p := range filtered {
		fmt.Fprintln(s.out, formatProductLine(p))
	}
}

func (s *session) renderDetails(ctx context.Context, id string) {
	p, err := store.GetByID(ctx, id)
	if err != nil {
		s.center.Error("Could not find product")
		s.view.SetListView()
		return
	}
	b, _ := json.MarshalIndent(p, "", "  ")
	fmt.Fprintln(s.out, string(b))
}

func (s *session) dispatch(ctx context.Context, line string) {
	fields := strings.Fields(line)
	cmd, rest := fields[0], strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

	switch cmd {
	case "help":
		s.printHelp()
	case "list", "back":
		s.view.SetListView()
	case "refresh":
		if err := store.Load(ctx); err != nil {
			s.center.Error("Failed to load products")
		} else {
			s.center.Info("Catalog refreshed")
		}
	case "search":
		criteria.SetSearch(rest)
	case "category":
		if rest == "" {
			rest = catalog.AllCategories
		}
		criteria.SetCategory(rest)
	case "status":
		if rest == "" {
			rest = catalog.AllStatuses
		}
		criteria.SetStatus(rest)
	case "view":
		if rest == "" {
			s.center.Warning("usage: view <id>")
			return
		}
		s.view.SetDetailsView(rest)
	case "new":
		s.view.SetCreateView()
		s.runCreate(ctx)
		s.view.SetListView()
	case "edit":
		if rest == "" {
			s.center.Warning("usage: edit <id>")
			return
		}
		s.view.SetEditView(rest)
		s.runEdit(ctx, rest)
		s.view.SetListView()
	case "delete":
		if rest == "" {
			s.center.Warning("usage: delete <id>")
			return
		}
		s.runDelete(ctx, rest)
	default:
		s.center.Warning(fmt.Sprintf("unknown command %q, try help", cmd))
	}
}

func (s *session) printHelp() {
	fmt.Fprintln(s.out, `commands:
  list                 back to the product list
  search <term>        set the search term (empty to clear)
  category <name>      set the category filter (empty for all)
  status <value>       set the status filter (empty for all)
  refresh              reload the catalog
  view <id>            show product details
  new                  create a product
  edit <id>            edit a product
  delete <id>          delete a product
  exit                 leave the shell`)
}

// prompt reads one line, returning the default when the input is empty.
func (s *session) prompt(label, def string) string {
	if def != "" {
		fmt.Fprintf(s.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(s.out, "%s: ", label)
	}
	if !s.in.Scan() {
		return def
	}
	line := strings.TrimSpace(s.in.Text())
	if line == "" {
		return def
	}
	return line
}

func (s *session) promptInput(def form.Input) form.Input {
	return form.Input{
		Name:          s.prompt("Name", def.Name),
		ProductCode:   s.prompt("Product code (CODE-1234)", def.ProductCode),
		Category:      s.prompt("Category", def.Category),
		Supplier:      s.prompt("Supplier (optional)", def.Supplier),
		Description:   s.prompt("Description", def.Description),
		Quantity:      s.prompt("Quantity", def.Quantity),
		MinStock:      s.prompt("Minimum stock", def.MinStock),
		Price:         s.prompt("Price", def.Price),
		Location:      s.prompt("Location (Aisle N)", def.Location),
		LastRestocked: s.prompt("Last restocked (YYYY-MM-DD)", def.LastRestocked),
	}
}

func (s *session) runCreate(ctx context.Context) {
	in := s.promptInput(form.Input{Quantity: "0", MinStock: "0", Price: "0"})
	p, err := form.Build(in, categoryCache)
	if err != nil {
		s.notifyBuildError(err)
		return
	}
	if _, err := store.Create(ctx, p); err != nil {
		s.center.Error("Failed to create product")
		return
	}
	s.center.Success("Product created successfully")
}

func (s *session) runEdit(ctx context.Context, id string) {
	existing, err := store.GetByID(ctx, id)
	if err != nil {
		s.center.Error("Could not find product")
		return
	}
	in := s.promptInput(inputFromProduct(existing))
	p, err := form.Build(in, categoryCache)
	if err != nil {
		s.notifyBuildError(err)
		return
	}
	p.CreatedAt = existing.CreatedAt
	if _, err := store.Update(ctx, id, p); err != nil {
		s.center.Error("Failed to update product")
		return
	}
	s.center.Success("Product updated successfully")
}

func (s *session) runDelete(ctx context.Context, id string) {
	answer := s.prompt(fmt.Sprintf("Delete %s? (y/N)", id), "N")
	if answer != "y" && answer != "Y" {
		s.center.Info("Deletion cancelled")
		return
	}
	if err := store.Delete(ctx, id); err != nil {
		s.center.Error("Failed to delete product")
		return
	}
	s.center.Success("Product deleted successfully")
}

func (s *session) notifyBuildError(err error) {
	var verrs form.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			s.center.Error(e.Message)
		}
		return
	}
	s.center.Error(err.Error())
}
