// Package cli provides the Cobra-based CLI for stockroom.
package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"stockroom/catalog"
	"stockroom/domain"
	"stockroom/form"
	"stockroom/gateway"
)

var (
	rootCmd = &cobra.Command{
		Use:   "stockroom",
		Short: "An inventory console for a remote product catalog",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// IMPORTANT: allow tests to inject the gateway
			if catalogGateway != nil {
				wireServices()
				return nil
			}

			if cfg := viper.GetString("config"); cfg != "" {
				viper.SetConfigFile(cfg)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}

			lvlStr := strings.ToLower(viper.GetString("log-level"))
			lvl := slog.LevelInfo
			switch lvlStr {
			case "debug":
				lvl = slog.LevelDebug
			case "warn", "warning":
				lvl = slog.LevelWarn
			case "error":
				lvl = slog.LevelError
			}
			slog.SetDefault(slog.New(
				slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
			))

			var err error
			catalogGateway, err = gateway.New(
				viper.GetString("gateway"),
				viper.GetString("api-url"),
				viper.GetString("store-file"),
				viper.GetDuration("timeout"),
			)
			if err != nil {
				return err
			}
			wireServices()
			return nil
		},
	}

	catalogGateway gateway.Catalog
	store          *catalog.Store
	categoryCache  *catalog.Categories
	criteria       *catalog.Criteria
)

func wireServices() {
	store = catalog.NewStore(catalogGateway)
	categoryCache = catalog.NewCategories(catalogGateway)
	criteria = catalog.NewCriteria()
}

// printValidationErrors surfaces one message per violated constraint.
func printValidationErrors(err error) bool {
	var verrs form.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, e := range verrs {
		fmt.Fprintln(os.Stderr, e.Message)
	}
	return true
}

func formatProductLine(p domain.Product) string {
	return fmt.Sprintf("%s | %s | %s | %s | %d | %s | %s",
		p.ID, p.Name, p.ProductCode, p.Price.StringFixed(2), p.Quantity, p.Status, p.Category.DisplayName())
}

func init() {
	rootCmd.PersistentFlags().String("gateway", "http", "gateway backend: http|memory|file")
	rootCmd.PersistentFlags().String("api-url", "http://localhost:3000", "catalog API base URL")
	rootCmd.PersistentFlags().String("store-file", "data/catalog.json", "file gateway snapshot path")
	rootCmd.PersistentFlags().Duration("timeout", 10*time.Second, "gateway request timeout")
	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")

	viper.BindPFlag("gateway", rootCmd.PersistentFlags().Lookup("gateway"))
	viper.BindPFlag("api-url", rootCmd.PersistentFlags().Lookup("api-url"))
	viper.BindPFlag("store-file", rootCmd.PersistentFlags().Lookup("store-file"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix("STOCKROOM")
	viper.AutomaticEnv()

	// list
	var lSearch, lCategory, lStatus, lOutput string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := store.Load(ctx); err != nil {
				slog.Error("load failed", "error", err)
				return err
			}

			criteria.SetSearch(lSearch)
			criteria.SetCategory(lCategory)
			criteria.SetStatus(lStatus)

			filtered := catalog.Filter(store.Products(), criteria.Snapshot())
			if lOutput == "json" {
				b, _ := json.MarshalIndent(filtered, "", "  ")
				fmt.Println(string(b))
				return nil
			}
			for _, p := range filtered {
				fmt.Println(formatProductLine(p))
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&lSearch, "search", "", "search term (name, description, product code)")
	listCmd.Flags().StringVar(&lCategory, "category", catalog.AllCategories, "category filter")
	listCmd.Flags().StringVar(&lStatus, "status", catalog.AllStatuses, "status filter")
	listCmd.Flags().StringVar(&lOutput, "output", "", "output format")
	rootCmd.AddCommand(listCmd)

	// stats
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show inventory statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.Load(context.Background()); err != nil {
				return err
			}
			s := catalog.Summarize(store.Products())
			fmt.Printf("Total products: %d\n", s.TotalCount)
			fmt.Printf("In stock:       %d\n", s.Counts[domain.StatusInStock])
			fmt.Printf("Low stock:      %d\n", s.Counts[domain.StatusLowStock])
			fmt.Printf("Out of stock:   %d\n", s.Counts[domain.StatusOutOfStock])
			fmt.Printf("Total value:    %s\n", s.TotalInventoryValue.StringFixed(2))
			fmt.Printf("Categories:     %s\n", strings.Join(s.Categories, ", "))
			fmt.Printf("Statuses:       %s\n", strings.Join(s.Statuses, ", "))
			return nil
		},
	}
	rootCmd.AddCommand(statsCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get product by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.GetByID(context.Background(), args[0])
			if err != nil {
				if domain.IsProductNotFoundError(err) {
					fmt.Fprintln(os.Stderr, err)
					return nil
				}
				return err
			}
			b, _ := json.MarshalIndent(p, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}
	rootCmd.AddCommand(getCmd)

	// create
	var cIn form.Input
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			categoryCache.Fetch(ctx)

			p, err := form.Build(cIn, categoryCache)
			if err != nil {
				printValidationErrors(err)
				return err
			}
			p.CreatedAt = time.Now().UTC()

			start := time.Now()
			created, err := store.Create(ctx, p)
			if err != nil {
				slog.Error("create failed", "error", err)
				return err
			}
			slog.Info("product created", "product_id", created.ID, "duration_ms", time.Since(start).Milliseconds())
			b, _ := json.MarshalIndent(created, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}
	addFormFlags(createCmd, &cIn)
	rootCmd.AddCommand(createCmd)

	// update
	var uIn form.Input
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id := args[0]

			existing, err := store.GetByID(ctx, id)
			if err != nil {
				return err
			}
			categoryCache.Fetch(ctx)

			in := inputFromProduct(existing)
			overlayChanged(cmd, &in, &uIn)

			p, err := form.Build(in, categoryCache)
			if err != nil {
				printValidationErrors(err)
				return err
			}
			p.CreatedAt = existing.CreatedAt

			start := time.Now()
			updated, err := store.Update(ctx, id, p)
			if err != nil {
				slog.Error("update failed", "product_id", id, "error", err)
				return err
			}
			slog.Info("product updated", "product_id", id, "duration_ms", time.Since(start).Milliseconds())
			b, _ := json.MarshalIndent(updated, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}
	addFormFlags(updateCmd, &uIn)
	rootCmd.AddCommand(updateCmd)

	// delete
	var force bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("Delete %s? (y/N): ", args[0])
				var resp string
				if _, err := fmt.Scanln(&resp); err != nil || (resp != "y" && resp != "Y") {
					fmt.Println("aborted")
					return nil
				}
			}
			if err := store.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("deleted")
			return nil
		},
	}
	deleteCmd.Flags().BoolVar(&force, "force", false, "skip confirmation")
	rootCmd.AddCommand(deleteCmd)

	// categories
	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "List known categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categoryCache.Fetch(context.Background())
			if err := categoryCache.Err(); err != nil {
				slog.Warn("categories unavailable, using fallback", "error", err)
			}
			for _, c := range categoryCache.All() {
				if c.IsRef() {
					fmt.Printf("%s | %s\n", c.ID, c.Name)
				} else {
					fmt.Println(c.Name)
				}
			}
			return nil
		},
	}
	rootCmd.AddCommand(categoriesCmd)

	// export
	var exportFile, exportSearch, exportCategory, exportStatus string
	exportCmd := &cobra.Command{
		Use:   "export --file <file>",
		Short: "Export (optionally filtered) products to JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if exportFile == "" {
				return errors.New("--file required")
			}
			if err := store.Load(context.Background()); err != nil {
				return err
			}
			filtered := catalog.Filter(store.Products(), catalog.CriteriaValues{
				Search:   exportSearch,
				Category: exportCategory,
				Status:   exportStatus,
			})
			b, _ := json.MarshalIndent(filtered, "", "  ")
			return os.WriteFile(exportFile, b, 0o644)
		},
	}
	exportCmd.Flags().StringVar(&exportFile, "file", "", "output file")
	exportCmd.Flags().StringVar(&exportSearch, "search", "", "search term")
	exportCmd.Flags().StringVar(&exportCategory, "category", catalog.AllCategories, "category filter")
	exportCmd.Flags().StringVar(&exportStatus, "status", catalog.AllStatuses, "status filter")
	rootCmd.AddCommand(exportCmd)

	// import
	var importFile string
	importCmd := &cobra.Command{
		Use:   "import --file <file>",
		Short: "Import products from JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if importFile == "" {
				return errors.New("--file required")
			}

			b, err := os.ReadFile(importFile)
			if err != nil {
				return err
			}

			btrim := bytes.TrimSpace(b)
			if len(btrim) == 0 {
				return errors.New("empty file")
			}

			var products []domain.Product

			// JSON array
			if btrim[0] == '[' {
				if err := json.Unmarshal(btrim, &products); err != nil {
					return err
				}
			} else {
				// NDJSON or single JSON object
				scanner := bufio.NewScanner(bytes.NewReader(btrim))
				for scanner.Scan() {
					line := bytes.TrimSpace(scanner.Bytes())
					if len(line) == 0 {
						continue
					}
					var p domain.Product
					if err := json.Unmarshal(line, &p); err != nil {
						return err
					}
					products = append(products, p)
				}
				if err := scanner.Err(); err != nil {
					return err
				}
			}

			ctx := context.Background()
			imported := 0
			var lastErr error
			for _, p := range products {
				p.ID = ""
				p.Status = domain.DeriveStatus(p.Quantity, p.MinStock)
				if _, err := store.Create(ctx, p); err != nil {
					slog.Error("import create failed", "name", p.Name, "error", err)
					lastErr = err
					continue
				}
				imported++
			}
			fmt.Printf("imported %d of %d products\n", imported, len(products))
			return lastErr
		},
	}
	importCmd.Flags().StringVar(&importFile, "file", "", "input file")
	rootCmd.AddCommand(importCmd)

	rootCmd.AddCommand(newShellCmd())
}

// addFormFlags registers the raw string form fields used by create/update.
func addFormFlags(cmd *cobra.Command, in *form.Input) {
	cmd.Flags().StringVar(&in.Name, "name", "", "product name")
	cmd.Flags().StringVar(&in.ProductCode, "code", "", "product code (CODE-1234)")
	cmd.Flags().StringVar(&in.Category, "category", "", "category name")
	cmd.Flags().StringVar(&in.Supplier, "supplier", "", "supplier (optional)")
	cmd.Flags().StringVar(&in.Description, "description", "", "description")
	cmd.Flags().StringVar(&in.Quantity, "quantity", "0", "quantity on hand")
	cmd.Flags().StringVar(&in.MinStock, "min-stock", "0", "reorder threshold")
	cmd.Flags().StringVar(&in.Price, "price", "0", "unit price")
	cmd.Flags().StringVar(&in.Location, "location", "", "location (Aisle N)")
	cmd.Flags().StringVar(&in.LastRestocked, "last-restocked", "", "last restock date (YYYY-MM-DD)")
}

// inputFromProduct turns an existing product back into raw form input so
// update can overlay only the changed flags.
func inputFromProduct(p domain.Product) form.Input {
	in := form.Input{
		Name:        p.Name,
		ProductCode: p.ProductCode,
		Category:    p.Category.DisplayName(),
		Description: p.Description,
		Quantity:    strconv.Itoa(p.Quantity),
		MinStock:    strconv.Itoa(p.MinStock),
		Price:       p.Price.String(),
		Location:    p.Location,
	}
	if p.Supplier != nil {
		in.Supplier = *p.Supplier
	}
	if p.LastRestocked != nil {
		in.LastRestocked = p.LastRestocked.Format("2006-01-02")
	}
	return in
}

func overlayChanged(cmd *cobra.Command, dst, src *form.Input) {
	if cmd.Flags().Changed("name") {
		dst.Name = src.Name
	}
	if cmd.Flags().Changed("code") {
		dst.ProductCode = src.ProductCode
	}
	if cmd.Flags().Changed("category") {
		dst.Category = src.Category
	}
	if cmd.Flags().Changed("supplier") {
		dst.Supplier = src.Supplier
	}
	if cmd.Flags().Changed("description") {
		dst.Description = src.Description
	}
	if cmd.Flags().Changed("quantity") {
		dst.Quantity = src.Quantity
	}
	if cmd.Flags().Changed("min-stock") {
		dst.MinStock = src.MinStock
	}
	if cmd.Flags().Changed("price") {
		dst.Price = src.Price
	}
	if cmd.Flags().Changed("location") {
		dst.Location = src.Location
	}
	if cmd.Flags().Changed("last-restocked") {
		dst.LastRestocked = src.LastRestocked
	}
}

func Execute() error {
	return rootCmd.Execute()
}
