// Package form validates raw product form input and derives the product
// submitted to the gateway. Validation failures never reach the network.
package form

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stockroom/domain"
)

// Rule identifies the kind of constraint a field violated.
type Rule string

const (
	RuleRequired Rule = "required"
	RuleTooShort Rule = "tooShort"
	RuleTooLong  Rule = "tooLong"
	RuleBelowMin Rule = "belowMin"
	RuleAboveMax Rule = "aboveMax"
	RulePattern  Rule = "pattern"
)

// FieldError is one violated constraint with a human-readable message.
type FieldError struct {
	Field   string
	Rule    Rule
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// ValidationErrors collects every violated constraint of one submission.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, " ")
}

// Input carries the raw form values, all as strings, before coercion.
type Input struct {
	Name          string
	ProductCode   string
	Category      string
	Supplier      string
	Description   string
	Quantity      string
	MinStock      string
	Price         string
	Location      string
	LastRestocked string
}

var (
	reProductCode = regexp.MustCompile(`^(?i)[A-Z0-9]{2,10}-[0-9]{4}$`)
	reLocation    = regexp.MustCompile(`^(?i)Aisle [0-9]+$`)
)

var fieldLabels = map[string]string{
	"name":        "Product Name",
	"productCode": "Product Code",
	"category":    "Category",
	"supplier":    "Supplier",
	"description": "Description",
	"quantity":    "Quantity",
	"minStock":    "Minimum Stock",
	"price":       "Price",
	"location":    "Location",
}

func required(field string) FieldError {
	return FieldError{field, RuleRequired, fmt.Sprintf("%s is required.", fieldLabels[field])}
}

func tooShort(field string, min int) FieldError {
	return FieldError{field, RuleTooShort, fmt.Sprintf("%s must be at least %d characters.", fieldLabels[field], min)}
}

func tooLong(field string, max int) FieldError {
	return FieldError{field, RuleTooLong, fmt.Sprintf("%s cannot exceed %d characters.", fieldLabels[field], max)}
}

func belowMin(field, min string) FieldError {
	return FieldError{field, RuleBelowMin, fmt.Sprintf("%s must be at least %s.", fieldLabels[field], min)}
}

func aboveMax(field, max string) FieldError {
	return FieldError{field, RuleAboveMax, fmt.Sprintf("%s cannot exceed %s.", fieldLabels[field], max)}
}

// Validate checks every field-level constraint and returns one error per
// violated rule. An empty result means the input may be submitted.
func Validate(in Input) ValidationErrors {
	var errs ValidationErrors

	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		errs = append(errs, required("name"))
	case len(name) < 2:
		errs = append(errs, tooShort("name", 2))
	case len(name) > 100:
		errs = append(errs, tooLong("name", 100))
	}

	code := strings.TrimSpace(in.ProductCode)
	switch {
	case code == "":
		errs = append(errs, required("productCode"))
	case !reProductCode.MatchString(code):
		errs = append(errs, FieldError{"productCode", RulePattern,
			"Product Code must follow format: CODE-1234 (2-10 alphanumeric characters, hyphen, 4 digits)"})
	}

	if strings.TrimSpace(in.Category) == "" {
		errs = append(errs, required("category"))
	}

	// supplier is optional; when given it still has a length floor
	if supplier := strings.TrimSpace(in.Supplier); supplier != "" && len(supplier) < 2 {
		errs = append(errs, tooShort("supplier", 2))
	}

	if len(strings.TrimSpace(in.Description)) > 500 {
		errs = append(errs, tooLong("description", 500))
	}

	quantity := coerceInt(in.Quantity)
	switch {
	case quantity < 0:
		errs = append(errs, belowMin("quantity", "0"))
	case quantity > 999999:
		errs = append(errs, aboveMax("quantity", "999999"))
	}

	minStock := coerceInt(in.MinStock)
	switch {
	case minStock < 0:
		errs = append(errs, belowMin("minStock", "0"))
	case minStock > 999999:
		errs = append(errs, aboveMax("minStock", "999999"))
	}

	price := coerceDecimal(in.Price)
	switch {
	case price.LessThan(decimal.NewFromFloat(0.01)):
		errs = append(errs, belowMin("price", "0.01"))
	case price.GreaterThan(decimal.NewFromFloat(999999.99)):
		errs = append(errs, aboveMax("price", "999999.99"))
	}

	location := strings.TrimSpace(in.Location)
	switch {
	case location == "":
		errs = append(errs, required("location"))
	case !reLocation.MatchString(location):
		errs = append(errs, FieldError{"location", RulePattern, "Location must follow format: Aisle 1"})
	}

	return errs
}

// coerceInt parses an integer, defaulting to 0 on failure.
func coerceInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// coerceDecimal parses a decimal, defaulting to 0 on failure.
func coerceDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CategoryLookup resolves a category display name to its reference form.
// catalog.Categories satisfies it.
type CategoryLookup interface {
	ByName(name string) (domain.Category, bool)
}

// Build validates the input and derives the product to submit: text fields
// trimmed, numbers coerced with default 0, status recomputed from the
// submitted quantity/minStock, category resolved against the vocabulary
// (raw text passed through when no match exists), and the date-only restock
// input widened to a timestamp or dropped when blank or unparsable.
func Build(in Input, categories CategoryLookup) (domain.Product, error) {
	if errs := Validate(in); len(errs) > 0 {
		return domain.Product{}, errs
	}

	quantity := coerceInt(in.Quantity)
	minStock := coerceInt(in.MinStock)
	price := coerceDecimal(in.Price)

	categoryName := strings.TrimSpace(in.Category)
	category := domain.CategoryByName(categoryName)
	if categories != nil {
		if match, ok := categories.ByName(categoryName); ok {
			category = match
		}
	}

	var supplier *string
	if s := strings.TrimSpace(in.Supplier); s != "" {
		supplier = &s
	}

	return domain.Product{
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		Price:         price,
		Quantity:      quantity,
		MinStock:      minStock,
		ProductCode:   strings.TrimSpace(in.ProductCode),
		Location:      strings.TrimSpace(in.Location),
		Supplier:      supplier,
		Category:      category,
		Status:        domain.DeriveStatus(quantity, minStock),
		LastRestocked: parseDateOnly(in.LastRestocked),
	}, nil
}

// parseDateOnly widens a date-only value to a timestamp; blank or unparsable
// input yields nil.
func parseDateOnly(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
