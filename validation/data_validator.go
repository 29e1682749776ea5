// Package validation checks the loaded catalog and the values clients send.
package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/giygas/ceassist-api/catalog/entities"
	"github.com/giygas/ceassist-api/interfaces"
	"github.com/giygas/ceassist-api/logging"
)

// Pre-compiled regex patterns, reused for all validations
var (
	// Filter values are Japanese product and disease names: any letter or
	// number plus the punctuation the catalog itself uses.
	inputRegex = regexp.MustCompile(`^[\p{L}\p{N}\p{M}\s\-\.\+'()（）/:,、・~〜]+$`)

	// Catalog ids and session ids
	idRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

	// Dangerous patterns as strings (faster than regex for simple substring matching)
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "onmouseover=", "onfocus=", "onblur=", "onchange=", "onsubmit=",
		"eval(", "expression(", "url(", "import ", "@import", "binding(", "behavior(",
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"update set", "--", "/*", "*/", "xp_", "sp_", "exec(", "execute(",
		// Command injection patterns
		"; ", "| ", "& ", "`", "$(", "${",
		// Path traversal patterns
		"../", "..\\", "%2e%2e", "file://",
		// NoSQL injection patterns
		"{$ne:", "{$gt:", "{$where:", "{$or:", "{$regex:", "{$expr:",
	}
)

const (
	maxInputRunes = 100
	maxIDLength   = 64
)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() interfaces.DataValidator {
	return &DataValidatorImpl{}
}

// ValidateCatalog performs the integrity checks lookups and filters rely on
func (v *DataValidatorImpl) ValidateCatalog(catalog *entities.Catalog) error {
	if catalog == nil {
		return fmt.Errorf("catalog is nil")
	}
	if len(catalog.Products) == 0 {
		return fmt.Errorf("no product series found")
	}
	if len(catalog.Devices) == 0 {
		return fmt.Errorf("no apheresis devices found")
	}

	productIDs := make(map[string]bool)
	for _, p := range catalog.Products {
		if productIDs[p.ID] {
			return fmt.Errorf("duplicate product id found: %s", p.ID)
		}
		productIDs[p.ID] = true

		if err := v.validateProduct(p); err != nil {
			return fmt.Errorf("invalid product %s: %w", p.ID, err)
		}
	}

	deviceIDs := make(map[string]bool)
	for _, d := range catalog.Devices {
		if deviceIDs[d.ID] {
			return fmt.Errorf("duplicate device id found: %s", d.ID)
		}
		deviceIDs[d.ID] = true

		if err := v.validateDevice(d); err != nil {
			return fmt.Errorf("invalid device %s: %w", d.ID, err)
		}
	}

	seen := make(map[entities.Category]bool)
	for _, r := range catalog.Reimbursement {
		if !r.Category.Valid() {
			return fmt.Errorf("reimbursement record with unknown category %q", r.Category)
		}
		if seen[r.Category] {
			return fmt.Errorf("duplicate reimbursement record for %s", r.Category)
		}
		seen[r.Category] = true

		if strings.TrimSpace(r.Title) == "" {
			return fmt.Errorf("empty title for reimbursement record %s", r.Category)
		}
	}

	return nil
}

func (v *DataValidatorImpl) validateProduct(p entities.ProductSeries) error {
	if err := v.ValidateID(p.ID); err != nil {
		return err
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("empty name")
	}
	if strings.TrimSpace(p.Maker) == "" {
		return fmt.Errorf("empty maker")
	}

	switch p.Type {
	case entities.Dialyzer:
		if !p.JSDTClass.Valid() {
			return fmt.Errorf("dialyzer needs a JSDT class, got %q", p.JSDTClass)
		}
		if p.HDFClass != "" {
			return fmt.Errorf("dialyzer cannot carry an HDF class")
		}
	case entities.Hemodiafilter:
		if !p.HDFClass.Valid() {
			return fmt.Errorf("hemodiafilter needs an HDF class, got %q", p.HDFClass)
		}
		if p.JSDTClass != "" {
			return fmt.Errorf("hemodiafilter cannot carry a JSDT class")
		}
	default:
		return fmt.Errorf("unknown product type %q", p.Type)
	}

	if len(p.Specs) == 0 {
		return fmt.Errorf("no sizes declared")
	}
	for size, spec := range p.Specs {
		if size <= 0 {
			return fmt.Errorf("invalid size key %v", size)
		}
		if spec.Clearance.Urea <= 0 {
			return fmt.Errorf("size %s has no urea clearance", entities.FormatSize(size))
		}
		if spec.Area <= 0 {
			return fmt.Errorf("size %s has no membrane area", entities.FormatSize(size))
		}
	}

	return nil
}

func (v *DataValidatorImpl) validateDevice(d entities.ApheresisDevice) error {
	if err := v.ValidateID(d.ID); err != nil {
		return err
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("empty name")
	}
	if !d.Category.Valid() {
		return fmt.Errorf("unknown category %q", d.Category)
	}
	if len(d.Indications) == 0 {
		return fmt.Errorf("no indications")
	}
	return nil
}

// ReportDataQuality lists gaps that are allowed but worth knowing about
func (v *DataValidatorImpl) ReportDataQuality(catalog *entities.Catalog) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{
		ProductsWithoutB2MGIDs:         []string{},
		CategoriesWithoutDevices:       []entities.Category{},
		CategoriesWithoutReimbursement: []entities.Category{},
		MakersWithSingleProduct:        []string{},
	}
	if catalog == nil {
		return report
	}

	// Check 1: series with no β2-MG clearance on any size (store first 10 ids)
	for _, p := range catalog.Products {
		hasB2MG := false
		for _, spec := range p.Specs {
			if spec.Clearance.B2MG != nil {
				hasB2MG = true
				break
			}
		}
		if !hasB2MG {
			report.ProductsWithoutB2MG++
			if len(report.ProductsWithoutB2MGIDs) < 10 {
				report.ProductsWithoutB2MGIDs = append(report.ProductsWithoutB2MGIDs, p.ID)
			}
		}
	}

	// Check 2: devices with no item list
	for _, d := range catalog.Devices {
		if len(d.Items) == 0 {
			report.DevicesWithoutItems++
		}
	}

	// Check 3: categories the apheresis menu offers but nothing fills
	categories := append(slices.Clone(entities.TherapyCategories), entities.CategoryColumn)
	reimbursed := make(map[entities.Category]bool)
	for _, r := range catalog.Reimbursement {
		reimbursed[r.Category] = true
	}
	for _, c := range categories {
		if !slices.ContainsFunc(catalog.Devices, func(d entities.ApheresisDevice) bool { return d.Category == c }) {
			report.CategoriesWithoutDevices = append(report.CategoriesWithoutDevices, c)
		}
		if !reimbursed[c] {
			report.CategoriesWithoutReimbursement = append(report.CategoriesWithoutReimbursement, c)
		}
	}

	// Check 4: makers with a single series
	counts := make(map[string]int)
	var makers []string
	for _, p := range catalog.Products {
		if counts[p.Maker] == 0 {
			makers = append(makers, p.Maker)
		}
		counts[p.Maker]++
	}
	for _, m := range makers {
		if counts[m] == 1 {
			report.MakersWithSingleProduct = append(report.MakersWithSingleProduct, m)
		}
	}

	if report.ProductsWithoutB2MG > 0 || len(report.CategoriesWithoutReimbursement) > 0 {
		logging.Debug("Catalog data quality gaps",
			"products_without_b2mg", report.ProductsWithoutB2MG,
			"categories_without_reimbursement", report.CategoriesWithoutReimbursement,
		)
	}

	return report
}

// ValidateInput validates a free-text filter value
func (v *DataValidatorImpl) ValidateInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input cannot be empty")
	}

	if !utf8.ValidString(input) {
		return fmt.Errorf("input is not valid UTF-8")
	}

	if utf8.RuneCountInString(input) > maxInputRunes {
		return fmt.Errorf("input too long: maximum %d characters", maxInputRunes)
	}

	// Check for potentially dangerous patterns using string matching
	lowerInput := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowerInput, pattern) {
			return fmt.Errorf("input contains potentially dangerous content")
		}
	}

	if !inputRegex.MatchString(input) {
		return fmt.Errorf("input contains invalid characters. Only letters, numbers, spaces and - . + ' ( ) / : , ・ ~ are allowed")
	}

	if hasExcessiveRepetition(input) {
		return fmt.Errorf("input contains excessive character repetition")
	}

	return nil
}

// ValidateID validates a catalog or session identifier
func (v *DataValidatorImpl) ValidateID(input string) error {
	if input == "" {
		return fmt.Errorf("id cannot be empty")
	}
	if len(input) > maxIDLength {
		return fmt.Errorf("id too long: maximum %d characters", maxIDLength)
	}
	if !idRegex.MatchString(input) {
		return fmt.Errorf("id contains invalid characters. Only lowercase letters, digits and hyphens are allowed")
	}
	return nil
}

// hasExcessiveRepetition reports the same character more than 10 times in a row
func hasExcessiveRepetition(input string) bool {
	var last rune
	run := 0
	for _, r := range input {
		if r == last {
			run++
		} else {
			last, run = r, 1
		}
		if run > 10 {
			return true
		}
	}
	return false
}
