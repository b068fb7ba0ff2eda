package generator

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

const (
	maxNameLength        = 200
	maxDescriptionLength = 5000
	maxCategoryLength    = 100
	maxPrice             = 1_000_000_000
)

const (
	msgProductRequired     = "Product data is required"
	msgNameRequired        = "Product name is required"
	msgNameTooLong         = "Product name must be 200 characters or less"
	msgDescriptionRequired = "Product description is required"
	msgDescriptionTooLong  = "Product description must be 5000 characters or less"
	msgPriceRequired       = "Product price is required"
	msgPriceInvalid        = "Product price must be a valid number"
	msgPriceNegative       = "Product price cannot be negative"
	msgPriceTooHigh        = "Product price is unrealistically high"
	msgCategoryInvalid     = "Product category must be a string"
	msgCategoryTooLong     = "Product category must be 100 characters or less"
	msgPlatformRequired    = "At least one valid platform must be selected"
)

// Request is the raw, undecoded input of a generation request.
type Request struct {
	Product           gjson.Result
	Tone              gjson.Result
	Platforms         gjson.Result
	EnableWebResearch bool
}

// ParseRequest reads the request fields out of a JSON body.
func ParseRequest(body []byte) Request {
	r := gjson.ParseBytes(body)
	return Request{
		Product:           r.Get("product"),
		Tone:              r.Get("tone"),
		Platforms:         r.Get("platforms"),
		EnableWebResearch: r.Get("enableWebResearch").Type == gjson.True,
	}
}

// Validated is a request that passed validation.
type Validated struct {
	Product   Product
	Tone      Tone
	Platforms []Platform
}

// Validate checks the raw product, tone and platform selection. It reports
// every violated rule at once. An unknown tone falls back to professional.
func Validate(rawProduct, rawTone, rawPlatforms gjson.Result) (Validated, error) {
	product, errs := validateProduct(rawProduct)

	platforms := ResolvePlatforms(rawPlatforms)
	if len(platforms) == 0 {
		errs = append(errs, msgPlatformRequired)
	}

	if len(errs) > 0 {
		return Validated{}, &ValidationError{Details: errs}
	}
	return Validated{
		Product:   product,
		Tone:      ResolveTone(rawTone),
		Platforms: platforms,
	}, nil
}

func validateProduct(raw gjson.Result) (Product, []string) {
	if !raw.IsObject() {
		return Product{}, []string{msgProductRequired}
	}

	var (
		p    Product
		errs []string
	)

	name := raw.Get("name")
	switch {
	case name.Type != gjson.String || strings.TrimSpace(name.Str) == "":
		errs = append(errs, msgNameRequired)
	case utf8.RuneCountInString(strings.TrimSpace(name.Str)) > maxNameLength:
		errs = append(errs, msgNameTooLong)
	default:
		p.Name = strings.TrimSpace(name.Str)
	}

	desc := raw.Get("description")
	switch {
	case desc.Type != gjson.String || strings.TrimSpace(desc.Str) == "":
		errs = append(errs, msgDescriptionRequired)
	case utf8.RuneCountInString(strings.TrimSpace(desc.Str)) > maxDescriptionLength:
		errs = append(errs, msgDescriptionTooLong)
	default:
		p.Description = strings.TrimSpace(desc.Str)
	}

	price := raw.Get("price")
	switch {
	case !price.Exists() || price.Type == gjson.Null:
		errs = append(errs, msgPriceRequired)
	case price.Type != gjson.Number || math.IsNaN(price.Num) || math.IsInf(price.Num, 0):
		errs = append(errs, msgPriceInvalid)
	case price.Num < 0:
		errs = append(errs, msgPriceNegative)
	case price.Num > maxPrice:
		errs = append(errs, msgPriceTooHigh)
	default:
		p.Price = price.Num
	}

	category := raw.Get("category")
	switch category.Type {
	case gjson.Null:
		// absent or null
	case gjson.String:
		c := strings.TrimSpace(category.Str)
		if utf8.RuneCountInString(c) > maxCategoryLength {
			errs = append(errs, msgCategoryTooLong)
		} else {
			p.Category = c
		}
	default:
		errs = append(errs, msgCategoryInvalid)
	}

	return p, errs
}

// ResolveTone returns the tone named by raw, or ToneProfessional when raw is
// anything other than one of the supported tone strings.
func ResolveTone(raw gjson.Result) Tone {
	if raw.Type != gjson.String {
		return ToneProfessional
	}
	if t := Tone(raw.Str); t.Valid() {
		return t
	}
	return ToneProfessional
}

// ResolvePlatforms filters raw down to recognised platforms, keeping first-seen
// order. A missing or null selection means every platform; any other
// non-array value yields none.
func ResolvePlatforms(raw gjson.Result) []Platform {
	if raw.Type == gjson.Null {
		out := make([]Platform, len(AllPlatforms))
		copy(out, AllPlatforms)
		return out
	}
	if !raw.IsArray() {
		return nil
	}

	var out []Platform
	seen := make(map[Platform]bool)
	for _, item := range raw.Array() {
		if item.Type != gjson.String {
			continue
		}
		p := Platform(item.Str)
		if !p.Valid() || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
