package dto

import (
	"html"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// evidenceRefRe matches opaque storage references such as
	// "claims/2026/photo-01.jpg" or "s3:bucket/key".
	evidenceRefRe   = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_\-\.:/]{0,255}$`)
	walletAddressRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("evidence_ref", validateEvidenceRef)
		_ = v.RegisterValidation("wallet_address", validateWalletAddress)
	}
}

// validateEvidenceRef accepts safe reference characters and rejects path traversal.
func validateEvidenceRef(fl validator.FieldLevel) bool {
	ref := fl.Field().String()
	return evidenceRefRe.MatchString(ref) && !strings.Contains(ref, "..")
}

func validateWalletAddress(fl validator.FieldLevel) bool {
	return walletAddressRe.MatchString(fl.Field().String())
}

// IsWalletAddress reports whether s passes the wallet_address rule.
func IsWalletAddress(s string) bool {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v.Var(s, "wallet_address") == nil
	}
	return walletAddressRe.MatchString(s)
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string and []string) of a struct pointer.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String()))
			}
		case reflect.Slice:
			if f.Type().Elem().Kind() != reflect.String {
				continue
			}
			for j := 0; j < f.Len(); j++ {
				f.Index(j).SetString(sanitize(f.Index(j).String()))
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
