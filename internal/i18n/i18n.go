// Package i18n resolves user-facing label keys. English copy ships as
// the default; a labels.yaml in the config directory overrides any
// subset of keys.
package i18n

import (
	"strings"

	"github.com/spf13/viper"
)

// defaults is the built-in English catalog.
var defaults = map[string]string{
	// Catalog screen
	"Selling":    "Selling",
	"SoldOut":    "Sold Out",
	"DetailsTbl": "Details",

	// Onboarding screen
	"CreateAccountTitle": "Create an account",
	"CreateAccount":      "Create Account",
	"AlreadyAccount":     "Already have an account?",
	"Iagree":             "I agree to the",
	"privacyPolicy":      "privacy policy",

	// Toasts
	"AssetsAdded":        "Images uploaded successfully!",
	"AssetsRejected":     "Some files are larger than 5MB and cannot be uploaded.",
	"AssetsUnsupported":  "Some files are not supported image types and cannot be uploaded.",
	"AssetsFailed":       "Some files could not be uploaded.",
	"AssetRemoved":       "Image removed successfully!",
	"StaffCreated":       "User created successfully!",
	"SubmitFailed":       "Failed to submit the form!",
	"SubmitFailedPrefix": "Server error: ",
	"RecordDeleted":      "Record deleted successfully!",
	"DeleteFailed":       "Failed to delete the record!",
}

// Bundle implements domain.Translator.
type Bundle struct {
	overrides map[string]string
}

// NewBundle returns a translator with the built-in catalog only.
func NewBundle() *Bundle {
	return &Bundle{}
}

// LoadBundle returns a translator with overrides read from
// labels.yaml under configDir. A missing file is not an error.
func LoadBundle(configDir string) (*Bundle, error) {
	v := viper.New()
	v.SetConfigName("labels")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		return NewBundle(), nil
	}

	overrides := make(map[string]string)
	for _, key := range v.AllKeys() {
		overrides[key] = v.GetString(key)
	}
	return &Bundle{overrides: overrides}, nil
}

// T resolves a label key. Unknown keys come back verbatim so a missing
// entry is visible rather than silently blank.
func (b *Bundle) T(key string) string {
	// Viper folds keys to lower case, so the override map is keyed
	// that way.
	if v, ok := b.overrides[strings.ToLower(key)]; ok && v != "" {
		return v
	}
	if v, ok := defaults[key]; ok {
		return v
	}
	return key
}
