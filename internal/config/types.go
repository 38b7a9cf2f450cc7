// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dirtags/dirtags/internal/host/osfs"
	"github.com/dirtags/dirtags/internal/listing"
	"github.com/dirtags/dirtags/pkg/types"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// MaxWidth is the widest label column accepted.
	MaxWidth ColumnWidth = 1024

	// DefaultXattrName is the attribute the filesystem host reads by default.
	DefaultXattrName XattrName = osfs.DefaultXattrName
	// DefaultSeparator is the filesystem host's default tag separator.
	DefaultSeparator TagSeparator = osfs.DefaultSeparator
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidColumnWidth is returned when a ColumnWidth is out of range.
	ErrInvalidColumnWidth = errors.New("invalid column width")
	// ErrInvalidXattrName is returned when an XattrName is blank or lacks a namespace.
	ErrInvalidXattrName = errors.New("invalid xattr name")
	// ErrInvalidTagSeparator is returned when a TagSeparator is empty.
	ErrInvalidTagSeparator = errors.New("invalid tag separator")
	// ErrInvalidTagsConfig is the sentinel error wrapped by InvalidTagsConfigError.
	ErrInvalidTagsConfig = errors.New("invalid tags config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// ColumnWidth is the minimum rune count of the padded "name: " label.
	ColumnWidth int

	// InvalidColumnWidthError is returned when a ColumnWidth is outside 1..MaxWidth.
	InvalidColumnWidthError struct {
		Value ColumnWidth
	}

	// XattrName names the extended attribute the tags are read from.
	XattrName string

	// InvalidXattrNameError is returned when an XattrName is unusable.
	InvalidXattrNameError struct {
		Value XattrName
	}

	// TagSeparator splits a raw attribute value into individual tags.
	TagSeparator string

	// InvalidTagSeparatorError is returned when a TagSeparator is empty.
	InvalidTagSeparatorError struct {
		Value TagSeparator
	}

	// InvalidTagsConfigError is returned when a TagsConfig has invalid fields.
	// It wraps ErrInvalidTagsConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidTagsConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Root is the directory listed when no path argument is given.
		Root types.FilesystemPath `json:"root" mapstructure:"root"`
		// Width is the padded label column width.
		Width ColumnWidth `json:"width" mapstructure:"width"`
		// Tags configures where tags are read from.
		Tags TagsConfig `json:"tags" mapstructure:"tags"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// TagsConfig configures the extended attribute tag source.
	TagsConfig struct {
		// XattrName is the attribute holding the tag list.
		XattrName XattrName `json:"xattr_name" mapstructure:"xattr_name"`
		// Separator splits the attribute value into tags.
		Separator TagSeparator `json:"separator" mapstructure:"separator"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging on stderr
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColumnWidthError.
func (e *InvalidColumnWidthError) Error() string {
	return fmt.Sprintf("invalid column width %d (must be in range 1-%d)", e.Value, MaxWidth)
}

// Unwrap returns ErrInvalidColumnWidth for errors.Is() compatibility.
func (e *InvalidColumnWidthError) Unwrap() error { return ErrInvalidColumnWidth }

// IsValid returns whether the width lies in 1..MaxWidth.
func (w ColumnWidth) IsValid() (bool, []error) {
	if w < 1 || w > MaxWidth {
		return false, []error{&InvalidColumnWidthError{Value: w}}
	}
	return true, nil
}

// Int returns the width as a plain int for the listing driver.
func (w ColumnWidth) Int() int { return int(w) }

// Error implements the error interface for InvalidXattrNameError.
func (e *InvalidXattrNameError) Error() string {
	return fmt.Sprintf("invalid xattr name %q: must be <namespace>.<name>", e.Value)
}

// Unwrap returns ErrInvalidXattrName for errors.Is() compatibility.
func (e *InvalidXattrNameError) Unwrap() error { return ErrInvalidXattrName }

// String returns the string representation of the XattrName.
func (n XattrName) String() string { return string(n) }

// IsValid returns whether the name carries a namespace prefix and contains no
// whitespace.
func (n XattrName) IsValid() (bool, []error) {
	ns, name, ok := strings.Cut(string(n), ".")
	if !ok || ns == "" || name == "" || strings.ContainsAny(string(n), " \t\n") {
		return false, []error{&InvalidXattrNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTagSeparatorError.
func (e *InvalidTagSeparatorError) Error() string {
	return fmt.Sprintf("invalid tag separator %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidTagSeparator for errors.Is() compatibility.
func (e *InvalidTagSeparatorError) Unwrap() error { return ErrInvalidTagSeparator }

// String returns the string representation of the TagSeparator.
func (s TagSeparator) String() string { return string(s) }

// IsValid returns whether the separator is non-empty.
func (s TagSeparator) IsValid() (bool, []error) {
	if s == "" {
		return false, []error{&InvalidTagSeparatorError{Value: s}}
	}
	return true, nil
}

// IsValid returns whether the TagsConfig has valid fields.
func (c TagsConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.XattrName.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Separator.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidTagsConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTagsConfigError.
func (e *InvalidTagsConfigError) Error() string {
	return fmt.Sprintf("invalid tags config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidTagsConfig for errors.Is() compatibility.
func (e *InvalidTagsConfigError) Unwrap() error { return ErrInvalidTagsConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Root, Width, Tags and UI.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Root.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Width.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Tags.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		msgs = append(msgs, fe.Error())
	}
	return fmt.Sprintf("invalid config: %d field error(s): %s", len(e.FieldErrors), strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Root:  ".",
		Width: ColumnWidth(listing.DefaultWidth),
		Tags: TagsConfig{
			XattrName: DefaultXattrName,
			Separator: DefaultSeparator,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
