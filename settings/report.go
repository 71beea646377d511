package settings

import (
	"errors"
	"strings"

	"github.com/samber/lo"
)

// Strategy is how a Load obtained its document.
type Strategy int

const (
	// Current reads the current settings document and its backup.
	Current Strategy = iota
	// LegacyImport converts a legacy XML file and writes it out in the current format.
	LegacyImport
)

func (s Strategy) String() string {
	if s == LegacyImport {
		return "legacy-import"
	}
	return "current"
}

// Report describes what a Load did to reach a usable state.
type Report struct {
	Strategy Strategy `json:"strategy"`

	// Restored is set when the primary document was replaced by its backup.
	Restored bool `json:"restored"`
	Created  bool `json:"created"`
	BackedUp bool `json:"backed_up"`

	// Defaulted lists fields that were absent or malformed and took their default.
	Defaulted []string `json:"defaulted"`
	Resaved   bool     `json:"resaved"`

	// RefreshColor tells the UI to redraw the player color.
	RefreshColor bool `json:"refresh_color"`

	Errors []error `json:"-"`
}

// Dirty reports whether any field took its default.
func (r *Report) Dirty() bool {
	return len(r.Defaulted) > 0
}

// Err joins every contained error, or returns nil.
func (r *Report) Err() error {
	return errors.Join(r.Errors...)
}

// ErrorStrings lists the contained errors as text.
func (r *Report) ErrorStrings() []string {
	return lo.Map(r.Errors, func(err error, _ int) string {
		return err.Error()
	})
}

func (r *Report) String() string {
	var b strings.Builder
	b.WriteString(r.Strategy.String())
	for _, step := range []struct {
		name string
		done bool
	}{
		{"restored", r.Restored},
		{"created", r.Created},
		{"backed up", r.BackedUp},
		{"resaved", r.Resaved},
	} {
		if step.done {
			b.WriteString(", " + step.name)
		}
	}
	if r.Dirty() {
		b.WriteString(", defaulted " + strings.Join(r.Defaulted, " "))
	}
	return b.String()
}

func (r *Report) fail(err error) {
	r.Errors = append(r.Errors, err)
}

func (r *Report) defaulted(field string) {
	if !lo.Contains(r.Defaulted, field) {
		r.Defaulted = append(r.Defaulted, field)
	}
}
