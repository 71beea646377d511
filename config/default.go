package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/dmp-client/dmpcfg/color"
	"github.com/dmp-client/dmpcfg/constant"
	"github.com/dmp-client/dmpcfg/icon"
	"github.com/dmp-client/dmpcfg/key"
	"github.com/dmp-client/dmpcfg/keypair"
	"github.com/dmp-client/dmpcfg/style"
	"github.com/dmp-client/dmpcfg/where"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string

	// Validate rejects parsed values the tool cannot work with. Optional.
	Validate func(v any) error

	// Resolve returns the location the field currently governs. Optional.
	Resolve func() string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.App + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Parse converts command line words into a value of the field's type and validates it.
func (f *Field) Parse(words []string) (any, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%s: no value given", f.Key)
	}

	var v any
	switch f.Value.(type) {
	case string:
		v = words[0]
	case int:
		n, err := strconv.Atoi(words[0])
		if err != nil {
			return nil, fmt.Errorf("%s: invalid integer %q", f.Key, words[0])
		}
		v = n
	case bool:
		b, err := strconv.ParseBool(words[0])
		if err != nil {
			return nil, fmt.Errorf("%s: invalid boolean %q", f.Key, words[0])
		}
		v = b
	case []string:
		v = words
	default:
		return nil, fmt.Errorf("%s: unsupported type %T", f.Key, f.Value)
	}

	if f.Validate != nil {
		if err := f.Validate(v); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Key, err)
		}
	}

	return v, nil
}

// MarshalJSON includes both the current and the default value.
func (f *Field) MarshalJSON() ([]byte, error) {
	var resolved string
	if f.Resolve != nil {
		resolved = f.Resolve()
	}

	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Resolved    string `json:"resolved,omitempty"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        reflect.TypeOf(f.Value).String(),
		Resolved:    resolved,
	})
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func absoluteOrEmpty(v any) error {
	if p := v.(string); p != "" && !filepath.IsAbs(p) {
		return fmt.Errorf("%q is not an absolute path", p)
	}
	return nil
}

func atLeastMinBits(v any) error {
	if bits := v.(int); bits < keypair.MinBits {
		return fmt.Errorf("%d bits is below the minimum of %d", bits, keypair.MinBits)
	}
	return nil
}

func logLevel(v any) error {
	_, err := logrus.ParseLevel(v.(string))
	return err
}

func iconVariant(v any) error {
	if !lo.Contains(icon.AvailableVariants(), v.(string)) {
		return fmt.Errorf("unknown variant %q, want one of %s", v, strings.Join(icon.AvailableVariants(), ", "))
	}
	return nil
}

func init() {
	register := func(f Field) {
		if _, exists := Default[f.Key]; exists {
			panic("Duplicate config key: " + f.Key)
		}
		Default[f.Key] = f
		EnvExposed = append(EnvExposed, f.Key)
	}

	register(Field{
		Key:         key.PathsData,
		Value:       "",
		Description: "Directory holding the settings document and the keypair.\nEmpty means <config dir>/Data",
		Validate:    absoluteOrEmpty,
		Resolve:     where.Settings,
	})
	register(Field{
		Key:         key.PathsBackup,
		Value:       "",
		Description: "Directory holding the backup copies.\nEmpty means $XDG_DATA_HOME/dmpcfg/saves",
		Validate:    absoluteOrEmpty,
		Resolve:     where.BackupSettings,
	})
	register(Field{
		Key:         key.SettingsLegacyImport,
		Value:       true,
		Description: "Import the legacy servers.xml file when no settings document exists yet",
	})
	register(Field{
		Key:         key.KeypairBits,
		Value:       keypair.MinBits,
		Description: fmt.Sprintf("RSA modulus size used when a new player keypair has to be generated. At least %d", keypair.MinBits),
		Validate:    atLeastMinBits,
		Resolve:     where.PublicKey,
	})
	register(Field{
		Key:         key.LogsWrite,
		Value:       false,
		Description: "Write logs",
		Resolve:     where.Logs,
	})
	register(Field{
		Key:         key.LogsLevel,
		Value:       "info",
		Description: "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace",
		Validate:    logLevel,
	})
	register(Field{
		Key:         key.LogsJson,
		Value:       false,
		Description: "Use json format for logs",
	})
	register(Field{
		Key:         key.CliColored,
		Value:       true,
		Description: "Enable colored CLI output",
	})
	register(Field{
		Key:         key.IconsVariant,
		Value:       "plain",
		Description: "Icons variant.\nAvailable options are: " + strings.Join(icon.AvailableVariants(), ", "),
		Validate:    iconVariant,
	})
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"blue":     style.Fg(color.Blue),
	"purple":   style.Fg(color.Purple),
	"wrap":     func(s string) string { return wordwrap.String(s, 72) },
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			if value == "" {
				return style.Faint(`""`)
			}
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint (wrap .Description) }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}{{ if .Resolve }}
{{ blue "Path:" }}    {{ call .Resolve }}{{ end }}`))
