package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// KeyCode is an engine key code.
type KeyCode int

const (
	KeyBackspace  KeyCode = 8
	KeyTab        KeyCode = 9
	KeyReturn     KeyCode = 13
	KeyEscape     KeyCode = 27
	KeySpace      KeyCode = 32
	KeySlash      KeyCode = 47
	KeyBackslash  KeyCode = 92
	KeyBackQuote  KeyCode = 96
	KeyInsert     KeyCode = 277
	KeyHome       KeyCode = 278
	KeyEnd        KeyCode = 279
	KeyPageUp     KeyCode = 280
	KeyPageDown   KeyCode = 281
	KeyF1         KeyCode = 282
	KeyF12        KeyCode = 293
	KeyPrintPause KeyCode = 316
)

var keyNames = map[KeyCode]string{
	KeyBackspace:  "Backspace",
	KeyTab:        "Tab",
	KeyReturn:     "Return",
	KeyEscape:     "Escape",
	KeySpace:      "Space",
	KeySlash:      "Slash",
	KeyBackslash:  "Backslash",
	KeyBackQuote:  "BackQuote",
	KeyInsert:     "Insert",
	KeyHome:       "Home",
	KeyEnd:        "End",
	KeyPageUp:     "PageUp",
	KeyPageDown:   "PageDown",
	KeyPrintPause: "Print",
}

func init() {
	for i := KeyF1; i <= KeyF12; i++ {
		keyNames[i] = fmt.Sprintf("F%d", int(i-KeyF1)+1)
	}
}

// KeyF8 is the default screenshot binding.
const KeyF8 = KeyF1 + 7

func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return strconv.Itoa(int(k))
}

// ParseKeyCode accepts a key name such as "F8" or a raw numeric code.
func ParseKeyCode(s string) (KeyCode, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return KeyCode(n), nil
	}

	for code, name := range keyNames {
		if strings.EqualFold(name, s) {
			return code, nil
		}
	}

	return 0, fmt.Errorf("unknown key %q", s)
}

// ToolbarType selects which toolbar integration is used.
type ToolbarType int

const (
	ToolbarDisabled ToolbarType = iota
	ToolbarForceStock
	ToolbarBlizzyIfInstalled
	ToolbarBothIfInstalled
)

var toolbarNames = []string{"disabled", "stock", "blizzy", "both"}

func (t ToolbarType) String() string {
	if t >= 0 && int(t) < len(toolbarNames) {
		return toolbarNames[t]
	}
	return strconv.Itoa(int(t))
}

// ParseToolbarType accepts a toolbar name or a raw numeric value.
func ParseToolbarType(s string) (ToolbarType, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return ToolbarType(n), nil
	}

	if i := lo.IndexOf(toolbarNames, strings.ToLower(s)); i >= 0 {
		return ToolbarType(i), nil
	}

	return 0, fmt.Errorf("unknown toolbar type %q, want one of %s", s, strings.Join(toolbarNames, ", "))
}
