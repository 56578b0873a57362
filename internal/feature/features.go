// Package feature manages the feature flags of the countdown command. Flags
// are switched with COUNTDOWN_FEATURES, a comma separated list of name or
// name=bool entries.
package feature

import (
	"sort"
	"strconv"
	"strings"

	"github.com/restic/countdown/internal/errors"
)

// Phase is the maturity of a feature and decides its default.
type Phase string

// FlagName is written in kebab-case.
type FlagName string

const (
	// Alpha features are disabled by default and may change at any time.
	Alpha Phase = "alpha"
	// Beta features are enabled by default.
	Beta Phase = "beta"
	// Stable features are always enabled.
	Stable Phase = "stable"
	// Deprecated features are always disabled.
	Deprecated Phase = "deprecated"
)

// Default reports whether a feature in phase p is enabled unless configured
// otherwise.
func (p Phase) Default() bool {
	switch p {
	case Alpha, Deprecated:
		return false
	case Beta, Stable:
		return true
	default:
		panic("unknown feature phase " + string(p))
	}
}

// Configurable reports whether the user may change a feature in phase p.
func (p Phase) Configurable() bool {
	return p == Alpha || p == Beta
}

type FlagDesc struct {
	Type        Phase
	Description string
}

type flag struct {
	FlagDesc
	enabled bool
}

// FlagSet holds a set of known feature flags and their current values.
type FlagSet struct {
	flags map[FlagName]*flag
}

func New() *FlagSet {
	return &FlagSet{}
}

// SetFlags replaces all known flags, each with its default value.
func (f *FlagSet) SetFlags(flags map[FlagName]FlagDesc) {
	f.flags = make(map[FlagName]*flag, len(flags))
	for name, desc := range flags {
		f.flags[name] = &flag{FlagDesc: desc, enabled: desc.Type.Default()}
	}
}

// parseSelection turns "a,b=false" into {a: true, b: false}.
func parseSelection(s string) (map[FlagName]bool, error) {
	selection := make(map[FlagName]bool)

	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, value, found := strings.Cut(entry, "=")
		enabled := true
		if found {
			var err error
			enabled, err = strconv.ParseBool(value)
			if err != nil {
				return nil, errors.Errorf("failed to parse value %q for feature flag %v: %v", value, name, err)
			}
		}

		selection[FlagName(name)] = enabled
	}

	return selection, nil
}

// Apply sets the flags listed in s. Nothing is changed if s is invalid or
// names an unknown flag. Trying to change a stable or deprecated flag only
// produces a warning.
func (f *FlagSet) Apply(s string, logWarning func(string)) error {
	selection, err := parseSelection(s)
	if err != nil {
		return err
	}

	names := make([]FlagName, 0, len(selection))
	for name := range selection {
		if f.flags[name] == nil {
			return errors.Errorf("unknown feature flag %q", name)
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	for _, name := range names {
		fl := f.flags[name]
		if fl.Type.Configurable() {
			fl.enabled = selection[name]
			continue
		}

		state := "enabled"
		if !fl.Type.Default() {
			state = "disabled"
		}
		logWarning("feature flag " + strconv.Quote(string(name)) + " is always " + state + " and will be removed in a future release")
	}

	return nil
}

// Enabled reports whether a flag is enabled. It panics for unknown flags.
func (f *FlagSet) Enabled(name FlagName) bool {
	fl, ok := f.flags[name]
	if !ok {
		panic("unknown feature flag " + string(name))
	}
	return fl.enabled
}

// Help contains information about a feature.
type Help struct {
	Name        string
	Type        string
	Default     bool
	Enabled     bool
	Description string
}

// List returns all flags sorted by name.
func (f *FlagSet) List() []Help {
	help := make([]Help, 0, len(f.flags))
	for name, fl := range f.flags {
		help = append(help, Help{
			Name:        string(name),
			Type:        string(fl.Type),
			Default:     fl.Type.Default(),
			Enabled:     fl.enabled,
			Description: fl.Description,
		})
	}

	sort.Slice(help, func(i, j int) bool { return help[i].Name < help[j].Name })
	return help
}
