// Package options handles the extended options passed with `-o key=value`.
// Keys are namespaced ("display.fps"); each namespace is backed by a struct
// whose fields carry an `option` and a `help` tag.
package options

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/restic/countdown/internal/errors"
)

// Options holds options in the form key=value.
type Options map[string]string

// Help contains information about an option.
type Help struct {
	Namespace string
	Name      string
	Text      string
}

var registry struct {
	sync.Mutex
	help []Help
}

// Register records the options of cfg, a struct or pointer to one, under
// namespace ns so that List returns them.
func Register(ns string, cfg interface{}) {
	registry.Lock()
	defer registry.Unlock()

	for _, h := range listOptions(cfg) {
		h.Namespace = ns
		registry.help = append(registry.help, h)
	}

	sort.Slice(registry.help, func(i, j int) bool {
		a, b := registry.help[i], registry.help[j]
		if a.Namespace != b.Namespace {
			return a.Namespace < b.Namespace
		}
		return a.Name < b.Name
	})
}

// List returns all registered options sorted by namespace and name.
func List() []Help {
	registry.Lock()
	defer registry.Unlock()
	return append([]Help(nil), registry.help...)
}

func listOptions(cfg interface{}) (help []Help) {
	t := reflect.Indirect(reflect.ValueOf(cfg)).Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := f.Tag.Get("option")
		if name == "" {
			continue
		}
		help = append(help, Help{Name: name, Text: f.Tag.Get("help")})
	}
	return help
}

// Parse turns key=value pairs into Options. Keys are converted to lower
// case and surrounding white space is removed. A key without "=" gets the
// empty value.
func Parse(in []string) (Options, error) {
	opts := make(Options, len(in))

	for _, s := range in {
		key, value, _ := strings.Cut(s, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		if key == "" {
			return Options{}, errors.Fatalf("empty key is not a valid option")
		}

		if v, ok := opts[key]; ok && v != value {
			return Options{}, errors.Fatalf("key %q present more than once", key)
		}

		opts[key] = value
	}

	return opts, nil
}

// Extract returns the options in namespace ns with the namespace removed
// from the keys.
func (o Options) Extract(ns string) Options {
	prefix := strings.TrimSuffix(ns, ".") + "."

	opts := make(Options)
	for k, v := range o {
		if rest, ok := strings.CutPrefix(k, prefix); ok {
			opts[rest] = v
		}
	}

	return opts
}

var durationType = reflect.TypeOf(time.Duration(0))

// Apply sets the fields of the struct dst points to. ns is only used in
// error messages.
func (o Options) Apply(ns string, dst interface{}) error {
	v := reflect.ValueOf(dst).Elem()
	t := v.Type()

	fields := make(map[string]int)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("option")
		if tag == "" {
			continue
		}
		if _, ok := fields[tag]; ok {
			panic("option tag " + tag + " is not unique in " + t.Name())
		}
		fields[tag] = i
	}

	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		name := key
		if ns != "" {
			name = ns + "." + key
		}

		i, ok := fields[key]
		if !ok {
			return errors.Fatalf("option %v is not known", name)
		}

		if err := setField(v.Field(i), o[key]); err != nil {
			return errors.Fatalf("invalid value for option %v: %v", name, err)
		}
	}

	return nil
}

func setField(field reflect.Value, value string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		i, err := strconv.ParseInt(value, 0, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(i)

	case reflect.Uint, reflect.Uint64:
		u, err := strconv.ParseUint(value, 0, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(u)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	default:
		panic("type " + field.Type().String() + " not handled")
	}

	return nil
}
