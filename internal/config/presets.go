// Package config loads named timer presets from a YAML file:
//
//	version: 1
//	presets:
//	  pomodoro:
//	    direction: reverse
//	    start: 1500
//	    end: 0
//	    interval: 1s
//
// Missing fields take the values of Default.
package config

import (
	"bytes"
	"io"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/restic/countdown/internal/debug"
	"github.com/restic/countdown/internal/errors"
	"github.com/restic/countdown/internal/textfile"
	"github.com/restic/countdown/internal/timer"
)

// Version is the newest presets file format understood.
const Version = 1

// Preset is a named timer configuration.
type Preset struct {
	Name      string
	Direction timer.Direction
	Start     int64
	End       int64
	Interval  time.Duration
}

// Default returns the preset used when neither a preset nor flags say
// otherwise: counting forward from 0 to 0 once per second.
func Default() Preset {
	return Preset{
		Name:      "default",
		Direction: timer.Forward,
		Interval:  timer.DefaultInterval,
	}
}

// Config returns the timer configuration of p.
func (p Preset) Config() timer.Config {
	return timer.Config{
		Direction: p.Direction,
		Start:     p.Start,
		End:       p.End,
		Interval:  p.Interval,
	}
}

type presetFile struct {
	Version int                     `yaml:"version"`
	Presets map[string]presetValues `yaml:"presets"`
}

type presetValues struct {
	Direction string `yaml:"direction"`
	Start     *int64 `yaml:"start"`
	End       *int64 `yaml:"end"`
	Interval  string `yaml:"interval"`
}

// Presets is a set of presets loaded from a file.
type Presets struct {
	byName map[string]Preset
}

// Parse decodes a presets file. Unknown keys are rejected. An empty
// document contains no presets.
func Parse(data []byte) (*Presets, error) {
	var file presetFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(&file)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decode presets")
	}

	if file.Version > Version {
		return nil, errors.Errorf("unsupported presets version %d", file.Version)
	}

	p := &Presets{byName: make(map[string]Preset, len(file.Presets))}
	for name, values := range file.Presets {
		preset, err := values.preset(name)
		if err != nil {
			return nil, errors.Wrapf(err, "preset %q", name)
		}
		p.byName[name] = preset
	}

	debug.Log("parsed %d presets", len(p.byName))
	return p, nil
}

func (v presetValues) preset(name string) (Preset, error) {
	if strings.TrimSpace(name) == "" {
		return Preset{}, errors.New("empty name")
	}

	p := Default()
	p.Name = name

	if v.Direction != "" {
		if err := p.Direction.Set(v.Direction); err != nil {
			return Preset{}, err
		}
	}
	if v.Start != nil {
		p.Start = *v.Start
	}
	if v.End != nil {
		p.End = *v.End
	}
	if v.Interval != "" {
		d, err := time.ParseDuration(v.Interval)
		if err != nil {
			return Preset{}, err
		}
		if d <= 0 {
			return Preset{}, errors.Errorf("interval %v is not positive", d)
		}
		p.Interval = d
	}

	return p, nil
}

// Load reads and parses the presets file filename.
func Load(filename string) (*Presets, error) {
	data, err := textfile.Read(filename)
	if err != nil {
		return nil, errors.Fatalf("unable to read presets: %v", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, errors.Fatalf("%s: %v", filename, err)
	}
	return p, nil
}

// Lookup returns the preset called name.
func (p *Presets) Lookup(name string) (Preset, bool) {
	if p == nil {
		return Preset{}, false
	}
	preset, ok := p.byName[name]
	return preset, ok
}

// List returns all presets sorted by name.
func (p *Presets) List() []Preset {
	if p == nil {
		return nil
	}

	list := make([]Preset, 0, len(p.byName))
	for _, preset := range p.byName {
		list = append(list, preset)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
