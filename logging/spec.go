package logging

import (
	"fmt"
	"strings"
)

// Spec describes the effective log level per component. A spec string
// is a comma-separated list of entries; a bare level sets the base
// level, and component=level entries override it for one component:
//
//	info
//	debug,store=trace
//	monitor=debug
type Spec struct {
	// BaseLevel applies to records from components without an override
	// and to records carrying no component attribute at all.
	BaseLevel Level
	// Components maps component name to its level override.
	Components map[string]Level
}

// ParseSpec parses a spec string. An empty string yields the defaults
// (info base level, no overrides).
func ParseSpec(s string) (Spec, error) {
	spec := Spec{
		BaseLevel:  LevelInfo,
		Components: make(map[string]Level),
	}
	if strings.TrimSpace(s) == "" {
		return spec, nil
	}
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, levelStr, found := strings.Cut(entry, "=")
		if !found {
			level, err := ParseLevel(entry)
			if err != nil {
				return Spec{}, err
			}
			spec.BaseLevel = level
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return Spec{}, fmt.Errorf("empty component in log spec entry %q", entry)
		}
		level, err := ParseLevel(levelStr)
		if err != nil {
			return Spec{}, fmt.Errorf("component %s: %w", name, err)
		}
		spec.Components[name] = level
	}
	return spec, nil
}

// LevelFor returns the effective level for a component. An unknown or
// empty component falls back to the base level.
func (s *Spec) LevelFor(component string) Level {
	if s.Components != nil {
		if level, ok := s.Components[component]; ok {
			return level
		}
	}
	return s.BaseLevel
}
