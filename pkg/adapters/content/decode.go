package content

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/hollow/pkg/domain"
)

// document is the top level of one YAML content file. Every section is optional so a story
// can be split across files.
type document struct {
	Game    *domain.GameInfo          `mapstructure:"game"`
	Scenes  map[string]*domain.Scene  `mapstructure:"scenes"`
	Dialogs map[string]*domain.Dialog `mapstructure:"dialogs"`
	Puzzles map[string]*domain.Puzzle `mapstructure:"puzzles"`
	Items   map[string]*domain.Item   `mapstructure:"items"`
}

var effectType = reflect.TypeOf(domain.Effect{})

// shorthandField names the field a scalar shorthand value lands in, per effect kind.
var shorthandField = map[domain.EffectKind]string{
	domain.EffectSetFlag:     "flag",
	domain.EffectAddItem:     "item",
	domain.EffectRemoveItem:  "item",
	domain.EffectStartDialog: "target",
	domain.EffectStartPuzzle: "target",
	domain.EffectChangeScene: "target",
	domain.EffectAdvanceTime: "duration_ms",
	domain.EffectNotify:      "message",
}

// Parse decodes a single YAML document into a Content fragment.
// Map keys become the ids of entries that do not declare one.
func Parse(data []byte) (*domain.Content, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	var doc document
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  effectShorthandHook,
		ErrorUnused: true,
		Result:      &doc,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}

	c := domain.NewContent()
	if doc.Game != nil {
		c.Game = *doc.Game
	}
	for id, s := range doc.Scenes {
		if s == nil {
			return nil, fmt.Errorf("scene %q is empty", id)
		}
		if s.ID == "" {
			s.ID = id
		}
		c.Scenes[s.ID] = s
	}
	for id, d := range doc.Dialogs {
		if d == nil {
			return nil, fmt.Errorf("dialog %q is empty", id)
		}
		if d.ID == "" {
			d.ID = id
		}
		c.Dialogs[d.ID] = d
	}
	for id, p := range doc.Puzzles {
		if p == nil {
			return nil, fmt.Errorf("puzzle %q is empty", id)
		}
		if p.ID == "" {
			p.ID = id
		}
		c.Puzzles[p.ID] = p
	}
	for id, it := range doc.Items {
		if it == nil {
			it = &domain.Item{}
		}
		if it.ID == "" {
			it.ID = id
		}
		c.Items[it.ID] = it
	}
	return c, nil
}

// effectShorthandHook lets authors write effects as a single-key map named after the kind:
//
//   - setFlag: crow_fed
//   - addItem: key
//   - modifyStat: {stat: sanity, amount: -1}
//
// A scalar value fills the kind's primary field; a map value supplies the fields directly.
func effectShorthandHook(from, to reflect.Type, data any) (any, error) {
	if to != effectType {
		return data, nil
	}
	m, ok := data.(map[string]any)
	if !ok || len(m) != 1 {
		return data, nil
	}
	if _, hasKind := m["kind"]; hasKind {
		return data, nil
	}

	var (
		key string
		val any
	)
	for k, v := range m {
		key, val = k, v
	}
	kind := domain.EffectKind(key)
	if !knownKind(kind) {
		return data, nil
	}

	out := map[string]any{"kind": key}
	switch v := val.(type) {
	case map[string]any:
		for k, fv := range v {
			out[k] = fv
		}
	case nil:
	default:
		field, ok := shorthandField[kind]
		if !ok {
			return nil, fmt.Errorf("effect %q needs a map of fields", key)
		}
		out[field] = v
	}

	switch kind {
	case domain.EffectSetFlag:
		if _, ok := out["value"]; !ok {
			out["value"] = true
		}
	case domain.EffectAddItem:
		if _, ok := out["quantity"]; !ok {
			out["quantity"] = 1
		}
	}
	return out, nil
}

func knownKind(k domain.EffectKind) bool {
	for _, known := range domain.EffectKinds {
		if k == known {
			return true
		}
	}
	return false
}
