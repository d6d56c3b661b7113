// Package settings holds the runtime-mutable rules of a room.
package settings

import (
	"fmt"
	"sort"
	"time"

	"github.com/mitchellh/mapstructure"
)

const (
	MinShowdownDuration = 5000
	MinHandEndDelay     = 1000
	DefaultRebuyAmount  = 1000
)

// Settings are the per-room rules. Durations are in milliseconds.
type Settings struct {
	AutoRebuy             bool `mapstructure:"autoRebuy" json:"autoRebuy"`
	RebuyAmount           int  `mapstructure:"rebuyAmount" json:"rebuyAmount"`
	ShowdownDuration      int  `mapstructure:"showdownDuration" json:"showdownDuration"`
	HandEndDelay          int  `mapstructure:"handEndDelay" json:"handEndDelay"`
	MinChipsToPlay        int  `mapstructure:"minChipsToPlay" json:"minChipsToPlay"`
	MaxRebuyCount         int  `mapstructure:"maxRebuyCount" json:"maxRebuyCount"`
	BlindIncreaseInterval int  `mapstructure:"blindIncreaseInterval" json:"blindIncreaseInterval"`
}

// Keys lists every setting name accepted by Apply.
var Keys = []string{
	"autoRebuy", "rebuyAmount", "showdownDuration", "handEndDelay",
	"minChipsToPlay", "maxRebuyCount", "blindIncreaseInterval",
}

// Default returns the settings a new room starts with.
func Default() Settings {
	return Settings{
		AutoRebuy:             false,
		RebuyAmount:           DefaultRebuyAmount,
		ShowdownDuration:      7000,
		HandEndDelay:          3000,
		MinChipsToPlay:        10,
		MaxRebuyCount:         -1,
		BlindIncreaseInterval: 0,
	}
}

func (s Settings) ShowdownDelay() time.Duration {
	return time.Duration(s.ShowdownDuration) * time.Millisecond
}

func (s Settings) NextHandDelay() time.Duration {
	return time.Duration(s.HandEndDelay) * time.Millisecond
}

// RebuyAllowed reports whether a player who already rebought count times may do so again.
func (s Settings) RebuyAllowed(count int) bool {
	return s.MaxRebuyCount < 0 || count < s.MaxRebuyCount
}

// RebuyChips normalizes a requested rebuy. Anything outside (0, RebuyAmount] gets RebuyAmount.
func (s Settings) RebuyChips(requested int) int {
	if requested > 0 && requested <= s.RebuyAmount {
		return requested
	}
	return s.RebuyAmount
}

// Result describes what Apply did with a patch.
type Result struct {
	Settings Settings
	Ignored  []string          // unknown keys
	Invalid  map[string]string // known keys whose value could not be decoded
	Clamped  []string          // keys raised to their documented minimum
}

// Apply merges patch into s. Unknown keys and undecodable values are skipped,
// out-of-range numbers are clamped, nothing fails outright.
func (s Settings) Apply(patch map[string]any) Result {
	res := Result{Settings: s, Invalid: map[string]string{}}

	known := make(map[string]bool, len(Keys))
	for _, k := range Keys {
		known[k] = true
	}

	names := make([]string, 0, len(patch))
	for k := range patch {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, key := range names {
		if !known[key] {
			res.Ignored = append(res.Ignored, key)
			continue
		}
		next := res.Settings
		if err := mapstructure.WeakDecode(map[string]any{key: patch[key]}, &next); err != nil {
			res.Invalid[key] = fmt.Sprintf("%v", err)
			continue
		}
		res.Settings = next
	}

	res.Settings, res.Clamped = res.Settings.clamp()
	return res
}

func (s Settings) clamp() (Settings, []string) {
	var clamped []string
	if s.ShowdownDuration < MinShowdownDuration {
		s.ShowdownDuration = MinShowdownDuration
		clamped = append(clamped, "showdownDuration")
	}
	if s.HandEndDelay < MinHandEndDelay {
		s.HandEndDelay = MinHandEndDelay
		clamped = append(clamped, "handEndDelay")
	}
	if s.RebuyAmount <= 0 {
		s.RebuyAmount = DefaultRebuyAmount
		clamped = append(clamped, "rebuyAmount")
	}
	if s.MinChipsToPlay < 0 {
		s.MinChipsToPlay = 0
		clamped = append(clamped, "minChipsToPlay")
	}
	if s.MaxRebuyCount < -1 {
		s.MaxRebuyCount = -1
		clamped = append(clamped, "maxRebuyCount")
	}
	if s.BlindIncreaseInterval < 0 {
		s.BlindIncreaseInterval = 0
		clamped = append(clamped, "blindIncreaseInterval")
	}
	return s, clamped
}
