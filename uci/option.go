package uci

import (
	"fmt"
	"strconv"
	"strings"
)

// OptionType is the UCI option kind.
type OptionType string

const (
	CheckOption  OptionType = "check"
	SpinOption   OptionType = "spin"
	ComboOption  OptionType = "combo"
	ButtonOption OptionType = "button"
	StringOption OptionType = "string"
)

// Option describes one engine option as announced during the handshake.
type Option struct {
	Name    string
	Type    OptionType
	Default string
	Min     int
	Max     int
	HasMin  bool
	HasMax  bool
	Vars    []string
}

// optionKeywords are the tokens that terminate a running value.
var optionKeywords = map[string]bool{
	"name": true, "type": true, "default": true,
	"min": true, "max": true, "var": true,
}

// ParseOption reads a line of shape
//
//	option name N type T [default D] [min A] [max B] (var C)*
//
// Names and values may span several tokens; the next keyword ends them.
func ParseOption(line string) (Option, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != "option" {
		return Option{}, fmt.Errorf("uci: not an option line: %q", line)
	}
	var opt Option
	i := 1
	// collect gathers tokens until the next keyword.
	collect := func() string {
		var parts []string
		for i < len(fields) && !optionKeywords[fields[i]] {
			parts = append(parts, fields[i])
			i++
		}
		return strings.Join(parts, " ")
	}
	for i < len(fields) {
		switch key := fields[i]; key {
		case "name":
			i++
			opt.Name = collect()
		case "type":
			i++
			opt.Type = OptionType(collect())
		case "default":
			i++
			opt.Default = collect()
		case "min":
			i++
			if v, err := strconv.Atoi(collect()); err == nil {
				opt.Min = v
				opt.HasMin = true
			}
		case "max":
			i++
			if v, err := strconv.Atoi(collect()); err == nil {
				opt.Max = v
				opt.HasMax = true
			}
		case "var":
			i++
			opt.Vars = append(opt.Vars, collect())
		default:
			i++
		}
	}
	if opt.Name == "" || opt.Type == "" {
		return Option{}, fmt.Errorf("uci: option line %q missing name or type", line)
	}
	switch opt.Type {
	case CheckOption, SpinOption, ComboOption, ButtonOption, StringOption:
	default:
		return Option{}, fmt.Errorf("uci: unknown option type %q", opt.Type)
	}
	return opt, nil
}
