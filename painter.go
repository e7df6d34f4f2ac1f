package mayan

/*
Painters turn terminal color specs into text decoration functions.
A spec is either nil (no decoration) or an ordered list of chalk-style
names composed with the first name outermost, so {"bold", "red"}
produces bold(red(text)). Unknown style names fail at construction,
never at log time.
*/

import (
	"github.com/fatih/color"
)

// painter decorates one rendered segment for terminal output.
type painter func(string) string

// paintNone is the identity painter used for absent specs.
func paintNone(s string) string { return s }

// styleAttrs maps the recognized style names to ANSI attributes:
// foreground colors with their bright variants, background colors and
// text modifiers.
var styleAttrs = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
	"gray":    color.FgHiBlack,
	"grey":    color.FgHiBlack,

	"redBright":     color.FgHiRed,
	"greenBright":   color.FgHiGreen,
	"yellowBright":  color.FgHiYellow,
	"blueBright":    color.FgHiBlue,
	"magentaBright": color.FgHiMagenta,
	"cyanBright":    color.FgHiCyan,
	"whiteBright":   color.FgHiWhite,

	"bgBlack":   color.BgBlack,
	"bgRed":     color.BgRed,
	"bgGreen":   color.BgGreen,
	"bgYellow":  color.BgYellow,
	"bgBlue":    color.BgBlue,
	"bgMagenta": color.BgMagenta,
	"bgCyan":    color.BgCyan,
	"bgWhite":   color.BgWhite,

	"bold":          color.Bold,
	"dim":           color.Faint,
	"italic":        color.Italic,
	"underline":     color.Underline,
	"inverse":       color.ReverseVideo,
	"hidden":        color.Concealed,
	"strikethrough": color.CrossedOut,
}

// defaultColors is the built-in palette, keyed by paintable field: the
// level names plus "timestamp", "tags" and "message". A nil spec leaves
// the field undecorated.
var defaultColors = map[string][]string{
	"error":     {"red"},
	"warn":      {"yellow"},
	"info":      {"green"},
	"verbose":   {"cyan"},
	"debug":     {"blue"},
	"trace":     {"gray"},
	"timestamp": {"gray"},
	"tags":      {"gray"},
	"message":   nil,
}

// buildPainter resolves one style spec into a decoration function.
func buildPainter(spec []string) (painter, error) {
	if len(spec) == 0 {
		return paintNone, nil
	}
	colors := make([]*color.Color, len(spec))
	for i, name := range spec {
		attr, ok := styleAttrs[name]
		if !ok {
			return nil, errUnknownStyle(name)
		}
		c := color.New(attr)
		c.EnableColor() // emit ANSI regardless of TTY detection
		colors[i] = c
	}
	return func(s string) string {
		for i := len(colors) - 1; i >= 0; i-- {
			s = colors[i].Sprint(s)
		}
		return s
	}, nil
}

// buildPainters merges the user's color overrides over the built-in
// palette (key by key; a present-but-nil spec removes the default) and
// resolves every field to a painter. Unknown field keys are accepted
// and ignored, unknown style names are not.
func buildPainters(overrides map[string][]string) (map[string]painter, error) {
	specs := make(map[string][]string, len(defaultColors)+len(overrides))
	for field, spec := range defaultColors {
		specs[field] = spec
	}
	for field, spec := range overrides {
		specs[field] = spec
	}
	painters := make(map[string]painter, len(specs))
	for field, spec := range specs {
		p, err := buildPainter(spec)
		if err != nil {
			return nil, err
		}
		painters[field] = p
	}
	return painters, nil
}

// paintFor returns the painter for a field, identity when unconfigured.
func paintFor(painters map[string]painter, field string) painter {
	if p, ok := painters[field]; ok && p != nil {
		return p
	}
	return paintNone
}
