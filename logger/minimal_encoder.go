package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette is one console color theme.
type palette struct {
	fg        string
	time      string
	component []string // rotated by name hash
	lord      string   // bodies and period lords
	id        string   // request ids
	number    string
	warn      string
	warnBg    string
	err       string
	errBg     string
}

// Gruvbox Dark (warm, muted)
var gruvbox = palette{
	fg:        "\x1b[38;5;223m", // #ebdbb2
	time:      "\x1b[38;5;108m", // #8ec07c
	component: []string{"\x1b[38;5;208m", "\x1b[38;5;214m"},
	lord:      "\x1b[38;5;142m", // #b8bb26
	id:        "\x1b[38;5;109m", // #83a598
	number:    "\x1b[38;5;175m", // #d3869b
	warn:      "\x1b[38;5;214m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m",
	errBg:     "\x1b[48;5;88m",
}

// Everforest Dark (forest greens)
var everforest = palette{
	fg:        "\x1b[38;5;223m", // #d3c6aa
	time:      "\x1b[38;5;107m", // #83c092
	component: []string{"\x1b[38;5;108m", "\x1b[38;5;65m", "\x1b[38;5;208m"},
	lord:      "\x1b[38;5;108m", // #a7c080
	id:        "\x1b[38;5;109m", // #7fbbb3
	number:    "\x1b[38;5;108m",
	warn:      "\x1b[38;5;179m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m",
	errBg:     "\x1b[48;5;52m",
}

// Current active theme (set from log.theme before Initialize)
var currentTheme = "everforest"

// SetTheme configures the color scheme for console output. Unknown themes
// are ignored.
func SetTheme(theme string) {
	if theme == "everforest" || theme == "gruvbox" {
		currentTheme = theme
	}
}

func colors() palette {
	if currentTheme == "gruvbox" {
		return gruvbox
	}
	return everforest
}

func colorComponent(p palette, name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	return p.component[hash%len(p.component)]
}

// minimalEncoder is a compact console encoder:
// "13:04:35  d.builder  Generated mahadashas  count=9 lord=Rahu"
//
// Context fields added with With() are kept in the embedded map encoder and
// printed before the entry's own fields.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := newMinimalEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return clone
}

var bufferPool = buffer.NewPool()

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	p := colors()
	final := bufferPool.Get()

	final.AppendString(p.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: hidden for INFO
	if ent.Level > zapcore.InfoLevel || ent.Level == zapcore.DebugLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(p, ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorComponent(p, ent.LoggerName))
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(p.fg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	if pairs := enc.pairs(p, fields); pairs != "" {
		final.AppendString("  ")
		final.AppendString(pairs)
	}

	final.AppendString("\n")
	return final, nil
}

// pairs renders every context and entry field as key=value. No field is
// ever dropped.
func (enc *minimalEncoder) pairs(p palette, fields []zapcore.Field) string {
	var out []string

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, pair(p, k, enc.Fields[k]))
	}

	entry := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(entry)
		if v, ok := entry.Fields[f.Key]; ok {
			out = append(out, pair(p, f.Key, v))
		}
	}
	return strings.Join(out, " ")
}

func pair(p palette, key string, value interface{}) string {
	color := p.fg
	switch key {
	case FieldRequestID:
		color = p.id
	case FieldBody, FieldLord:
		color = p.lord
	default:
		switch value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			color = p.number
		}
	}
	return fmt.Sprintf("%s=%s%v%s", key, color, value, colorReset)
}

// levelColorString returns bold + colored + background for the level tag
func levelColorString(p palette, level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel:
		return p.number + "DEBUG" + colorReset
	case zapcore.WarnLevel:
		return colorBold + p.warnBg + p.warn + "WARN" + colorReset
	default:
		return colorBold + p.errBg + p.err + level.CapitalString() + colorReset
	}
}

// abbreviateName shortens component names: dasha.builder -> d.builder
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}
