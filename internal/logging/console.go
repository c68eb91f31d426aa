package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// leadKeys print right after the message, in this order, so pass and
// override lines line up when scanning a build log.
var leadKeys = []string{
	FieldTuneID,
	FieldPass,
	FieldMatchAlbums,
	FieldMerged,
	FieldChains,
	FieldReason,
}

// tailKeys print last. The run id is shortened on the console.
var tailKeys = []string{
	FieldError,
	FieldErrorHint,
	FieldImpact,
	FieldRunID,
}

const shortRunIDLen = 8

type field struct {
	key   string
	value slog.Value
}

// consoleHandler writes one line per record:
//
//	2026-10-19 14:02:11 INFO  assembly: pass complete [merge_pass] pass=2 match_albums=true merged=5 chains=31
type consoleHandler struct {
	mu         *sync.Mutex
	w          io.Writer
	level      slog.Leveler
	withSource bool
	fields     []field
	group      string
}

func newConsoleHandler(w io.Writer, level slog.Leveler, withSource bool) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: level, withSource: withSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	next.fields = make([]field, len(h.fields), len(h.fields)+len(attrs))
	copy(next.fields, h.fields)
	for _, a := range attrs {
		next.fields = appendField(next.fields, h.group, a)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = joinKey(h.group, name)
	return &next
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]field, len(h.fields), len(h.fields)+r.NumAttrs())
	copy(fields, h.fields)
	r.Attrs(func(a slog.Attr) bool {
		fields = appendField(fields, h.group, a)
		return true
	})

	component := take(&fields, FieldComponent)
	eventType := take(&fields, FieldEventType)

	var b strings.Builder
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	b.WriteString(ts.Format(time.DateTime))
	fmt.Fprintf(&b, " %-5s ", levelName(r.Level))
	if component != nil {
		b.WriteString(component.String())
		b.WriteString(": ")
	}
	msg := strings.TrimSpace(r.Message)
	if msg == "" {
		msg = "(no message)"
	}
	b.WriteString(msg)
	if eventType != nil {
		b.WriteString(" [")
		b.WriteString(eventType.String())
		b.WriteByte(']')
	}
	if h.withSource && r.PC != 0 {
		if src := r.Source(); src != nil && src.File != "" {
			fmt.Fprintf(&b, " (%s:%d)", filepath.Base(src.File), src.Line)
		}
	}

	for _, key := range leadKeys {
		if v := take(&fields, key); v != nil {
			writePair(&b, key, *v)
		}
	}
	source, line := take(&fields, FieldSource), take(&fields, FieldLine)
	switch {
	case source != nil && line != nil:
		writePair(&b, FieldSource, slog.StringValue(source.String()+":"+line.String()))
	case source != nil:
		writePair(&b, FieldSource, *source)
	case line != nil:
		writePair(&b, FieldLine, *line)
	}

	tail := make(map[string]slog.Value, len(tailKeys))
	for _, key := range tailKeys {
		if v := take(&fields, key); v != nil {
			tail[key] = *v
		}
	}
	for _, f := range fields {
		writePair(&b, f.key, f.value)
	}
	for _, key := range tailKeys {
		v, ok := tail[key]
		if !ok {
			continue
		}
		if key == FieldRunID {
			if id := v.String(); len(id) > shortRunIDLen {
				v = slog.StringValue(id[:shortRunIDLen])
			}
		}
		writePair(&b, key, v)
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// appendField flattens groups into dotted keys and drops empty attrs.
func appendField(dst []field, group string, a slog.Attr) []field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}
	if a.Value.Kind() == slog.KindGroup {
		prefix := group
		if a.Key != "" {
			prefix = joinKey(group, a.Key)
		}
		for _, inner := range a.Value.Group() {
			dst = appendField(dst, prefix, inner)
		}
		return dst
	}
	return append(dst, field{key: joinKey(group, a.Key), value: a.Value})
}

// take removes the first field named key and returns its value.
func take(fields *[]field, key string) *slog.Value {
	for i, f := range *fields {
		if f.key == key {
			*fields = append((*fields)[:i], (*fields)[i+1:]...)
			return &f.value
		}
	}
	return nil
}

func joinKey(group, key string) string {
	if group == "" {
		return key
	}
	if key == "" {
		return group
	}
	return group + "." + key
}

func writePair(b *strings.Builder, key string, v slog.Value) {
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(consoleValue(v))
}

func consoleValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().Round(time.Millisecond).String()
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'g', 4, 64)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsAny(s, " \t\n=\"") {
		return strconv.Quote(s)
	}
	return s
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
