// Package roster reads player rosters from disk and writes rosters and
// batch reports back out. YAML goes through koanf, JSON through sonic.
package roster

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/valyala/bytebufferpool"

	"github.com/okian/scout/internal/domain/model"
)

// playersKey is the top-level key holding the record list.
const playersKey = "players"

// Sentinel kinds for roster errors.
var (
	ErrUnsupportedFormat = crerr.New("unsupported roster format")
	ErrDecode            = crerr.New("roster decode failed")
	ErrEncode            = crerr.New("roster encode failed")
)

// Format is a roster file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// treeAPI keeps integer counters integral when decoding into generic maps.
var treeAPI = sonic.Config{UseInt64: true}.Froze() //nolint:gochecknoglobals // frozen config is read-only

// document is the on-disk shape of a roster.
type document struct {
	Players []model.PlayerRecord `json:"players"`
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", crerr.Wrapf(ErrUnsupportedFormat, "%q", path)
	}
}

// Load reads the roster at path.
func Load(ctx context.Context, path string) ([]model.PlayerRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatYAML:
		return loadYAML(path)
	default:
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, crerr.Wrapf(err, "read roster %s", path)
		}
		return DecodeJSON(raw)
	}
}

func loadYAML(path string) ([]model.PlayerRecord, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, crerr.Wrapf(err, "read roster %s", path)
		}
		return nil, crerr.Mark(crerr.Wrapf(err, "parse roster %s", path), ErrDecode)
	}

	var players []model.PlayerRecord
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       wholeCounts,
			Result:           &players,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf(playersKey, &players, conf); err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "decode roster %s", path), ErrDecode)
	}
	return players, nil
}

// wholeCounts rejects fractional numbers bound for integer counters, which
// mapstructure would otherwise truncate. The JSON path rejects them too.
func wholeCounts(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Int {
		return data, nil
	}
	if f, ok := data.(float64); ok && f != math.Trunc(f) {
		return nil, crerr.Newf("counter %v is not a whole number", f)
	}
	return data, nil
}

// DecodeJSON accepts either {"players": [...]} or a bare array.
func DecodeJSON(raw []byte) ([]model.PlayerRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var players []model.PlayerRecord
		if err := sonic.Unmarshal(trimmed, &players); err != nil {
			return nil, crerr.Mark(crerr.Wrap(err, "decode roster array"), ErrDecode)
		}
		return players, nil
	}

	var doc document
	if err := sonic.Unmarshal(trimmed, &doc); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "decode roster document"), ErrDecode)
	}
	return doc.Players, nil
}

// Save writes players to path in the format its extension names.
func Save(path string, players []model.PlayerRecord) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := Encode(buf, format, players); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.B, 0o644); err != nil { //nolint:gosec // roster files are not secret
		return crerr.Wrapf(err, "write roster %s", path)
	}
	return nil
}

// Encode writes players to w in the given format.
func Encode(w io.Writer, format Format, players []model.PlayerRecord) error {
	if players == nil {
		players = []model.PlayerRecord{}
	}
	doc := document{Players: players}

	switch format {
	case FormatJSON:
		return WriteJSON(w, doc)
	case FormatYAML:
		// Round-trip through JSON so the yaml keys follow the json tags.
		raw, err := sonic.Marshal(doc)
		if err != nil {
			return crerr.Mark(crerr.Wrap(err, "marshal roster"), ErrEncode)
		}
		var tree map[string]any
		if err := treeAPI.Unmarshal(raw, &tree); err != nil {
			return crerr.Mark(crerr.Wrap(err, "marshal roster"), ErrEncode)
		}
		out, err := yaml.Parser().Marshal(tree)
		if err != nil {
			return crerr.Mark(crerr.Wrap(err, "marshal roster yaml"), ErrEncode)
		}
		if _, err := w.Write(out); err != nil {
			return crerr.Wrap(err, "write roster")
		}
		return nil
	default:
		return crerr.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
}

// WriteJSON encodes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := sonic.ConfigDefault.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return crerr.Mark(crerr.Wrap(err, "encode json"), ErrEncode)
	}
	return nil
}

// WriteReport encodes a batch report as JSON.
func WriteReport(w io.Writer, report any) error {
	return WriteJSON(w, report)
}
