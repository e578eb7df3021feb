package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/grob"
)

// Errors returned while loading a scene.
var (
	// ErrUndecoded is returned when a scene file has keys outside the
	// scene format.
	ErrUndecoded = errors.New("scene: undecoded keys")
)

// Scene is a decoded scene file.
type Scene struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	PlotStyle  string `toml:"plotstyle"`
	Background any    `toml:"background"`

	Vars  []VarDecl        `toml:"var"`
	Draws []map[string]any `toml:"draw"`

	// dir resolves relative image paths. Empty for scenes parsed from
	// memory.
	dir string
}

// VarDecl declares one variable.
type VarDecl struct {
	Name    string   `toml:"name"`
	Type    string   `toml:"type"`
	Default any      `toml:"default"`
	Min     *float64 `toml:"min"`
	Max     *float64 `toml:"max"`
	Value   any      `toml:"value"`
}

// Load reads and decodes a scene file. Relative image paths in the scene
// are resolved against the file's directory.
func Load(path string) (*Scene, error) {
	s := new(Scene)
	md, err := toml.DecodeFile(path, s)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// Parse decodes a scene from TOML text.
func Parse(data string) (*Scene, error) {
	s := new(Scene)
	md, err := toml.Decode(data, s)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	return s, nil
}

// checkUndecoded rejects keys outside the scene format. Tables nested in
// free-form values (a draw entry's shadow, a variable's default) decode
// into any and are reported as undecoded by the toml package; they are
// checked later, when the entry runs.
func checkUndecoded(md toml.MetaData) error {
	var names []string
	for _, k := range md.Undecoded() {
		if freeForm(k) {
			continue
		}
		names = append(names, k.String())
	}
	if len(names) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUndecoded, strings.Join(names, ", "))
}

func freeForm(k toml.Key) bool {
	switch {
	case len(k) == 0:
		return false
	case k[0] == "draw" || k[0] == "background":
		return len(k) > 1
	case k[0] == "var":
		return len(k) > 2
	}
	return false
}

// BackgroundColor returns the background color, if the scene sets one.
func (s *Scene) BackgroundColor() (grob.Color, bool, error) {
	if s.Background == nil {
		return grob.Color{}, false, nil
	}
	return grob.Kwargs{"background": s.Background}.Color("background")
}

// Declare builds the scene's variables. A variable present in prev keeps
// its previous value when that value complies with the new declaration.
func (s *Scene) Declare(prev map[string]*grob.Variable) (map[string]*grob.Variable, error) {
	vars := make(map[string]*grob.Variable, len(s.Vars))
	for i, d := range s.Vars {
		if d.Name == "" {
			return nil, fmt.Errorf("scene: var[%d]: %w: missing name", i, grob.ErrInvalidArgument)
		}
		if _, dup := vars[d.Name]; dup {
			return nil, fmt.Errorf("scene: var %q: %w: declared twice", d.Name, grob.ErrInvalidArgument)
		}
		typ := grob.VarNumber
		if d.Type != "" {
			var err error
			if typ, err = grob.ParseVarType(d.Type); err != nil {
				return nil, fmt.Errorf("scene: var %q: %w", d.Name, err)
			}
		}

		var opts []grob.VarOption
		if d.Default != nil {
			opts = append(opts, grob.WithDefault(d.Default))
		}
		if d.Min != nil || d.Max != nil {
			lo, hi := 0.0, 100.0
			if d.Min != nil {
				lo = *d.Min
			}
			if d.Max != nil {
				hi = *d.Max
			}
			opts = append(opts, grob.WithRange(lo, hi))
		}
		if d.Value != nil {
			opts = append(opts, grob.WithValue(d.Value))
		}
		v := grob.NewVariable(d.Name, typ, opts...)

		if old, ok := prev[d.Name]; ok && old.CompliesTo(v) {
			v.Set(old.Value)
		}
		vars[d.Name] = v
	}
	return vars, nil
}
