package options

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/tidwall/jsonc"

	"github.com/Wladim1r/xoconf/internal/logging"
)

// Namespace is the key under which package.json carries lint options.
const Namespace = "xo"

// Manifest file names probed in each directory, in order. The YAML files hold
// the option bag at their top level; package.json holds it under Namespace.
var manifestNames = []string{
	".xo-config.yaml",
	".xo-config.yml",
	"package.json",
}

// Manifest is a discovered project configuration fragment.
type Manifest struct {
	// Path is the manifest file, or "" when none was found.
	Path string
	// Fragment is the option bag found in the manifest. It is empty, never
	// nil, when no manifest exists or the manifest has no lint section.
	Fragment map[string]any
}

// FindManifest walks from dir up to the filesystem root and loads the first
// manifest it meets. The nearest manifest wins even when it carries no lint
// section. Finding nothing is not an error.
func FindManifest(dir string) (Manifest, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Manifest{}, fmt.Errorf("%w: %q: %v", ErrCwd, dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrCwd, err)
	}
	if !info.IsDir() {
		return Manifest{}, fmt.Errorf("%w: %s is not a directory", ErrCwd, abs)
	}

	for cur := abs; ; {
		for _, name := range manifestNames {
			candidate := filepath.Join(cur, name)
			st, err := os.Stat(candidate)
			if err != nil || !st.Mode().IsRegular() {
				continue
			}
			fragment, err := loadManifest(candidate)
			if err != nil {
				return Manifest{}, err
			}
			logging.Debug().Str("manifest", candidate).Msg("project manifest found")
			return Manifest{Path: candidate, Fragment: fragment}, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}

	logging.Debug().Str("cwd", abs).Msg("no project manifest")
	return Manifest{Fragment: map[string]any{}}, nil
}

func loadManifest(path string) (map[string]any, error) {
	if filepath.Base(path) == "package.json" {
		return loadPackageJSON(path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("xoconf: parsing manifest %q: %w", path, err)
	}
	return k.Raw(), nil
}

func loadPackageJSON(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("xoconf: reading manifest %q: %w", path, err)
	}

	var pkg map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkg); err != nil {
		return nil, fmt.Errorf("xoconf: parsing manifest %q: %w", path, err)
	}

	section, ok := pkg[Namespace]
	if !ok {
		return map[string]any{}, nil
	}
	var fragment map[string]any
	if err := json.Unmarshal(section, &fragment); err != nil {
		return nil, fmt.Errorf("xoconf: %q section of %q is not an object: %w", Namespace, path, err)
	}
	if fragment == nil {
		fragment = map[string]any{}
	}
	return fragment, nil
}

// MergeWithManifest fills every option the caller left unset from the
// nearest project manifest above raw.Cwd. Cwd defaults to the process
// working directory and is always set, made absolute, on the result.
func MergeWithManifest(raw Raw) (Raw, error) {
	cwd := raw.Cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Raw{}, fmt.Errorf("%w: %v", ErrCwd, err)
		}
		cwd = wd
	}
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return Raw{}, fmt.Errorf("%w: %q: %v", ErrCwd, cwd, err)
	}
	cwd = abs

	m, err := FindManifest(cwd)
	if err != nil {
		return Raw{}, err
	}
	fromManifest, err := Decode(m.Fragment)
	if err != nil {
		return Raw{}, fmt.Errorf("manifest %s: %w", m.Path, err)
	}

	out := raw.Fill(fromManifest)
	out.Cwd = cwd
	return out, nil
}
