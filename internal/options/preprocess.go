package options

// DefaultIgnore lists the paths that are never linted. Caller ignores are
// added after these; configuration cannot remove them.
var DefaultIgnore = []string{
	"**/node_modules/**",
	"**/bower_components/**",
	"coverage/**",
	"{tmp,temp}/**",
	"**/*.min.js",
	"**/bundle.js",
	"fixture{-*,}.{js,jsx}",
	"fixture{s,}/**",
	"{test,tests,spec,__tests__}/fixture{s,}/**",
	"vendor/**",
	"dist/**",
}

// Preprocess turns a caller bag into canonical options: manifest settings
// fill the gaps, aliases are folded, and the built-in ignores are prepended
// to the caller's.
func Preprocess(raw Raw) (Options, error) {
	merged, err := MergeWithManifest(raw)
	if err != nil {
		return Options{}, err
	}
	opts, err := Normalize(merged)
	if err != nil {
		return Options{}, err
	}

	ignores := make([]string, 0, len(DefaultIgnore)+len(opts.Ignores))
	ignores = append(ignores, DefaultIgnore...)
	opts.Ignores = append(ignores, opts.Ignores...)
	return opts, nil
}
