package starlark

import (
	"go.starlark.net/starlark"
)

// Builtin global names. Template variables with these names are only
// reachable through the vars dict.
const (
	GlobalVars    = "vars"
	GlobalDialect = "dialect"
	GlobalFile    = "file"
)

func isBuiltin(name string) bool {
	return name == GlobalVars || name == GlobalDialect || name == GlobalFile
}

// VarsToStarlark converts template variables to a Starlark dict.
// The dict is accessible as the "vars" global in templates.
func VarsToStarlark(vars map[string]any) (*starlark.Dict, error) {
	if vars == nil {
		return starlark.NewDict(0), nil
	}
	v, err := GoToStarlark(vars)
	if err != nil {
		return nil, err
	}
	return v.(*starlark.Dict), nil
}

// Predeclared returns the builtin globals for template execution:
// vars, dialect and file. Every string key of vars is also bound as a
// global of its own unless it collides with a builtin. vars is frozen.
func Predeclared(vars *starlark.Dict, dialect string, file *FileInfo) starlark.StringDict {
	if vars == nil {
		vars = starlark.NewDict(0)
	}
	vars.Freeze()
	globals := starlark.StringDict{
		GlobalVars:    vars,
		GlobalDialect: starlark.String(dialect),
	}

	if file != nil {
		globals[GlobalFile] = file.ToStarlark()
	}

	for _, item := range vars.Items() {
		key, ok := item[0].(starlark.String)
		if !ok || isBuiltin(string(key)) {
			continue
		}
		globals[string(key)] = item[1]
	}

	return globals
}
