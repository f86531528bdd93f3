package version

import (
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const packageName = "crewai"

var (
	// requirementPattern matches a PEP 508 style requirement line such as
	// "crewai==0.102.5", "crewai[tools]>=0.103.0" or "crewai ~= 0.9.2".
	requirementPattern = regexp.MustCompile(`(?im)^\s*crewai(?:\[[^\]]*\])?\s*(?:==|~=|>=|<=|>|=)\s*v?([0-9]+\.[0-9]+\.[0-9]+)`)

	// constraintPattern matches a Poetry style constraint such as "0.103.0",
	// "^0.103.0" or ">=0.103.0,<1.0".
	constraintPattern = regexp.MustCompile(`^\s*(?:==|~=|>=|<=|>|=|\^|~)?\s*v?([0-9]+\.[0-9]+\.[0-9]+)`)

	// pyprojectFallback is used when pyproject.toml does not decode.
	pyprojectFallback = regexp.MustCompile(`(?i)crewai\s*=\s*["']?([0-9]+\.[0-9]+\.[0-9]+)`)

	// poetryLockFallback is used when poetry.lock does not decode.
	poetryLockFallback = regexp.MustCompile(`\[\[package\]\]\r?\nname = "crewai"[\s\S]*?version = "([0-9]+\.[0-9]+\.[0-9]+)"`)
)

// fromRequirements extracts the CrewAI version from a requirements.txt file.
func fromRequirements(content string) (string, bool) {
	if m := requirementPattern.FindStringSubmatch(content); m != nil {
		return m[1], true
	}
	return "", false
}

// fromPyproject extracts the CrewAI version from pyproject.toml. Poetry dependency
// tables are checked first, then PEP 621 dependency lists.
func fromPyproject(content string) (string, bool) {
	var doc map[string]any
	if _, err := toml.Decode(content, &doc); err != nil {
		if m := pyprojectFallback.FindStringSubmatch(content); m != nil {
			return m[1], true
		}
		return "", false
	}

	poetry := table(table(doc, "tool"), "poetry")
	if v, ok := poetryDependency(table(poetry, "dependencies")); ok {
		return v, true
	}
	groups := table(poetry, "group")
	for _, name := range sortedKeys(groups) {
		if v, ok := poetryDependency(table(asTable(groups[name]), "dependencies")); ok {
			return v, true
		}
	}

	project := table(doc, "project")
	if v, ok := requirementList(project["dependencies"]); ok {
		return v, true
	}
	extras := table(project, "optional-dependencies")
	for _, name := range sortedKeys(extras) {
		if v, ok := requirementList(extras[name]); ok {
			return v, true
		}
	}
	return "", false
}

// fromPoetryLock extracts the locked CrewAI version from poetry.lock.
func fromPoetryLock(content string) (string, bool) {
	var lock struct {
		Package []struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"package"`
	}
	if _, err := toml.Decode(content, &lock); err != nil {
		if m := poetryLockFallback.FindStringSubmatch(content); m != nil {
			return m[1], true
		}
		return "", false
	}
	for _, pkg := range lock.Package {
		if strings.EqualFold(pkg.Name, packageName) {
			if m := constraintPattern.FindStringSubmatch(pkg.Version); m != nil {
				return m[1], true
			}
		}
	}
	return "", false
}

// poetryDependency reads the crewai entry of a Poetry dependency table, which is
// either a constraint string or a table with a "version" key.
func poetryDependency(deps map[string]any) (string, bool) {
	for name, entry := range deps {
		if !strings.EqualFold(name, packageName) {
			continue
		}
		var constraint string
		switch s := entry.(type) {
		case string:
			constraint = s
		case map[string]any:
			constraint, _ = s["version"].(string)
		}
		if m := constraintPattern.FindStringSubmatch(constraint); m != nil {
			return m[1], true
		}
	}
	return "", false
}

func requirementList(v any) (string, bool) {
	list, ok := v.([]any)
	if !ok {
		return "", false
	}
	for _, item := range list {
		if s, ok := item.(string); ok {
			if version, found := fromRequirements(s); found {
				return version, true
			}
		}
	}
	return "", false
}

func table(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	return asTable(m[key])
}

func asTable(v any) map[string]any {
	t, _ := v.(map[string]any)
	return t
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
