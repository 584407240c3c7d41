// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the locale files against the source tree. It reports
// message IDs used in code but missing from a locale, IDs no code refers to,
// and translations whose fmt verbs differ from the primary locale, which
// would garble i18n.T output at runtime.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const primaryLocale = "en.yaml"

var (
	// i18n.T("id") and message IDs handed to helpers such as newCLIError.
	usedKeyRe = regexp.MustCompile(`i18n\.T\("([^"]+)"|"((?:cli|config|language)\.[a-z0-9_.]+)"`)
	verbRe    = regexp.MustCompile(`%[-+# 0]*[0-9]*(?:\.[0-9]+)?[a-zA-Z%]`)
)

// report is the outcome of one lint run.
type report struct {
	Missing  map[string][]string // locale file -> IDs
	Orphaned []string
	Verbs    map[string][]string // locale file -> IDs with mismatching verbs
}

func (r report) failed() bool { return len(r.Missing) > 0 || len(r.Verbs) > 0 }

func main() {
	root := flag.String("root", ".", "module root to scan")
	locales := flag.String("locales", "internal/i18n/locales", "directory holding the locale YAML files")
	flag.Parse()

	r, err := lint(*root, *locales)
	if err != nil {
		fmt.Fprintf(os.Stderr, "i18n-linter: %v\n", err)
		os.Exit(1)
	}
	printReport(os.Stdout, r)
	if r.failed() {
		os.Exit(1)
	}
}

func lint(root, localesDir string) (report, error) {
	r := report{Missing: map[string][]string{}, Verbs: map[string][]string{}}

	used, err := findUsedKeys(root)
	if err != nil {
		return r, fmt.Errorf("scanning sources: %w", err)
	}
	primary, err := loadLocale(filepath.Join(localesDir, primaryLocale))
	if err != nil {
		return r, fmt.Errorf("loading primary locale: %w", err)
	}
	files, err := filepath.Glob(filepath.Join(localesDir, "*.yaml"))
	if err != nil {
		return r, err
	}

	for key := range primary {
		if _, ok := used[key]; !ok {
			r.Orphaned = append(r.Orphaned, key)
		}
	}
	sort.Strings(r.Orphaned)

	for _, file := range files {
		name := filepath.Base(file)
		msgs := primary
		if name != primaryLocale {
			if msgs, err = loadLocale(file); err != nil {
				return r, fmt.Errorf("loading %s: %w", name, err)
			}
		}
		for key := range used {
			if _, ok := msgs[key]; !ok {
				r.Missing[name] = append(r.Missing[name], key)
			}
		}
		for key, want := range primary {
			got, ok := msgs[key]
			if ok && !sameVerbs(want, got) {
				r.Verbs[name] = append(r.Verbs[name], key)
			}
		}
		sort.Strings(r.Missing[name])
		sort.Strings(r.Verbs[name])
		if len(r.Missing[name]) == 0 {
			delete(r.Missing, name)
		}
		if len(r.Verbs[name]) == 0 {
			delete(r.Verbs, name)
		}
	}
	return r, nil
}

func printReport(w io.Writer, r report) {
	section := func(title string, byFile map[string][]string) {
		_, _ = fmt.Fprintf(w, "--- %s ---\n", title)
		if len(byFile) == 0 {
			_, _ = fmt.Fprintln(w, "  none")
			return
		}
		files := make([]string, 0, len(byFile))
		for f := range byFile {
			files = append(files, f)
		}
		sort.Strings(files)
		for _, f := range files {
			for _, key := range byFile[f] {
				_, _ = fmt.Fprintf(w, "  %s: %s\n", f, key)
			}
		}
	}
	section("Missing keys", r.Missing)
	section("Format verb mismatches", r.Verbs)
	_, _ = fmt.Fprintln(w, "--- Orphaned keys ---")
	if len(r.Orphaned) == 0 {
		_, _ = fmt.Fprintln(w, "  none")
	}
	for _, key := range r.Orphaned {
		_, _ = fmt.Fprintf(w, "  %s\n", key)
	}
}

// findUsedKeys collects message IDs from non-test Go files below root,
// skipping tools and directories the go command ignores.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range usedKeyRe.FindAllStringSubmatch(string(content), -1) {
			if m[1] != "" {
				keys[m[1]] = struct{}{}
			} else if m[2] != "" {
				keys[m[2]] = struct{}{}
			}
		}
		return nil
	})
	return keys, err
}

// loadLocale reads a flat locale file into message ID -> text.
func loadLocale(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]string
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// sameVerbs reports whether a and b use the same fmt verbs in the same order.
func sameVerbs(a, b string) bool {
	va, vb := verbRe.FindAllString(a, -1), verbRe.FindAllString(b, -1)
	if len(va) != len(vb) {
		return false
	}
	for i := range va {
		if va[i] != vb[i] {
			return false
		}
	}
	return true
}
