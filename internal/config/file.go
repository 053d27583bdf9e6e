package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const aliasSection = "[aliases]"

type aliasEntry struct {
	code string // normalized to uppercase
	name string
}

// file is one parsed config file. Scalar keys are case-sensitive; alias
// codes are case-insensitive and stored uppercase.
type file struct {
	scalars map[string]string
	aliases []aliasEntry
}

func (f *file) scalar(key string) string { return f.scalars[key] }

// parseFile reads one config file. A missing file is not an error; it
// returns (nil, nil) so layering can skip it.
func parseFile(path string) (*file, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return parseLines(strings.Split(string(data), "\n")), nil
}

// parseLines interprets the line-oriented format: `key=value` pairs, with
// an optional [aliases] section switching subsequent lines into alias
// entries until the next bracketed section header or end of file. Blank
// lines and `#` comments are ignored.
func parseLines(lines []string) *file {
	f := &file{scalars: map[string]string{}}
	inAliases := false
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inAliases = strings.EqualFold(line, aliasSection)
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if inAliases {
			f.aliases = append(f.aliases, aliasEntry{code: strings.ToUpper(key), name: value})
		} else {
			f.scalars[key] = value
		}
	}
	return f
}

// setAliasInFile rewrites path with code=name upserted into the [aliases]
// section. All other lines are preserved verbatim, and existing aliases
// keep their relative order; a new section is appended at end of file
// when none exists yet.
func setAliasInFile(path, code, name string) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}

	entry := code + "=" + name
	if idx, ok := findAliasLine(lines, code); ok {
		lines[idx] = entry
		return writeLines(path, lines)
	}

	if end, ok := aliasSectionEnd(lines); ok {
		lines = append(lines[:end], append([]string{entry}, lines[end:]...)...)
		return writeLines(path, lines)
	}

	// No [aliases] section yet: append one at end of file.
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) != "" {
		lines = append(lines, "")
	}
	lines = append(lines, aliasSection, entry)
	return writeLines(path, lines)
}

// setScalarInFile upserts key=value among the scalar lines, before any
// section header. The file is created when it does not exist; all other
// lines are preserved verbatim.
func setScalarInFile(path, key, value string) error {
	lines, err := readLines(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	entry := key + "=" + value
	if idx, ok := findScalarLine(lines, key); ok {
		lines[idx] = entry
		return writeLines(path, lines)
	}
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			lines = append(lines[:i], append([]string{entry}, lines[i:]...)...)
			return writeLines(path, lines)
		}
	}
	return writeLines(path, append(lines, entry))
}

// removeScalarFromFile deletes the scalar line for key. A missing file
// or key is a no-op.
func removeScalarFromFile(path, key string) error {
	lines, err := readLines(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	idx, ok := findScalarLine(lines, key)
	if !ok {
		return nil
	}
	lines = append(lines[:idx], lines[idx+1:]...)
	return writeLines(path, lines)
}

// findScalarLine locates key among the lines before the first section
// header.
func findScalarLine(lines []string, key string) (int, bool) {
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			break
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, _, ok := strings.Cut(line, "=")
		if ok && strings.TrimSpace(k) == key {
			return i, true
		}
	}
	return 0, false
}

// removeAliasFromFile deletes the alias line for code, preserving
// everything else verbatim.
func removeAliasFromFile(path, code string) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}
	idx, ok := findAliasLine(lines, code)
	if !ok {
		return &AliasNotFoundError{Code: code}
	}
	lines = append(lines[:idx], lines[idx+1:]...)
	return writeLines(path, lines)
}

// readLines loads path and splits it into lines without the trailing
// newline artifact, so writeLines can round-trip content byte-for-byte.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	s := strings.TrimSuffix(string(data), "\n")
	if s == "" {
		return nil, nil
	}
	return strings.Split(s, "\n"), nil
}

func writeLines(path string, lines []string) error {
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// findAliasLine locates the line index of an alias with the given code
// inside the [aliases] section.
func findAliasLine(lines []string, code string) (int, bool) {
	inAliases := false
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inAliases = strings.EqualFold(line, aliasSection)
			continue
		}
		if !inAliases || line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, _, ok := strings.Cut(line, "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), code) {
			return i, true
		}
	}
	return 0, false
}

// aliasSectionEnd returns the insertion index just past the last line of
// the [aliases] section, or false when the section does not exist.
func aliasSectionEnd(lines []string) (int, bool) {
	inAliases := false
	end, found := 0, false
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			if inAliases {
				break
			}
			if strings.EqualFold(line, aliasSection) {
				inAliases = true
				found = true
				end = i + 1
			}
			continue
		}
		if inAliases && line != "" {
			end = i + 1
		}
	}
	return end, found
}
