// Package mapedit edits title mappings in a settings file.
//
// Edits are all-or-nothing: the new content is written to a temporary
// file in the same directory and renamed over the original, so a failed
// write never corrupts existing configuration.
package mapedit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrMappingNotFound is returned by Remove when no mapping line matches
// the requested title.
var ErrMappingNotFound = errors.New("mapping not found")

// reservedKeys are the structured settings keys; a key=value line using
// one of them is configuration, not a title mapping, and is never edited.
var reservedKeys = map[string]bool{
	"calendar": true,
	"start":    true,
	"end":      true,
	"filter":   true,
}

// Add writes a title mapping to the settings file at path, creating the
// file when it does not exist. An existing mapping line for the same
// title is rewritten in place; otherwise the new line is appended. All
// other lines, including comments, are preserved byte for byte.
func Add(path, title, replacement string) error {
	lines, err := readLines(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	entry := title + " = " + replacement
	replaced := false
	for i, line := range lines {
		if key, ok := mappingKey(line); ok && key == title {
			lines[i] = entry
			replaced = true
		}
	}
	if !replaced {
		lines = append(lines, entry)
	}

	return writeLines(path, lines)
}

// Remove deletes every mapping line for the given title from the
// settings file at path. It fails with ErrMappingNotFound when the file
// is missing or contains no such mapping.
func Remove(path, title string) error {
	lines, err := readLines(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMappingNotFound, title)
		}
		return err
	}

	kept := lines[:0]
	found := false
	for _, line := range lines {
		if key, ok := mappingKey(line); ok && key == title {
			found = true
			continue
		}
		kept = append(kept, line)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrMappingNotFound, title)
	}

	return writeLines(path, kept)
}

// mappingKey extracts the key of a title-mapping line. Comments, bare
// tokens, and structured keys yield ok=false.
func mappingKey(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, ";") {
		return "", false
	}
	idx := strings.Index(trimmed, "=")
	if idx < 0 {
		return "", false
	}
	key := strings.TrimSpace(trimmed[:idx])
	if reservedKeys[key] {
		return "", false
	}
	return key, true
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// writeLines replaces the file at path atomically via a sibling temp
// file and rename.
func writeLines(path string, lines []string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tmpPath := tmp.Name()

	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close settings file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}
