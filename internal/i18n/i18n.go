// Package i18n loads the JSON message catalogs and resolves request languages.
package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
)

const (
	LangEN = "en"
	LangRU = "ru"
)

var requiredLanguages = []string{LangEN, LangRU}

// Manager holds one catalog per language. Catalogs are merged over the
// default language at load time and must be treated as read-only.
type Manager struct {
	defaultLanguage string
	catalogs        map[string]map[string]string
	supported       []string
}

func NewManager(defaultLanguage string, localesDir string) (*Manager, error) {
	manager, err := NewManagerFS(defaultLanguage, os.DirFS(localesDir))
	if err != nil {
		return nil, fmt.Errorf("load locales from %s: %w", localesDir, err)
	}
	return manager, nil
}

// NewManagerFS loads every <language>.json file at the root of locales.
func NewManagerFS(defaultLanguage string, locales fs.FS) (*Manager, error) {
	raw, err := readCatalogs(locales)
	if err != nil {
		return nil, err
	}
	for _, language := range requiredLanguages {
		if _, ok := raw[language]; !ok {
			return nil, fmt.Errorf("required locale %q missing", language)
		}
	}

	manager := &Manager{catalogs: make(map[string]map[string]string, len(raw))}
	for language := range raw {
		manager.supported = append(manager.supported, language)
	}
	slices.Sort(manager.supported)

	manager.defaultLanguage = normalizeLanguageTag(defaultLanguage)
	if _, ok := raw[manager.defaultLanguage]; !ok {
		manager.defaultLanguage = LangEN
	}

	base := raw[manager.defaultLanguage]
	for language, messages := range raw {
		merged := make(map[string]string, len(base))
		for key, value := range base {
			merged[key] = value
		}
		for key, value := range messages {
			if strings.TrimSpace(value) != "" {
				merged[key] = value
			}
		}
		manager.catalogs[language] = merged
	}
	return manager, nil
}

func readCatalogs(locales fs.FS) (map[string]map[string]string, error) {
	files, err := fs.Glob(locales, "*.json")
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no locales found")
	}

	catalogs := make(map[string]map[string]string, len(files))
	for _, name := range files {
		language := strings.ToLower(strings.TrimSuffix(name, path.Ext(name)))
		content, err := fs.ReadFile(locales, name)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", language, err)
		}
		messages := map[string]string{}
		if err := json.Unmarshal(content, &messages); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", language, err)
		}
		if len(messages) == 0 {
			return nil, fmt.Errorf("locale %s is empty", language)
		}
		catalogs[language] = messages
	}
	return catalogs, nil
}

func (manager *Manager) DefaultLanguage() string {
	return manager.defaultLanguage
}

func (manager *Manager) SupportedLanguages() []string {
	return slices.Clone(manager.supported)
}

// NormalizeLanguage reduces a tag such as "ru_RU" to a supported base
// language, or the default when unsupported.
func (manager *Manager) NormalizeLanguage(raw string) string {
	if language := normalizeLanguageTag(raw); manager.catalogs[language] != nil {
		return language
	}
	return manager.defaultLanguage
}

// DetectFromAcceptLanguage returns the first supported language in header
// order. Quality values are ignored.
func (manager *Manager) DetectFromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(part, ";")
		if language := normalizeLanguageTag(tag); manager.catalogs[language] != nil {
			return language
		}
	}
	return manager.defaultLanguage
}

func (manager *Manager) Messages(language string) map[string]string {
	return manager.catalogs[manager.NormalizeLanguage(language)]
}

func (manager *Manager) Translate(language string, key string) string {
	if value, ok := manager.Messages(language)[key]; ok {
		return value
	}
	return key
}

func normalizeLanguageTag(raw string) string {
	tag := strings.ToLower(strings.TrimSpace(raw))
	if cut := strings.IndexAny(tag, "-_"); cut >= 0 {
		tag = tag[:cut]
	}
	return tag
}
