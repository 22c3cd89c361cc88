package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/sightdrill/internal/wordlist"
)

// Sources points at optional custom list locations. Missing files are not an error.
type Sources struct {
	// YAMLPath is a lists.yaml file with named lists.
	YAMLPath string
	// WordListDir holds <id>.txt files, one word per line. The id doubles as the name.
	WordListDir string
}

type yamlFile struct {
	Lists []yamlList `yaml:"lists"`
}

type yamlList struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	Lang  string   `yaml:"lang"`
	Words []string `yaml:"words"`
}

// Load returns the built-in catalog extended with the lists found in src.
// Text-file lists override YAML lists, which override built-ins.
func Load(src Sources) (*Catalog, error) {
	lists := append([]List(nil), builtinLists...)

	yamlLists, err := loadYAML(src.YAMLPath)
	if err != nil {
		return nil, err
	}
	lists = append(lists, yamlLists...)

	dirLists, err := loadDir(src.WordListDir)
	if err != nil {
		return nil, err
	}
	lists = append(lists, dirLists...)

	return New(lists...), nil
}

func loadYAML(path string) ([]List, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read lists file: %w", err)
	}
	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode lists file: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Lists))
	lists := make([]List, 0, len(file.Lists))
	for i, entry := range file.Lists {
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			return nil, fmt.Errorf("lists file entry %d: id is required", i)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateList, id)
		}
		seen[id] = struct{}{}
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			name = id
		}
		words := wordlist.Normalize(entry.Words, wordlist.FilterForLang(entry.Lang))
		if len(words) == 0 {
			return nil, fmt.Errorf("list %q has no usable words", id)
		}
		lists = append(lists, List{ID: id, Name: name, Words: words})
	}
	return lists, nil
}

func loadDir(dir string) ([]List, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read wordlist directory: %w", err)
	}
	found := map[string]List{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".txt")
		raw, err := wordlist.LoadWords(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("load word list %s: %w", entry.Name(), err)
		}
		words := wordlist.Normalize(raw, wordlist.FilterForLang("en"))
		if len(words) == 0 {
			return nil, fmt.Errorf("word list %s has no usable words", entry.Name())
		}
		found[id] = List{ID: id, Name: id, Words: words}
	}
	lists := make([]List, 0, len(found))
	for _, id := range sortedKeys(found) {
		lists = append(lists, found[id])
	}
	return lists, nil
}
