package wordlist

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFilterEnglishASCII(t *testing.T) {
	filter := FilterForLang("en")
	for _, word := range []string{"hello", "i", "don't"} {
		if !filter(word) {
			t.Fatalf("expected %q to pass english filter", word)
		}
	}
	for _, word := range []string{"résumé", "naïve", "don’t", "co-op", "'tis", "dogs'"} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestNormalizeDedupesAndLowercases(t *testing.T) {
	got := Normalize([]string{" The ", "dog", "the", "", "Dog", "co-op"}, FilterForLang("en"))
	want := []string{"the", "dog"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize = %v, want %v", got, want)
	}
}

func TestLoadWordsSkipsCommentsAndBlanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animals.txt")
	if err := os.WriteFile(path, []byte("# animals\ncat\n\n  dog  \n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("load words: %v", err)
	}
	if !reflect.DeepEqual(words, []string{"cat", "dog"}) {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestLoadWordsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("# nothing\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	if _, err := LoadWords(path); err == nil {
		t.Fatalf("expected error for empty list")
	}
}
