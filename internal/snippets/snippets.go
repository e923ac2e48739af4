// Package snippets provides the target text for typing tests: built-in
// code snippet pools per language, user pools loaded from disk, and a
// random word generator for word mode.
package snippets

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Provider serves snippets and words. Safe for concurrent use; the
// fsnotify watcher reloads user pools on a background goroutine.
type Provider struct {
	mu        sync.RWMutex
	userPools map[string][]string
	words     []string
	rnd       *rand.Rand
}

// NewProvider returns a provider backed by the built-in pools only.
func NewProvider() *Provider {
	return &Provider{
		userPools: map[string][]string{},
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Languages lists every language with at least one snippet, sorted.
func (p *Provider) Languages() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	seen := map[string]bool{}
	for lang := range builtinPools {
		seen[lang] = true
	}
	for lang, pool := range p.userPools {
		if len(pool) > 0 {
			seen[lang] = true
		}
	}
	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Snippet returns a random snippet for the language. User snippets are
// preferred over built-ins when present.
func (p *Provider) Snippet(language string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pool := p.userPools[language]
	if len(pool) == 0 {
		pool = builtinPools[language]
	}
	if len(pool) == 0 {
		return "", fmt.Errorf("no snippets for language %q", language)
	}
	return pool[p.rnd.Intn(len(pool))], nil
}

// Words returns count words with caps/punctuation rules applied, drawn
// from the user word list when loaded, the default pool otherwise.
func (p *Provider) Words(count int, capsPct, punctPct float64, punctSet []rune) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pool := p.words
	if len(pool) == 0 {
		pool = defaultWords
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		word := pool[p.rnd.Intn(len(pool))]
		word = applyCaps(p.rnd, word, capsPct)
		word = applyPunct(p.rnd, word, punctPct, punctSet)
		result = append(result, word)
	}
	return result
}

// LoadWordList replaces the word pool from a one-word-per-line file.
func (p *Provider) LoadWordList(path string) error {
	words, err := loadWords(path)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.words = words
	p.mu.Unlock()
	return nil
}

// LoadDir replaces the user pools from a directory of <language>.txt
// files, each holding snippets separated by blank lines. A missing
// directory is not an error; shipping pools still apply.
func (p *Provider) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	pools := map[string][]string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".txt") {
			continue
		}
		lang := strings.TrimSuffix(name, ".txt")
		blocks, err := loadBlocks(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("load snippet pool %s: %w", name, err)
		}
		if len(blocks) > 0 {
			pools[lang] = blocks
		}
	}

	p.mu.Lock()
	p.userPools = pools
	p.mu.Unlock()
	return nil
}

// loadBlocks reads blank-line-separated snippet blocks from a file.
func loadBlocks(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only snippet file.
			_ = cerr
		}
	}()

	var blocks []string
	var current []string
	flush := func() {
		if len(current) == 0 {
			return
		}
		blocks = append(blocks, strings.Join(current, "\n"))
		current = nil
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return blocks, nil
}

// loadWords reads one word per line from the provided file path.
func loadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}
