package content

import (
	"context"
	"strings"
)

// MaxLength caps the assembled blob, in characters, before it is handed to
// the generation prompts.
const MaxLength = 4000

// manifestFiles are probed in order after the README. Presence of any of
// them hints at the repository's stack.
var manifestFiles = []string{
	"package.json",
	"pubspec.yaml",
	"requirements.txt",
	"Cargo.toml",
	"go.mod",
}

// Source is the slice of the hosting API the fetcher needs. A non-success
// lookup returns empty text, not an error.
type Source interface {
	GetReadme(ctx context.Context, owner, repo string) (string, error)
	GetFileContent(ctx context.Context, owner, repo, path string) (string, error)
}

// Fetcher assembles a repository's descriptive text into a single blob.
type Fetcher struct {
	src Source
}

func NewFetcher(src Source) *Fetcher {
	return &Fetcher{src: src}
}

// Fetch concatenates the README and every manifest file found, each under
// a heading naming its source, and truncates the result to MaxLength
// characters. An empty result means the repository has nothing to
// describe. Every probe is issued regardless of earlier results.
func (f *Fetcher) Fetch(ctx context.Context, owner, repo string) (string, error) {
	var parts []string

	readme, err := f.src.GetReadme(ctx, owner, repo)
	if err != nil {
		return "", err
	}
	if readme != "" {
		parts = append(parts, "## README\n"+readme)
	}

	for _, path := range manifestFiles {
		text, err := f.src.GetFileContent(ctx, owner, repo, path)
		if err != nil {
			return "", err
		}
		if text != "" {
			parts = append(parts, "## "+path+"\n"+text)
		}
	}

	return Truncate(strings.Join(parts, "\n\n"), MaxLength), nil
}

// Truncate cuts s to at most n characters (runes, not bytes). No attempt
// is made to cut at a word or line boundary.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
