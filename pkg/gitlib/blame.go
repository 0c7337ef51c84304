package gitlib

import (
	"fmt"
	"time"

	git2go "github.com/libgit2/git2go/v34"
)

// Signature identifies who wrote a blamed line and when.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// BlameHunk is a run of consecutive lines last touched by one commit.
type BlameHunk struct {
	Author    Signature
	StartLine int
	Lines     int
}

// Blame attributes every line of path at HEAD to the author of the commit
// that last changed it.
func (r *Repository) Blame(path string) ([]BlameHunk, error) {
	opts, err := git2go.DefaultBlameOptions()
	if err != nil {
		return nil, fmt.Errorf("blame options: %w", err)
	}

	blame, err := r.repo.BlameFile(path, &opts)
	if err != nil {
		return nil, fmt.Errorf("blame %s: %w", path, err)
	}
	defer blame.Free()

	count := blame.HunkCount()
	hunks := make([]BlameHunk, 0, count)

	for i := range count {
		hunk, hunkErr := blame.HunkByIndex(i)
		if hunkErr != nil {
			return nil, fmt.Errorf("blame %s hunk %d: %w", path, i, hunkErr)
		}

		h := BlameHunk{
			StartLine: int(hunk.FinalStartLineNumber),
			Lines:     int(hunk.LinesInHunk),
		}

		if hunk.FinalSignature != nil {
			h.Author = Signature{
				Name:  hunk.FinalSignature.Name,
				Email: hunk.FinalSignature.Email,
				When:  hunk.FinalSignature.When,
			}
		}

		hunks = append(hunks, h)
	}

	return hunks, nil
}

// LinesByAuthor sums blame hunks per author name.
func LinesByAuthor(hunks []BlameHunk) map[string]int {
	out := make(map[string]int)

	for _, h := range hunks {
		out[h.Author.Name] += h.Lines
	}

	return out
}
