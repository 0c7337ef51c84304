package gitlib

import (
	"os"
	"path/filepath"
	"time"

	git2go "github.com/libgit2/git2go/v34"
)

// TestRepo builds small repositories on disk for tests of code that reads them.
type TestRepo struct {
	native *git2go.Repository
	path   string
}

// InitTestRepo creates a non-bare repository at dir.
func InitTestRepo(dir string) (*TestRepo, error) {
	repo, err := git2go.InitRepository(dir, false)
	if err != nil {
		return nil, err
	}

	return &TestRepo{native: repo, path: dir}, nil
}

// Path returns the working tree root.
func (tr *TestRepo) Path() string {
	return tr.path
}

// WriteFile writes content to name relative to the working tree, creating parents.
func (tr *TestRepo) WriteFile(name, content string) error {
	full := filepath.Join(tr.path, filepath.FromSlash(name))

	err := os.MkdirAll(filepath.Dir(full), 0o755)
	if err != nil {
		return err
	}

	return os.WriteFile(full, []byte(content), 0o600)
}

// Commit stages every file and commits as author.
func (tr *TestRepo) Commit(author, message string) error {
	index, err := tr.native.Index()
	if err != nil {
		return err
	}
	defer index.Free()

	err = index.AddAll([]string{"*"}, git2go.IndexAddDefault, nil)
	if err != nil {
		return err
	}

	err = index.Write()
	if err != nil {
		return err
	}

	treeID, err := index.WriteTree()
	if err != nil {
		return err
	}

	tree, err := tr.native.LookupTree(treeID)
	if err != nil {
		return err
	}
	defer tree.Free()

	sig := &git2go.Signature{
		Name:  author,
		Email: author + "@example.com",
		When:  time.Now(),
	}

	var parents []*git2go.Commit

	head, err := tr.native.Head()
	if err == nil {
		headCommit, lookupErr := tr.native.LookupCommit(head.Target())

		head.Free()

		if lookupErr != nil {
			return lookupErr
		}

		parents = append(parents, headCommit)
	}

	_, err = tr.native.CreateCommit("HEAD", sig, sig, message, tree, parents...)

	for _, parent := range parents {
		parent.Free()
	}

	return err
}

// Free releases the repository handle.
func (tr *TestRepo) Free() {
	if tr.native != nil {
		tr.native.Free()
		tr.native = nil
	}
}
