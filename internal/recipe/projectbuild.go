package recipe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lasserre/wildebeest/internal/gitutil"
)

// ProjectBuild is one checked-out, built copy of a ProjectRecipe's source
// tree. ExpRoot anchors it to the owning experiment folder so rebasing the
// experiment (moving the whole folder to a new disk/machine) can recompute
// ProjectRoot and BuildFolder from the new root without re-cloning.
type ProjectBuild struct {
	ExpRoot     string `yaml:"exp_root" json:"exp_root"`
	ProjectRoot string `yaml:"project_root" json:"project_root"`
	BuildFolder string `yaml:"build_folder" json:"build_folder"`
	Recipe      *ProjectRecipe `yaml:"recipe,omitempty" json:"recipe,omitempty"`
}

// NewProjectBuild lays out ProjectRoot at <expRoot>/projects/<recipe>. For
// in-tree builds BuildFolder is ProjectRoot itself; for out-of-tree builds
// it is <expRoot>/builds/<recipe>.
func NewProjectBuild(expRoot string, r *ProjectRecipe) *ProjectBuild {
	projectRoot := filepath.Join(expRoot, "projects", r.Name)
	buildFolder := projectRoot
	if r.SupportsOutOfTree {
		buildFolder = filepath.Join(expRoot, "builds", r.Name)
	}
	return &ProjectBuild{
		ExpRoot:     expRoot,
		ProjectRoot: projectRoot,
		BuildFolder: buildFolder,
		Recipe:      r,
	}
}

// Init obtains the project's source tree: clones Recipe.GitRemote into
// ProjectRoot (checking out Recipe.GitHead if set), and creates BuildFolder
// if it differs from ProjectRoot (out-of-tree builds). It is a no-op if
// ProjectRoot already exists, so re-running a partially completed run does
// not reclone.
func (b *ProjectBuild) Init() error {
	if b.Recipe == nil {
		return fmt.Errorf("project build: no recipe set")
	}
	if _, err := os.Stat(b.ProjectRoot); err == nil {
		return b.ensureBuildFolder()
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", b.ProjectRoot, err)
	}

	if b.Recipe.GitRemote == "" {
		return fmt.Errorf("project build: recipe %q has no git_remote", b.Recipe.Name)
	}
	if err := os.MkdirAll(filepath.Dir(b.ProjectRoot), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(b.ProjectRoot), err)
	}
	if err := gitutil.Clone(b.Recipe.GitRemote, b.ProjectRoot, b.Recipe.GitHead); err != nil {
		return fmt.Errorf("clone %s: %w", b.Recipe.GitRemote, err)
	}
	return b.ensureBuildFolder()
}

func (b *ProjectBuild) ensureBuildFolder() error {
	if b.BuildFolder == b.ProjectRoot {
		return nil
	}
	return os.MkdirAll(b.BuildFolder, 0o755)
}

// HeadSHA returns the git revision actually checked out in ProjectRoot.
func (b *ProjectBuild) HeadSHA() (string, error) {
	return gitutil.HeadSHA(b.ProjectRoot)
}

// Rebase rewrites ExpRoot/ProjectRoot/BuildFolder when the enclosing
// experiment folder moves from oldRoot to newRoot. It implements
// store.Rebaser but does not persist itself: ProjectBuild is always embedded
// in a Run, so the owning Run is responsible for saving after rebasing its
// fields.
func (b *ProjectBuild) Rebase(oldRoot, newRoot string) error {
	b.ProjectRoot = rebasePath(b.ProjectRoot, oldRoot, newRoot)
	b.BuildFolder = rebasePath(b.BuildFolder, oldRoot, newRoot)
	b.ExpRoot = newRoot
	return nil
}

func rebasePath(path, oldRoot, newRoot string) string {
	rel := strings.TrimPrefix(path, oldRoot)
	if rel == path {
		return path
	}
	return filepath.Join(newRoot, rel)
}

// Destroy removes the build artifacts. If destroyProject is true, the cloned
// source tree is removed as well (callers pass false to keep it around for
// inspection or reuse across runs, matching the original's default).
func (b *ProjectBuild) Destroy(destroyProject bool) error {
	if b.BuildFolder != b.ProjectRoot {
		if err := os.RemoveAll(b.BuildFolder); err != nil {
			return fmt.Errorf("remove %s: %w", b.BuildFolder, err)
		}
	}
	if destroyProject {
		if err := os.RemoveAll(b.ProjectRoot); err != nil {
			return fmt.Errorf("remove %s: %w", b.ProjectRoot, err)
		}
	}
	return nil
}
