// Package render produces the generated files of a scala project.
//
// Files is pure: it performs no I/O and returns the same ordered file set
// for the same options. Encode applies the per-kind serialization that the
// fsutil writer puts on disk.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/chored-dev/chored/internal/config"
	"github.com/chored-dev/chored/internal/constants"
	"github.com/chored-dev/chored/internal/domain"
	"github.com/chored-dev/chored/internal/errors"
	"github.com/chored-dev/chored/internal/workflow"
)

// SelfUpdateCron runs the self-update workflow early on Mondays and Thursdays.
const SelfUpdateCron = "0 0 * * 1,4"

// DefaultStrictPlugin is the strict-scope plugin line unless overridden.
const DefaultStrictPlugin = `addSbtPlugin("net.gfxmonk" % "sbt-strict-scope" % "3.1.0")`

//go:embed templates/*.tmpl
var templateFS embed.FS

//nolint:gochecknoglobals // parsed once from embedded, immutable sources
var templates = template.Must(template.New("render").Option("missingkey=error").ParseFS(templateFS, "templates/*.tmpl"))

// releaseData feeds release.sbt and strict.sbt.
type releaseData struct {
	ScalaVersion  string
	CrossVersions string
	Organization  string
	Owner         string
	Repo          string
	RepoURL       string
	StrictPlugin  string
}

// Files returns the project's generated files in their fixed order.
func Files(opts config.ProjectOptions) ([]domain.RenderedFile, error) {
	pins, err := config.ResolveVersions(opts)
	if err != nil {
		return nil, err
	}

	data := releaseData{
		ScalaVersion: pins[0].Version,
		Organization: opts.Organization,
		Owner:        opts.Owner,
		Repo:         opts.Repo,
		RepoURL:      opts.RepoURL(),
		StrictPlugin: DefaultStrictPlugin,
	}
	if len(pins) > 1 {
		quoted := make([]string, len(pins))
		for i, p := range pins {
			quoted[i] = `"` + p.Version + `"`
		}
		data.CrossVersions = strings.Join(quoted, ", ")
	}
	if opts.StrictPluginOverride != "" {
		data.StrictPlugin = opts.StrictPluginOverride
	}

	files := make([]domain.RenderedFile, 0, 9)
	for _, t := range []struct {
		path, tmpl string
		kind       domain.FileKind
	}{
		{"project/sonatype.sbt", "sonatype.sbt.tmpl", domain.FileKindComputed},
		{"project/src/main/scala/PublishSettings.scala", "PublishSettings.scala.tmpl", domain.FileKindComputed},
		{"release.sbt", "release.sbt.tmpl", domain.FileKindComputed},
		{"project/strict.sbt", "strict.sbt.tmpl", domain.FileKindComputed},
	} {
		content, err := execute(t.tmpl, data)
		if err != nil {
			return nil, err
		}
		files = append(files, domain.RenderedFile{Path: t.path, Kind: t.kind, Content: content})
	}

	files = append(files, domain.RenderedFile{
		Path:    "project/build.properties",
		Kind:    domain.FileKindComputed,
		Content: "sbt.version=" + config.DefaultSbtVersion,
	})

	dockerignore, err := execute("dockerignore.tmpl", nil)
	if err != nil {
		return nil, err
	}
	files = append(files,
		domain.RenderedFile{Path: ".dockerignore", Kind: domain.FileKindText, Content: dockerignore},
		domain.RenderedFile{Path: ".github/workflows/ci.yml", Kind: domain.FileKindYAML, Data: ciWorkflow()},
		domain.RenderedFile{Path: ".github/workflows/self-update.yml", Kind: domain.FileKindYAML, Data: selfUpdateWorkflow()},
	)

	return append(files, gitattributes(files)), nil
}

func ciWorkflow() workflow.Workflow {
	return workflow.CI(workflow.Chores([]domain.Invocation{
		{Module: "docker", Name: "login", Options: map[string]string{
			"user":  workflow.Expr("github.actor"),
			"token": workflow.Secret("GITHUB_TOKEN"),
		}},
		{Name: "ci", Options: map[string]string{"docker": "true"}},
		{Name: "requireClean"},
	}))
}

func selfUpdateWorkflow() workflow.Workflow {
	steps := workflow.Chores([]domain.Invocation{
		{Name: "selfUpdate", Options: map[string]string{"mode": string(domain.UpdateModePR)}},
	})
	last := &steps[len(steps)-1]
	last.Env = map[string]string{"GH_TOKEN": workflow.Secret("GITHUB_TOKEN")}
	return workflow.Scheduled("Self-update", constants.DefaultUpdateBranch, SelfUpdateCron, steps)
}

// gitattributes marks every generated file so diffs collapse them.
func gitattributes(files []domain.RenderedFile) domain.RenderedFile {
	var b strings.Builder
	for _, f := range files {
		if f.Generated() {
			b.WriteString(f.Path + " linguist-generated\n")
		}
	}
	return domain.RenderedFile{Path: ".gitattributes", Kind: domain.FileKindComputed, Content: b.String()}
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("%w: template %s: %w", errors.ErrRenderFailed, name, err)
	}
	return buf.String(), nil
}

// Paths lists the paths of files in order.
func Paths(files []domain.RenderedFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}
