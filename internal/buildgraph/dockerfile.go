package buildgraph

import (
	"encoding/json"
	"strings"

	"github.com/chored-dev/chored/internal/domain"
)

// Dockerfile renders spec as Dockerfile text. RUN and CMD use the exec
// (JSON array) form so arguments such as "strict compile" survive intact.
func Dockerfile(spec domain.BuildSpec) string {
	var b strings.Builder
	for i, stage := range spec.Stages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("FROM " + stage.From + " AS " + stage.Name + "\n")
		if stage.Workdir != "" {
			b.WriteString("WORKDIR " + stage.Workdir + "\n")
		}
		for _, step := range stage.Steps {
			switch step.Kind() {
			case domain.StepKindCopy:
				b.WriteString("COPY " + step.Copy.Src + " " + step.Copy.Dest + "\n")
			case domain.StepKindRun:
				b.WriteString("RUN " + execForm(step.Run.Command) + "\n")
			}
		}
		if len(stage.Cmd) > 0 {
			b.WriteString("CMD " + execForm(stage.Cmd) + "\n")
		}
	}
	return b.String()
}

func execForm(args []string) string {
	// Marshalling a []string cannot fail.
	out, _ := json.Marshal(args)
	return string(out)
}
