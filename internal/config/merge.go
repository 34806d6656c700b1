package config

// MergeDockerOptions overlays override onto defaults field by field. A field
// the override sets (non-nil slice, non-empty string) replaces exactly that
// field; everything else keeps its default. A nil override returns a copy of
// defaults.
func MergeDockerOptions(defaults DockerBuildOptions, override *DockerBuildOptions) DockerBuildOptions {
	out := defaults.clone()
	if override == nil {
		return out
	}
	o := override.clone()

	if o.Cmd != nil {
		out.Cmd = o.Cmd
	}
	if o.Workdir != "" {
		out.Workdir = o.Workdir
	}
	if o.InitRequires != nil {
		out.InitRequires = o.InitRequires
	}
	if o.InitTargets != nil {
		out.InitTargets = o.InitTargets
	}
	if o.UpdateRequires != nil {
		out.UpdateRequires = o.UpdateRequires
	}
	if o.UpdateTargets != nil {
		out.UpdateTargets = o.UpdateTargets
	}
	if o.BuildDepsRequires != nil {
		out.BuildDepsRequires = o.BuildDepsRequires
	}
	if o.BuildDepsTargets != nil {
		out.BuildDepsTargets = o.BuildDepsTargets
	}
	if o.BuildRequires != nil {
		out.BuildRequires = o.BuildRequires
	}
	if o.BuildTargets != nil {
		out.BuildTargets = o.BuildTargets
	}
	if o.BuilderSetup != nil {
		out.BuilderSetup = o.BuilderSetup
	}
	return out
}
