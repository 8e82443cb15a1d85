package version

// GitVersion is overridden at build time via
// -ldflags "-X github.com/wld-code/TinyML-for-motor/pkg/version.GitVersion=...".
var GitVersion = "v0.0.0-dev"
