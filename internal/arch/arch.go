package arch

import (
	"context"
	"os/exec"
	"strings"
)

// Architecture identifies a CPU architecture as reported by the host
// machine's hardware name.
type Architecture string

const (
	ARM      Architecture = "arm"
	ARM64    Architecture = "arm64"
	X64      Architecture = "x64"
	X8664    Architecture = "x86_64"
	IA32     Architecture = "ia32"
	Loong64  Architecture = "loong64"
	MIPS64LE Architecture = "mips64el"
	PPC64    Architecture = "ppc64"
	RISCV64  Architecture = "riscv64"
	S390X    Architecture = "s390x"
)

var knownArchitectures = map[string]Architecture{
	"arm":      ARM,
	"arm64":    ARM64,
	"x64":      X64,
	"x86_64":   X8664,
	"ia32":     IA32,
	"loong64":  Loong64,
	"mips64el": MIPS64LE,
	"ppc64":    PPC64,
	"riscv64":  RISCV64,
	"s390x":    S390X,
}

// Parse maps a trimmed hardware name onto the architecture enumeration.
func Parse(name string) (Architecture, bool) {
	a, ok := knownArchitectures[name]
	return a, ok
}

// RegistryToken returns the token used to build the platform-qualified
// registry package name. loong64 and mips64el have no published package and
// map to the empty token, which makes package-name resolution fail upstream.
func (a Architecture) RegistryToken() string {
	switch a {
	case X8664:
		return "x64"
	case Loong64, MIPS64LE:
		return ""
	default:
		return string(a)
	}
}

// hardwareName reads the machine hardware identifier. Overridable in tests.
var hardwareName = func(ctx context.Context) (string, error) {
	output, err := exec.CommandContext(ctx, "uname", "-m").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// Detect inspects the host machine and reports its architecture. It degrades
// to ok=false rather than failing when the hardware name cannot be read or is
// not recognized; callers treat that as "unsupported platform".
func Detect(ctx context.Context) (Architecture, bool) {
	name, err := hardwareName(ctx)
	if err != nil {
		return "", false
	}
	return Parse(name)
}
