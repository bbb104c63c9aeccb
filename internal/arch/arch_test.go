package arch

import (
	"context"
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input string
		want  Architecture
		ok    bool
	}{
		{"arm", ARM, true},
		{"arm64", ARM64, true},
		{"x64", X64, true},
		{"x86_64", X8664, true},
		{"ia32", IA32, true},
		{"loong64", Loong64, true},
		{"mips64el", MIPS64LE, true},
		{"ppc64", PPC64, true},
		{"riscv64", RISCV64, true},
		{"s390x", S390X, true},
		{"sparc64", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := Parse(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Errorf("Parse(%q) = %q, %v; want %q, %v", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRegistryToken(t *testing.T) {
	cases := []struct {
		arch  Architecture
		token string
	}{
		{ARM, "arm"},
		{ARM64, "arm64"},
		{X64, "x64"},
		{X8664, "x64"},
		{IA32, "ia32"},
		{Loong64, ""},
		{MIPS64LE, ""},
		{PPC64, "ppc64"},
		{RISCV64, "riscv64"},
		{S390X, "s390x"},
	}

	for _, tc := range cases {
		if got := tc.arch.RegistryToken(); got != tc.token {
			t.Errorf("%s.RegistryToken() = %q; want %q", tc.arch, got, tc.token)
		}
	}
}

func TestDetectParsesHardwareName(t *testing.T) {
	orig := hardwareName
	defer func() { hardwareName = orig }()

	hardwareName = func(_ context.Context) (string, error) {
		return "arm64", nil
	}
	got, ok := Detect(context.Background())
	if !ok || got != ARM64 {
		t.Fatalf("Detect() = %q, %v; want arm64, true", got, ok)
	}
}

func TestDetectSoftFails(t *testing.T) {
	orig := hardwareName
	defer func() { hardwareName = orig }()

	hardwareName = func(_ context.Context) (string, error) {
		return "", errors.New("uname unavailable")
	}
	if _, ok := Detect(context.Background()); ok {
		t.Fatal("Detect() should report ok=false when the hardware name cannot be read")
	}

	hardwareName = func(_ context.Context) (string, error) {
		return "vax", nil
	}
	if _, ok := Detect(context.Background()); ok {
		t.Fatal("Detect() should report ok=false for unrecognized hardware names")
	}
}
