package esbuild

import (
	"reflect"
	"testing"
)

func TestOptionFlagMapping(t *testing.T) {
	cases := []struct {
		name   string
		option Option
		want   []string
	}{
		{"bundle", Bundle(), []string{"--bundle"}},
		{"outfile", Outfile("out.js"), []string{"--outfile=out.js"}},
		{"outdir", Outdir("dist"), []string{"--outdir=dist"}},
		{"define", Define("DEBUG", "false"), []string{"--define:DEBUG=false"}},
		{"external", External("fsevents"), []string{"--external:fsevents"}},
		{"format iife", OutputFormat(FormatIIFE), []string{"--format=iife"}},
		{"format esm", OutputFormat(FormatESM), []string{"--format=esm"}},
		{"format cjs", OutputFormat(FormatCJS), []string{"--format=cjs"}},
		{"loader", Loader(".png", "dataurl"), []string{"--loader:.png:dataurl"}},
		{"minify", Minify(), []string{"--minify"}},
		{"watch", Watch(false), []string{"--watch"}},
		{"watch forever", Watch(true), []string{"--watch=forever"}},
		{"sourcemap bare", Sourcemap(), []string{"--sourcemap"}},
		{"sourcemap inline", Sourcemap(SourcemapInline), []string{"--sourcemap=inline"}},
		{"sourcemap external", Sourcemap(SourcemapExternal), []string{"--sourcemap=external"}},
		{"splitting", Splitting(), []string{"--splitting"}},
		{"target single", Target("es2020"), []string{"--target=es2020"}},
		{"target multi", Target("es2020", "chrome58", "node12"), []string{"--target=es2020,chrome58,node12"}},
		{"platform browser", TargetPlatform(PlatformBrowser), []string{"--platform=browser"}},
		{"platform node", TargetPlatform(PlatformNode), []string{"--platform=node"}},
		{"serve bare", Serve(), []string{"--serve"}},
		{"serve spec", Serve("127.0.0.1:8000"), []string{"--serve=127.0.0.1:8000"}},
		{"packages external", Packages("external"), []string{"--packages=external"}},
		{"arguments", Arguments("--tree-shaking=true", "--charset=utf8"), []string{"--tree-shaking=true", "--charset=utf8"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.option.Flags()
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Flags() = %v; want %v", got, tc.want)
			}
			if len(got) == 0 {
				t.Fatal("every option must emit at least one flag")
			}
		})
	}
}

func TestTargetWithoutEnvironmentsEmitsNothing(t *testing.T) {
	if got := Target().Flags(); len(got) != 0 {
		t.Fatalf("Target() flags = %v; want none", got)
	}
	got := flatten([]Option{Bundle(), Target(), Minify()})
	want := []string{"--bundle", "--minify"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("flatten = %v; want %v", got, want)
	}
}

func TestFlattenPreservesOrder(t *testing.T) {
	got := flatten([]Option{
		Bundle(),
		Define("A", "1"),
		Outfile("out.js"),
		Arguments("--log-level=debug"),
		Minify(),
	})
	want := []string{"--bundle", "--define:A=1", "--outfile=out.js", "--log-level=debug", "--minify"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("flatten = %v; want %v", got, want)
	}
}

func TestFlagsReturnsCopy(t *testing.T) {
	o := Bundle()
	first := o.Flags()
	first[0] = "--mutated"
	if o.Flags()[0] != "--bundle" {
		t.Fatal("Flags() must not expose internal state")
	}
}
