package msvc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goplus/exbuild/internal/config"
	"github.com/goplus/exbuild/internal/runner"
)

const vswhereJSON = `[
  {"installationPath": "C:\\VS\\2019", "installationVersion": "16.11.34601.136", "displayName": "Visual Studio Community 2019"},
  {"installationPath": "C:\\VS\\2022", "installationVersion": "17.9.34622.214", "displayName": "Visual Studio Community 2022"},
  {"installationPath": "C:\\VS\\2017", "installationVersion": "15.9.28307.2094", "displayName": "Visual Studio Build Tools 2017"}
]`

func getenv(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestParseEnvDump(t *testing.T) {
	dump := strings.Join([]string{
		"INCLUDE=C:\\VS\\include;C:\\Kits\\include",
		"=C:=C:\\work",
		"this line has no separator",
		"",
		"Path=C:\\VS\\bin;C:\\Windows\\system32\r",
		"VSCMD_ARG_TGT_ARCH=x64",
		"EMPTY=",
		"WEIRD=a=b",
	}, "\n")

	env, err := ParseEnvDump(strings.NewReader(dump))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"INCLUDE":            "C:\\VS\\include;C:\\Kits\\include",
		"Path":               "C:\\VS\\bin;C:\\Windows\\system32",
		"VSCMD_ARG_TGT_ARCH": "x64",
		"EMPTY":              "",
		"WEIRD":              "a=b",
	}, env)
}

func TestParseEnvDumpLongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	env, err := ParseEnvDump(strings.NewReader("PATH=" + long + "\n"))
	require.NoError(t, err)
	assert.Len(t, env["PATH"], len(long))
}

func TestLatestInstallation(t *testing.T) {
	inst, err := latestInstallation([]byte(vswhereJSON))
	require.NoError(t, err)
	assert.Equal(t, "C:\\VS\\2022", inst.InstallationPath)

	_, err = latestInstallation([]byte(`[]`))
	assert.ErrorIs(t, err, ErrNoInstallation)

	_, err = latestInstallation([]byte(`not json`))
	assert.Error(t, err)
}

func TestSemverOf(t *testing.T) {
	tests := map[string]string{
		"17.9.34622.214": "v17.9.34622",
		"16.11":          "v16.11.0",
		"":               "v0.0.0",
		"garbage":        "v0.0.0",
	}
	for in, want := range tests {
		assert.Equal(t, want, semverOf(in), "semverOf(%q)", in)
	}
}

func TestVswherePath(t *testing.T) {
	l := &Locator{Getenv: getenv(map[string]string{"ProgramFiles(x86)": "D:\\PF86"})}
	assert.Equal(t, filepath.Join("D:\\PF86", "Microsoft Visual Studio", "Installer", "vswhere.exe"), l.vswherePath())
}

func TestEnvironment(t *testing.T) {
	r := &fakeRunner{
		vswhere: []byte(vswhereJSON),
		dump:    "INCLUDE=C:\\VS\\include\nno separator\nLIB=C:\\VS\\lib\n",
	}
	tmp := t.TempDir()
	l := &Locator{
		Runner:  r,
		Getenv:  getenv(map[string]string{"ProgramFiles(x86)": "C:\\PF86"}),
		TempDir: tmp,
	}

	env, err := l.Environment(context.Background(), config.X64)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"INCLUDE": "C:\\VS\\include", "LIB": "C:\\VS\\lib"}, env)

	require.Len(t, r.calls, 2)
	assert.Equal(t, filepath.Join("C:\\PF86", "Microsoft Visual Studio", "Installer", "vswhere.exe"), r.calls[0].Name)

	source := r.calls[1]
	assert.Equal(t, "cmd.exe", source.Name)
	script := filepath.Join("C:\\VS\\2022", "VC", "Auxiliary", "Build", "vcvarsall.bat")
	assert.Equal(t, []string{
		"/d", "/c",
		"chcp", "65001", ">nul", "&&",
		"call", script, "x64", "&&",
		"set", ">",
	}, source.Args[:12])

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries, "environment dump must be removed")
}

func TestEnvironmentUTF8Dump(t *testing.T) {
	r := &fakeRunner{
		vswhere: []byte(vswhereJSON),
		dump:    "USERPROFILE=C:\\Users\\Jürgen\nLIB=C:\\VS\\lib\n",
	}
	l := &Locator{Runner: r, Getenv: getenv(nil), TempDir: t.TempDir()}

	env, err := l.Environment(context.Background(), config.X64)
	require.NoError(t, err)
	assert.Equal(t, `C:\Users\Jürgen`, env["USERPROFILE"])
	assert.Contains(t, r.calls[1].Args, "65001")
}

func TestEnvironmentSourceFailure(t *testing.T) {
	r := &fakeRunner{
		vswhere: []byte(vswhereJSON),
		runErr:  &runner.ExitError{Code: 9},
	}
	l := &Locator{Runner: r, Getenv: getenv(nil), TempDir: t.TempDir()}

	_, err := l.Environment(context.Background(), config.X86)
	require.Error(t, err)
	assert.Equal(t, 9, runner.ExitCode(err))
}

func TestEnvironmentNoInstallation(t *testing.T) {
	r := &fakeRunner{vswhere: []byte(`[]`)}
	l := &Locator{Runner: r, Getenv: getenv(nil), TempDir: t.TempDir()}

	_, err := l.Environment(context.Background(), config.X64)
	assert.True(t, errors.Is(err, ErrNoInstallation))
	assert.Len(t, r.calls, 1, "no script may run without an installation")
}
