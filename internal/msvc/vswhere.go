package msvc

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// installation is one entry of "vswhere -format json".
type installation struct {
	InstallationPath    string `json:"installationPath"`
	InstallationVersion string `json:"installationVersion"`
	DisplayName         string `json:"displayName"`
}

// latestInstallation decodes vswhere output and returns the installation
// with the highest version.
func latestInstallation(data []byte) (installation, error) {
	var insts []installation
	if err := json.Unmarshal(data, &insts); err != nil {
		return installation{}, fmt.Errorf("decode vswhere output: %w", err)
	}

	var best installation
	bestVer := ""
	for _, inst := range insts {
		if inst.InstallationPath == "" {
			continue
		}
		v := semverOf(inst.InstallationVersion)
		if bestVer == "" || semver.Compare(v, bestVer) > 0 {
			best, bestVer = inst, v
		}
	}
	if bestVer == "" {
		return installation{}, ErrNoInstallation
	}
	return best, nil
}

// semverOf turns a Visual Studio version such as "17.4.33213.308" into the
// comparable "v17.4.33213". Unparsable versions become "v0.0.0".
func semverOf(version string) string {
	parts := strings.SplitN(version, ".", 4)
	if len(parts) > 3 {
		parts = parts[:3]
	}
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	v := "v" + strings.Join(parts, ".")
	if !semver.IsValid(v) {
		return "v0.0.0"
	}
	return v
}
