//go:build !windows

package msvc

func programFilesX86(getenv func(string) string) string {
	if dir := getenv("ProgramFiles(x86)"); dir != "" {
		return dir
	}
	return defaultProgramFilesX86
}
