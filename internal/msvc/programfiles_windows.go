//go:build windows

package msvc

import "golang.org/x/sys/windows"

func programFilesX86(getenv func(string) string) string {
	if dir := getenv("ProgramFiles(x86)"); dir != "" {
		return dir
	}
	dir, err := windows.KnownFolderPath(windows.FOLDERID_ProgramFilesX86, 0)
	if err != nil || dir == "" {
		return defaultProgramFilesX86
	}
	return dir
}
