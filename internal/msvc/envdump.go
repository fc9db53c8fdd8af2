package msvc

import (
	"bufio"
	"io"
	"strings"
)

// maxLine bounds one "KEY=VALUE" line; PATH alone may exceed bufio's default.
const maxLine = 1 << 20

// ParseEnvDump parses the output of "set" into a map. Lines without "=" and
// lines with an empty name (cmd.exe's per-drive "=C:=C:\" entries) are skipped.
func ParseEnvDump(r io.Reader) (map[string]string, error) {
	env := make(map[string]string)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		key, value, ok := strings.Cut(line, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return env, nil
}
