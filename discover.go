package sevenzlist

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
)

// volumeRe matches split archive parts such as name.7z.001.
var volumeRe = regexp.MustCompile(`(?i)^(?P<prefix>.*\.7z)\.(?P<num>\d+)$`)

// DiscoverVolumes finds all parts of a split archive given its first part.
// A path that is not a numbered part is returned on its own.
func DiscoverVolumes(first string) ([]string, error) {
	return DiscoverVolumesFS(defaultFS, first)
}

// DiscoverVolumesFS works like DiscoverVolumes but uses the provided FileSystem.
func DiscoverVolumesFS(fs FileSystem, first string) ([]string, error) {
	if _, err := fs.Stat(first); err != nil {
		return nil, err
	}
	base := filepath.Base(first)
	m := volumeRe.FindStringSubmatch(base)
	if m == nil {
		return []string{first}, nil
	}
	prefix, num := m[1], m[2]
	start, err := strconv.Atoi(num)
	if err != nil {
		return nil, fmt.Errorf("volume number %q: %w", num, err)
	}
	width := len(num)
	dir := filepath.Dir(first)
	vols := []string{first}
	for i := start + 1; i < start+10000; i++ { // arbitrary upper bound
		p := filepath.Join(dir, fmt.Sprintf("%s.%0*d", prefix, width, i))
		if _, err := fs.Stat(p); err != nil {
			break
		}
		vols = append(vols, p)
	}
	return vols, nil
}
