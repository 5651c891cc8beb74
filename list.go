package sevenzlist

// ListFilesFS lists every file of the archive starting at first.
func ListFilesFS(fs FileSystem, first string) ([]File, error) {
	a, err := OpenFS(fs, first, Options{})
	if err != nil {
		return nil, err
	}
	return a.Files, nil
}

// ListFiles is a convenience using the default filesystem.
func ListFiles(first string) ([]File, error) { return ListFilesFS(defaultFS, first) }
