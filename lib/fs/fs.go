// Package fs is the file-system collaborator injected into the two
// filesystem builtins. Hosts swap in their own implementation; Local is
// the os-backed default. I/O failures surface as the implementation's
// native errors, untranslated.
package fs

import "os"

type FS interface {
	Size(path string) (int64, error)
	Data(path string) (string, error)
}

type Local struct{}

var _ FS = Local{}

func (Local) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (Local) Data(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
