package value

import (
	"fmt"
	"os"
)

// optional regular file

type File string

func NewFile(p *string, val string) *File {
	*p = val

	return (*File)(p)
}

func (u *File) Set(val string) error {
	*u = File(val)
	return nil
}

func (u *File) String() string {
	return string(*u)
}

// Validate accepts an empty path or a path that doesn't exist. A path that
// exists must be a regular file.
func (u *File) Validate() error {
	val := string(*u)

	if len(val) == 0 {
		return nil
	}

	finfo, err := os.Stat(val)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("%s: %w", val, err)
	}

	if !finfo.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", val)
	}

	return nil
}

func (u *File) IsEmpty() bool {
	return len(string(*u)) == 0
}
