package extract

import "os"

// Text reads plain text files as-is.
type Text struct{}

func (Text) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
