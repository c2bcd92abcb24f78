package main

import (
	"fmt"
	"os"

	"postindex/indexdoc"
)

// runLint checks an index document and prints every issue found.
// Returns true when the document is clean.
func runLint(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	issues, err := indexdoc.Lint(string(data))
	if err != nil {
		return false, err
	}
	for _, issue := range issues {
		fmt.Printf("%s: %s\n", path, issue)
	}
	if len(issues) > 0 {
		fmt.Printf("%s: %d issue(s)\n", path, len(issues))
		return false, nil
	}
	fmt.Printf("%s: ok\n", path)
	return true, nil
}
