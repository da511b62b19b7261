// assets/embed.go
//
// Files compiled into the binary:
//   - answers.txt: the closed list of candidate secret words.
//   - sql/*.sql:   history store migrations, applied in lexical order.
package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed answers.txt sql/*.sql
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// AnswersList returns the embedded secret word list.
func AnswersList() ([]string, error) {
	return readLines("answers.txt")
}

// Migrations exposes the sql directory as its own filesystem root.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// only fails for an invalid path, which is a build-time constant here
		panic(err)
	}
	return sub
}
