// assets/embed.go
//
// Embedded defaults shipped with the binary:
//   - words/answers.txt, words/allowed.txt: small default dictionaries used when
//     no word list files are configured.
//   - sql/*.sql: schema migrations for the sqlite suggestion cache.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed words/allowed.txt words/answers.txt
var Words embed.FS

//go:embed sql/*.sql
var SQL embed.FS

// Word list names inside Words.
const (
	AnswersFile = "words/answers.txt"
	AllowedFile = "words/allowed.txt"
)

// OpenWords opens one of the embedded word lists. Parsing is left to the
// words package, which treats embedded and on-disk lists the same way.
func OpenWords(name string) (fs.File, error) {
	return Words.Open(name)
}

// Migrations returns the embedded migration FS rooted at sql/.
func Migrations() fs.FS {
	sub, err := fs.Sub(SQL, "sql")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}
