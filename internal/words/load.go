// internal/words/load.go
//
// Word list loading.
//
// Source selection (Load):
//   1. answersPath and allowedPath both set: secrets from the first,
//      allowed guesses from the second.
//   2. only allowedPath set: that file is used for both lists.
//   3. neither set: the embedded defaults from the assets package.
//
// Lines are trimmed; blank lines and '#' comments are ignored. Lines that
// are not valid words are skipped (logged at debug level) so that a
// frequency-annotated or messy list still loads. The subset invariant is
// then enforced by NewDictionary and is fatal.

package words

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/fibble/assets"
)

// Load reads word lists from files or embedded defaults and builds a Dictionary.
func Load(answersPath, allowedPath string) (*Dictionary, error) {
	var ansList, allowList []string
	var err error

	switch {
	case answersPath != "" && allowedPath != "":
		if ansList, err = ReadFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = ReadFile(allowedPath); err != nil {
			return nil, err
		}

	case answersPath == "" && allowedPath != "":
		if allowList, err = ReadFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	case answersPath != "" && allowedPath == "":
		return nil, &ConfigError{Reason: "answers file set without an allowed file"}

	default:
		if ansList, err = readEmbedded(assets.AnswersFile); err != nil {
			return nil, err
		}
		if allowList, err = readEmbedded(assets.AllowedFile); err != nil {
			return nil, err
		}
	}

	d, err := NewDictionary(allowList, ansList)
	if err != nil {
		return nil, err
	}
	s, a := d.Stats()
	log.Debug().Int("secrets", s).Int("allowed", a).Msg("dictionary loaded")
	return d, nil
}

// ReadFile loads one word per line from path.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	list, err := ParseLines(path, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return list, nil
}

// readEmbedded loads one of the word lists shipped in assets.
func readEmbedded(name string) ([]string, error) {
	f, err := assets.OpenWords(name)
	if err != nil {
		return nil, fmt.Errorf("embedded %s: %w", name, err)
	}
	defer f.Close()
	list, err := ParseLines("embedded "+name, f)
	if err != nil {
		return nil, fmt.Errorf("read embedded %s: %w", name, err)
	}
	return list, nil
}

// ParseLines reads r line by line and returns the normalized valid words.
// Only the first whitespace-separated field of each line is considered.
func ParseLines(source string, r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, strings.Fields(line)[0])
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return keepValid(source, out), nil
}

func keepValid(source string, list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		w, err := Parse(s)
		if err != nil {
			log.Debug().Str("source", source).Str("line", s).Err(err).Msg("skipping word")
			continue
		}
		out = append(out, w.String())
	}
	return out
}
