package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var languageSeeds = []string{
	"let x = 1\necho x\n",
	"let s = \"a\" + \"b\"\necho s\n",
	"fun add(a, b) {\n  return a + b\n}\necho add(1, 2)\necho add(\"a\", \"b\")\n",
	"pub fun half(x: Num): Num { return x / 2 }\necho half(4)\n",
	"let i = 0\nwhile i < 3 {\n  i = i + 1\n}\n",
	"if true {\n  echo 1\n} else if false {\n  echo 2\n} else {\n  echo 3\n}\n",
	"fun f(n) {\n  return f(n)\n}\nf(1)\n",
	"echo not true and false or 1 == 1\n",
	"let x = 1 let y = 2\n",
	"fun f() { fun g() {} }\n",
	"echo (1 + 2) * 3 % 2 - -1\n",
	"echo \"unterminated\n",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, seed := range languageSeeds {
		f.Add([]byte(seed))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.em файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".em" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
