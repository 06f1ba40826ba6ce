package envcfg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/pkg/fileutil"
)

// Stable markers delimiting the managed profile block. Removal matches
// these exactly; nothing outside them is ever touched.
const (
	beginMarker = "# >>> aetos toolchain >>>"
	endMarker   = "# <<< aetos toolchain <<<"
)

func renderBlock(dir string) string {
	return fmt.Sprintf("%s\nexport PATH=\"%s:$PATH\"\n%s\n", beginMarker, dir, endMarker)
}

// EnsureProfileBlock appends the managed PATH block to profileFile
// unless the file already carries it. The file is created when
// missing. Write failures wrap ErrProfileUnwritable so callers can
// downgrade them to a warning with manual instructions.
func EnsureProfileBlock(profileFile, dir string) error {
	current, err := os.ReadFile(profileFile)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(errors.ErrProfileUnwritable, "%s: %v", profileFile, err)
	}
	if strings.Contains(string(current), beginMarker) {
		return nil
	}

	var b strings.Builder
	b.Write(current)
	if len(current) > 0 && !strings.HasSuffix(string(current), "\n") {
		b.WriteByte('\n')
	}
	if len(current) > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(renderBlock(dir))

	if err := os.MkdirAll(filepath.Dir(profileFile), 0o755); err != nil {
		return errors.Wrapf(errors.ErrProfileUnwritable, "%s: %v", profileFile, err)
	}
	if err := fileutil.AtomicWriteFile(profileFile, []byte(b.String()), 0o644); err != nil {
		return errors.Wrapf(errors.ErrProfileUnwritable, "%s: %v", profileFile, err)
	}
	return nil
}

// RemoveProfileBlock deletes exactly the managed block from
// profileFile, preserving every other byte. A missing file or missing
// block is success.
func RemoveProfileBlock(profileFile string) error {
	current, err := os.ReadFile(profileFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(errors.ErrProfileUnwritable, "%s: %v", profileFile, err)
	}

	content := string(current)
	begin := strings.Index(content, beginMarker)
	if begin < 0 {
		return nil
	}
	end := strings.Index(content, endMarker)
	if end < 0 {
		return nil
	}
	end += len(endMarker)
	if end < len(content) && content[end] == '\n' {
		end++
	}
	// Drop the blank separator line the block was appended with.
	if begin >= 1 && content[begin-1] == '\n' && begin >= 2 && content[begin-2] == '\n' {
		begin--
	}

	if err := fileutil.AtomicWriteFile(profileFile, []byte(content[:begin]+content[end:]), 0o644); err != nil {
		return errors.Wrapf(errors.ErrProfileUnwritable, "%s: %v", profileFile, err)
	}
	return nil
}

// pathHasDir reports whether dir appears as an element of a PATH-style
// value.
func pathHasDir(pathValue, dir string) bool {
	for _, elem := range filepath.SplitList(pathValue) {
		if elem == dir {
			return true
		}
	}
	return false
}
