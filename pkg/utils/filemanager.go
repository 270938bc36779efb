// =============================================================================
// Cart Parser - File Manager Utility
// =============================================================================
//
// Discovery, archival and report naming for the batch commands. Error logs
// and run summaries live in reports.go.
//
// ARCHIVE LAYOUT:
//   input_archive/<cart>.csv           carts are moved after a successful run
//   output_archive/<report>            reports are copied, the original stays
//   <archive>/2006/01/02/<file>        with DatedArchives set
//
// Failed carts are never touched.
//
// =============================================================================

package utils

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// dateLayout names the archive subdirectories when DatedArchives is set.
const dateLayout = "2006/01/02"

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager owns the four directories of a batch run.
type FileManager struct {
	InputDir         string
	OutputDir        string
	InputArchiveDir  string
	OutputArchiveDir string

	// DatedArchives files archived copies under year/month/day.
	DatedArchives bool

	// ArchiveOnSuccess turns both Archive methods into no-ops when false.
	ArchiveOnSuccess bool

	clock func() time.Time
}

// NewFileManager returns a FileManager that archives into flat directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir, outputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:         inputDir,
		OutputDir:        outputDir,
		InputArchiveDir:  inputArchiveDir,
		OutputArchiveDir: outputArchiveDir,
		ArchiveOnSuccess: true,
		clock:            time.Now,
	}
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles lists the regular files in InputDir matching pattern,
// "*.csv" when empty, in lexical order. Hidden files are skipped.
func (fm *FileManager) DiscoverInputFiles(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.csv"
	}

	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s", fm.InputDir)
	}

	var carts []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		matched, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return nil, errors.Wrapf(err, "bad pattern %q", pattern)
		}
		if matched {
			carts = append(carts, filepath.Join(fm.InputDir, entry.Name()))
		}
	}

	sort.Strings(carts)
	return carts, nil
}

// IsCartFile reports whether path looks like a cart file.
func IsCartFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".csv")
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves a processed cart into InputArchiveDir and returns
// its new path. With archiving disabled the cart stays where it is.
func (fm *FileManager) ArchiveInputFile(cartPath string) (string, error) {
	if !fm.ArchiveOnSuccess {
		return cartPath, nil
	}

	dst, err := fm.archiveTarget(fm.InputArchiveDir, cartPath)
	if err != nil {
		return "", err
	}
	if err := moveFile(cartPath, dst); err != nil {
		return "", errors.Wrapf(err, "archive %s", filepath.Base(cartPath))
	}
	return dst, nil
}

// ArchiveOutputFile copies a report into OutputArchiveDir and returns the
// copy's path.
func (fm *FileManager) ArchiveOutputFile(reportPath string) (string, error) {
	if !fm.ArchiveOnSuccess {
		return reportPath, nil
	}

	dst, err := fm.archiveTarget(fm.OutputArchiveDir, reportPath)
	if err != nil {
		return "", err
	}
	if err := copyFile(reportPath, dst); err != nil {
		return "", errors.Wrapf(err, "archive %s", filepath.Base(reportPath))
	}
	return dst, nil
}

// archiveTarget resolves where path lands inside archiveDir and creates the
// directory.
func (fm *FileManager) archiveTarget(archiveDir, path string) (string, error) {
	dir := archiveDir
	if fm.DatedArchives {
		now := time.Now
		if fm.clock != nil {
			now = fm.clock
		}
		dir = filepath.Join(archiveDir, filepath.FromSlash(now().Format(dateLayout)))
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "create archive directory")
	}
	return filepath.Join(dir, filepath.Base(path)), nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName expands the output_name_format placeholders for the
// report of cartPath and appends "."+extension unless already present.
//
//   {uuid}       random UUID
//   {timestamp}  20060102_150405
//   {date}       20060102
//   {time}       150405
//   {original}   cart file name without extension
//
// "{original}_{timestamp}" for weekly.csv gives "weekly_20240115_143022.json".
func GenerateOutputFileName(format, cartPath, extension string) string {
	now := time.Now()
	original := strings.TrimSuffix(filepath.Base(cartPath), filepath.Ext(cartPath))

	replacer := strings.NewReplacer(
		"{uuid}", uuid.New().String(),
		"{timestamp}", now.Format("20060102_150405"),
		"{date}", now.Format("20060102"),
		"{time}", now.Format("150405"),
		"{original}", original,
	)
	name := replacer.Replace(format)

	if !strings.EqualFold(filepath.Ext(name), "."+extension) {
		name += "." + extension
	}
	return name
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// moveFile renames src to dst, copying across filesystems when rename fails.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
