package test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/resf/repoview/internal/cli"
	"github.com/resf/repoview/internal/utils"
)

const integrationPrimary = `<?xml version="1.0" encoding="UTF-8"?>
<metadata xmlns="http://linux.duke.edu/metadata/common" xmlns:rpm="http://linux.duke.edu/metadata/rpm" packages="3">
  <package type="rpm">
    <name>bash</name>
    <arch>x86_64</arch>
    <version epoch="0" ver="5.2.15" rel="3.el9"/>
    <checksum type="sha256" pkgid="YES">pkgid-bash-x86</checksum>
    <summary>The GNU Bourne Again shell</summary>
    <description>Bash is the shell of the GNU operating system.</description>
    <time file="1700000100" build="1700000000"/>
    <size package="1834023" installed="7710642" archive="7713213"/>
    <location href="Packages/b/bash-5.2.15-3.el9.x86_64.rpm"/>
    <format>
      <rpm:license>GPLv3+</rpm:license>
    </format>
  </package>
  <package type="rpm">
    <name>bash</name>
    <arch>aarch64</arch>
    <version epoch="0" ver="5.2.15" rel="3.el9"/>
    <checksum type="sha256" pkgid="YES">pkgid-bash-arm</checksum>
    <summary>The GNU Bourne Again shell</summary>
    <time file="1700000100" build="1700000000"/>
    <size package="1804023" installed="7610642" archive="7613213"/>
    <location href="Packages/b/bash-5.2.15-3.el9.aarch64.rpm"/>
    <format>
      <rpm:license>GPLv3+</rpm:license>
    </format>
  </package>
  <package type="rpm">
    <name>zlib</name>
    <arch>x86_64</arch>
    <version epoch="0" ver="1.2.13" rel="1.el9"/>
    <checksum type="sha256" pkgid="YES">pkgid-zlib</checksum>
    <summary>Compression library</summary>
    <time file="1700000300" build="1700000200"/>
    <size package="93941" installed="201293" archive="20231"/>
    <location href="Packages/z/zlib-1.2.13-1.el9.x86_64.rpm"/>
    <format>
      <rpm:license>zlib and Boost</rpm:license>
    </format>
  </package>
</metadata>`

const integrationComps = `<?xml version="1.0" encoding="UTF-8"?>
<comps>
  <group>
    <id>core</id>
    <name>Core</name>
    <description>Smallest possible installation</description>
    <uservisible>true</uservisible>
    <packagelist>
      <packagereq type="mandatory">bash</packagereq>
      <packagereq type="optional">retired-package</packagereq>
    </packagelist>
  </group>
</comps>`

// writeRepo lays out a minimal createrepo-style tree for the CLI to read
func writeRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	repodataDir := filepath.Join(dir, "repodata")
	if err := os.MkdirAll(repodataDir, 0755); err != nil {
		t.Fatalf("Failed to create repodata dir: %v", err)
	}

	files := map[string]struct {
		kind string
		data string
	}{
		"primary.xml": {"primary", integrationPrimary},
		"comps.xml":   {"group", integrationComps},
	}

	repomd := `<?xml version="1.0" encoding="UTF-8"?>
<repomd xmlns="http://linux.duke.edu/metadata/repo">
  <revision>1700000000</revision>`
	for name, file := range files {
		if err := os.WriteFile(filepath.Join(repodataDir, name), []byte(file.data), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
		repomd += fmt.Sprintf(`
  <data type="%s">
    <checksum type="sha256">%s</checksum>
    <location href="repodata/%s"/>
  </data>`, file.kind, utils.SHA256Sum([]byte(file.data)), name)
	}
	repomd += "\n</repomd>"

	if err := os.WriteFile(filepath.Join(repodataDir, "repomd.xml"), []byte(repomd), 0644); err != nil {
		t.Fatalf("Failed to write repomd.xml: %v", err)
	}
	return dir
}

func runGenerate(t *testing.T, repoDir, outDir string) {
	t.Helper()

	cmd := cli.NewRootCmd()
	cmd.SetArgs([]string{
		"generate",
		"--quiet",
		"--repodata", repoDir,
		"--output-dir", outDir,
		"--title", "Integration Repository",
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	repoDir := writeRepo(t)
	outDir := filepath.Join(t.TempDir(), "site")

	runGenerate(t, repoDir, outDir)

	expected := []string{
		"index.html",
		"core.group.html",
		"b.group.html",
		"z.group.html",
		"bash.html",
		"zlib.html",
	}
	for _, name := range expected {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s in output: %v", name, err)
		}
	}

	// the roster member without records must not produce a page
	if _, err := os.Stat(filepath.Join(outDir, "retired-package.html")); !os.IsNotExist(err) {
		t.Errorf("retired-package.html should not exist")
	}

	index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	if err != nil {
		t.Fatalf("Failed to read index: %v", err)
	}
	if !strings.Contains(string(index), "Integration Repository") {
		t.Errorf("index is missing the site title")
	}
	if !strings.Contains(string(index), "core.group.html") {
		t.Errorf("index is missing the core group link")
	}

	// multilib: both arches of bash share one page
	pkg, err := os.ReadFile(filepath.Join(outDir, "bash.html"))
	if err != nil {
		t.Fatalf("Failed to read package page: %v", err)
	}
	if !strings.Contains(string(pkg), "x86_64") || !strings.Contains(string(pkg), "aarch64") {
		t.Errorf("package page should list both arch builds")
	}
}

func TestGenerateTwiceIsIdentical(t *testing.T) {
	repoDir := writeRepo(t)

	read := func(outDir string) map[string]string {
		runGenerate(t, repoDir, outDir)
		tree := make(map[string]string)
		entries, err := os.ReadDir(outDir)
		if err != nil {
			t.Fatalf("Failed to read output dir: %v", err)
		}
		for _, entry := range entries {
			data, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
			if err != nil {
				t.Fatalf("Failed to read %s: %v", entry.Name(), err)
			}
			tree[entry.Name()] = string(data)
		}
		return tree
	}

	first := read(filepath.Join(t.TempDir(), "one"))
	second := read(filepath.Join(t.TempDir(), "two"))

	if len(first) != len(second) {
		t.Fatalf("output trees differ in size: %d vs %d", len(first), len(second))
	}
	for name, data := range first {
		if second[name] != data {
			t.Errorf("output file %s differs between runs", name)
		}
	}
}
