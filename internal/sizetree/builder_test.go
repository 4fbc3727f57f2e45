package sizetree

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/TheIndifferent/disk-usage/internal/probe"
)

// fixture creates:
//
//	root/big.bin     5000
//	root/small.txt     10
//	root/sub/a.bin   3000
//	root/sub/b.bin   1500
//	root/empty/
func fixture(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	files := map[string]int{
		"big.bin":   5000,
		"small.txt": 10,
		"sub/a.bin": 3000,
		"sub/b.bin": 1500,
	}

	for name, size := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating directory: %v", err)
		}

		if err := os.WriteFile(path, make([]byte, size), 0o600); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	if err := os.Mkdir(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatalf("creating empty dir: %v", err)
	}

	return root
}

func scan(t *testing.T, root string, opts Options) *Node {
	t.Helper()

	if opts.Policy == "" {
		opts.Policy = probe.Logical
	}

	node, err := NewBuilder(opts).Scan(root)
	if err != nil {
		t.Fatalf("Scan(%s) error: %v", root, err)
	}

	return node
}

func checkOrderedSums(t *testing.T, n *Node) {
	t.Helper()

	if n.IsFile() {
		return
	}

	var logical, onDisk uint64

	for i, end := 0, n.Len(); i < end; i++ {
		c := n.Child(i)
		logical += c.SizeLogical()
		onDisk += c.SizeOnDisk()

		if i+1 < n.Len() && c.SizeOnDisk() < n.Child(i+1).SizeOnDisk() {
			t.Errorf("%s: child %d (%d) smaller than child %d (%d)",
				n.Name(), i, c.SizeOnDisk(), i+1, n.Child(i+1).SizeOnDisk())
		}

		if c.Name() == "" {
			t.Errorf("%s: child %d has empty name", n.Name(), i)
		}

		checkOrderedSums(t, c)
	}

	if logical != n.SizeLogical() || onDisk != n.SizeOnDisk() {
		t.Errorf("%s: sizes (%d, %d), children sum (%d, %d)",
			n.Name(), n.SizeLogical(), n.SizeOnDisk(), logical, onDisk)
	}
}

func names(n *Node) []string {
	out := make([]string, 0, n.Len())
	for _, c := range n.Children() {
		out = append(out, c.Name())
	}

	return out
}

func TestScanBuildsSortedTree(t *testing.T) {
	root := fixture(t)
	tree := scan(t, root, Options{})

	if tree.Name() != filepath.Base(root) {
		t.Errorf("root name = %q, want %q", tree.Name(), filepath.Base(root))
	}

	want := []string{"big.bin", "sub", "small.txt", "empty"}

	got := names(tree)
	if len(got) != len(want) {
		t.Fatalf("children = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("children = %v, want %v", got, want)

			break
		}
	}

	if tree.SizeLogical() != 9510 {
		t.Errorf("SizeLogical() = %d, want 9510", tree.SizeLogical())
	}

	sub := tree.Child(1)
	if !sub.IsDir() || sub.SizeLogical() != 4500 || sub.Len() != 2 {
		t.Errorf("sub = dir:%v size:%d len:%d", sub.IsDir(), sub.SizeLogical(), sub.Len())
	}

	if empty := tree.Child(3); !empty.IsDir() || empty.Len() != 0 {
		t.Errorf("empty should be an empty directory")
	}

	checkOrderedSums(t, tree)
}

func TestScanAllocatedPolicyKeepsOrderAndSums(t *testing.T) {
	tree := scan(t, fixture(t), Options{Policy: probe.Allocated})

	checkOrderedSums(t, tree)

	if tree.SizeLogical() != 9510 {
		t.Errorf("SizeLogical() = %d, want 9510", tree.SizeLogical())
	}
}

func TestScanProgress(t *testing.T) {
	b := NewBuilder(Options{Policy: probe.Logical})

	if _, err := b.Scan(fixture(t)); err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	p := b.Progress()
	if p.Files != 4 || p.Dirs != 3 || p.Bytes != 9510 {
		t.Errorf("Progress() = %+v, want {Files:4 Dirs:3 Bytes:9510}", p)
	}
}

func TestScanFileRoot(t *testing.T) {
	path := filepath.Join(fixture(t), "big.bin")
	node := scan(t, path, Options{})

	if !node.IsFile() || node.Name() != "big.bin" || node.SizeLogical() != 5000 {
		t.Errorf("file root = file:%v name:%q size:%d", node.IsFile(), node.Name(), node.SizeLogical())
	}
}

func TestScanMissingRoot(t *testing.T) {
	node := scan(t, filepath.Join(t.TempDir(), "gone"), Options{})

	if !node.IsFile() || node.SizeLogical() != 0 || node.SizeOnDisk() != 0 || node.Name() != "gone" {
		t.Errorf("missing root = file:%v name:%q size:%d", node.IsFile(), node.Name(), node.SizeLogical())
	}
}

func TestScanUnreadableDirectoryCollapses(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}

	if os.Geteuid() == 0 {
		t.Skip("root can read any directory")
	}

	root := fixture(t)
	locked := filepath.Join(root, "sub")

	if err := os.Chmod(locked, 0); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	tree := scan(t, root, Options{})

	var sub *Node

	for _, c := range tree.Children() {
		if c.Name() == "sub" {
			sub = c
		}
	}

	if sub == nil {
		t.Fatal("unreadable directory should still appear")
	}

	if !sub.IsFile() || sub.SizeLogical() != 0 || sub.SizeOnDisk() != 0 {
		t.Errorf("unreadable dir = file:%v size:%d", sub.IsFile(), sub.SizeLogical())
	}

	checkOrderedSums(t, tree)
}

func TestScanFailedListingCollapses(t *testing.T) {
	root := fixture(t)
	locked := filepath.Join(root, "sub")

	b := NewBuilder(Options{Policy: probe.Logical})
	b.readDir = func(path string) ([]os.DirEntry, error) {
		if path == locked {
			return nil, fs.ErrPermission
		}

		return os.ReadDir(path)
	}

	tree, err := b.Scan(root)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	var sub *Node

	for _, c := range tree.Children() {
		if c.Name() == "sub" {
			sub = c
		}
	}

	if sub == nil {
		t.Fatal("unreadable directory should still appear")
	}

	if !sub.IsFile() || sub.SizeLogical() != 0 || sub.SizeOnDisk() != 0 {
		t.Errorf("unreadable dir = file:%v size:%d", sub.IsFile(), sub.SizeLogical())
	}

	if tree.SizeLogical() != 5010 {
		t.Errorf("SizeLogical() = %d, want 5010", tree.SizeLogical())
	}

	checkOrderedSums(t, tree)
}

func TestScanPartialListingKeepsEntries(t *testing.T) {
	root := fixture(t)
	partial := filepath.Join(root, "sub")

	b := NewBuilder(Options{Policy: probe.Logical})
	b.readDir = func(path string) ([]os.DirEntry, error) {
		entries, err := os.ReadDir(path)
		if err != nil || path != partial {
			return entries, err
		}

		return entries[:1], fs.ErrPermission
	}

	tree, err := b.Scan(root)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	sub := tree.Child(1)
	if sub.Name() != "sub" || !sub.IsDir() || sub.Len() != 1 {
		t.Fatalf("sub = name:%q dir:%v len:%d", sub.Name(), sub.IsDir(), sub.Len())
	}

	checkOrderedSums(t, tree)
}

func TestScanInvalidNames(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("windows file names are UTF-16")
	}

	root := t.TempDir()
	badFile := filepath.Join(root, "bad\xffname")
	badDir := filepath.Join(root, "d\xfe")

	if err := os.WriteFile(badFile, make([]byte, 7), 0o600); err != nil {
		t.Skipf("file system rejects invalid UTF-8 names: %v", err)
	}

	if err := os.Mkdir(badDir, 0o755); err != nil {
		t.Fatalf("creating directory: %v", err)
	}

	if err := os.WriteFile(filepath.Join(badDir, "x"), make([]byte, 3), 0o600); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	tree := scan(t, root, Options{})
	if tree.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tree.Len())
	}

	file, dir := tree.Child(0), tree.Child(1)

	if file.Name() != InvalidName || !file.IsFile() || file.SizeLogical() != 7 {
		t.Errorf("file = name:%q file:%v size:%d", file.Name(), file.IsFile(), file.SizeLogical())
	}

	if dir.Name() != InvalidName || !dir.IsDir() || dir.SizeLogical() != 3 {
		t.Errorf("dir = name:%q dir:%v size:%d", dir.Name(), dir.IsDir(), dir.SizeLogical())
	}

	if file.EntryName() != "bad\xffname" || dir.EntryName() != "d\xfe" {
		t.Errorf("EntryName() = %q, %q", file.EntryName(), dir.EntryName())
	}

	if tree.SizeLogical() != 10 {
		t.Errorf("SizeLogical() = %d, want 10", tree.SizeLogical())
	}

	checkOrderedSums(t, tree)
}

func TestScanSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	root := fixture(t)
	if err := os.Symlink(filepath.Join(root, "sub"), filepath.Join(root, "link")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	followed := scan(t, root, Options{FollowSymlinks: true})
	if followed.SizeLogical() != 9510+4500 {
		t.Errorf("followed SizeLogical() = %d, want %d", followed.SizeLogical(), 9510+4500)
	}

	checkOrderedSums(t, followed)

	skipped := scan(t, root, Options{FollowSymlinks: false})
	if skipped.SizeLogical() != 9510 || skipped.Len() != 4 {
		t.Errorf("skipped = size:%d len:%d, want size:9510 len:4", skipped.SizeLogical(), skipped.Len())
	}
}

func TestScanDanglingSymlinkIsSkipped(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	root := fixture(t)
	if err := os.Symlink(filepath.Join(root, "nowhere"), filepath.Join(root, "dangling")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	tree := scan(t, root, Options{FollowSymlinks: true})
	if tree.Len() != 4 {
		t.Errorf("children = %v, dangling link should be skipped", names(tree))
	}
}

func TestScanIsRepeatable(t *testing.T) {
	root := fixture(t)

	first := scan(t, root, Options{})
	second := scan(t, root, Options{})

	var compare func(a, b *Node)

	compare = func(a, b *Node) {
		if a.Name() != b.Name() || a.IsDir() != b.IsDir() ||
			a.SizeLogical() != b.SizeLogical() || a.SizeOnDisk() != b.SizeOnDisk() || a.Len() != b.Len() {
			t.Errorf("nodes differ: %q vs %q", a.Name(), b.Name())

			return
		}

		for i, end := 0, a.Len(); i < end; i++ {
			compare(a.Child(i), b.Child(i))
		}
	}

	compare(first, second)
}

func TestScanClusterPolicyFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("a missing directory still has a volume on windows")
	}

	_, err := NewBuilder(Options{Policy: probe.Cluster}).Scan(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected cluster size error")
	}
}
