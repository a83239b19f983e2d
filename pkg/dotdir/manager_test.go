package dotdir_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/duet/pkg/dotdir"
)

func TestDotdir(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dotdir Suite")
}

var _ = Describe("dotdir", func() {
	var tmpDir string
	var m *dotdir.Manager

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "dotdir-test-*")
		Expect(err).NotTo(HaveOccurred())

		// Resolve symlinks so paths match filepath.Abs results
		// (e.g. on macOS /var -> /private/var).
		tmpDir, err = filepath.EvalSymlinks(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		m = dotdir.NewManager()
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	Describe("NewManager", func() {
		It("creates a new manager", func() {
			Expect(m).ToNot(BeNil())
		})
	})

	Describe("Target", func() {
		It("returns the override dir even when a local .duet dir exists", func() {
			localDuet := filepath.Join(tmpDir, ".duet")
			Expect(os.Mkdir(localDuet, 0o755)).To(Succeed())

			origDir, err := os.Getwd()
			Expect(err).NotTo(HaveOccurred())
			Expect(os.Chdir(tmpDir)).To(Succeed())
			DeferCleanup(func() { os.Chdir(origDir) })

			overrideDir := filepath.Join(tmpDir, "override")
			result, err := m.Target(overrideDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(overrideDir))
		})

		It("returns the local .duet dir when it exists and no override is provided", func() {
			localDuet := filepath.Join(tmpDir, ".duet")
			Expect(os.Mkdir(localDuet, 0o755)).To(Succeed())

			origDir, err := os.Getwd()
			Expect(err).NotTo(HaveOccurred())
			Expect(os.Chdir(tmpDir)).To(Succeed())
			DeferCleanup(func() { os.Chdir(origDir) })

			result, err := m.Target("")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(localDuet))
		})

		It("returns empty string when no local or home .duet dir exists and no override is provided", func() {
			emptyDir := filepath.Join(tmpDir, "empty")
			Expect(os.Mkdir(emptyDir, 0o755)).To(Succeed())

			origDir, err := os.Getwd()
			Expect(err).NotTo(HaveOccurred())
			Expect(os.Chdir(emptyDir)).To(Succeed())
			DeferCleanup(func() { os.Chdir(origDir) })

			origHome := os.Getenv("HOME")
			Expect(os.Setenv("HOME", emptyDir)).To(Succeed())
			DeferCleanup(func() { os.Setenv("HOME", origHome) })

			result, err := m.Target("")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeEmpty())
		})
	})

	Describe("EnsureTarget", func() {
		It("creates ~/.duet when nothing else is found", func() {
			emptyDir := filepath.Join(tmpDir, "empty")
			Expect(os.Mkdir(emptyDir, 0o755)).To(Succeed())

			origDir, err := os.Getwd()
			Expect(err).NotTo(HaveOccurred())
			Expect(os.Chdir(emptyDir)).To(Succeed())
			DeferCleanup(func() { os.Chdir(origDir) })

			origHome := os.Getenv("HOME")
			Expect(os.Setenv("HOME", emptyDir)).To(Succeed())
			DeferCleanup(func() { os.Setenv("HOME", origHome) })

			result, err := m.EnsureTarget("")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(filepath.Join(emptyDir, ".duet")))

			info, err := os.Stat(result)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.IsDir()).To(BeTrue())
		})
	})
})
