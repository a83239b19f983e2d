package analyzecmder

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAnalyzeWatch(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Analyze Watch Suite")
}

var _ = Describe("watch", func() {
	It("re-runs once on startup and again after a debounced write", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "export.txt")
		Expect(os.WriteFile(path, []byte("hello"), 0o644)).To(Succeed())

		var runs int32
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		go func() {
			_ = watch(ctx, &bytes.Buffer{}, []string{path}, 20*time.Millisecond, func() error {
				atomic.AddInt32(&runs, 1)
				return nil
			})
		}()

		Eventually(func() int32 { return atomic.LoadInt32(&runs) }, time.Second).Should(BeNumerically(">=", 1))

		Expect(os.WriteFile(path, []byte("hello again"), 0o644)).To(Succeed())

		Eventually(func() int32 { return atomic.LoadInt32(&runs) }, time.Second).Should(BeNumerically(">=", 2))
	})
})
