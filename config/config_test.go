package config_test

import (
	"os"
	"path/filepath"

	"github.com/containerd/errdefs"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/MarcinKonowalczyk/bfir/bf"
	"github.com/MarcinKonowalczyk/bfir/config"
)

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	write := func(contents string) string {
		path := filepath.Join(dir, config.Filename)
		Expect(os.WriteFile(path, []byte(contents), 0644)).To(Succeed())
		return path
	}

	Describe("Default", func() {
		It("should be valid", func() {
			c := config.Default()
			Expect(c.Validate()).To(Succeed())
			Expect(c.Parse.Strategy).To(Equal(string(bf.Recursive)))
			Expect(c.Output.Format).To(Equal(config.FormatTree))
			Expect(c.Path).To(BeEmpty())
		})
	})

	Describe("Load", func() {
		It("should read every section", func() {
			path := write(`
[parse]
strategy = "iterative"

[output]
format = "cbor"

[log]
level = "debug"
format = "json"
`)
			c, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Parse.Strategy).To(Equal(string(bf.Iterative)))
			Expect(c.Output.Format).To(Equal(config.FormatCBOR))
			Expect(c.Log.Level).To(Equal("debug"))
			Expect(c.Log.Format).To(Equal("json"))
			Expect(c.Path).To(Equal(path))
		})

		It("should keep defaults for missing keys", func() {
			c, err := config.Load(write("[output]\nformat = \"source\"\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Output.Format).To(Equal(config.FormatSource))
			Expect(c.Parse.Strategy).To(Equal(string(bf.Recursive)))
			Expect(c.Log.Level).To(Equal("info"))
		})

		It("should reject malformed TOML", func() {
			_, err := config.Load(write("[parse\nstrategy ="))
			Expect(err).To(HaveOccurred())
			Expect(errdefs.IsInvalidArgument(err)).To(BeTrue())
		})

		It("should reject unknown values", func() {
			for _, contents := range []string{
				"[parse]\nstrategy = \"sideways\"\n",
				"[output]\nformat = \"xml\"\n",
				"[log]\nlevel = \"chatty\"\n",
				"[log]\nformat = \"yaml\"\n",
			} {
				_, err := config.Load(write(contents))
				Expect(errdefs.IsInvalidArgument(err)).To(BeTrue(), contents)
			}
		})

		It("should fail on a missing file", func() {
			_, err := config.Load(filepath.Join(dir, "nope.toml"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Find", func() {
		It("should fall back to defaults", func() {
			c, err := config.Find(dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(c).To(Equal(config.Default()))
		})

		It("should load bfir.toml when present", func() {
			write("[parse]\nstrategy = \"iterative\"\n")
			c, err := config.Find(dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Parse.Strategy).To(Equal(string(bf.Iterative)))
		})
	})
})
